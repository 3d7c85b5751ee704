//go:build !windows

package cmd

// Elevation is a Windows concern; elsewhere installs run with the invoking
// user's permissions.
func ensureElevated() {}

func reportElevation() {}
