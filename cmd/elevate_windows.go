//go:build windows

package cmd

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/windows"
)

// isElevated reports whether the process holds an elevated token.
func isElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

// relaunchElevated re-launches the current executable with the "runas" verb,
// preserving the original arguments.
func relaunchElevated(args []string) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	verb, _ := windows.UTF16PtrFromString("runas")
	exePtr, _ := windows.UTF16PtrFromString(exe)
	argPtr, _ := windows.UTF16PtrFromString(strings.Join(args, " "))
	cwd, _ := os.Getwd()
	cwdPtr, _ := windows.UTF16PtrFromString(cwd)
	return windows.ShellExecute(0, verb, exePtr, argPtr, cwdPtr, windows.SW_NORMAL)
}

// ensureElevated relaunches elevated when needed; on success the current
// process exits and the elevated instance takes over with the same arguments.
func ensureElevated() {
	if isElevated() {
		return
	}
	printWarn("", "administrator privileges are required to modify Steam files; relaunching elevated")
	if err := relaunchElevated(os.Args[1:]); err != nil {
		printWarn("", fmt.Sprintf("elevation failed, continuing without: %v", err))
		return
	}
	os.Exit(0)
}

func reportElevation() {
	if isElevated() {
		printOK("elevation", "running as administrator")
	} else {
		printWarn("elevation", "not running as administrator; install may fail")
	}
}
