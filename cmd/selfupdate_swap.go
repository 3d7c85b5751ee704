//go:build windows

package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
)

// swapFlags holds flag values for the hidden __selfupdate-swap helper command.
type swapFlags struct {
	pid      int
	current  string
	newPath  string
	backup   string
	expected string
	timeout  time.Duration
}

// selfupdateSwapCmd is an internal helper spawned by `steamadd update` on
// Windows, where a running executable cannot be replaced in place. It waits
// for the parent process to exit, then performs the rename swap.
var selfupdateSwapCmd = &cobra.Command{
	Use:    "__selfupdate-swap",
	Hidden: true,
	RunE:   runSelfupdateSwap,
}

var swapOpts swapFlags

func init() {
	selfupdateSwapCmd.Flags().IntVar(&swapOpts.pid, "pid", 0, "PID of the parent process to wait for")
	selfupdateSwapCmd.Flags().StringVar(&swapOpts.current, "current", "", "Path to the binary being replaced")
	selfupdateSwapCmd.Flags().StringVar(&swapOpts.newPath, "new", "", "Path to the staged new binary")
	selfupdateSwapCmd.Flags().StringVar(&swapOpts.backup, "backup", "", "Path for the backup of the old binary")
	selfupdateSwapCmd.Flags().StringVar(&swapOpts.expected, "expected", "", "Expected version of the new binary")
	selfupdateSwapCmd.Flags().DurationVar(&swapOpts.timeout, "timeout", 30*time.Second, "How long to wait for the parent to exit")
	rootCmd.AddCommand(selfupdateSwapCmd)
}

func runSelfupdateSwap(_ *cobra.Command, _ []string) error {
	f := swapOpts
	if f.pid <= 0 || f.current == "" || f.newPath == "" || f.backup == "" {
		return fmt.Errorf("missing required swap arguments")
	}

	lockPath, err := updateLockPath()
	if err != nil {
		return err
	}
	l := flock.New(lockPath + ".swap")
	locked, err := l.TryLock()
	if err != nil {
		return fmt.Errorf("cannot acquire swap lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another swap is in progress")
	}
	defer l.Unlock()

	if err := waitForProcessExit(f.pid, f.timeout); err != nil {
		return err
	}

	_ = os.Remove(f.backup)
	if err := os.Rename(f.current, f.backup); err != nil {
		return fmt.Errorf("cannot back up current binary: %w", err)
	}
	if err := os.Rename(f.newPath, f.current); err != nil {
		_ = os.Rename(f.backup, f.current)
		return fmt.Errorf("cannot install new binary: %w", err)
	}
	if f.expected != "" {
		if err := verifyBinaryVersion(f.current, f.expected); err != nil {
			_ = os.Rename(f.current, failedBinaryPath(f.current))
			_ = os.Rename(f.backup, f.current)
			return err
		}
	}
	cleanupBackup(f.backup)
	return nil
}

// failedBinaryPath names the quarantine location for a binary that failed
// post-install verification.
func failedBinaryPath(current string) string {
	if strings.HasSuffix(strings.ToLower(current), ".exe") {
		return strings.TrimSuffix(current, ".exe") + ".failed.exe"
	}
	return current + ".failed"
}

// waitForProcessExit polls until the given PID is no longer running or the
// timeout elapses.
func waitForProcessExit(pid int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if !processAlive(pid) {
			// Grace period for the OS to release the executable file handle.
			time.Sleep(200 * time.Millisecond)
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("parent process %d did not exit within %s", pid, timeout)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// processAlive reports whether a process with the given PID exists, using
// tasklist with a PID filter.
func processAlive(pid int) bool {
	out, err := exec.Command("tasklist", "/FI", fmt.Sprintf("PID eq %d", pid), "/NH").Output()
	if err != nil {
		return false
	}
	return strings.Contains(string(out), strconv.Itoa(pid))
}
