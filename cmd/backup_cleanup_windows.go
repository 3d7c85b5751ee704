//go:build windows

package cmd

import (
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// cleanupBackup removes the backup binary left behind by a swap. Windows can
// keep the file locked briefly after the old process exits, so removal is
// retried, and as a last resort the file is scheduled for deletion at the
// next reboot.
func cleanupBackup(path string) {
	for i := 0; i < 15; i++ {
		if err := os.Remove(path); err == nil || os.IsNotExist(err) {
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	if p, err := windows.UTF16PtrFromString(path); err == nil {
		_ = windows.MoveFileEx(p, nil, windows.MOVEFILE_DELAY_UNTIL_REBOOT)
	}
}
