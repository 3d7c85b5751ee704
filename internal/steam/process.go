package steam

import (
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Controller stops and starts the Steam-related processes. Every operation is
// best-effort and fire-and-forget: there is no IPC back-channel, and a failed
// step never prevents the next one from being attempted.
type Controller struct {
	Paths *Paths
	Log   *logrus.Logger

	// Settle delays give the OS time to release process state between steps.
	// Overridable for tests.
	StopSettle   time.Duration
	LaunchSettle time.Duration
}

// NewController returns a Controller with the production settle delays.
func NewController(paths *Paths, log *logrus.Logger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		Paths:        paths,
		Log:          log,
		StopSettle:   time.Second,
		LaunchSettle: 2 * time.Second,
	}
}

// StopSteam forcibly terminates Steam by image name.
func (c *Controller) StopSteam() error {
	name, args := killCommand()
	if err := exec.Command(name, args...).Run(); err != nil {
		c.Log.WithError(err).Warn("cannot stop steam")
		return err
	}
	time.Sleep(c.StopSettle)
	return nil
}

// LaunchSteamTools starts the SteamTools executable. A missing executable is
// reported as ErrSteamToolsNotFound so callers can print "skipped" rather
// than a failure.
func (c *Controller) LaunchSteamTools() error {
	exe, err := c.Paths.SteamToolsExe()
	if err != nil {
		return err
	}
	if err := startDetached(exe); err != nil {
		c.Log.WithError(err).Warn("cannot launch steamtools")
		return err
	}
	time.Sleep(c.LaunchSettle)
	return nil
}

// StartSteam launches the Steam client from the resolved installation.
func (c *Controller) StartSteam() error {
	exe, err := c.Paths.SteamExe()
	if err != nil {
		return err
	}
	if err := startDetached(exe); err != nil {
		c.Log.WithError(err).Warn("cannot start steam")
		return err
	}
	time.Sleep(c.StopSettle)
	return nil
}

// IsSteamToolsInstalled reports whether the auxiliary tool could be located.
func (c *Controller) IsSteamToolsInstalled() bool {
	_, err := c.Paths.SteamToolsExe()
	return err == nil
}

// IsNotInstalled reports whether err is one of the not-found sentinels.
func IsNotInstalled(err error) bool {
	return errors.Is(err, ErrSteamNotFound) || errors.Is(err, ErrSteamToolsNotFound)
}

// IsRunning reports whether a process with the given image name exists. A
// probe failure is reported as not running.
func IsRunning(image string) bool {
	name, args := listCommand(image)
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return false
	}
	if runtime.GOOS == "windows" {
		return strings.Contains(strings.ToLower(string(out)), strings.ToLower(image))
	}
	return len(strings.TrimSpace(string(out))) > 0
}

func killCommand() (string, []string) {
	if runtime.GOOS == "windows" {
		return "taskkill", []string{"/F", "/IM", "steam.exe"}
	}
	return "pkill", []string{"-x", "steam"}
}

func listCommand(image string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "tasklist", []string{"/FI", "IMAGENAME eq " + image, "/NH"}
	}
	return "pgrep", []string{"-x", strings.TrimSuffix(image, ".exe")}
}

// startDetached spawns exe as an independent process with no pipes attached.
func startDetached(exe string) error {
	cmd := exec.Command(exe)
	cmd.Dir = filepath.Dir(exe)
	return cmd.Start()
}
