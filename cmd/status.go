package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/remixware/steamadd/internal/config"
	"github.com/remixware/steamadd/internal/steam"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show resolved install locations and environment health",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	paths := steam.NewPaths(cfg.SteamDirs, cfg.SteamToolsDirs, nil)

	printSection("Environment")

	if path, err := config.ConfigPath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			printOK("config", path)
		} else {
			printSkip("config", fmt.Sprintf("%s (not present, using defaults)", path))
		}
	}

	allOK := true

	if dir, err := paths.SteamDir(); err == nil {
		printOK("steam", dir)
		if exe, err := paths.SteamExe(); err == nil {
			printOK("steam", exe)
		} else {
			printMiss("steam", "steam executable not found in install dir")
			allOK = false
		}
		reportDir(paths.PluginDir, "stplug-in")
		reportDir(paths.DepotCacheDir, "depotcache")
	} else {
		printMiss("steam", "no Steam installation found")
		allOK = false
	}

	if exe, err := paths.SteamToolsExe(); err == nil {
		printOK("steamtools", exe)
	} else {
		printMiss("steamtools", "SteamTools.exe not found")
		allOK = false
	}

	reportRunning("steam", "steam.exe")
	reportRunning("steamtools", "SteamTools.exe")
	reportElevation()

	fmt.Println()
	if !allOK {
		return fmt.Errorf("environment is not ready; see missing entries above")
	}
	printOK("", "ready")
	return nil
}

// reportRunning prints whether a process with the given image name is up.
// Purely informational; neither state affects readiness.
func reportRunning(name, image string) {
	if steam.IsRunning(image) {
		printInfo(name, "running")
	} else {
		printInfo(name, "not running")
	}
}

// reportDir prints whether a destination directory already exists. A missing
// directory is informational only; it is created on first install.
func reportDir(resolve func() (string, error), name string) {
	dir, err := resolve()
	if err != nil {
		return
	}
	if _, err := os.Stat(dir); err == nil {
		printOK(name, dir)
	} else {
		printInfo(name, fmt.Sprintf("%s (will be created on install)", dir))
	}
}
