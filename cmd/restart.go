package cmd

import (
	"github.com/spf13/cobra"

	"github.com/remixware/steamadd/internal/config"
	"github.com/remixware/steamadd/internal/steam"
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the Steam components (stop Steam, launch SteamTools, start Steam)",
	RunE:  runRestart,
}

func init() {
	rootCmd.AddCommand(restartCmd)
}

func runRestart(_ *cobra.Command, _ []string) error {
	ensureElevated()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	paths := steam.NewPaths(cfg.SteamDirs, cfg.SteamToolsDirs, nil)
	restartComponents(steam.NewController(paths, nil))
	return nil
}
