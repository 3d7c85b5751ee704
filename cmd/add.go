package cmd

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/remixware/steamadd/internal/bundle"
	"github.com/remixware/steamadd/internal/config"
	"github.com/remixware/steamadd/internal/placement"
	"github.com/remixware/steamadd/internal/resolver"
	"github.com/remixware/steamadd/internal/steam"
)

var (
	flagAddPick        int
	flagAddNoRestart   bool
	flagAddKeepStaging bool
	flagAddTimeout     time.Duration
)

var addCmd = &cobra.Command{
	Use:   "add <name | app id | store URL>",
	Short: "Find a game, install its bundle, and restart Steam",
	Long: `Resolve the query to a Steam app id, download the app's bundle from the
content bucket, copy the plugin and manifest files into the SteamTools
directories under the Steam install, and restart the Steam components.

  steamadd add 271590
  steamadd add "grand theft auto v"
  steamadd add https://store.steampowered.com/app/271590/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().IntVar(&flagAddPick, "pick", 0, "Select the Nth candidate (1-based) when the query is ambiguous")
	addCmd.Flags().BoolVar(&flagAddNoRestart, "no-restart", false, "Do not restart Steam components after installing")
	addCmd.Flags().BoolVar(&flagAddKeepStaging, "keep-staging", false, "Keep the staging directory after installing")
	addCmd.Flags().DurationVar(&flagAddTimeout, "timeout", 15*time.Second, "Per-request HTTP timeout (overrides http_timeout from the config file)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("empty query")
	}

	ensureElevated()

	unlock, err := acquireActionLock()
	if err != nil {
		return err
	}
	defer unlock()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	timeout := cfg.HTTPTimeout
	if cmd.Flags().Changed("timeout") {
		timeout = flagAddTimeout
	}
	client := &http.Client{Timeout: timeout}
	paths := steam.NewPaths(cfg.SteamDirs, cfg.SteamToolsDirs, nil)
	controller := steam.NewController(paths, nil)

	if !controller.IsSteamToolsInstalled() {
		printErr("", "SteamTools.exe was not found in any known location")
		printInfo("", "install SteamTools first, or set steamtools_dirs in ~/.steamadd/steamadd.yaml")
		return fmt.Errorf("steamtools not installed")
	}

	res := resolver.New(cfg.StoreURL, cfg.APIURL, resolver.WithHTTPClient(client))

	printSection("Install")
	printInfo("", fmt.Sprintf("searching: %s", query))

	appID, err := resolveAppID(ctx, res, query)
	if err != nil {
		return err
	}
	printInfo("", fmt.Sprintf("selected app id: %d", appID))

	if err := ctx.Err(); err != nil {
		return err
	}

	// Store details are informational only; a failed lookup never aborts.
	if name, err := res.AppName(ctx, appID); err == nil {
		printOK("", fmt.Sprintf("found: %s", name))
	} else {
		printMiss("", "store details not available")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	staging := cfg.StagingDir
	fetcher := bundle.New(cfg.BucketURL, bundle.WithHTTPClient(client))
	found, err := fetcher.Fetch(ctx, appID, staging, fetchSink)
	if err != nil {
		return err
	}
	if !found {
		printMiss("", fmt.Sprintf("no data found for app id %d", appID))
		return fmt.Errorf("no bundle data for app id %d", appID)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	engine := placement.NewEngine(paths, nil)
	engine.KeepStaging = flagAddKeepStaging
	result, err := engine.Place(staging, func(msg string) { printInfo("", msg) })
	if err != nil {
		return err
	}
	switch {
	case result.NothingToCopy:
		printSkip("", "bundle held no plugin or manifest files")
	case result.Failed > 0:
		printWarn("", fmt.Sprintf("installed %d plugin and %d manifest file(s), %d failed",
			result.Plugins, result.Manifests, result.Failed))
	default:
		printOK("", fmt.Sprintf("installed %d plugin and %d manifest file(s)",
			result.Plugins, result.Manifests))
	}

	if flagAddNoRestart {
		printSkip("", "restart skipped (--no-restart)")
		printOK("", "done")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	restartComponents(controller)
	printOK("", "done")
	return nil
}

// resolveAppID turns the query into a single app id, asking the user to pick
// when the resolver returns several candidates.
func resolveAppID(ctx context.Context, res *resolver.Resolver, query string) (int, error) {
	match := res.Resolve(ctx, query)
	switch match.Kind {
	case resolver.MatchSingle:
		return match.AppID, nil
	case resolver.MatchAmbiguous:
		return pickCandidate(match.Candidates, flagAddPick)
	default:
		return 0, fmt.Errorf("no game found for %q", query)
	}
}

// pickCandidate selects from an ambiguous candidate list: via the --pick flag
// when given, otherwise interactively from stdin.
func pickCandidate(candidates []resolver.SearchResult, pick int) (int, error) {
	if pick > 0 {
		if pick > len(candidates) {
			return 0, fmt.Errorf("--pick %d out of range (have %d candidates)", pick, len(candidates))
		}
		return candidates[pick-1].AppID, nil
	}

	printCandidates(candidates)
	fmt.Printf("\nSelect a game [1-%d]: ", len(candidates))
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("no selection made (use --pick N for non-interactive use)")
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(candidates) {
		return 0, fmt.Errorf("invalid selection %q", strings.TrimSpace(line))
	}
	return candidates[n-1].AppID, nil
}

func printCandidates(candidates []resolver.SearchResult) {
	fmt.Printf("\nMultiple games matched:\n\n")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, c := range candidates {
		fmt.Fprintf(w, "  %d.\t%d\t%s\n", i+1, c.AppID, c.Name)
	}
	_ = w.Flush()
}

// restartComponents runs the stop → launch tool → start sequence. Each step is
// independent and best-effort.
func restartComponents(controller *steam.Controller) {
	printSection("Restart")
	if err := controller.StopSteam(); err != nil {
		printWarn("", fmt.Sprintf("could not close Steam: %v", err))
	} else {
		printOK("", "Steam closed")
	}

	if err := controller.LaunchSteamTools(); err != nil {
		if steam.IsNotInstalled(err) {
			printSkip("", "SteamTools.exe not found, skipping launch")
		} else {
			printWarn("", fmt.Sprintf("could not launch SteamTools: %v", err))
		}
	} else {
		printOK("", "SteamTools launched")
	}

	if err := controller.StartSteam(); err != nil {
		printErr("", fmt.Sprintf("could not start Steam: %v", err))
	} else {
		printOK("", "Steam started")
	}
}

func fetchSink(step bundle.Step, detail string) {
	switch step {
	case bundle.StepStart:
		printInfo("", detail)
	case bundle.StepDownloaded:
		printOK("", fmt.Sprintf("downloaded %s", detail))
	case bundle.StepExtracting:
		printInfo("", "extracting...")
	case bundle.StepExtracted:
		printOK("", "extracted")
	}
}

// acquireActionLock takes the per-user lock that keeps a single install
// action in flight at a time.
func acquireActionLock() (func(), error) {
	dir, err := config.SteamAddDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	lockPath := filepath.Join(dir, "action.lock")
	l := flock.New(lockPath)
	locked, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("cannot acquire action lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another steamadd action is in progress (lock: %s)", lockPath)
	}
	return func() { _ = l.Unlock() }, nil
}
