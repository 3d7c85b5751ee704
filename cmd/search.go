package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/remixware/steamadd/internal/config"
	"github.com/remixware/steamadd/internal/resolver"
)

var searchCmd = &cobra.Command{
	Use:   "search <name | app id | store URL>",
	Short: "Search the Steam store without installing anything",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	res := resolver.New(cfg.StoreURL, cfg.APIURL,
		resolver.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))

	match := res.Resolve(cmd.Context(), query)
	switch match.Kind {
	case resolver.MatchSingle:
		printOK("", fmt.Sprintf("app id: %d", match.AppID))
		if name, err := res.AppName(cmd.Context(), match.AppID); err == nil {
			printInfo("", name)
		}
		return nil
	case resolver.MatchAmbiguous:
		fmt.Printf("\nsteamadd search %q\n\nResults (%d found):\n\n", query, len(match.Candidates))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for i, c := range match.Candidates {
			fmt.Fprintf(w, "  %d.\t%d\t%s\n", i+1, c.AppID, c.Name)
		}
		_ = w.Flush()
		return nil
	default:
		return fmt.Errorf("no game found for %q", query)
	}
}
