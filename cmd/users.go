package cmd

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/naka-gawa/github-health/internal/domain"
	"github.com/naka-gawa/github-health/internal/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Ranks the most active users of a location",
	Long: `Searches the most followed users of a location and ranks them by their
public contributions over the last year.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		location, _ := cmd.Flags().GetString("location")
		asJSON, _ := cmd.Flags().GetBool("json")
		if location == "" {
			return errors.New("--location is required")
		}

		aggregator, _, err := newAggregator(cmd)
		if err != nil {
			return err
		}

		spinner, _ := pterm.DefaultSpinner.WithWriter(os.Stderr).WithRemoveWhenDone(true).
			Start(fmt.Sprintf("Searching users in %s...", location))
		var mu sync.Mutex
		aggregator.OnProgress(func(_ domain.RepoID, _ domain.Kind, processed int) {
			mu.Lock()
			defer mu.Unlock()
			spinner.UpdateText(fmt.Sprintf("Searching users in %s... %d found", location, processed))
		})

		results, err := aggregator.RankUsers(cmd.Context(), location)
		if err != nil {
			spinner.Fail("Search failed")
			return err
		}
		_ = spinner.Stop()

		if asJSON {
			return report.Encode(cmd.OutOrStdout(), results)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), report.UsersMarkdown(results))
		return err
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.Flags().StringP("location", "l", "", "Location to search users in (required)")
	usersCmd.Flags().Bool("json", false, "Output the ranking as JSON")
}
