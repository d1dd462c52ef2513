package cmd

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/naka-gawa/github-health/internal/domain"
	"github.com/naka-gawa/github-health/internal/report"
	"github.com/naka-gawa/github-health/internal/usecase"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const inputDateLayout = "2006-01-02"

var repoCmd = &cobra.Command{
	Use:   "repo <owner/name>...",
	Short: "Reports Issue and Pull Request health of one or more repositories",
	Long: `Fetches every Issue and Pull Request of the given repositories and reports
how many were closed or merged, how long the first response and the first
official response took, and who contributed the most.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos := make([]domain.RepoID, 0, len(args))
		for _, arg := range args {
			id, err := domain.ParseRepoID(arg)
			if err != nil {
				return err
			}
			repos = append(repos, id)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		serial, _ := cmd.Flags().GetBool("serial")
		commits, _ := cmd.Flags().GetBool("commits")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")

		window, err := parseWindow(startStr, endStr)
		if err != nil {
			return err
		}
		opts := usecase.FetchOptions{
			Window:       window,
			TrackCommits: commits,
			PageSize:     pageSize,
		}
		if serial {
			opts.Strategy = usecase.StrategySerial
		}

		aggregator, _, err := newAggregator(cmd)
		if err != nil {
			return err
		}

		spinner, _ := pterm.DefaultSpinner.WithWriter(os.Stderr).WithRemoveWhenDone(true).
			Start(fmt.Sprintf("Fetching %d repositories...", len(repos)))
		var mu sync.Mutex
		aggregator.OnProgress(func(repo domain.RepoID, kind domain.Kind, processed int) {
			mu.Lock()
			defer mu.Unlock()
			spinner.UpdateText(fmt.Sprintf("Fetching %s for %s... %d processed", kind, repo, processed))
		})

		results, err := aggregator.Aggregate(cmd.Context(), repos, opts)
		if err != nil {
			spinner.Fail("Fetching failed")
			return err
		}
		_ = spinner.Stop()

		if asJSON {
			return report.Encode(cmd.OutOrStdout(), results)
		}
		return report.WriteMarkdown(cmd.OutOrStdout(), results, report.Options{Commits: commits})
	},
}

// parseWindow turns the --start and --end dates into a creation-time window.
// Both dates are inclusive.
func parseWindow(startStr, endStr string) (domain.Window, error) {
	var w domain.Window
	if startStr != "" {
		start, err := time.Parse(inputDateLayout, startStr)
		if err != nil {
			return w, fmt.Errorf("invalid --start date format, please use YYYY-MM-DD: %w", err)
		}
		w.After = start
	}
	if endStr != "" {
		end, err := time.Parse(inputDateLayout, endStr)
		if err != nil {
			return w, fmt.Errorf("invalid --end date format, please use YYYY-MM-DD: %w", err)
		}
		w.Before = end.AddDate(0, 0, 1)
	}
	if !w.After.IsZero() && !w.Before.IsZero() && !w.After.Before(w.Before) {
		return w, fmt.Errorf("--start %s is after --end %s", startStr, endStr)
	}
	return w, nil
}

func init() {
	rootCmd.AddCommand(repoCmd)
	repoCmd.Flags().Bool("json", false, "Output the report as JSON")
	repoCmd.Flags().Bool("serial", false, "Fetch Issues and Pull Requests one after the other")
	repoCmd.Flags().Bool("commits", false, "Count commits of merged Pull Requests (one extra request each)")
	repoCmd.Flags().String("start", "", "Only count items created on or after this date (YYYY-MM-DD)")
	repoCmd.Flags().String("end", "", "Only count items created on or before this date (YYYY-MM-DD)")
	repoCmd.Flags().Int("page-size", 100, "Items per request (0-100, 0 means 100)")
}
