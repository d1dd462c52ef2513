package cmd

import (
	"fmt"
	"os"

	"github.com/naka-gawa/github-health/internal/report"
	"github.com/spf13/cobra"
)

var jsonCmd = &cobra.Command{
	Use:   "json <file>",
	Short: "Renders a report saved with `repo --json` as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open report: %w", err)
		}
		defer f.Close()

		results, err := report.Decode(f)
		if err != nil {
			return err
		}
		commits, _ := cmd.Flags().GetBool("commits")
		return report.WriteMarkdown(cmd.OutOrStdout(), results, report.Options{Commits: commits})
	},
}

func init() {
	rootCmd.AddCommand(jsonCmd)
	jsonCmd.Flags().Bool("commits", false, "Include the commits-in-merged-PRs ranking")
}
