package cmd

import (
	"fmt"
	"os"

	"github.com/naka-gawa/github-health/internal/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// lowQuota is the remaining budget below which a warning is shown.
const lowQuota = 100

var limitCmd = &cobra.Command{
	Use:   "limit",
	Short: "Shows the remaining GraphQL API quota",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, githubGateway, err := newAggregator(cmd)
		if err != nil {
			return err
		}
		rl, err := githubGateway.FetchRateLimit(cmd.Context())
		if err != nil {
			return err
		}
		if rl.Remaining < lowQuota {
			pterm.Warning.WithWriter(os.Stderr).Printfln("Only %d API points left", rl.Remaining)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), report.RateLimitLine(rl))
		return err
	},
}

func init() {
	rootCmd.AddCommand(limitCmd)
}
