// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/naka-gawa/github-health/internal/domain"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Version is set by main.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "github-health",
	Short: "A CLI tool to measure the health of GitHub repositories.",
	Long: `github-health fetches the Issue and Pull Request history of one or more
GitHub repositories and reports response times, merge times and the most
active contributors. It can also rank the most active users of a location.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError names the target, collection and kind of a fetch failure.
func printError(err error) {
	stderr := pterm.Error.WithWriter(os.Stderr)
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		stderr.Printfln("%s: failed to fetch %s (%s)", fe.Target, fe.Kind, domain.ErrorKind(err))
		stderr.Println(err.Error())
		return
	}
	stderr.Println(err.Error())
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringP("token", "t", "", "GitHub personal access token (default $GITHUB_TOKEN)")
}
