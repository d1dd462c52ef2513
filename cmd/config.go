package cmd

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/naka-gawa/github-health/internal/gateway"
	"github.com/naka-gawa/github-health/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogger discards everything unless --verbose is set.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
	if verbose {
		logger.SetOutput(os.Stderr) // If verbose, log to standard error.
	}
	return logger
}

// resolveToken prefers --token, then GITHUB_TOKEN from the environment or a .env file.
func resolveToken(cmd *cobra.Command, logger *log.Logger) (string, error) {
	if token, _ := cmd.Flags().GetString("token"); token != "" {
		return token, nil
	}
	if err := godotenv.Load(); err != nil {
		logger.Println("No .env file loaded, using the process environment.")
	}
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return "", errors.New("no token given: pass --token or set GITHUB_TOKEN")
	}
	return token, nil
}

// newAggregator wires the GitHub gateway into the use case.
func newAggregator(cmd *cobra.Command) (*usecase.Aggregator, *gateway.GitHubGateway, error) {
	logger := newLogger(cmd)
	token, err := resolveToken(cmd, logger)
	if err != nil {
		return nil, nil, err
	}
	githubGateway, err := gateway.NewGitHubGateway(token, logger)
	if err != nil {
		return nil, nil, err
	}
	return usecase.NewAggregator(githubGateway, logger), githubGateway, nil
}
