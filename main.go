// github-health reports the Issue and Pull Request health of GitHub repositories.
//
// Usage:
//
//	github-health repo golang/go --start 2024-01-01
//	github-health users --location Tokyo
package main

import (
	"github.com/naka-gawa/github-health/cmd"
)

// Version can be overridden at build time with -ldflags="-X main.Version=v1.0.0".
var Version = "dev"

func main() {
	cmd.Version = Version
	cmd.Execute()
}
