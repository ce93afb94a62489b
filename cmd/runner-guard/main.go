package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/githubnext/runner-guard/pkg/cli"
	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/spf13/cobra"
)

// Build-time variables.
var (
	version = "dev"
)

// Global flags
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:     string(constants.CLIName),
	Short:   "Keep GitHub Actions workflows on approved runners",
	Version: version,
	Long: `runner-guard checks the runner tags used by GitHub Actions workflows.

It reads every workflow under .github/workflows, collects the runner tags each
job's runs-on field declares, and fails when a tag is not in the allowlist.
Run it as a step in a workflow, or locally before pushing.

Common Tasks:
  ` + string(constants.CLIName) + ` check -a "ubuntu-latest self-hosted"  # Enforce an allowlist
  ` + string(constants.CLIName) + ` list                                  # Show the tags in use
  ` + string(constants.CLIName) + ` watch -a ubuntu-latest                # Re-check on every change`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: "policy", Title: "Policy Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "analysis", Title: "Analysis Commands:"})

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output showing detailed information")

	checkCmd := cli.NewCheckCommand()
	checkCmd.GroupID = "policy"
	watchCmd := cli.NewWatchCommand()
	watchCmd.GroupID = "policy"
	listCmd := cli.NewListCommand()
	listCmd.GroupID = "analysis"

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cli.NewVersionCommand())
}

func main() {
	cli.SetVersionInfo(version)
	rootCmd.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cli.PrintCommandError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
