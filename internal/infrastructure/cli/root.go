package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd reports the burndown of the current sprint when called without subcommands.
var RootCmd = &cobra.Command{
	Use:     "burndown",
	Version: Version,
	Short:   "Sprint burndown chart for Redmine tickets",
	Long: `Burndown queries Redmine for the tickets of a two-week sprint and charts
the remaining story points per working day against the ideal burn.

Without --sprint the sprint containing today is reported. A past sprint
is replayed as of its last day.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runBurndown,
}

func init() {
	RootCmd.SetVersionTemplate(versionTemplate())
}

func versionTemplate() string {
	return fmt.Sprintf("burndown {{.Version}} (commit %s, built %s)\n", Commit, Date)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}
