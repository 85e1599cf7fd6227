package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "burrito",
	Short: "Task Burrito - render markdown task files",
	Long: `Task Burrito (burrito) reads markdown files annotated with task blocks and
renders them as a plain task file, an HTML report with a table of contents
and calendar, a terminal table or YAML.

A task block sits between two --- lines and lists the task's properties:

    ---
    task 1.2
    label Write the parser
    status IN-PROGRESS
    priority 2
    deadline 2024-03-15
    depends 1.1
    ---
    Free form notes in markdown.

Other task files can be pulled in with an include block:

    ---
    include other-tasks.md
    ---`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "burrito %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. An interrupt cancels the command's context,
// which stops the watch command. Errors are returned for the caller to print;
// see IsReported.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
