package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/burrito/internal/core"
	"github.com/valter-silva-au/burrito/pkg/models"
)

var (
	checkStrict        bool
	checkDiagnosticLog string
)

var checkCmd = &cobra.Command{
	Use:   "check INPUT",
	Short: "Validate a task file without rendering it",
	Long: `Parse INPUT and verify the task hierarchy. Warnings are printed to stderr
and a summary of the tasks by status is printed to stdout.

Exits with an error if a task block is missing a mandatory property or a
task's ancestor is missing. With --strict any warning is also an error.

With --diagnostics-log the run's diagnostics are appended to a JSON Lines
file and the totals logged for INPUT across all runs are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInitialized(); err != nil {
			return err
		}
		input := args[0]

		cfg, err := loadConfig(input, nil)
		if err != nil {
			return err
		}
		diag, err := newDiagnostics(cmd.ErrOrStderr(), cfg, checkDiagnosticLog)
		if err != nil {
			return err
		}
		defer diag.close(cmd.ErrOrStderr())

		loaded, err := loadTasks(cmd, input, diag.sink)
		if err != nil {
			return err
		}
		tasks := loaded.Tasks

		out := cmd.OutOrStdout()
		warnings := len(diag.collector.Warnings())
		fmt.Fprintf(out, "%s: %d tasks, %d warnings\n", input, len(tasks), warnings)
		fmt.Fprintf(out, "  %s\n", statusCounts(tasks))
		if foldable := core.FoldableTasks(tasks); len(foldable) > 0 {
			fmt.Fprintf(out, "  foldable: %s\n", strings.Join(foldable.Strings(), " "))
		}
		if checkDiagnosticLog != "" {
			loggedWarnings, loggedErrors, err := diag.history(sourceName(input))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  logged: %d warnings, %d errors in %s\n", loggedWarnings, loggedErrors, checkDiagnosticLog)
		}

		if checkStrict && warnings > 0 {
			return fmt.Errorf("%d warning(s) reported in strict mode", warnings)
		}
		return nil
	},
}

// statusCounts formats the number of tasks per status in lifecycle order.
func statusCounts(tasks models.TaskMap) string {
	counts := make(map[models.TaskStatus]int)
	for _, t := range tasks {
		counts[t.Status]++
	}
	order := []models.TaskStatus{models.StatusTodo, models.StatusInProgress, models.StatusBlocked, models.StatusDone}
	parts := make([]string, len(order))
	for i, s := range order {
		parts[i] = fmt.Sprintf("%s %d", s, counts[s])
	}
	return strings.Join(parts, ", ")
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "fail if any warning was reported")
	checkCmd.Flags().StringVar(&checkDiagnosticLog, "diagnostics-log", "", "append diagnostics to a JSON Lines file and summarize it")
	rootCmd.AddCommand(checkCmd)
}
