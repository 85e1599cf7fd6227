package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	renderOutput        string
	renderEmbedWarnings bool
	renderDiagnosticLog string
	renderStrict        bool
)

var renderCmd = &cobra.Command{
	Use:   "render INPUT EXPORTER [KEY=VALUE...]",
	Short: "Render a task file with an exporter",
	Long: `Parse INPUT (a path, or - for stdin), resolve the task hierarchy and render
it with EXPORTER:

  plain     the task file format, sorted and normalized
  simple    HTML table of contents and task list
  calendar  HTML calendar of deadlines and task list
  full      HTML table of contents, calendar and task list
  table     terminal table
  yaml      YAML document

Options override .burrito.yaml for this run:

  summary=0|1   include the task list with notes (default 1)
  fold=0|1      hide subtasks in the table of contents once all are DONE (default 1)
  refresh=N     seconds between browser refreshes, 0 to disable (default 5)`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runPipeline(cmd, renderRequest{
			Input:         args[0],
			Exporter:      args[1],
			Options:       args[2:],
			Output:        renderOutput,
			EmbedWarnings: renderEmbedWarnings,
			DiagnosticLog: renderDiagnosticLog,
		})
		if err != nil {
			return err
		}

		if renderStrict {
			if n := len(result.Diagnostics.Warnings()); n > 0 {
				return fmt.Errorf("%d warning(s) reported in strict mode", n)
			}
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write output to a file instead of stdout")
	renderCmd.Flags().BoolVar(&renderEmbedWarnings, "embed-warnings", false, "append parse warnings to HTML reports")
	renderCmd.Flags().StringVar(&renderDiagnosticLog, "diagnostics-log", "", "append diagnostics to a JSON Lines file")
	renderCmd.Flags().BoolVar(&renderStrict, "strict", false, "fail if any warning was reported")
	rootCmd.AddCommand(renderCmd)
}
