package export

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/valter-silva-au/burrito/pkg/models"
)

// Terminal colors for statuses, matching the HTML badges.
var (
	statusTodo       = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	statusInProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	statusBlocked    = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	statusDone       = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
)

func styledStatus(status models.TaskStatus) string {
	switch status {
	case models.StatusTodo:
		return statusTodo.Render(string(status))
	case models.StatusInProgress:
		return statusInProgress.Render(string(status))
	case models.StatusBlocked:
		return statusBlocked.Render(string(status))
	case models.StatusDone:
		return statusDone.Render(string(status))
	}
	return string(status)
}

// WriteTable writes a terminal table of the tasks in ID order. Labels are
// indented by depth so the hierarchy stays visible.
func WriteTable(w io.Writer, tasks models.TaskMap) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "Label", "Status", "Priority", "Deadline", "Depends"})
	for _, t := range tasks.Sorted() {
		label := strings.Repeat("  ", t.ID.Depth()-1) + t.Label
		tw.AppendRow(table.Row{
			t.ID.String(),
			label,
			styledStatus(t.Status),
			priorityText(t.Priority),
			deadlineText(t.Deadline),
			strings.Join(t.Depends.Strings(), " "),
		})
	}

	p := &printer{w: w}
	p.line(tw.Render())
	return p.err
}

type tableExporter struct{}

func (tableExporter) Export(w io.Writer, tasks models.TaskMap, _ models.ExportConfig) error {
	return WriteTable(w, tasks)
}
