package export

import (
	"io"
	"strconv"

	"github.com/valter-silva-au/burrito/pkg/models"
)

const unassigned = "Unassigned"

// WriteTaskList writes every task's heading, metadata table and rendered
// notes in ID order. Headings carry the task ID as their anchor.
func WriteTaskList(w io.Writer, tasks models.TaskMap, md MarkdownRenderer) error {
	p := &printer{w: w}
	for _, task := range tasks.Sorted() {
		id := task.ID.String()
		p.printf("<h1 id='%s'> %s %s </h1>\n", id, id, escape(task.Label))
		p.line("<div><table>")
		p.line("<tr>")
		for _, h := range []string{"ID", "Status", "Priority", "Deadline", "Dependencies"} {
			p.printf("<th>%s</th>\n", h)
		}
		p.line("</tr>")
		p.line("<tr>")
		p.printf("<td> %s </td>\n", id)
		p.printf("<td> %s </td>\n", StatusBadge(task.Status))
		p.printf("<td> %s </td>\n", priorityText(task.Priority))
		p.printf("<td> %s </td>\n", deadlineText(task.Deadline))
		p.printf("<td> %s </td>\n", dependencyLinks(task.Depends.Sorted()))
		p.line("</tr>")
		p.line("</table></div>")

		if task.Notes != "" {
			p.line("<h2>Notes</h2>")
			if p.err == nil {
				p.err = md.Render(w, task.Notes)
			}
			p.line("")
		}
	}
	return p.err
}

func priorityText(f models.Priority) string {
	if v, ok := f.Get(); ok {
		return strconv.Itoa(v)
	}
	return unassigned
}

func deadlineText(f models.Deadline) string {
	if d, ok := f.Get(); ok {
		return d.String()
	}
	return unassigned
}
