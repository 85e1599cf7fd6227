package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/valter-silva-au/burrito/internal/core"
	"github.com/valter-silva-au/burrito/pkg/models"
)

// WritePlain writes the tasks back out in task file format, sorted by ID.
// Unset priorities and deadlines are omitted and cleared ones are written
// as "none", so a second parse resolves to the same values.
func WritePlain(w io.Writer, tasks models.TaskMap) error {
	p := &printer{w: w}
	for _, task := range tasks.Sorted() {
		p.line(core.Delimiter)
		p.line("task " + task.ID.String())
		p.line("label " + task.Label)
		p.line("status " + string(task.Status))

		switch task.Priority.State() {
		case models.FieldCleared:
			p.line("priority none")
		case models.FieldSet:
			v, _ := task.Priority.Get()
			p.line("priority " + strconv.Itoa(v))
		}
		switch task.Deadline.State() {
		case models.FieldCleared:
			p.line("deadline none")
		case models.FieldSet:
			d, _ := task.Deadline.Get()
			p.line("deadline " + d.String())
		}

		if len(task.Depends) > 0 {
			p.line("depends " + strings.Join(task.Depends.Strings(), " "))
		}
		p.line(core.Delimiter)
		p.printf("%s", task.Notes)
		// Keep the next delimiter on its own line.
		if task.Notes != "" && !strings.HasSuffix(task.Notes, "\n") {
			p.line("")
		}
	}
	return p.err
}

type plainExporter struct{}

func (plainExporter) Export(w io.Writer, tasks models.TaskMap, _ models.ExportConfig) error {
	return WritePlain(w, tasks)
}
