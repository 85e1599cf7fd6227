package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/valter-silva-au/burrito/pkg/models"
)

const htmlHeader = `
<html lang="en">
    <head>
        %HEAD%
        <meta charset="utf-8">
        <meta name="viewport" content="width=device-width, initial-scale=1">
        <title> Project List </title>
        <style>
        table, th, td { border: 1px solid black; border-collapse: collapse; vertical-align: top; }
        .toc { list-style: none; }
        body { background-color: darkgray; }
        td.calendar { min-width: 80px; height: 50px; }
        </style>
    </head>
    <body>
`

const htmlFooter = `
      %TAIL%
    </body>
</html>
`

// statusColors maps each status to the color of its badge.
var statusColors = map[models.TaskStatus]string{
	models.StatusTodo:       "red",
	models.StatusInProgress: "orange",
	models.StatusBlocked:    "yellow",
	models.StatusDone:       "green",
}

// TaskLink returns an anchor pointing at the task's heading in the summary.
func TaskLink(id models.TaskID) string {
	s := id.String()
	return fmt.Sprintf("<a href='#%s'> %s </a>", s, s)
}

// StatusBadge returns the status name in bold, colored by status.
func StatusBadge(status models.TaskStatus) string {
	color, ok := statusColors[status]
	if !ok {
		color = "black"
	}
	return fmt.Sprintf("<span style='font-weight: bold; color: %s'> %s </span>", color, status)
}

func dependencyLinks(ids []models.TaskID) string {
	links := make([]string, len(ids))
	for i, id := range ids {
		links[i] = TaskLink(id)
	}
	return strings.Join(links, ", ")
}

// printer writes formatted output and keeps the first write error so callers
// can check once at the end.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(s string) {
	p.printf("%s\n", s)
}

func escape(s string) string {
	return html.EscapeString(s)
}
