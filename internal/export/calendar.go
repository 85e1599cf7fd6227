package export

import (
	"io"
	"sort"

	"github.com/valter-silva-au/burrito/pkg/models"
)

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WriteCalendar writes one Monday-first month grid for every month from the
// earliest to the latest deadline of the tasks that are not DONE. Each day
// cell lists the tasks due that day.
func WriteCalendar(w io.Writer, tasks models.TaskMap) error {
	p := &printer{w: w}

	active := activeDeadlines(tasks)
	if len(active) == 0 {
		p.line("<h1> No Active Tasks Have A Deadline</h1>")
		return p.err
	}

	due := make(map[string][]*models.Task)
	for _, task := range active {
		d, _ := task.Deadline.Get()
		due[d.String()] = append(due[d.String()], task)
	}

	first, _ := active[0].Deadline.Get()
	last, _ := active[len(active)-1].Deadline.Get()
	for month := first.FirstOfMonth(); !month.After(last); month = month.FirstOfNextMonth() {
		writeMonth(p, month, due)
	}
	return p.err
}

// activeDeadlines returns the tasks with a deadline that are not DONE, ordered
// by deadline and then by ID.
func activeDeadlines(tasks models.TaskMap) []*models.Task {
	var active []*models.Task
	for _, task := range tasks.Sorted() {
		if _, ok := task.Deadline.Get(); ok && !task.IsDone() {
			active = append(active, task)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		a, _ := active[i].Deadline.Get()
		b, _ := active[j].Deadline.Get()
		return a.Before(b)
	})
	return active
}

func writeMonth(p *printer, month models.Date, due map[string][]*models.Task) {
	p.printf("<h1> %s %d </h1>\n", month.Month(), month.Year())
	p.line("<table>")
	p.line("<tr>")
	for _, name := range weekdayNames {
		p.printf("<th> %s </th>\n", name)
	}
	p.line("</tr>")

	p.line("<tr>")
	for i := 0; i < month.Weekday(); i++ {
		p.line("<td></td>")
	}

	day := month
	end := month.FirstOfNextMonth()
	for ; day.Before(end); day = day.AddDays(1) {
		if day.Weekday() == 0 && day.Day() != 1 {
			p.line("</tr>")
			p.line("<tr>")
		}
		p.printf("<td class='calendar'><b> %d </b>\n", day.Day())
		for _, task := range due[day.String()] {
			p.line("<div>")
			p.printf("%s %s\n", TaskLink(task.ID), escape(task.Label))
			p.line("</div>")
		}
		p.line("</td>")
	}

	lastDay := day.AddDays(-1)
	for i := lastDay.Weekday() + 1; i < 7; i++ {
		p.line("<td></td>")
	}
	p.line("</tr></table>")
}
