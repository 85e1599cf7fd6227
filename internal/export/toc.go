package export

import (
	"fmt"
	"io"

	"github.com/valter-silva-au/burrito/internal/core"
	"github.com/valter-silva-au/burrito/pkg/models"
)

// WriteTableOfContents writes a nested list of every task in ID order, one
// list level per ID depth. With fold set, the descendants of a task whose
// children are all DONE are left out.
func WriteTableOfContents(w io.Writer, tasks models.TaskMap, fold bool) error {
	p := &printer{w: w}

	foldable := models.NewIDSet()
	if fold {
		foldable = core.FoldableTasks(tasks)
	}

	p.line("<h1> Table of Contents </h1>")
	depth := 0
	foldDepth := -1
	for _, task := range tasks.Sorted() {
		if foldDepth != -1 && task.ID.Depth() > foldDepth {
			continue
		}
		foldDepth = -1

		for depth < task.ID.Depth() {
			p.line("<ol class='toc'>")
			depth++
		}
		for depth > task.ID.Depth() {
			p.line("</ol>")
			depth--
		}

		p.printf("<li><strong style='font-size: 1.5em'> %s %s </strong> %s </li>\n",
			TaskLink(task.ID), escape(task.Label), shortLine(task, tasks))

		if foldable.Contains(task.ID) {
			foldDepth = depth
		}
	}

	for depth > 0 {
		p.line("</ol>")
		depth--
	}
	return p.err
}

// shortLine summarizes what a task is waiting on or when it is due.
func shortLine(task *models.Task, tasks models.TaskMap) string {
	badge := StatusBadge(task.Status)

	switch task.Status {
	case models.StatusBlocked:
		var blockers []models.TaskID
		for _, dep := range task.Depends.Sorted() {
			if t, ok := tasks.Get(dep); ok && !t.IsDone() {
				blockers = append(blockers, dep)
			}
		}
		if len(blockers) > 0 {
			return fmt.Sprintf("%s on %s", badge, dependencyLinks(blockers))
		}
	case models.StatusTodo:
		if d, ok := task.Deadline.Get(); ok {
			return fmt.Sprintf("%s by %s", badge, d)
		}
	case models.StatusInProgress:
		if d, ok := task.Deadline.Get(); ok {
			return fmt.Sprintf("%s due by %s", badge, d)
		}
	}
	return badge
}
