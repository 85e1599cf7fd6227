package core

import (
	"errors"
	"fmt"

	"github.com/valter-silva-au/burrito/internal/observability"
	"github.com/valter-silva-au/burrito/pkg/models"
)

// ErrBrokenHierarchy is the kind of the fatal error raised when a task's
// ancestor is missing from the task map.
var ErrBrokenHierarchy = errors.New("broken task hierarchy")

// HierarchyError names the missing ancestor and the task that needs it.
type HierarchyError struct {
	Missing models.TaskID
	Task    models.TaskID
}

func (e *HierarchyError) Error() string {
	return fmt.Sprintf("There is no task %s, which should be an ancestor of task %s", e.Missing, e.Task)
}

func (e *HierarchyError) Unwrap() error { return ErrBrokenHierarchy }

// Resolve verifies the hierarchy of tasks and then resolves inherited
// defaults and implicit dependencies in place.
func Resolve(tasks []*models.Task, diag observability.Sink) (models.TaskMap, error) {
	taskMap, err := VerifyTree(tasks, diag)
	if err != nil {
		return nil, err
	}
	ResolveDefaults(taskMap)
	return taskMap, nil
}

// VerifyTree builds the task map and checks that every ancestor of every task
// is present. A later task with an already used ID replaces the earlier one.
func VerifyTree(tasks []*models.Task, diag observability.Sink) (models.TaskMap, error) {
	if diag == nil {
		diag = observability.Discard
	}

	taskMap := make(models.TaskMap, len(tasks))
	for _, task := range tasks {
		key := task.ID.String()
		if prev, ok := taskMap[key]; ok {
			diag.Warn(task.Source, "Task %s is already defined at %s, replacing it", key, prev.Source)
		}
		taskMap[key] = task
	}

	for _, task := range tasks {
		for _, ancestor := range task.ID.Ancestors() {
			if !taskMap.Has(ancestor) {
				err := &HierarchyError{Missing: ancestor, Task: task.ID}
				diag.Error(task.Source, "%s", err)
				return nil, err
			}
		}
	}

	for _, task := range taskMap.Sorted() {
		for _, dep := range task.Depends.Sorted() {
			if !taskMap.Has(dep) {
				diag.Warn(task.Source, "Task %s depends on unknown task %s", task.ID, dep)
			}
		}
	}

	return taskMap, nil
}

// ChildMap maps each task ID to the IDs of its immediate children.
func ChildMap(taskMap models.TaskMap) map[string]models.IDSet {
	children := make(map[string]models.IDSet)
	for _, task := range taskMap {
		parent, ok := task.ID.Parent()
		if !ok {
			continue
		}
		key := parent.String()
		if children[key] == nil {
			children[key] = models.NewIDSet()
		}
		children[key].Add(task.ID)
	}
	return children
}

// ResolveDefaults walks the tasks in ascending ID order so that each parent is
// resolved before its children. An unset priority or deadline is copied from
// the parent as it stands, cleared or not; a cleared field is left alone.
// Every task then depends on all of its immediate children.
func ResolveDefaults(taskMap models.TaskMap) {
	children := ChildMap(taskMap)

	for _, task := range taskMap.Sorted() {
		if parentID, ok := task.ID.Parent(); ok {
			parent, _ := taskMap.Get(parentID)
			if task.Priority.IsUnset() {
				task.Priority = parent.Priority
			}
			if task.Deadline.IsUnset() {
				task.Deadline = parent.Deadline
			}
		}

		if task.Depends == nil {
			task.Depends = models.NewIDSet()
		}
		if kids, ok := children[task.ID.String()]; ok {
			task.Depends.Union(kids)
		}
	}
}

// FoldableTasks returns the IDs of tasks that have at least one child and
// whose immediate children are all DONE.
func FoldableTasks(taskMap models.TaskMap) models.IDSet {
	total := make(map[string]int)
	done := make(map[string]int)
	for _, task := range taskMap {
		parent, ok := task.ID.Parent()
		if !ok {
			continue
		}
		key := parent.String()
		total[key]++
		if task.IsDone() {
			done[key]++
		}
	}

	foldable := models.NewIDSet()
	for key, n := range total {
		if n > 0 && done[key] == n {
			if task, ok := taskMap[key]; ok {
				foldable.Add(task.ID)
			}
		}
	}
	return foldable
}
