// Package models holds the plain data types shared by the parser, the tree
// resolver and the exporters.
package models

import (
	"fmt"
	"sort"
	"strings"
)

// TaskStatus represents the current lifecycle state of a task.
type TaskStatus string

const (
	StatusDone       TaskStatus = "DONE"
	StatusInProgress TaskStatus = "IN-PROGRESS"
	StatusBlocked    TaskStatus = "BLOCKED"
	StatusTodo       TaskStatus = "TODO"
)

// AllStatuses lists the valid statuses in declaration order.
var AllStatuses = []TaskStatus{StatusDone, StatusInProgress, StatusBlocked, StatusTodo}

// ParseTaskStatus matches text case-insensitively against the valid statuses.
func ParseTaskStatus(text string) (TaskStatus, error) {
	upper := TaskStatus(strings.ToUpper(text))
	for _, s := range AllStatuses {
		if upper == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid status value '%s'", upper)
}

// Position is a line within an input file.
type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:", p.File, p.Line)
}

// Task represents one task block of a task file together with the note text
// that follows it.
type Task struct {
	ID       TaskID
	Label    string
	Status   TaskStatus
	Priority Priority
	Deadline Deadline
	Depends  IDSet
	Notes    string

	// Source is the position of the delimiter that closed the task header.
	Source Position
}

// IsDone reports whether the task is complete.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// TaskMap holds tasks keyed by the canonical string form of their IDs.
type TaskMap map[string]*Task

// Get looks up the task with the given ID.
func (m TaskMap) Get(id TaskID) (*Task, bool) {
	t, ok := m[id.String()]
	return t, ok
}

// Has reports whether a task with the given ID exists.
func (m TaskMap) Has(id TaskID) bool {
	_, ok := m[id.String()]
	return ok
}

// Sorted returns the tasks in ascending ID order, which is a depth-first walk
// of the hierarchy.
func (m TaskMap) Sorted() []*Task {
	tasks := make([]*Task, 0, len(m))
	for _, t := range m {
		tasks = append(tasks, t)
	}
	SortTasks(tasks)
	return tasks
}

// SortTasks sorts tasks in place by ID.
func SortTasks(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return CompareTaskIDs(tasks[i].ID, tasks[j].ID) < 0
	})
}
