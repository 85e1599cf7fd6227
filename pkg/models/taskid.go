package models

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidTaskID is the kind of every error returned by ParseTaskID.
var ErrInvalidTaskID = errors.New("invalid task ID")

// InvalidIDError names the part of a task ID that could not be parsed.
type InvalidIDError struct {
	Part   string
	Reason string
}

func (e *InvalidIDError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("Task ID %s", e.Reason)
	}
	return fmt.Sprintf("Task ID part '%s' %s", e.Part, e.Reason)
}

func (e *InvalidIDError) Unwrap() error { return ErrInvalidTaskID }

// TaskID identifies a task and its position in the task hierarchy.
// The ID 1.2.3 is the third child of the second child of root task 1.
type TaskID []int

// ParseTaskID parses a dot-separated task ID such as "1.2.3".
// Every part must be a positive integer.
func ParseTaskID(text string) (TaskID, error) {
	if text == "" {
		return nil, &InvalidIDError{Reason: "cannot be empty"}
	}

	parts := strings.Split(text, ".")
	id := make(TaskID, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, &InvalidIDError{Part: part, Reason: "must be an integer"}
		}
		if value <= 0 {
			return nil, &InvalidIDError{Part: part, Reason: "must be positive"}
		}
		id = append(id, value)
	}
	return id, nil
}

// String returns the dot-joined form of the ID. It is the key used by TaskMap
// and the anchor name used by the HTML exporters.
func (id TaskID) String() string {
	parts := make([]string, len(id))
	for i, v := range id {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// Depth is the number of parts in the ID. Roots have depth 1.
func (id TaskID) Depth() int {
	return len(id)
}

// IsRoot reports whether the ID has no parent.
func (id TaskID) IsRoot() bool {
	return len(id) == 1
}

// Parent returns the ID with its last part removed. ok is false for roots.
func (id TaskID) Parent() (parent TaskID, ok bool) {
	if len(id) <= 1 {
		return nil, false
	}
	return id[:len(id)-1:len(id)-1], true
}

// Ancestors returns every ancestor of the ID, nearest first.
func (id TaskID) Ancestors() []TaskID {
	var ancestors []TaskID
	for parent, ok := id.Parent(); ok; parent, ok = parent.Parent() {
		ancestors = append(ancestors, parent)
	}
	return ancestors
}

// IsAncestorOf reports whether id is a strict prefix of other.
func (id TaskID) IsAncestorOf(other TaskID) bool {
	if len(id) >= len(other) {
		return false
	}
	for i := range id {
		if id[i] != other[i] {
			return false
		}
	}
	return true
}

// Equal reports whether both IDs have the same parts.
func (id TaskID) Equal(other TaskID) bool {
	return CompareTaskIDs(id, other) == 0
}

// CompareTaskIDs orders IDs part by part as integers; a prefix sorts before
// any of its extensions. It returns -1, 0 or +1.
func CompareTaskIDs(a, b TaskID) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// SortTaskIDs sorts ids in place in hierarchical order.
func SortTaskIDs(ids []TaskID) {
	sort.Slice(ids, func(i, j int) bool {
		return CompareTaskIDs(ids[i], ids[j]) < 0
	})
}

// IDSet is a set of task IDs keyed by their canonical string form.
type IDSet map[string]TaskID

// NewIDSet builds a set from the given IDs.
func NewIDSet(ids ...TaskID) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

// Add inserts id into the set.
func (s IDSet) Add(id TaskID) {
	s[id.String()] = id
}

// Contains reports whether id is in the set.
func (s IDSet) Contains(id TaskID) bool {
	_, ok := s[id.String()]
	return ok
}

// Union adds every member of other to s.
func (s IDSet) Union(other IDSet) {
	for key, id := range other {
		s[key] = id
	}
}

// Sorted returns the members in hierarchical order.
func (s IDSet) Sorted() []TaskID {
	ids := make([]TaskID, 0, len(s))
	for _, id := range s {
		ids = append(ids, id)
	}
	SortTaskIDs(ids)
	return ids
}

// Strings returns the sorted members in their string form.
func (s IDSet) Strings() []string {
	ids := s.Sorted()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
