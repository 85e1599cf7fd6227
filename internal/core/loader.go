package core

import (
	"errors"
	"io"

	"github.com/spf13/afero"
	"github.com/valter-silva-au/burrito/internal/observability"
	"github.com/valter-silva-au/burrito/pkg/models"
)

// ErrEmptyTaskFile is returned when a task file yields no tasks at all.
var ErrEmptyTaskFile = errors.New("tasks file cannot be empty")

// LoadResult is a resolved task map together with the files it was read
// from.
type LoadResult struct {
	Tasks models.TaskMap
	// Files lists the task file and every included file, without duplicates.
	Files []string
}

// TaskLoader parses a task file and resolves it into a task map ready for
// export.
type TaskLoader interface {
	LoadFile(path string, diag observability.Sink) (*LoadResult, error)
	LoadReader(name, dir string, r io.Reader, diag observability.Sink) (*LoadResult, error)
}

type taskLoader struct {
	fs afero.Fs
}

// NewTaskLoader creates a TaskLoader that reads task files from fs.
func NewTaskLoader(fs afero.Fs) TaskLoader {
	return &taskLoader{fs: fs}
}

func (l *taskLoader) LoadFile(path string, diag observability.Sink) (*LoadResult, error) {
	p := NewParser(l.fs, diag)
	tasks, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return resolveNonEmpty(tasks, p.Files(), diag)
}

func (l *taskLoader) LoadReader(name, dir string, r io.Reader, diag observability.Sink) (*LoadResult, error) {
	p := NewParser(l.fs, diag)
	tasks, err := p.ParseReader(name, dir, r)
	if err != nil {
		return nil, err
	}
	return resolveNonEmpty(tasks, p.Files(), diag)
}

func resolveNonEmpty(tasks []*models.Task, files []string, diag observability.Sink) (*LoadResult, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyTaskFile
	}
	taskMap, err := Resolve(tasks, diag)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(files))
	result := &LoadResult{Tasks: taskMap}
	for _, f := range files {
		if !seen[f] {
			seen[f] = true
			result.Files = append(result.Files, f)
		}
	}
	return result, nil
}
