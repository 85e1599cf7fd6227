package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/valter-silva-au/burrito/internal/core"
	"github.com/valter-silva-au/burrito/pkg/models"
)

// yamlTask is the serialized form of a resolved task. Priority and deadline
// hold "none" when cleared and are omitted when unset.
type yamlTask struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Status   string   `yaml:"status"`
	Priority any      `yaml:"priority,omitempty"`
	Deadline string   `yaml:"deadline,omitempty"`
	Depends  []string `yaml:"depends,omitempty"`
	Foldable bool     `yaml:"foldable,omitempty"`
	Source   string   `yaml:"source,omitempty"`
	Notes    string   `yaml:"notes,omitempty"`
}

type yamlDocument struct {
	Tasks []yamlTask `yaml:"tasks"`
}

// WriteYAML writes the resolved tasks as a YAML document.
func WriteYAML(w io.Writer, tasks models.TaskMap) error {
	foldable := core.FoldableTasks(tasks)

	doc := yamlDocument{Tasks: []yamlTask{}}
	for _, t := range tasks.Sorted() {
		yt := yamlTask{
			ID:       t.ID.String(),
			Label:    t.Label,
			Status:   string(t.Status),
			Depends:  t.Depends.Strings(),
			Foldable: foldable.Contains(t.ID),
			Notes:    t.Notes,
		}
		if t.Source.File != "" {
			yt.Source = fmt.Sprintf("%s:%d", t.Source.File, t.Source.Line)
		}
		switch t.Priority.State() {
		case models.FieldCleared:
			yt.Priority = "none"
		case models.FieldSet:
			yt.Priority, _ = t.Priority.Get()
		}
		switch t.Deadline.State() {
		case models.FieldCleared:
			yt.Deadline = "none"
		case models.FieldSet:
			d, _ := t.Deadline.Get()
			yt.Deadline = d.String()
		}
		doc.Tasks = append(doc.Tasks, yt)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	return nil
}

type yamlExporter struct{}

func (yamlExporter) Export(w io.Writer, tasks models.TaskMap, _ models.ExportConfig) error {
	return WriteYAML(w, tasks)
}
