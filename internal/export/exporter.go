// Package export renders a resolved task map. Every exporter is a pure
// formatting pass: it reads the tasks and never modifies them.
package export

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/valter-silva-au/burrito/pkg/models"
)

// ErrUnknownExporter is returned by Lookup for a name that was never
// registered.
var ErrUnknownExporter = errors.New("unknown exporter")

// Exporter writes a resolved task map in one output format.
type Exporter interface {
	Export(w io.Writer, tasks models.TaskMap, cfg models.ExportConfig) error
}

// Registry maps exporter names to exporters.
type Registry struct {
	exporters map[string]Exporter
	html      map[string]bool
}

// NewRegistry returns a registry holding the built-in exporters:
//
//	plain     task file format
//	simple    HTML table of contents and task list
//	calendar  HTML calendar and task list
//	full      HTML table of contents, calendar and task list
//	table     terminal table
//	yaml      YAML document
func NewRegistry(md MarkdownRenderer) *Registry {
	r := &Registry{
		exporters: make(map[string]Exporter),
		html:      make(map[string]bool),
	}
	r.Register("plain", plainExporter{})
	r.RegisterHTML("simple", &reportExporter{toc: true, md: md})
	r.RegisterHTML("calendar", &reportExporter{calendar: true, md: md})
	r.RegisterHTML("full", &reportExporter{toc: true, calendar: true, md: md})
	r.Register("table", tableExporter{})
	r.Register("yaml", yamlExporter{})
	return r
}

// Register adds or replaces the exporter for name.
func (r *Registry) Register(name string, e Exporter) {
	r.exporters[name] = e
	delete(r.html, name)
}

// RegisterHTML adds an exporter that produces an HTML document.
func (r *Registry) RegisterHTML(name string, e Exporter) {
	r.exporters[name] = e
	r.html[name] = true
}

// Lookup returns the exporter registered under name.
func (r *Registry) Lookup(name string) (Exporter, error) {
	e, ok := r.exporters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, name)
	}
	return e, nil
}

// IsHTML reports whether the named exporter produces an HTML document.
func (r *Registry) IsHTML(name string) bool {
	return r.html[name]
}

// Names returns the registered exporter names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.exporters))
	for name := range r.exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
