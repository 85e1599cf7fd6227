package observability

import (
	"fmt"

	"github.com/valter-silva-au/burrito/pkg/models"
)

// Severity is either a recoverable warning or a fatal error.
type Severity string

const (
	SeverityWarning Severity = "WARN"
	SeverityError   Severity = "ERROR"
)

// Diagnostic is a single message tied to a position in an input file.
type Diagnostic struct {
	Severity Severity
	Position models.Position
	Message  string
}

// String renders the diagnostic as "file:line: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s", d.Position, d.Message)
}

// Sink receives diagnostics. Warnings never stop processing; Error records a
// message for a condition the caller is about to return as an error.
type Sink interface {
	Warn(pos models.Position, format string, args ...any)
	Error(pos models.Position, format string, args ...any)
}

// Collector is a Sink that keeps every diagnostic in memory.
type Collector struct {
	diagnostics []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Warn(pos models.Position, format string, args ...any) {
	c.add(SeverityWarning, pos, format, args...)
}

func (c *Collector) Error(pos models.Position, format string, args ...any) {
	c.add(SeverityError, pos, format, args...)
}

func (c *Collector) add(sev Severity, pos models.Position, format string, args ...any) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Severity: sev,
		Position: pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Diagnostics returns everything collected so far, in order.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// Warnings returns only the warnings.
func (c *Collector) Warnings() []Diagnostic {
	return c.filter(SeverityWarning)
}

// Errors returns only the errors.
func (c *Collector) Errors() []Diagnostic {
	return c.filter(SeverityError)
}

// Lines renders every diagnostic with String.
func (c *Collector) Lines() []string {
	lines := make([]string, len(c.diagnostics))
	for i, d := range c.diagnostics {
		lines[i] = d.String()
	}
	return lines
}

func (c *Collector) filter(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// Tee forwards every diagnostic to each of the given sinks. Nil sinks are
// skipped.
func Tee(sinks ...Sink) Sink {
	var live []Sink
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	return teeSink(live)
}

type teeSink []Sink

func (t teeSink) Warn(pos models.Position, format string, args ...any) {
	for _, s := range t {
		s.Warn(pos, format, args...)
	}
}

func (t teeSink) Error(pos models.Position, format string, args ...any) {
	for _, s := range t {
		s.Error(pos, format, args...)
	}
}

// Discard is a Sink that drops everything.
var Discard Sink = discardSink{}

type discardSink struct{}

func (discardSink) Warn(models.Position, string, ...any)  {}
func (discardSink) Error(models.Position, string, ...any) {}
