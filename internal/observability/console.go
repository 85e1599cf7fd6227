package observability

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/burrito/pkg/models"
)

// ConsoleOptions configures the console sink.
type ConsoleOptions struct {
	Level  log.Level
	Prefix string
}

// DefaultConsoleOptions prints warnings and errors with a "burrito" prefix.
func DefaultConsoleOptions() ConsoleOptions {
	return ConsoleOptions{
		Level:  log.WarnLevel,
		Prefix: "burrito",
	}
}

// ParseLevel converts a config level name ("debug", "info", "warn", "error")
// into a log level.
func ParseLevel(name string) (log.Level, error) {
	level, err := log.ParseLevel(name)
	if err != nil {
		return 0, fmt.Errorf("parsing log level %q: %w", name, err)
	}
	return level, nil
}

// ConsoleSink writes diagnostics to a terminal using charmbracelet/log.
type ConsoleSink struct {
	logger *log.Logger
}

// NewConsoleSink creates a console sink writing to w.
func NewConsoleSink(w io.Writer, opts ConsoleOptions) *ConsoleSink {
	logger := log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Prefix:          opts.Prefix,
		ReportTimestamp: false,
		ReportCaller:    false,
		Formatter:       log.TextFormatter,
	})
	return &ConsoleSink{logger: logger}
}

func (c *ConsoleSink) Warn(pos models.Position, format string, args ...any) {
	c.logger.Warn(pos.String() + " " + fmt.Sprintf(format, args...))
}

func (c *ConsoleSink) Error(pos models.Position, format string, args ...any) {
	c.logger.Error(pos.String() + " " + fmt.Sprintf(format, args...))
}
