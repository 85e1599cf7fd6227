package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/valter-silva-au/burrito/pkg/models"
)

// Event is one diagnostic as stored in the JSON Lines log.
type Event struct {
	Time    time.Time `json:"time"`
	Level   Severity  `json:"level"`
	File    string    `json:"file"`
	Line    int       `json:"line"`
	Message string    `json:"msg"`
}

// EventFilter specifies criteria for reading events. Empty fields match
// every event.
type EventFilter struct {
	Level Severity
	File  string
}

// EventLog defines the interface for writing and reading diagnostic events.
type EventLog interface {
	Write(event Event) error
	Read(filter EventFilter) ([]Event, error)
	Close() error
}

// jsonlEventLog implements EventLog using an append-only JSONL file.
type jsonlEventLog struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewJSONLEventLog opens (or creates) the JSONL file at path for appending.
func NewJSONLEventLog(path string) (EventLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening diagnostics log: %w", err)
	}
	return &jsonlEventLog{
		path: path,
		file: f,
	}, nil
}

// Write appends a JSON-encoded event followed by a newline to the log file.
func (l *jsonlEventLog) Write(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	data = append(data, '\n')

	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// Read scans the log file line by line and returns the events matching filter.
func (l *jsonlEventLog) Read(filter EventFilter) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening diagnostics log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // skip malformed lines
		}

		if matchesEventFilter(event, filter) {
			events = append(events, event)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning diagnostics log: %w", err)
	}

	return events, nil
}

// Close closes the underlying log file.
func (l *jsonlEventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("closing diagnostics log: %w", err)
	}
	return nil
}

func matchesEventFilter(event Event, filter EventFilter) bool {
	if filter.Level != "" && event.Level != filter.Level {
		return false
	}
	if filter.File != "" && event.File != filter.File {
		return false
	}
	return true
}

// EventLogSink turns every diagnostic into an Event. Write failures are
// counted rather than reported so that logging never interrupts a parse.
type EventLogSink struct {
	log    EventLog
	now    func() time.Time
	failed int
}

// NewEventLogSink returns a Sink that appends to log.
func NewEventLogSink(log EventLog) *EventLogSink {
	return &EventLogSink{log: log, now: time.Now}
}

func (s *EventLogSink) Warn(pos models.Position, format string, args ...any) {
	s.write(SeverityWarning, pos, fmt.Sprintf(format, args...))
}

func (s *EventLogSink) Error(pos models.Position, format string, args ...any) {
	s.write(SeverityError, pos, fmt.Sprintf(format, args...))
}

// Failed returns the number of events that could not be written.
func (s *EventLogSink) Failed() int {
	return s.failed
}

func (s *EventLogSink) write(sev Severity, pos models.Position, msg string) {
	err := s.log.Write(Event{
		Time:    s.now().UTC(),
		Level:   sev,
		File:    pos.File,
		Line:    pos.Line,
		Message: msg,
	})
	if err != nil {
		s.failed++
	}
}
