package observability

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/valter-silva-au/burrito/pkg/models"
)

func TestEventLog_WriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnostics.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	events := []Event{
		{Time: now, Level: SeverityWarning, File: "tasks.md", Line: 3, Message: "Task label cannot be empty"},
		{Time: now.Add(time.Second), Level: SeverityError, File: "tasks.md", Line: 9, Message: "missing task"},
	}

	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	result, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 events, got %d", len(result))
	}
	if result[0].Message != "Task label cannot be empty" {
		t.Errorf("unexpected message %q", result[0].Message)
	}
	if result[1].Level != SeverityError || result[1].Line != 9 {
		t.Errorf("unexpected second event %+v", result[1])
	}
}

func TestEventLog_ReadWithFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnostics.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = log.Write(Event{Time: base, Level: SeverityWarning, File: "a.md", Line: 1, Message: "one"})
	_ = log.Write(Event{Time: base.Add(time.Hour), Level: SeverityWarning, File: "b.md", Line: 2, Message: "two"})
	_ = log.Write(Event{Time: base.Add(2 * time.Hour), Level: SeverityError, File: "b.md", Line: 3, Message: "three"})

	_ = log.Write(Event{Time: base.Add(3 * time.Hour), Level: SeverityWarning, File: "a.md", Line: 4, Message: "four"})

	got, err := log.Read(EventFilter{File: "b.md", Level: SeverityWarning})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(got) != 1 || got[0].Message != "two" {
		t.Fatalf("expected only event 'two', got %+v", got)
	}
}

func TestEventLog_ConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnostics.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(line int) {
			defer wg.Done()
			_ = log.Write(Event{Time: time.Now().UTC(), Level: SeverityWarning, File: "x.md", Line: line, Message: "w"})
		}(i)
	}
	wg.Wait()

	got, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(got) != 20 {
		t.Errorf("expected 20 events, got %d", len(got))
	}
}

func TestEventLogSink_WritesDiagnostics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnostics.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	defer log.Close()

	sink := NewEventLogSink(log)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sink.now = func() time.Time { return fixed }

	sink.Warn(models.Position{File: "tasks.md", Line: 4}, "Invalid task property %s", "owner")

	got, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Message != "Invalid task property owner" || got[0].Line != 4 || !got[0].Time.Equal(fixed) {
		t.Errorf("unexpected event %+v", got[0])
	}
	if sink.Failed() != 0 {
		t.Errorf("expected no failed writes, got %d", sink.Failed())
	}
}
