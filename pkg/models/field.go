package models

import (
	"fmt"
	"time"
)

// FieldState distinguishes a field that was never given a value from one that
// was deliberately cleared with "none".
type FieldState int

const (
	// FieldUnset means the value was not specified and may be inherited.
	FieldUnset FieldState = iota
	// FieldCleared means the value was explicitly set to "none". A cleared
	// field is never overwritten by inheritance.
	FieldCleared
	// FieldSet means the field holds a real value.
	FieldSet
)

func (s FieldState) String() string {
	switch s {
	case FieldUnset:
		return "unset"
	case FieldCleared:
		return "cleared"
	case FieldSet:
		return "set"
	default:
		return fmt.Sprintf("FieldState(%d)", int(s))
	}
}

// Field is a task property that can be inherited from the parent task.
// The zero value is Unset.
type Field[T any] struct {
	state FieldState
	value T
}

// Unset returns a field eligible for inheritance.
func Unset[T any]() Field[T] {
	return Field[T]{}
}

// Cleared returns a field that blocks inheritance.
func Cleared[T any]() Field[T] {
	return Field[T]{state: FieldCleared}
}

// Value returns a field holding v.
func Value[T any](v T) Field[T] {
	return Field[T]{state: FieldSet, value: v}
}

// State returns the field's state.
func (f Field[T]) State() FieldState { return f.state }

// IsUnset reports whether the field may still inherit a value.
func (f Field[T]) IsUnset() bool { return f.state == FieldUnset }

// IsCleared reports whether the field was explicitly set to "none".
func (f Field[T]) IsCleared() bool { return f.state == FieldCleared }

// Get returns the value and whether the field holds one.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == FieldSet
}

// Priority is a task priority between MinPriority and MaxPriority.
type Priority = Field[int]

const (
	MinPriority = 1
	MaxPriority = 5
)

// Deadline is the calendar date a task is due.
type Deadline = Field[Date]

// DateLayout is the ISO 8601 calendar date format used in task files.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day, stored as midnight UTC.
type Date struct {
	t time.Time
}

// NewDate returns the date for the given year, month and day. Out of range
// values are normalized the way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(text string) (Date, error) {
	t, err := time.Parse(DateLayout, text)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

func (d Date) String() string { return d.t.Format(DateLayout) }

// Year returns the year of d.
func (d Date) Year() int { return d.t.Year() }

// Month returns the month of d.
func (d Date) Month() time.Month { return d.t.Month() }

// Day returns the day of the month of d.
func (d Date) Day() int { return d.t.Day() }

// Weekday returns the day of the week, counting Monday as 0 and Sunday as 6.
func (d Date) Weekday() int {
	return (int(d.t.Weekday()) + 6) % 7
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// FirstOfNextMonth returns the first day of the month after d's month.
func (d Date) FirstOfNextMonth() Date {
	return NewDate(d.Year(), d.Month()+1, 1)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether both dates are the same day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.t.IsZero() }
