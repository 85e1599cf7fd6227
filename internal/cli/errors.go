package cli

import (
	"errors"

	"github.com/valter-silva-au/burrito/internal/core"
)

// ReportedError wraps an error whose message has already been written to the
// console as a diagnostic.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err was already shown to the user as a
// diagnostic and should not be printed again.
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}

// markReported wraps the fatal parse and hierarchy errors, which the loader
// reports through its sink before returning them.
func markReported(err error) error {
	if errors.Is(err, core.ErrMissingProperty) || errors.Is(err, core.ErrBrokenHierarchy) {
		return &ReportedError{Err: err}
	}
	return err
}
