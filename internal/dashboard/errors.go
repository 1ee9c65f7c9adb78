package dashboard

import (
	"errors"
	"fmt"
)

// ErrSubmitInProgress is returned when Submit is called while a previous
// submission is still running.
var ErrSubmitInProgress = errors.New("payment method submission already in progress")

// ReportedError wraps a failure the handlers already surfaced through a view
// or the Notifier, so callers can avoid showing it twice.
type ReportedError struct {
	Action string
	Err    error
}

func (e *ReportedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// IsReported reports whether err, or any error it wraps, was already shown to the user.
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}
