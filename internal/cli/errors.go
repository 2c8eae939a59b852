package cli

import (
	"errors"
	"fmt"
)

// ValidationError indicates a bad flag or argument value.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ErrCanceled is returned when the user declines a confirmation prompt.
var ErrCanceled = errors.New("canceled")

// BatchError reports the references a batch command could not act on.
type BatchError struct {
	Action string   // e.g. "complete", "delete"
	Failed []string // one "ref: reason" entry per failure
	Total  int      // number of references given
}

func (e *BatchError) Error() string {
	if len(e.Failed) == e.Total {
		return fmt.Sprintf("failed to %s any tasks", e.Action)
	}
	return fmt.Sprintf("failed to %s %d of %d tasks", e.Action, len(e.Failed), e.Total)
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
