package ops

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by errors.Is for any NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError indicates a task was not found.
// It is a recoverable signal, never a persistence failure.
type NotFoundError struct {
	ID string // the ID or reference that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError indicates a validation failure.
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

// AmbiguousError indicates a task reference matched more than one task.
type AmbiguousError struct {
	Ref     string   // the reference as given
	Matches []string // the IDs it matched
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous task reference %q matches: %s", e.Ref, strings.Join(e.Matches, ", "))
}

// IsNotFound reports whether err signals a missing task.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
