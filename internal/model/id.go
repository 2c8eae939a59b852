package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	// ErrInvalidID is returned when an ID cannot be parsed.
	ErrInvalidID = errors.New("invalid ID format")

	// idRegex matches task IDs like 1729350000123 or #1729350000123.
	idRegex = regexp.MustCompile(`^#?(\d+)$`)
)

// NewID returns a task ID derived from the clock reading now, in
// milliseconds. If the clock has not advanced past last, last+1 is
// returned instead so IDs stay unique and strictly increasing.
func NewID(now time.Time, last int64) int64 {
	id := now.UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}

// ParseRef checks that s looks like a task reference (digits with an
// optional leading '#') and returns its digits. Zero digits are allowed
// since a reference may be the tail of a longer ID.
func ParseRef(s string) (string, error) {
	matches := idRegex.FindStringSubmatch(s)
	if matches == nil {
		return "", fmt.Errorf("%w: %q is not a valid task ID", ErrInvalidID, s)
	}
	return matches[1], nil
}

// ParseID parses a task ID string. A leading '#' is accepted.
// Returns ErrInvalidID if the format is invalid.
func ParseID(s string) (int64, error) {
	digits, err := ParseRef(s)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q has invalid number", ErrInvalidID, s)
	}
	return id, nil
}

// FormatID formats a task ID for display.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ShortID returns the trailing digits of id used in compact list views.
// Any unique suffix is accepted back when resolving a task reference.
func ShortID(id int64, width int) string {
	s := FormatID(id)
	if width <= 0 || len(s) <= width {
		return s
	}
	return s[len(s)-width:]
}

// MaxID returns the largest ID in tasks, or 0 if tasks is empty.
func MaxID(tasks []Task) int64 {
	var max int64
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}

// MinIDWidth is the shortest ID suffix shown in listings.
const MinIDWidth = 4

// IDWidth returns the fewest trailing digits, at least MinIDWidth, that
// tell every task in tasks apart.
func IDWidth(tasks []Task) int {
	longest := 0
	for _, t := range tasks {
		if n := len(FormatID(t.ID)); n > longest {
			longest = n
		}
	}

	for width := MinIDWidth; width < longest; width++ {
		seen := make(map[string]struct{}, len(tasks))
		unique := true
		for _, t := range tasks {
			s := ShortID(t.ID, width)
			if _, ok := seen[s]; ok {
				unique = false
				break
			}
			seen[s] = struct{}{}
		}
		if unique {
			return width
		}
	}
	return longest
}
