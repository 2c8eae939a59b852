package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ANSI codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
	styleBold   = "\033[1m"
	styleStrike = "\033[9m"
)

// colorEnabled tracks whether color output is enabled.
// It is set based on terminal detection but can be overridden.
var colorEnabled = true

func init() {
	// Disable colors if stdout is not a terminal
	colorEnabled = IsTerminal(os.Stdout)
}

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// ConfigureColor applies a color mode ("auto", "always" or "never") for
// output written to w.
func ConfigureColor(mode string, w io.Writer) error {
	switch mode {
	case "", "auto":
		SetColorEnabled(IsTerminal(w))
	case "always":
		SetColorEnabled(true)
	case "never":
		SetColorEnabled(false)
	default:
		return &ValidationError{Field: "color", Message: fmt.Sprintf("%q must be auto, always or never", mode)}
	}
	return nil
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string { return paint(colorGreen, s) }

// Red returns s wrapped in red ANSI codes if colors are enabled.
func Red(s string) string { return paint(colorRed, s) }

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func Yellow(s string) string { return paint(colorYellow, s) }

// Blue returns s wrapped in blue ANSI codes if colors are enabled.
func Blue(s string) string { return paint(colorBlue, s) }

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string { return paint(colorGray, s) }

// Bold returns s in bold if colors are enabled.
func Bold(s string) string { return paint(styleBold, s) }

// Strike returns s struck through and dimmed if colors are enabled.
// Completed tasks are shown this way.
func Strike(s string) string { return paint(styleStrike+colorGray, s) }

// DefaultMaxNameWidth is the default maximum visible width for name columns.
const DefaultMaxNameWidth = 50

// Table formats columnar output with automatic column width calculation.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int // optional per-column max visible width
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{maxWidths: make(map[int]int)}
}

// SetMaxWidth sets the maximum visible width for a column.
// Content exceeding the limit is truncated with an ellipsis ("...").
func (t *Table) SetMaxWidth(col, maxWidth int) {
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}
	for i, col := range cols {
		if maxW, ok := t.maxWidths[i]; ok {
			col = Truncate(col, maxW)
			cols[i] = col
		}
		if w := visibleWidth(col); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	t.rows = append(t.rows, cols)
}

// Len returns the number of rows added.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w with columns separated by two spaces.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		parts := make([]string, len(row))
		for i, col := range row {
			if i < len(row)-1 {
				col += strings.Repeat(" ", t.colWidths[i]-visibleWidth(col))
			}
			parts[i] = col
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

// Truncate returns s cut to maxWidth visible characters, ending in "..."
// when it had to be cut. ANSI escape codes are kept, and a reset is
// appended if any were present.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	ellipsis := "..."
	limit := maxWidth - len(ellipsis)
	if limit < 0 {
		limit, ellipsis = maxWidth, ""
	}

	var b strings.Builder
	visible := 0
	hasAnsi := false
	for i := 0; i < len(s); {
		if s[i] == '\033' {
			end := strings.IndexByte(s[i:], 'm')
			if end < 0 {
				break
			}
			b.WriteString(s[i : i+end+1])
			hasAnsi = true
			i += end + 1
			continue
		}
		if visible >= limit {
			break
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		b.WriteRune(r)
		visible++
		i += size
	}

	b.WriteString(ellipsis)
	if hasAnsi {
		b.WriteString(colorReset)
	}
	return b.String()
}

// visibleWidth returns the visible width of s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			inEscape = r != 'm'
		default:
			width++
		}
	}
	return width
}
