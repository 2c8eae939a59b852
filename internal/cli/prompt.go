package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm writes prompt to out and reads a yes/no answer from in.
// Only "y" and "yes" (any case) confirm; EOF or anything else declines.
// Used by one-shot commands; the checklist screen asks in its own view.
func Confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	if err == io.EOF && line == "" {
		fmt.Fprintln(out)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
