// Package cli provides CLI infrastructure for daily.
package cli

import (
	"fmt"
	"sort"
	"strings"
)

// MatchCommand resolves input to one of commands. An exact name or alias
// wins; otherwise input must be a prefix of exactly one command name.
// aliases maps an alternative spelling to a command name and may be nil.
func MatchCommand(input string, commands []string, aliases map[string]string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	for _, cmd := range commands {
		if strings.ToLower(cmd) == input {
			return cmd, nil
		}
	}
	if target, ok := aliases[input]; ok {
		return target, nil
	}

	var matches []string
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd), input) {
			matches = append(matches, cmd)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown command %q", input)
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("ambiguous command %q matches: %s", input, strings.Join(matches, ", "))
	}
}
