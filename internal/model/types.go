// Package model defines the core data structures for daily.
package model

import (
	"fmt"
	"strings"
)

// Priority represents the priority tag of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the known priorities from highest to lowest.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// legacyPriorities maps tags written by the browser version of the list.
var legacyPriorities = map[string]Priority{
	"alta":  PriorityHigh,
	"media": PriorityMedium,
	"média": PriorityMedium,
	"baixa": PriorityLow,
}

// ParsePriority parses a priority name. It accepts the full names, the
// single-letter shorthands h/m/l and the legacy tags alta/media/baixa.
func ParsePriority(s string) (Priority, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "high", "h":
		return PriorityHigh, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "low", "l":
		return PriorityLow, nil
	}
	if p, ok := legacyPriorities[key]; ok {
		return p, nil
	}
	return "", fmt.Errorf("invalid priority %q: must be one of high, medium, low", s)
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Normalize returns p, or PriorityLow if p is not a known priority.
// Blobs written by other versions may carry tags this one does not know.
func (p Priority) Normalize() Priority {
	if !p.Valid() {
		return PriorityLow
	}
	return p
}

// Label returns the upper-case display label for p.
// Unknown priorities display as low.
func (p Priority) Label() string {
	return strings.ToUpper(string(p.Normalize()))
}

// Task represents a single to-do item.
type Task struct {
	ID        int64    `yaml:"id"`
	Name      string   `yaml:"name"`
	Desc      string   `yaml:"desc"`
	Priority  Priority `yaml:"priority"`
	Completed bool     `yaml:"completed"`
}
