package model

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeTasks parses a persisted task blob.
// The blob is YAML; JSON written by the browser version also parses since
// JSON is a subset of YAML. An empty blob yields an empty sequence.
func DecodeTasks(data []byte) ([]Task, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []Task{}, nil
	}

	var tasks []Task
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse task blob: %w", err)
	}

	seen := make(map[int64]bool, len(tasks))
	for i, t := range tasks {
		if t.ID <= 0 {
			return nil, fmt.Errorf("failed to parse task blob: entry %d has no id", i)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("failed to parse task blob: duplicate id %d", t.ID)
		}
		seen[t.ID] = true

		if !t.Priority.Valid() {
			if p, err := ParsePriority(string(t.Priority)); err == nil {
				tasks[i].Priority = p
			}
		}
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// EncodeTasks serializes tasks in order.
// Multi-line descriptions use block scalar style.
func EncodeTasks(tasks []Task) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	if len(tasks) == 0 {
		seq.Style = yaml.FlowStyle
	}
	for i := range tasks {
		seq.Content = append(seq.Content, buildTaskNode(&tasks[i]))
	}

	data, err := yaml.Marshal(seq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return data, nil
}

// buildTaskNode creates a yaml.Node for a Task.
func buildTaskNode(t *Task) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	addIntField(node, "id", t.ID)
	addStringField(node, "name", t.Name)
	addMultilineStringField(node, "desc", t.Desc)
	addStringField(node, "priority", string(t.Priority))
	addBoolField(node, "completed", t.Completed)

	return node
}

// Helper functions for building yaml.Node

func addStringField(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"},
	)
}

func addIntField(node *yaml.Node, key string, value int64) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatInt(value, 10), Tag: "!!int"},
	)
}

func addBoolField(node *yaml.Node, key string, value bool) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatBool(value), Tag: "!!bool"},
	)
}

func addMultilineStringField(node *yaml.Node, key, value string) {
	// Use literal block scalar style for multi-line strings
	var style yaml.Style
	if strings.Contains(value, "\n") {
		style = yaml.LiteralStyle
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Style: style, Tag: "!!str"},
	)
}
