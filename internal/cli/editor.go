package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EditInEditor opens content in $VISUAL or $EDITOR and returns what the
// user saved. The suffix names the temporary file (e.g. ".yaml" for syntax
// highlighting). Returns error if no editor is set or it exits non-zero.
func EditInEditor(content []byte, suffix string) ([]byte, error) {
	editor := getEditor()
	if editor == "" {
		return nil, fmt.Errorf("EDITOR not set. Set it or use --name/--desc/--priority instead of -i")
	}

	tmpFile, err := os.CreateTemp("", "daily-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	_, err = tmpFile.Write(content)
	if closeErr := tmpFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := runEditor(editor, tmpPath); err != nil {
		return nil, err
	}

	result, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return result, nil
}

// getEditor returns the editor command from environment.
// VISUAL is preferred over EDITOR.
func getEditor() string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if editor := strings.TrimSpace(os.Getenv(key)); editor != "" {
			return editor
		}
	}
	return ""
}

// runEditor executes the editor with the given file path.
// The editor string may carry arguments (e.g. "code --wait").
func runEditor(editor, path string) error {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
