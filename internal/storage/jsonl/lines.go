package jsonl

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
)

// ParseWarning represents a warning about a corrupted or malformed line
type ParseWarning struct {
	File       string // Base name of the file holding the line
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the corrupted line
	Error      string // Description of the parsing error
}

// readLines reads every JSON line of path into a T, collecting warnings for
// lines that fail to decode. A missing file yields no items and no error.
func readLines[T any](path, name string) ([]T, []ParseWarning, error) {
	items := []T{}
	warnings := []ParseWarning{}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return items, warnings, nil
		}
		return items, warnings, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		lineContent := scanner.Text()
		if strings.TrimSpace(lineContent) == "" {
			continue
		}

		var item T
		if err := json.Unmarshal([]byte(lineContent), &item); err != nil {
			warnings = append(warnings, ParseWarning{
				File:       name,
				LineNumber: lineNumber,
				Content:    lineContent,
				Error:      err.Error(),
			})
			continue
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return items, warnings, err
	}
	return items, warnings, nil
}

// appendLine appends a single JSON line to path.
// Creates the file if it doesn't exist.
func appendLine(path string, v any) error {
	line, err := json.Marshal(v)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, err = file.Write(append(line, '\n'))
	return err
}

// writeLines rewrites path with one JSON line per item.
// Uses atomic write pattern (write to temp file, then rename) for safety.
func writeLines[T any](path string, items []T) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	for _, item := range items {
		line, err := json.Marshal(item)
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
	}

	if err := w.Flush(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

// countLines returns the number of non-empty lines in path.
func countLines(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer func() { _ = file.Close() }()

	n := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			n++
		}
	}
	return n, scanner.Err()
}
