package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFile reads and validates the task file at path.
// A missing or blank file yields an empty collection.
func LoadFile(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Task{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	return Decode(data)
}

// Decode parses task file content. It returns the first problem found;
// use Check to collect all of them.
func Decode(data []byte) ([]Task, error) {
	tasks, errs := decode(data)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return tasks, nil
}

// Check parses task file content and reports every problem found.
func Check(data []byte) []error {
	_, errs := decode(data)
	return errs
}

func decode(data []byte) ([]Task, []error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Task{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, []error{&ParseError{Err: err}}
	}
	if dec.More() {
		return nil, []error{&ParseError{Err: errors.New("unexpected content after JSON document")}}
	}

	if errs := validateDocument(doc); len(errs) > 0 {
		return nil, errs
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, []error{&ParseError{Err: err}}
	}

	var errs []error
	seen := make(map[int]bool, len(tasks))
	for i, t := range tasks {
		if seen[t.ID] {
			errs = append(errs, &ParseError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %d", t.ID),
			})
		}
		seen[t.ID] = true
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return tasks, nil
}

// Encode renders tasks in the on-disk format: 2-space indent, trailing newline.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// SaveFile writes tasks to path atomically: the data goes to a temp file in
// the same directory which is then renamed over path. Missing parent
// directories are created.
func SaveFile(path string, tasks []Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create storage dir: %w", ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrIO, err)
	}
	tmpPath := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %w", ErrIO, tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: chmod %s: %w", ErrIO, tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: replace %s: %w", ErrIO, path, err)
	}
	return nil
}

func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
