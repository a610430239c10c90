// Package lists keeps the plain text choice lists (brands, descriptions,
// frame shapes) in the data directory, one value per line.
package lists

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	Brands       = "brands"
	Descriptions = "descriptions"
	Frames       = "frames"
)

// Defaults are written when a list file does not exist yet.
var Defaults = map[string][]string{
	Brands:       {"Gucci", "Prada", "Miu Miu"},
	Descriptions: {"Описания"},
	Frames:       {"Овальная"},
}

// Known reports whether name is one of the managed lists.
func Known(name string) bool {
	_, ok := Defaults[name]
	return ok
}

// Store reads and writes list files under a directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the file backing list name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}

// Load returns the trimmed, non-empty lines of list name, creating the file
// from defaults first when it is missing.
func (s *Store) Load(name string, defaults []string) ([]string, error) {
	if err := s.ensure(name, defaults); err != nil {
		return nil, err
	}
	return readLines(s.Path(name))
}

// Add appends value unless it is blank or already present.
func (s *Store) Add(name, value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}

	items, err := s.Load(name, nil)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item == value {
			return false, nil
		}
	}

	return true, writeLines(s.Path(name), append(items, value))
}

// Remove rewrites the list without value.
func (s *Store) Remove(name, value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}

	items, err := s.Load(name, nil)
	if err != nil {
		return false, err
	}

	kept := items[:0]
	for _, item := range items {
		if item != value {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}

	return true, writeLines(s.Path(name), kept)
}

func (s *Store) ensure(name string, defaults []string) error {
	path := s.Path(name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return writeLines(path, defaults)
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}

	return lines, nil
}

func writeLines(path string, lines []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
