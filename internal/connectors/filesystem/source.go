// Package filesystem provides the local folder connector: listing and
// reading text files for import, and watching a folder for changes.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shinefly-smile/localLens/internal/core/ports/driven"
	"github.com/shinefly-smile/localLens/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.FileSource = (*Source)(nil)

// Source lists and reads files under a folder. The walk follows
// directory symlinks, so a visited set of resolved paths guards
// against cycles.
type Source struct {
	// Extension is the file suffix to match, compared case-insensitively.
	Extension string
}

// New creates a file source matching the given extension (".txt" style,
// leading dot included).
func New(extension string) *Source {
	return &Source{Extension: extension}
}

// List walks root recursively and returns every regular file whose name
// matches the extension, sorted by path for deterministic imports.
// Unreadable subdirectories are skipped, not fatal.
func (s *Source) List(root string) ([]driven.FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", root)
	}

	visited := make(map[string]bool)
	var entries []driven.FileEntry
	if err := s.walk(root, visited, &entries); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// Read returns the file's content as UTF-8 text.
func (s *Source) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func (s *Source) walk(dir string, visited map[string]bool, out *[]driven.FileEntry) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		logger.Debug("Skipping %s: %v", dir, err)
		return nil
	}
	if visited[resolved] {
		return nil
	}
	visited[resolved] = true

	items, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("Skipping %s: %v", dir, err)
		return nil
	}

	for _, item := range items {
		path := filepath.Join(dir, item.Name())

		// Resolve symlinks so linked files and folders are importable.
		info := item
		if item.Type()&os.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				logger.Debug("Skipping %s: %v", path, err)
				continue
			}
			info = statEntry{target}
		}

		switch {
		case info.IsDir():
			if err := s.walk(path, visited, out); err != nil {
				return err
			}
		case info.Type().IsRegular() && s.matches(item.Name()):
			*out = append(*out, driven.FileEntry{Path: path, Name: item.Name()})
		}
	}

	return nil
}

// matches reports whether a file name carries the configured extension,
// ignoring case.
func (s *Source) matches(name string) bool {
	return strings.EqualFold(filepath.Ext(name), s.Extension)
}

// statEntry wraps an os.FileInfo as a DirEntry so symlink targets go
// through the same type switch as plain entries.
type statEntry struct {
	os.FileInfo
}

func (e statEntry) Type() os.FileMode          { return e.FileInfo.Mode().Type() }
func (e statEntry) Info() (os.FileInfo, error) { return e.FileInfo, nil }
