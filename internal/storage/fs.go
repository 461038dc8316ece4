// internal/storage/fs.go
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrOutsideRoot = errors.New("path is outside input root")

// FS reads documents from and writes documents to the local filesystem.
type FS struct {
	extensions []string
}

// NewFS matches files by extension, case-insensitively. Extensions include the dot.
func NewFS(extensions []string) *FS {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return &FS{extensions: normalized}
}

// Matches reports whether path has one of the configured extensions.
func (f *FS) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range f.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Discover walks root recursively and returns matching file paths in lexical order.
func (f *FS) Discover(root string) ([]string, error) {
	paths := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !f.Matches(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (f *FS) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Write stores content at path, creating parent directories.
func (f *FS) Write(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// OutputPath swaps the inputRoot prefix of path for outputRoot.
func OutputPath(path, inputRoot, outputRoot string) (string, error) {
	rel, err := filepath.Rel(inputRoot, path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrOutsideRoot, path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s not under %s", ErrOutsideRoot, path, inputRoot)
	}
	return filepath.Join(outputRoot, rel), nil
}
