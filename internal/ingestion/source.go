package ingestion

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Source discovers and opens cost export objects.
type Source interface {
	// List returns the names of every object to ingest.
	List(ctx context.Context) ([]string, error)

	// Open returns a reader over one listed object.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// String describes the source for logs.
	String() string
}

// LocalSource lists files matching a glob pattern in one directory.
type LocalSource struct {
	Dir     string
	Pattern string
}

// NewLocalSource creates a LocalSource; an empty dir means the working directory.
func NewLocalSource(dir, pattern string) *LocalSource {
	if dir == "" {
		dir = "."
	}
	return &LocalSource{Dir: dir, Pattern: pattern}
}

func (s *LocalSource) List(_ context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.Dir, s.Pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", s.Pattern, err)
	}

	files := matches[:0]
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

func (s *LocalSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (s *LocalSource) String() string {
	return fmt.Sprintf("local:%s", filepath.Join(s.Dir, s.Pattern))
}
