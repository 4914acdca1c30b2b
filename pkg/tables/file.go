package tables

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileSource backs lookup tables with YAML files in a directory. Each table
// lives in "<name>.yaml" as a list of entries:
//
//	- code: "10101012"
//	  description: "Consulta em consultório"
//	  valid_until: "2026-12-31"
type FileSource struct {
	dir    string
	logger *slog.Logger
}

// NewFileSource creates a file-backed table source rooted at dir.
func NewFileSource(dir string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{dir: dir, logger: logger}
}

// Table returns a lazily-loaded table reading "<name>.yaml" from the source
// directory.
func (s *FileSource) Table(name string) *LazyTable {
	return NewLazyTable(name, s.loaderFor(name), s.logger)
}

// loaderFor builds the Loader for one table file.
func (s *FileSource) loaderFor(name string) Loader {
	return func(ctx context.Context) (map[string]Entry, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(s.dir, name+".yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read table file %q: %w", path, err)
		}

		var list []Entry
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parse table file %q: %w", path, err)
		}

		entries := make(map[string]Entry, len(list))
		for _, e := range list {
			if e.Code == "" {
				s.logger.Warn("table entry without code, skipping",
					"table", name,
					"path", path,
				)
				continue
			}
			entries[e.Code] = e
		}

		s.logger.Debug("loaded table file",
			"table", name,
			"path", path,
			"entry_count", len(entries),
		)
		return entries, nil
	}
}
