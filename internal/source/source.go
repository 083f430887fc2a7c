// Package source provides the enumerations errnogen exports: the running
// host's errno table, YAML/JSON table files, and SQLite snapshots.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/errnogen/internal/model"
)

// DefaultSnapshot is the snapshot name used when a sqlite spec names none.
const DefaultSnapshot = "default"

// Source supplies an error table.
type Source interface {
	// Name identifies the source in logs and provenance.
	Name() string
	// Load reads the full table. Names are not filtered.
	Load(ctx context.Context) (*model.Table, error)
}

// Parse builds a Source from a spec string.
//
// Accepted forms:
//
//	host                      the running platform's errno table
//	table:<path>              YAML or JSON table file
//	sqlite:<path>[#<name>]    snapshot in a SQLite database
//
// A bare path ending in .yaml, .yml or .json is a table; one ending in .db
// is a snapshot database.
func Parse(spec string) (Source, error) {
	spec = strings.TrimSpace(spec)
	kind, rest, hasKind := strings.Cut(spec, ":")

	switch {
	case spec == "" || spec == "host":
		return NewHost(), nil
	case hasKind && kind == "table":
		if rest == "" {
			return nil, fmt.Errorf("%w: table source needs a path", model.ErrInvalidSource)
		}
		return NewTable(rest), nil
	case hasKind && kind == "sqlite":
		path, name, _ := strings.Cut(rest, "#")
		if path == "" {
			return nil, fmt.Errorf("%w: sqlite source needs a path", model.ErrInvalidSource)
		}
		return NewSnapshot(path, name), nil
	}

	path, name, _ := strings.Cut(spec, "#")
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return NewTable(spec), nil
	case ".db", ".sqlite", ".sqlite3":
		return NewSnapshot(path, name), nil
	}

	return nil, fmt.Errorf("%w: %q", model.ErrInvalidSource, spec)
}
