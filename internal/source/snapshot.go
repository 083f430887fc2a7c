package source

import (
	"context"
	"fmt"
	"os"

	"github.com/user/errnogen/internal/model"
	"github.com/user/errnogen/internal/storage"
)

// Snapshot reads a table previously captured into a SQLite database.
type Snapshot struct {
	path string
	name string
}

// NewSnapshot creates a snapshot source. An empty name means DefaultSnapshot.
func NewSnapshot(path, name string) *Snapshot {
	if name == "" {
		name = DefaultSnapshot
	}
	return &Snapshot{path: path, name: name}
}

// Name returns "sqlite:<path>#<name>".
func (s *Snapshot) Name() string {
	return fmt.Sprintf("sqlite:%s#%s", s.path, s.name)
}

// Load returns the named snapshot from the database.
// A missing database is reported as ErrSourceUnavailable rather than
// silently creating an empty one.
func (s *Snapshot) Load(ctx context.Context) (*model.Table, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSourceUnavailable, err)
	}

	store, err := storage.OpenSnapshotStore(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSourceUnavailable, err)
	}
	defer store.Close()

	table, err := store.Load(ctx, s.name)
	if err != nil {
		return nil, err
	}
	if err := validateEntries(table.Entries); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", s.name, err)
	}
	return table, nil
}
