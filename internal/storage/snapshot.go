// Package storage keeps captured error tables in a SQLite database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/user/errnogen/internal/model"
)

// SnapshotInfo describes one stored snapshot without its entries.
type SnapshotInfo struct {
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	GOOS      string    `json:"goos,omitempty"`
	GOARCH    string    `json:"goarch,omitempty"`
	Entries   int       `json:"entries"`
	CreatedAt time.Time `json:"created_at"`
}

// SnapshotStore provides SQLite-backed storage for error table snapshots.
type SnapshotStore struct {
	db     *sql.DB
	dbPath string
}

// OpenSnapshotStore opens or creates the snapshot database at dbPath.
func OpenSnapshotStore(dbPath string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SnapshotStore{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.initTables(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// initTables creates the snapshot tables if they don't exist.
func (s *SnapshotStore) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			name TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			goos TEXT,
			goarch TEXT,
			created_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS snapshot_entries (
			snapshot TEXT NOT NULL REFERENCES snapshots(name),
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			code INTEGER NOT NULL,
			PRIMARY KEY (snapshot, position)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create snapshot tables: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *SnapshotStore) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores table under name, replacing any snapshot with the same name.
// Entry order is preserved.
func (s *SnapshotStore) Save(ctx context.Context, name string, table *model.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_entries WHERE snapshot = ?`, name); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (name, source, goos, goarch, created_at) VALUES (?, ?, ?, ?, ?)
	`, name, table.Source, nullString(table.GOOS), nullString(table.GOARCH), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_entries (snapshot, position, name, code) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range table.Entries {
		if _, err := stmt.ExecContext(ctx, name, i, e.Name, e.Code); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot stored under name.
func (s *SnapshotStore) Load(ctx context.Context, name string) (*model.Table, error) {
	var (
		source       string
		goos, goarch sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `SELECT source, goos, goarch FROM snapshots WHERE name = ?`, name).
		Scan(&source, &goos, &goarch)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", model.ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, code FROM snapshot_entries WHERE snapshot = ? ORDER BY position
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	table := &model.Table{
		Source: source,
		GOOS:   goos.String,
		GOARCH: goarch.String,
	}
	for rows.Next() {
		var e model.Entry
		if err := rows.Scan(&e.Name, &e.Code); err != nil {
			return nil, err
		}
		table.Entries = append(table.Entries, e)
	}

	return table, rows.Err()
}

// List returns all stored snapshots ordered by name.
func (s *SnapshotStore) List(ctx context.Context) ([]SnapshotInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.name, s.source, s.goos, s.goarch, s.created_at, COUNT(e.position)
		FROM snapshots s
		LEFT JOIN snapshot_entries e ON e.snapshot = s.name
		GROUP BY s.name
		ORDER BY s.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var (
			info         SnapshotInfo
			goos, goarch sql.NullString
			createdAt    string
		)
		if err := rows.Scan(&info.Name, &info.Source, &goos, &goarch, &createdAt, &info.Entries); err != nil {
			return nil, err
		}
		info.GOOS = goos.String
		info.GOARCH = goarch.String
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			info.CreatedAt = t
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// Delete removes the snapshot stored under name.
func (s *SnapshotStore) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_entries WHERE snapshot = ?`, name); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", model.ErrSnapshotNotFound, name)
	}

	return tx.Commit()
}

// nullString converts empty string to sql.NullString.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
