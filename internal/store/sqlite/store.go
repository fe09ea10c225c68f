// Package sqlite provides a SQLite-backed room store with conditional writes.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"chain-reaction/internal/platform/sqlitemigrate"
	"chain-reaction/internal/shared"
	"chain-reaction/internal/store"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Store persists each room as one JSON document plus its version.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite store at the provided path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrationFS, "migrations"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) GetRoom(ctx context.Context, id string) (shared.Room, error) {
	if err := ctx.Err(); err != nil {
		return shared.Room{}, err
	}

	var (
		doc     string
		version int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT document, version FROM rooms WHERE id = ?
`, id).Scan(&doc, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return shared.Room{}, store.ErrNotFound
	}
	if err != nil {
		return shared.Room{}, fmt.Errorf("get room: %w", err)
	}
	return store.DecodeRoom([]byte(doc), version)
}

// CreateRoom inserts a new room at version 1.
func (s *Store) CreateRoom(ctx context.Context, r shared.Room) (shared.Room, error) {
	if err := ctx.Err(); err != nil {
		return shared.Room{}, err
	}
	r.Version = 1
	doc, err := store.EncodeRoom(r)
	if err != nil {
		return shared.Room{}, err
	}

	now := toMillis(s.now())
	res, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO rooms (id, version, status, document, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING
`, r.ID, r.Version, string(r.GameState.Status), string(doc), now, now)
	if err != nil {
		return shared.Room{}, fmt.Errorf("create room: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return shared.Room{}, fmt.Errorf("create room rows affected: %w", err)
	}
	if affected == 0 {
		return shared.Room{}, store.ErrConflict
	}
	return store.DecodeRoom(doc, r.Version)
}

// SaveRoomIfVersion replaces the room only while its stored version equals
// expectedVersion.
func (s *Store) SaveRoomIfVersion(ctx context.Context, r shared.Room, expectedVersion int64) (shared.Room, error) {
	if err := ctx.Err(); err != nil {
		return shared.Room{}, err
	}
	r.Version = expectedVersion + 1
	doc, err := store.EncodeRoom(r)
	if err != nil {
		return shared.Room{}, err
	}

	res, err := s.sqlDB.ExecContext(ctx, `
UPDATE rooms
SET version = ?, status = ?, document = ?, updated_at = ?
WHERE id = ? AND version = ?
`, r.Version, string(r.GameState.Status), string(doc), toMillis(s.now()), r.ID, expectedVersion)
	if err != nil {
		return shared.Room{}, fmt.Errorf("save room: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return shared.Room{}, fmt.Errorf("save room rows affected: %w", err)
	}
	if affected == 0 {
		if _, err := s.GetRoom(ctx, r.ID); err != nil {
			return shared.Room{}, err
		}
		return shared.Room{}, store.ErrConflict
	}
	return store.DecodeRoom(doc, r.Version)
}
