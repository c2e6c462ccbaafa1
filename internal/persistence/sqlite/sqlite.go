// Package sqlite persists the room catalog in SQLite via the pure Go
// modernc.org driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/example/meeting-scheduler/internal/persistence"
)

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT    NOT NULL UNIQUE,
	name       TEXT    NOT NULL,
	location   TEXT    NOT NULL DEFAULT '',
	capacity   INTEGER NOT NULL CHECK (capacity > 0),
	created_at TEXT    NOT NULL,
	updated_at TEXT    NOT NULL
);
`

// Storage implements persistence.RoomRepository on top of a SQLite database.
// The autoincrementing seq column preserves registration order across
// restarts.
type Storage struct {
	db *sql.DB
}

// Open connects to the database identified by dsn.
func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// modernc.org/sqlite serializes access within a single connection; a
	// pool of one avoids SQLITE_BUSY under concurrent writers.
	db.SetMaxOpenConns(1)
	return &Storage{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate creates the schema when it does not exist yet. It is idempotent.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateRoom inserts a new catalog entry.
func (s *Storage) CreateRoom(ctx context.Context, room persistence.Room) error {
	if room.ID == "" || room.Capacity <= 0 {
		return persistence.ErrConstraintViolation
	}

	const query = `
		INSERT INTO rooms (id, name, location, capacity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		room.Location,
		room.Capacity,
		room.CreatedAt.UTC().Format(time.RFC3339Nano),
		room.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	return mapSQLiteError(err)
}

// UpdateRoom updates an existing catalog entry in place.
func (s *Storage) UpdateRoom(ctx context.Context, room persistence.Room) error {
	if room.Capacity <= 0 {
		return persistence.ErrConstraintViolation
	}

	const query = `
		UPDATE rooms
		SET name = ?, location = ?, capacity = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		room.Name,
		room.Location,
		room.Capacity,
		room.UpdatedAt.UTC().Format(time.RFC3339Nano),
		room.ID,
	)
	if err != nil {
		return mapSQLiteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// GetRoom retrieves a room by id.
func (s *Storage) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	const query = `
		SELECT id, name, location, capacity, created_at, updated_at
		FROM rooms
		WHERE id = ?
	`
	room, err := scanRoom(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Room{}, persistence.ErrNotFound
		}
		return persistence.Room{}, err
	}
	return room, nil
}

// ListRooms returns all rooms in registration order.
func (s *Storage) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	const query = `
		SELECT id, name, location, capacity, created_at, updated_at
		FROM rooms
		ORDER BY seq
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []persistence.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// DeleteRoom removes a room from the catalog.
func (s *Storage) DeleteRoom(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return mapSQLiteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (persistence.Room, error) {
	var (
		room      persistence.Room
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&room.ID, &room.Name, &room.Location, &room.Capacity, &createdAt, &updatedAt); err != nil {
		return persistence.Room{}, err
	}

	parsedCreated, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return persistence.Room{}, fmt.Errorf("parse created_at: %w", err)
	}
	parsedUpdated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return persistence.Room{}, fmt.Errorf("parse updated_at: %w", err)
	}

	room.CreatedAt = parsedCreated
	room.UpdatedAt = parsedUpdated
	return room, nil
}

func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return persistence.ErrDuplicate
	case strings.Contains(msg, "CHECK constraint failed"):
		return persistence.ErrConstraintViolation
	default:
		return err
	}
}
