package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/badjano/favtree/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS elements (
	position INTEGER PRIMARY KEY,
	id       INTEGER NOT NULL UNIQUE,
	name     TEXT    NOT NULL,
	depth    INTEGER NOT NULL,
	icon     TEXT    NOT NULL DEFAULT '',
	keywords TEXT    NOT NULL DEFAULT '',
	payload  TEXT    NOT NULL DEFAULT ''
)`

// SQLiteStore keeps the sequence in a SQLite database, one row per element,
// ordered by position.
type SQLiteStore struct {
	FilePath string
}

// NewSQLiteStore creates a new SQLite store for the given database path
func NewSQLiteStore(filePath string) *SQLiteStore {
	return &SQLiteStore{FilePath: filePath}
}

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return db, nil
}

// Load loads the sequence from the database
func (s *SQLiteStore) Load(ctx context.Context) ([]*model.Element, error) {
	if !s.Exists() {
		return nil, nil
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, name, depth, icon, keywords, payload FROM elements ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query elements: %w", err)
	}
	defer rows.Close()

	var elements []*model.Element
	for rows.Next() {
		var e model.Element
		var payload string
		if err := rows.Scan(&e.ID, &e.Name, &e.Depth, &e.Icon, &e.Keywords, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan element: %w", err)
		}
		if payload != "" {
			if err := json.Unmarshal([]byte(payload), &e.Payload); err != nil {
				return nil, fmt.Errorf("failed to parse payload of element %d: %w", e.ID, err)
			}
		}
		elements = append(elements, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read elements: %w", err)
	}

	return elements, nil
}

// Save replaces every stored row in a single transaction
func (s *SQLiteStore) Save(ctx context.Context, elements []*model.Element) (err error) {
	if err := ensureDir(s.FilePath); err != nil {
		return err
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM elements`); err != nil {
		return fmt.Errorf("failed to clear elements: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO elements (position, id, name, depth, icon, keywords, payload) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for position, e := range elements {
		payload := ""
		if len(e.Payload) > 0 {
			data, err := json.Marshal(e.Payload)
			if err != nil {
				return fmt.Errorf("failed to marshal payload of element %d: %w", e.ID, err)
			}
			payload = string(data)
		}
		if _, err = stmt.ExecContext(ctx, position, e.ID, e.Name, e.Depth, e.Icon, e.Keywords, payload); err != nil {
			return fmt.Errorf("failed to insert element %d: %w", e.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Exists checks if the database file exists
func (s *SQLiteStore) Exists() bool {
	return fileExists(s.FilePath)
}

// Path returns the database path
func (s *SQLiteStore) Path() string {
	return s.FilePath
}
