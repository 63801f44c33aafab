// Package sqlite stores a household database in a SQLite file.
//
// Each record is one row of the records table, its body holding the same
// JSON object a JSONL database file holds on one line. The two formats are
// interchangeable.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/etnz/household"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS records (
	kind     TEXT NOT NULL,
	position INTEGER NOT NULL,
	id       TEXT NOT NULL,
	body     TEXT NOT NULL,
	PRIMARY KEY (kind, id)
)`

// DB is a household database backed by SQLite.
type DB struct {
	sqlDB *sql.DB
}

// Open opens, creating it if needed, the SQLite database at path.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &DB{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (db *DB) Close() error {
	if db == nil || db.sqlDB == nil {
		return nil
	}
	return db.sqlDB.Close()
}

// Load reads every record and returns a store holding them, each collection
// in its saved order.
func (db *DB) Load(ctx context.Context) (*household.Store, error) {
	var records []household.Record
	for _, kind := range household.Kinds {
		rows, err := db.sqlDB.QueryContext(ctx, `SELECT id, body FROM records WHERE kind = ? ORDER BY position`, string(kind))
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", kind.Plural(), err)
		}
		for rows.Next() {
			var id, body string
			if err := rows.Scan(&id, &body); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan %s: %w", kind, err)
			}
			r, err := household.DecodeRecord([]byte(body))
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("%s %q: %w", kind, id, err)
			}
			records = append(records, r)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", kind.Plural(), err)
		}
	}
	return household.NewStore(records...)
}

// Save replaces the database content with the snapshot, in one transaction.
func (db *DB) Save(ctx context.Context, s *household.Snapshot) (err error) {
	tx, err := db.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (kind, position, id, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, kind := range household.Kinds {
		for i, r := range s.RecordsOf(kind) {
			var body strings.Builder
			if err = household.EncodeRecord(&body, r); err != nil {
				return err
			}
			if _, err = stmt.ExecContext(ctx, string(kind), i, r.Key(), strings.TrimSuffix(body.String(), "\n")); err != nil {
				return fmt.Errorf("insert %s %q: %w", kind, r.Key(), err)
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Count returns the number of stored records of a kind.
func (db *DB) Count(ctx context.Context, kind household.Kind) (int, error) {
	var n int
	err := db.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE kind = ?`, string(kind)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", kind.Plural(), err)
	}
	return n, nil
}
