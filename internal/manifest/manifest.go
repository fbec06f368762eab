// Package manifest exports an archive's entry table to a SQLite database so
// the contents can be inspected with ordinary SQL tooling. The archive keeps
// no filenames, so the manifest is the practical way to survey what a pak
// holds: keys, sizes, storage class, and whether each compressed entry
// survived decompression.
package manifest

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Row describes one archive entry in the manifest.
type Row struct {
	Key          uint32
	Offset       uint64
	StoredLength uint32
	RawLength    uint32
	Compressed   bool
	Status       string // "ok" for readable entries, otherwise the failure text
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	key           INTEGER PRIMARY KEY,
	offset        INTEGER NOT NULL,
	stored_length INTEGER NOT NULL,
	raw_length    INTEGER NOT NULL,
	compressed    INTEGER NOT NULL,
	status        TEXT NOT NULL
);
DELETE FROM entries;
`

// Write creates (or replaces) the entries table at dbPath and inserts every
// row in one transaction.
func Write(ctx context.Context, dbPath string, rows []Row) error {
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=30000")
	if err != nil {
		return fmt.Errorf("opening manifest database %s: %w", dbPath, err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("testing manifest database connection: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating manifest schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting manifest transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO entries (key, offset, stored_length, raw_length, compressed, status) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing manifest insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			int64(r.Key), int64(r.Offset), int64(r.StoredLength), int64(r.RawLength), r.Compressed, r.Status); err != nil {
			return fmt.Errorf("inserting manifest row for key %d: %w", r.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing manifest: %w", err)
	}

	return nil
}
