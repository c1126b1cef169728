package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"retailcore/internal/blob"
	"retailcore/pkg/domain"
)

// writeSQLite builds a single-table SQLite database holding the full
// snapshot as JSON payloads keyed by entity type, then uploads it. The
// database is assembled in a temp file because the driver needs a real
// file path.
func (e *Exporter) writeSQLite(ctx context.Context, prefix string, snapshot domain.Snapshot) (Artifact, error) {
	dir, err := os.MkdirTemp("", "retailcore-export-*")
	if err != nil {
		return Artifact{}, err
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "snapshot.db")
	if err := buildSnapshotDB(ctx, path, snapshot); err != nil {
		return Artifact{}, err
	}

	b, err := os.ReadFile(path) // #nosec G304 -- temp path constructed above
	if err != nil {
		return Artifact{}, err
	}
	key := prefix + "/snapshot.db"
	info, err := e.store.Put(ctx, key, bytes.NewReader(b), blob.PutOptions{ContentType: "application/vnd.sqlite3"})
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Key: key, Format: "sqlite", Bytes: info.Size}, nil
}

func buildSnapshotDB(ctx context.Context, path string, snapshot domain.Snapshot) (retErr error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return fmt.Errorf("create state table: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, schema := range domain.Registry() {
		payload, err := json.Marshal(orderedRecords(snapshot[schema.Type], schema.IDField))
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("encode %s: %w", schema.Type, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO state (bucket, payload) VALUES (?, ?)`, string(schema.Type), payload); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s: %w", schema.Type, err)
		}
	}
	return tx.Commit()
}
