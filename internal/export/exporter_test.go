package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcore/internal/blob"
	"retailcore/pkg/domain"
)

func exportFixture() domain.Snapshot {
	return domain.Snapshot{
		domain.EntitySupplier: {
			"1":  domain.Record{"supplier_id": "1", "name": "Alpha", "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-02T00:00:00Z"},
			"2":  domain.Record{"supplier_id": "2", "name": "Beta"},
			"10": domain.Record{"supplier_id": "10", "name": "Kappa"},
		},
		domain.EntityProduct: {
			"1": domain.Record{"product_id": "1", "supplier_id": "1", "name": "Widget", "unit_price": 19.99},
		},
	}
}

func newTestExporter(store blob.Store) *Exporter {
	e := NewExporter(store, nil)
	e.SetClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })
	return e
}

func readBlob(t *testing.T, store blob.Store, key string) []byte {
	t.Helper()
	_, rc, err := store.Get(context.Background(), key)
	require.NoErrorf(t, err, "blob %s", key)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return b
}

func TestExportWritesAllArtifacts(t *testing.T) {
	store := blob.NewMemory()
	manifest, err := newTestExporter(store).Export(context.Background(), exportFixture())
	require.NoError(t, err)

	assert.Equal(t, "snapshots/20250601T120000Z", manifest.Prefix)
	// One JSON and one CSV per entity type plus the SQLite database.
	require.Len(t, manifest.Artifacts, len(domain.Registry())*2+1)

	for _, art := range manifest.Artifacts {
		_, err := store.Head(context.Background(), art.Key)
		require.NoErrorf(t, err, "artifact %s not stored", art.Key)
		assert.Positive(t, art.Bytes)
	}

	// The manifest itself is written last under the same prefix.
	raw := readBlob(t, store, manifest.Prefix+"/manifest.json")
	var decoded Manifest
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, manifest.Prefix, decoded.Prefix)
	assert.Len(t, decoded.Artifacts, len(manifest.Artifacts))
}

func TestExportJSONNumericOrder(t *testing.T) {
	store := blob.NewMemory()
	manifest, err := newTestExporter(store).Export(context.Background(), exportFixture())
	require.NoError(t, err)

	raw := readBlob(t, store, manifest.Prefix+"/suppliers.json")
	var records []domain.Record
	require.NoError(t, json.Unmarshal(raw, &records))
	require.Len(t, records, 3)
	assert.Equal(t, "1", records[0].String("supplier_id"))
	assert.Equal(t, "2", records[1].String("supplier_id"))
	assert.Equal(t, "10", records[2].String("supplier_id"), "numeric order, not lexical")
}

func TestExportCSVHeaderAndCells(t *testing.T) {
	store := blob.NewMemory()
	manifest, err := newTestExporter(store).Export(context.Background(), exportFixture())
	require.NoError(t, err)

	raw := readBlob(t, store, manifest.Prefix+"/products.csv")
	rows, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header := rows[0]
	assert.Equal(t, "product_id", header[0], "identifier column first")
	assert.Contains(t, header, "unit_price")

	byCol := map[string]string{}
	for i, col := range header {
		byCol[col] = rows[1][i]
	}
	assert.Equal(t, "19.99", byCol["unit_price"])
	assert.Equal(t, "Widget", byCol["name"])
}

func TestExportSQLiteRoundTrip(t *testing.T) {
	store := blob.NewMemory()
	manifest, err := newTestExporter(store).Export(context.Background(), exportFixture())
	require.NoError(t, err)

	raw := readBlob(t, store, manifest.Prefix+"/snapshot.db")
	path := filepath.Join(t.TempDir(), "snapshot.db")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var payload []byte
	require.NoError(t, db.QueryRow(
		`SELECT payload FROM state WHERE bucket = ?`, string(domain.EntitySupplier)).Scan(&payload))
	var records []domain.Record
	require.NoError(t, json.Unmarshal(payload, &records))
	assert.Len(t, records, 3)

	var buckets int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM state`).Scan(&buckets))
	assert.Equal(t, len(domain.Registry()), buckets)
}

func TestExportPrefixImmutable(t *testing.T) {
	store := blob.NewMemory()
	exporter := newTestExporter(store)
	_, err := exporter.Export(context.Background(), exportFixture())
	require.NoError(t, err)

	// Same clock means same prefix; create-only blobs must reject the rerun.
	_, err = exporter.Export(context.Background(), exportFixture())
	require.Error(t, err)
}
