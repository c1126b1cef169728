// Package export serializes store snapshots into offline artifacts.
// Each run writes one JSON and one CSV file per entity type plus a
// single SQLite database, all under a timestamped key prefix in a blob
// store, and finishes with a manifest describing the run.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"retailcore/internal/blob"
	"retailcore/pkg/domain"
)

// Artifact describes a single file written during an export run.
type Artifact struct {
	Key     string `json:"key"`
	Format  string `json:"format"`
	Entity  string `json:"entity,omitempty"`
	Bytes   int64  `json:"bytes"`
	Records int    `json:"records,omitempty"`
}

// Manifest summarizes an export run. It is written last, so its
// presence marks the run complete.
type Manifest struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Prefix      string     `json:"prefix"`
	Artifacts   []Artifact `json:"artifacts"`
}

// Exporter writes snapshot artifacts to a blob store.
type Exporter struct {
	store blob.Store
	log   *logrus.Entry
	nowFn func() time.Time
}

// NewExporter returns an Exporter targeting the given blob store.
func NewExporter(store blob.Store, log *logrus.Entry) *Exporter {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Exporter{store: store, log: log, nowFn: func() time.Time { return time.Now().UTC() }}
}

// SetClock overrides the wall clock used for key prefixes. Tests only.
func (e *Exporter) SetClock(fn func() time.Time) { e.nowFn = fn }

// Export writes all artifacts for snapshot and returns the manifest.
func (e *Exporter) Export(ctx context.Context, snapshot domain.Snapshot) (Manifest, error) {
	now := e.nowFn()
	prefix := fmt.Sprintf("snapshots/%s", now.Format("20060102T150405Z"))
	manifest := Manifest{GeneratedAt: now, Prefix: prefix}

	for _, schema := range domain.Registry() {
		records := orderedRecords(snapshot[schema.Type], schema.IDField)

		jsonArt, err := e.writeJSON(ctx, prefix, schema.Type, records)
		if err != nil {
			return Manifest{}, fmt.Errorf("export %s json: %w", schema.Type, err)
		}
		manifest.Artifacts = append(manifest.Artifacts, jsonArt)

		csvArt, err := e.writeCSV(ctx, prefix, schema.Type, records)
		if err != nil {
			return Manifest{}, fmt.Errorf("export %s csv: %w", schema.Type, err)
		}
		manifest.Artifacts = append(manifest.Artifacts, csvArt)
	}

	dbArt, err := e.writeSQLite(ctx, prefix, snapshot)
	if err != nil {
		return Manifest{}, fmt.Errorf("export sqlite: %w", err)
	}
	manifest.Artifacts = append(manifest.Artifacts, dbArt)

	if err := e.writeManifest(ctx, prefix, manifest); err != nil {
		return Manifest{}, fmt.Errorf("export manifest: %w", err)
	}
	e.log.WithFields(logrus.Fields{"prefix": prefix, "artifacts": len(manifest.Artifacts)}).Info("export complete")
	return manifest, nil
}

func (e *Exporter) writeJSON(ctx context.Context, prefix string, t domain.EntityType, records []domain.Record) (Artifact, error) {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return Artifact{}, err
	}
	b = append(b, '\n')
	key := fmt.Sprintf("%s/%s.json", prefix, t)
	info, err := e.store.Put(ctx, key, bytes.NewReader(b), blob.PutOptions{ContentType: "application/json"})
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Key: key, Format: "json", Entity: string(t), Bytes: info.Size, Records: len(records)}, nil
}

func (e *Exporter) writeManifest(ctx context.Context, prefix string, m Manifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	key := prefix + "/manifest.json"
	_, err = e.store.Put(ctx, key, bytes.NewReader(b), blob.PutOptions{ContentType: "application/json"})
	return err
}

// orderedRecords flattens an ID-keyed collection into numeric ID order
// so artifact contents are deterministic across runs.
func orderedRecords(coll map[string]domain.Record, idField string) []domain.Record {
	ids := make([]string, 0, len(coll))
	for id := range coll {
		ids = append(ids, id)
	}
	domain.SortIDs(ids)
	out := make([]domain.Record, 0, len(ids))
	for _, id := range ids {
		rec := coll[id].Clone()
		if _, ok := rec[idField]; !ok {
			rec[idField] = id
		}
		out = append(out, rec)
	}
	return out
}
