package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"retailcore/pkg/domain"
)

// Save writes the snapshot as one JSON document per entity type, the shape
// the seed-data boundary specifies. Files land directly under dir.
func Save(dir string, snapshot domain.Snapshot) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	for _, schema := range domain.Registry() {
		records := snapshot[schema.Type]
		if records == nil {
			records = map[string]domain.Record{}
		}
		payload, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", schema.Type, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s.json", schema.Type))
		if err := os.WriteFile(path, append(payload, '\n'), 0o600); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

// Load reads a snapshot back from a data directory. Missing per-entity files
// are tolerated and yield empty collections, so partial fixture sets load
// cleanly.
func Load(dir string) (domain.Snapshot, error) {
	snapshot := domain.Snapshot{}
	for _, schema := range domain.Registry() {
		path := filepath.Join(dir, fmt.Sprintf("%s.json", schema.Type))
		payload, err := os.ReadFile(path) // #nosec G304 -- operator-supplied data dir
		if errors.Is(err, os.ErrNotExist) {
			snapshot[schema.Type] = map[string]domain.Record{}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		records := map[string]domain.Record{}
		if err := json.Unmarshal(payload, &records); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		snapshot[schema.Type] = records
	}
	return snapshot, nil
}
