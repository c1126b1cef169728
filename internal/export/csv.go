package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"

	"retailcore/internal/blob"
	"retailcore/pkg/domain"
)

func (e *Exporter) writeCSV(ctx context.Context, prefix string, t domain.EntityType, records []domain.Record) (Artifact, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := csvHeader(domain.MustSchema(t), records)
	if err := w.Write(header); err != nil {
		return Artifact{}, err
	}
	for _, rec := range records {
		row := make([]string, len(header))
		for i, col := range header {
			row[i] = csvCell(rec[col])
		}
		if err := w.Write(row); err != nil {
			return Artifact{}, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Artifact{}, err
	}
	key := fmt.Sprintf("%s/%s.csv", prefix, t)
	info, err := e.store.Put(ctx, key, bytes.NewReader(buf.Bytes()), blob.PutOptions{ContentType: "text/csv"})
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Key: key, Format: "csv", Entity: string(t), Bytes: info.Size, Records: len(records)}, nil
}

// csvHeader puts the identifier column first, then the union of the
// remaining field names in alphabetical order.
func csvHeader(schema domain.Schema, records []domain.Record) []string {
	seen := map[string]bool{schema.IDField: true}
	var rest []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)
	return append([]string{schema.IDField}, rest...)
}

func csvCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64, float32, int, int64, bool, json.Number:
		return fmt.Sprintf("%v", val)
	default:
		// Nested objects are embedded as JSON.
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
