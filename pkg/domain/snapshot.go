package domain

// Snapshot is a full dataset image: every collection keyed by identifier.
// It is the shape of the seed-data boundary (one JSON document per entity
// type) and of exported artifacts. Insertion order is reconstructed from the
// numeric identifiers, which seeded fixtures assign densely from "1".
type Snapshot map[EntityType]map[string]Record

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for t, records := range s {
		cp := make(map[string]Record, len(records))
		for id, rec := range records {
			cp[id] = rec.Clone()
		}
		out[t] = cp
	}
	return out
}
