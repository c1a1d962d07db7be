package snapshot

import (
	"sort"
	"time"
)

// Snapshot is the complete point-in-time artwork table.
type Snapshot struct {
	Records []Record
	// FetchedAt is provenance only; it is not persisted in the parquet
	// file. Load fills it from the file's modification time.
	FetchedAt time.Time
}

// New wraps records in a Snapshot stamped with the current time.
func New(records []Record) *Snapshot {
	return &Snapshot{Records: records, FetchedAt: time.Now().UTC()}
}

// Painters returns the distinct painter names, sorted.
func (s *Snapshot) Painters() []string {
	return distinct(s.Records, func(r Record) string { return r.Painter })
}

// Museums returns the distinct museum names, sorted.
func (s *Snapshot) Museums() []string {
	return distinct(s.Records, func(r Record) string { return r.Museum })
}

// WithCoords counts records that carry a museum location.
func (s *Snapshot) WithCoords() int {
	n := 0
	for _, r := range s.Records {
		if r.HasCoords() {
			n++
		}
	}
	return n
}

func distinct(records []Record, key func(Record) string) []string {
	seen := make(map[string]struct{}, len(records))
	var out []string
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
