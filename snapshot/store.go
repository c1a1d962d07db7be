package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// requiredColumns is the persisted schema, in column order.
var requiredColumns = []string{"painter", "painting", "museum", "city", "country", "lat", "lon"}

// Store reads and writes the snapshot parquet file at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the configured snapshot location.
func (s *Store) Path() string {
	return s.path
}

// Save writes the full record set, atomically replacing any prior file.
// The write goes to a temp file in the same directory and is renamed
// into place, so a crash never leaves a partial snapshot behind.
func (s *Store) Save(snap *Snapshot) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".artworks-*.parquet")
	if err != nil {
		return fmt.Errorf("snapshot: create temp: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	w := parquet.NewGenericWriter[Record](tmp)
	if _, err = w.Write(snap.Records); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: write rows: %w", err)
	}
	if err = w.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: close writer: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close temp: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("snapshot: rename into place: %w", err)
	}
	return nil
}

// Load reads the snapshot back. A missing file yields ErrNotFound with
// an actionable message; a file that is not a parquet snapshot with the
// required columns yields ErrCorrupt.
func (s *Store) Load() (*Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (run `mapisse refresh` first)", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("snapshot: open %s: %w", s.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("snapshot: stat %s: %w", s.path, err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	for _, col := range requiredColumns {
		if _, ok := pf.Schema().Lookup(col); !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", ErrCorrupt, s.path, col)
		}
	}

	records, err := parquet.ReadFile[Record](s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return &Snapshot{Records: records, FetchedAt: info.ModTime().UTC()}, nil
}
