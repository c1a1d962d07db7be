package snapshot

import "errors"

// ErrNotFound is returned by Load when no snapshot file exists. The
// wrapped message tells the caller how to produce one.
var ErrNotFound = errors.New("snapshot: not found")

// ErrCorrupt is returned by Load when a file exists but is not a
// readable snapshot (unparseable, or missing required columns).
var ErrCorrupt = errors.New("snapshot: corrupt")
