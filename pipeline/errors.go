package pipeline

import (
	"fmt"

	"github.com/arnoldlayne0/mapisse/snapshot"
)

// PartialError reports a refresh that completed with gaps: some painters
// failed, or the run was cancelled between painters. It is a
// successful-with-caveats result, not a failure — Snapshot carries
// everything that was fetched and is worth persisting.
type PartialError struct {
	Snapshot *snapshot.Snapshot
	Failed   []string // painter names that yielded no data
	Total    int      // painters listed by phase 1
	Canceled bool
}

func (e *PartialError) Error() string {
	if e.Canceled {
		return fmt.Sprintf("refresh cancelled partway through %d painters", e.Total)
	}
	return fmt.Sprintf("refresh incomplete: %d of %d painters failed", len(e.Failed), e.Total)
}
