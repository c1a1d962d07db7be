// Package pipeline orchestrates the two-phase Wikidata refresh: one
// ranking query for the top painters, then one detail query per painter,
// strictly sequential to respect the endpoint's rate policy.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arnoldlayne0/mapisse/journal"
	"github.com/arnoldlayne0/mapisse/snapshot"
	"github.com/arnoldlayne0/mapisse/wikidata"
)

// Executor runs a SPARQL query. *wikidata.Client satisfies it; tests
// substitute a stub.
type Executor interface {
	Execute(ctx context.Context, query string) ([]wikidata.Binding, error)
}

// Progress is invoked before each per-painter fetch with its 1-based
// index, the painter total, and the painter's name.
type Progress func(index, total int, painter string)

// Config configures a refresh.
type Config struct {
	// TopPainters is the phase-1 result budget. Default: 250.
	TopPainters int
	// RequestDelay is the pause before each per-painter call except the
	// first. Zero disables pacing.
	RequestDelay time.Duration
}

func (c *Config) defaults() {
	if c.TopPainters <= 0 {
		c.TopPainters = 250
	}
}

// Pipeline drives a refresh run.
type Pipeline struct {
	client   Executor
	cfg      Config
	logger   *slog.Logger
	progress Progress
	journal  *journal.Store
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithProgress sets the per-painter progress callback.
func WithProgress(fn Progress) Option {
	return func(p *Pipeline) { p.progress = fn }
}

// WithJournal records run and per-painter outcomes to the given store.
func WithJournal(j *journal.Store) Option {
	return func(p *Pipeline) { p.journal = j }
}

// New creates a Pipeline around the given query executor.
func New(client Executor, cfg Config, opts ...Option) *Pipeline {
	cfg.defaults()
	p := &Pipeline{
		client:   client,
		cfg:      cfg,
		logger:   slog.Default(),
		progress: func(int, int, string) {},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Refresh fetches the full artwork table.
//
// A phase-1 failure is fatal: no meaningful partial result exists. In
// phase 2 a painter's failure is logged and skipped; it never aborts the
// run. Cancellation stops the loop between painters. When any painter
// failed or the run was cancelled, the accumulated snapshot is returned
// together with a *PartialError; the caller decides whether to persist it.
func (p *Pipeline) Refresh(ctx context.Context) (*snapshot.Snapshot, error) {
	rows, err := p.client.Execute(ctx, wikidata.TopPainters(p.cfg.TopPainters))
	if err != nil {
		return nil, fmt.Errorf("pipeline: top painters: %w", err)
	}
	painters := wikidata.ParsePainters(rows)
	p.logger.Info("pipeline: painter list fetched", "painters", len(painters))

	var runID int64
	if p.journal != nil {
		if runID, err = p.journal.BeginRun(time.Now()); err != nil {
			p.logger.Warn("pipeline: journal disabled for this run", "error", err)
			p.journal = nil
		}
	}

	seen := make(map[string]struct{})
	var records []snapshot.Record
	var failed []string
	canceled := false

	for i, painter := range painters {
		if i > 0 && p.cfg.RequestDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(p.cfg.RequestDelay):
			}
		}
		if ctx.Err() != nil {
			canceled = true
			p.logger.Warn("pipeline: refresh cancelled", "completed", i, "total", len(painters))
			break
		}

		p.progress(i+1, len(painters), painter.Name)

		detail, err := p.client.Execute(ctx, wikidata.PaintingsByPainter(painter.ID))
		if err != nil {
			if ctx.Err() != nil {
				canceled = true
				p.logger.Warn("pipeline: refresh cancelled", "completed", i, "total", len(painters))
				break
			}
			p.logger.Warn("pipeline: painter fetch failed",
				"painter", painter.Name, "index", i+1, "error", err)
			failed = append(failed, painter.Name)
			p.recordFetch(runID, painter.Name, 0, err)
			continue
		}

		added := 0
		for _, b := range detail {
			rec, ok := wikidata.NormalizeRow(painter.Name, b)
			if !ok {
				continue
			}
			if _, dup := seen[rec.Key()]; dup {
				continue
			}
			seen[rec.Key()] = struct{}{}
			records = append(records, rec)
			added++
		}
		p.recordFetch(runID, painter.Name, added, nil)
	}

	snap := snapshot.New(records)
	if p.journal != nil {
		if err := p.journal.FinishRun(runID, len(records), len(failed), time.Now()); err != nil {
			p.logger.Warn("pipeline: journal finish failed", "error", err)
		}
	}

	if canceled || len(failed) > 0 {
		return snap, &PartialError{
			Snapshot: snap,
			Failed:   failed,
			Total:    len(painters),
			Canceled: canceled,
		}
	}
	return snap, nil
}

func (p *Pipeline) recordFetch(runID int64, painter string, rows int, fetchErr error) {
	if p.journal == nil {
		return
	}
	if err := p.journal.RecordFetch(runID, painter, rows, fetchErr); err != nil {
		p.logger.Warn("pipeline: journal record failed", "painter", painter, "error", err)
	}
}
