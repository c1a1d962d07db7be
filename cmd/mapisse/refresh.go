package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arnoldlayne0/mapisse/journal"
	"github.com/arnoldlayne0/mapisse/pipeline"
	"github.com/arnoldlayne0/mapisse/snapshot"
	"github.com/arnoldlayne0/mapisse/wikidata"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch artwork data from Wikidata and save the snapshot",
	Long: `Fetch the top painters and their museum-held paintings from the
Wikidata SPARQL endpoint, then replace the local snapshot file.

Individual painter failures are skipped; the partial snapshot is still
saved and the gaps are reported. Only a failure of the initial painter
ranking query aborts the refresh.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		client := wikidata.NewClient(wikidata.Config{
			Endpoint:    cfg.Fetch.Endpoint,
			UserAgent:   cfg.Fetch.UserAgent,
			Timeout:     cfg.Fetch.Timeout,
			MaxAttempts: cfg.Fetch.MaxAttempts,
			Cooldown:    cfg.Fetch.Cooldown,
		})

		opts := []pipeline.Option{
			pipeline.WithProgress(func(i, total int, painter string) {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s\n", i, total, painter)
			}),
		}
		jrnl, err := journal.Open(cfg.Journal)
		if err != nil {
			slog.Warn("refresh: journal unavailable, continuing without", "error", err)
		} else {
			defer jrnl.Close()
			opts = append(opts, pipeline.WithJournal(jrnl))
		}

		p := pipeline.New(client, pipeline.Config{
			TopPainters:  cfg.Fetch.TopPainters,
			RequestDelay: cfg.Fetch.RequestDelay,
		}, opts...)

		snap, err := p.Refresh(ctx)
		var partial *pipeline.PartialError
		switch {
		case err == nil:
		case errors.As(err, &partial):
			// Persist what we have; the gaps are surfaced below.
			snap = partial.Snapshot
			fmt.Fprintf(cmd.OutOrStdout(), "warning: %v\n", partial)
			for _, name := range partial.Failed {
				fmt.Fprintf(cmd.OutOrStdout(), "  failed: %s\n", name)
			}
		default:
			return fmt.Errorf("refresh: %w", err)
		}

		store := snapshot.NewStore(cfg.Snapshot)
		if err := store.Save(snap); err != nil {
			return fmt.Errorf("refresh: %w", err)
		}

		withCoords := snap.WithCoords()
		pct := 0.0
		if len(snap.Records) > 0 {
			pct = 100 * float64(withCoords) / float64(len(snap.Records))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", cfg.Snapshot)
		fmt.Fprintf(cmd.OutOrStdout(), "painters: %d, paintings: %d, museums: %d\n",
			len(snap.Painters()), len(snap.Records), len(snap.Museums()))
		fmt.Fprintf(cmd.OutOrStdout(), "with coordinates: %d (%.1f%%)\n", withCoords, pct)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
