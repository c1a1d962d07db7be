package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/arnoldlayne0/mapisse/journal"
	"github.com/arnoldlayne0/mapisse/snapshot"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a summary of the local snapshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		snap, err := snapshot.NewStore(cfg.Snapshot).Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "snapshot:    %s\n", cfg.Snapshot)
		fmt.Fprintf(out, "fetched at:  %s\n", snap.FetchedAt.Format(time.RFC3339))
		fmt.Fprintf(out, "paintings:   %d\n", len(snap.Records))
		fmt.Fprintf(out, "painters:    %d\n", len(snap.Painters()))
		fmt.Fprintf(out, "museums:     %d\n", len(snap.Museums()))
		fmt.Fprintf(out, "with coords: %d\n", snap.WithCoords())

		jrnl, err := journal.Open(cfg.Journal)
		if err != nil {
			slog.Debug("stats: journal unavailable", "error", err)
			return nil
		}
		defer jrnl.Close()
		run, err := jrnl.LastRun()
		if err != nil || run == nil {
			return nil
		}
		fmt.Fprintf(out, "last run:    #%d %s -> %s (%d records, %d painters failed)\n",
			run.ID,
			run.StartedAt.Format(time.RFC3339),
			run.FinishedAt.Format(time.RFC3339),
			run.Records, run.Failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
