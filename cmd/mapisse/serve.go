package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arnoldlayne0/mapisse/server"
	"github.com/arnoldlayne0/mapisse/snapshot"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the snapshot to the display shell over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		snap, err := snapshot.NewStore(cfg.Snapshot).Load()
		if err != nil {
			return err
		}
		slog.Info("serve: snapshot loaded",
			"path", cfg.Snapshot,
			"paintings", len(snap.Records),
			"fetched_at", snap.FetchedAt)

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           server.New(snap, slog.Default()).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		errCh := make(chan error, 1)
		go func() {
			slog.Info("serve: listening", "addr", cfg.Server.Addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
		case <-ctx.Done():
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("serve: shutdown: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
