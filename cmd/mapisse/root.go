package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arnoldlayne0/mapisse/config"
)

var (
	cfgPath  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "mapisse",
	Short:         "Local snapshot of paintings, painters and museums from Wikidata",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(*cobra.Command, []string) {
		var lvl slog.Level
		switch logLevel {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		default:
			lvl = slog.LevelInfo
		}
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.LoadFile(cfgPath)
}
