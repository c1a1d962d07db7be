package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Snapshot != "data/artworks.parquet" {
		t.Errorf("snapshot path: got %q", cfg.Snapshot)
	}
	if cfg.Fetch.Cooldown != 30*time.Second {
		t.Errorf("cooldown: got %v", cfg.Fetch.Cooldown)
	}
	if cfg.Fetch.RequestDelay != 2*time.Second {
		t.Errorf("request delay: got %v", cfg.Fetch.RequestDelay)
	}
	if cfg.Fetch.TopPainters != 250 {
		t.Errorf("top painters: got %d", cfg.Fetch.TopPainters)
	}
	if cfg.Fetch.MaxAttempts != 5 {
		t.Errorf("max attempts: got %d", cfg.Fetch.MaxAttempts)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr: got %q", cfg.Server.Addr)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapisse.yaml")
	data := `
snapshot: /var/lib/mapisse/artworks.parquet
fetch:
  endpoint: http://localhost:9999/sparql
  user_agent: mapisse-dev/0
  max_attempts: 2
  top_painters: 10
server:
  addr: ":9090"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Snapshot != "/var/lib/mapisse/artworks.parquet" {
		t.Errorf("snapshot: got %q", cfg.Snapshot)
	}
	if cfg.Fetch.Endpoint != "http://localhost:9999/sparql" {
		t.Errorf("endpoint: got %q", cfg.Fetch.Endpoint)
	}
	if cfg.Fetch.MaxAttempts != 2 || cfg.Fetch.TopPainters != 10 {
		t.Errorf("fetch overrides: got %+v", cfg.Fetch)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr: got %q", cfg.Server.Addr)
	}
	// Unset fields keep their defaults.
	if cfg.Fetch.Cooldown != 30*time.Second {
		t.Errorf("cooldown default: got %v", cfg.Fetch.Cooldown)
	}
	if cfg.Journal != "data/journal.db" {
		t.Errorf("journal default: got %q", cfg.Journal)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file should error")
	}
}
