package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	def := DefaultConfig()
	if cfg.BucketURL != def.BucketURL {
		t.Errorf("BucketURL = %q, want default %q", cfg.BucketURL, def.BucketURL)
	}
	if cfg.StoreURL != def.StoreURL || cfg.APIURL != def.APIURL {
		t.Errorf("store/api URLs not defaulted: %q %q", cfg.StoreURL, cfg.APIURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
}

func TestLoadFrom_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steamadd.yaml")
	body := "bucket_url: https://example.test/bucket\nsteam_dirs:\n  - /opt/steam\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.BucketURL != "https://example.test/bucket" {
		t.Errorf("BucketURL = %q", cfg.BucketURL)
	}
	if len(cfg.SteamDirs) != 1 || cfg.SteamDirs[0] != "/opt/steam" {
		t.Errorf("SteamDirs = %v", cfg.SteamDirs)
	}
	// Untouched fields keep their defaults.
	if cfg.StoreURL != DefaultConfig().StoreURL {
		t.Errorf("StoreURL lost its default: %q", cfg.StoreURL)
	}
	if len(cfg.SteamToolsDirs) == 0 {
		t.Error("SteamToolsDirs should keep defaults")
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steamadd.yaml")
	if err := os.WriteFile(path, []byte("bucket_url: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	got, err := ExpandPath("~/x")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "x") {
		t.Errorf("ExpandPath(~/x) = %q", got)
	}
	got, _ = ExpandPath("/abs/x")
	if got != "/abs/x" {
		t.Errorf("ExpandPath(/abs/x) = %q", got)
	}
}
