package placement

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/remixware/steamadd/internal/steam"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	steamDir := filepath.Join(t.TempDir(), "Steam")
	if err := os.MkdirAll(steamDir, 0o755); err != nil {
		t.Fatal(err)
	}
	paths := steam.NewPaths([]string{steamDir}, nil, quietLogger())
	return NewEngine(paths, quietLogger()), steamDir
}

func writeStaged(t *testing.T, staging string, name, content string) {
	t.Helper()
	path := filepath.Join(staging, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		want Class
	}{
		{"a.lua", ClassPluginScript},
		{"B.LUA", ClassPluginScript},
		{"token.st", ClassCompanionToken},
		{"123_456.manifest", ClassManifest},
		{"readme.txt", ClassUnknown},
		{"noext", ClassUnknown},
	}
	for _, c := range cases {
		if got := Classify(c.name); got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestPlace_CopiesByClassAndRemovesStaging(t *testing.T) {
	engine, steamDir := newTestEngine(t)
	staging := filepath.Join(t.TempDir(), "downloads")
	writeStaged(t, staging, "a.lua", "-- plugin")
	writeStaged(t, staging, "nested/b.manifest", "manifest bytes")
	writeStaged(t, staging, "c.st", "token")

	res, err := engine.Place(staging, nil)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if res.NothingToCopy {
		t.Fatal("NothingToCopy set with payload present")
	}
	if res.Plugins != 2 || res.Manifests != 1 || res.Failed != 0 {
		t.Errorf("result = %+v", res)
	}

	for _, want := range []string{
		filepath.Join(steamDir, "config", "stplug-in", "a.lua"),
		filepath.Join(steamDir, "config", "stplug-in", "c.st"),
		filepath.Join(steamDir, "depotcache", "b.manifest"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("missing %s: %v", want, err)
		}
	}

	if _, err := os.Stat(staging); !os.IsNotExist(err) {
		t.Error("staging dir still exists after placement")
	}
}

func TestPlace_OverwritesExistingFiles(t *testing.T) {
	engine, steamDir := newTestEngine(t)
	dest := filepath.Join(steamDir, "config", "stplug-in")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dest, "a.lua"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	staging := filepath.Join(t.TempDir(), "downloads")
	writeStaged(t, staging, "a.lua", "new")

	if _, err := engine.Place(staging, nil); err != nil {
		t.Fatalf("Place: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dest, "a.lua"))
	if err != nil || string(got) != "new" {
		t.Errorf("overwrite: got %q, %v", got, err)
	}
}

func TestPlace_NothingToCopy(t *testing.T) {
	engine, steamDir := newTestEngine(t)
	staging := filepath.Join(t.TempDir(), "downloads")
	writeStaged(t, staging, "readme.txt", "nothing useful")

	res, err := engine.Place(staging, nil)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if !res.NothingToCopy {
		t.Fatal("NothingToCopy not set")
	}
	// Destinations untouched, staging left in place.
	if _, err := os.Stat(filepath.Join(steamDir, "config")); !os.IsNotExist(err) {
		t.Error("destination created despite empty payload")
	}
	if _, err := os.Stat(staging); err != nil {
		t.Error("staging removed despite nothing-to-copy")
	}
}

func TestPlace_SteamMissing(t *testing.T) {
	paths := steam.NewPaths([]string{filepath.Join(t.TempDir(), "nope")}, nil, quietLogger())
	engine := NewEngine(paths, quietLogger())
	staging := filepath.Join(t.TempDir(), "downloads")
	writeStaged(t, staging, "a.lua", "-- plugin")

	if _, err := engine.Place(staging, nil); err == nil {
		t.Fatal("expected error when steam installation is missing")
	}
}

func TestPlace_KeepStaging(t *testing.T) {
	engine, _ := newTestEngine(t)
	engine.KeepStaging = true
	staging := filepath.Join(t.TempDir(), "downloads")
	writeStaged(t, staging, "a.lua", "-- plugin")

	if _, err := engine.Place(staging, nil); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if _, err := os.Stat(staging); err != nil {
		t.Error("staging removed despite KeepStaging")
	}
}
