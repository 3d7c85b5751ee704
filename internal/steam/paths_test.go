package steam

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSteamDir_FirstExistingCandidateWins(t *testing.T) {
	tmp := t.TempDir()
	first := filepath.Join(tmp, "missing")
	second := filepath.Join(tmp, "steam-a")
	third := filepath.Join(tmp, "steam-b")
	for _, d := range []string{second, third} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	p := NewPaths([]string{first, second, third}, nil, quietLogger())
	dir, err := p.SteamDir()
	if err != nil {
		t.Fatalf("SteamDir: %v", err)
	}
	if dir != second {
		t.Errorf("SteamDir = %q, want %q", dir, second)
	}
}

func TestSteamDir_CachedAcrossProbes(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "steam")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	p := NewPaths([]string{dir}, nil, quietLogger())
	if _, err := p.SteamDir(); err != nil {
		t.Fatal(err)
	}

	// Removing the directory must not invalidate the cached result.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	got, err := p.SteamDir()
	if err != nil || got != dir {
		t.Errorf("cached SteamDir = %q, %v", got, err)
	}
}

func TestSteamDir_NoCandidates(t *testing.T) {
	p := NewPaths([]string{filepath.Join(t.TempDir(), "nope")}, nil, quietLogger())
	if _, err := p.SteamDir(); !errors.Is(err, ErrSteamNotFound) {
		t.Fatalf("err = %v, want ErrSteamNotFound", err)
	}
}

func TestSteamToolsExe_RecursiveSearch(t *testing.T) {
	base := t.TempDir()
	nested := filepath.Join(base, "app", "bin")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	exe := filepath.Join(nested, "SteamTools.exe")
	if err := os.WriteFile(exe, []byte("MZ"), 0o755); err != nil {
		t.Fatal(err)
	}

	p := NewPaths(nil, []string{base}, quietLogger())
	got, err := p.SteamToolsExe()
	if err != nil {
		t.Fatalf("SteamToolsExe: %v", err)
	}
	if got != exe {
		t.Errorf("SteamToolsExe = %q, want %q", got, exe)
	}
}

func TestSteamToolsExe_Missing(t *testing.T) {
	p := NewPaths(nil, []string{t.TempDir()}, quietLogger())
	if _, err := p.SteamToolsExe(); !errors.Is(err, ErrSteamToolsNotFound) {
		t.Fatalf("err = %v, want ErrSteamToolsNotFound", err)
	}
}

func TestDestinationDirs(t *testing.T) {
	tmp := t.TempDir()
	steamDir := filepath.Join(tmp, "Steam")
	if err := os.MkdirAll(steamDir, 0o755); err != nil {
		t.Fatal(err)
	}

	p := NewPaths([]string{steamDir}, nil, quietLogger())
	plugin, err := p.PluginDir()
	if err != nil {
		t.Fatal(err)
	}
	if plugin != filepath.Join(steamDir, "config", "stplug-in") {
		t.Errorf("PluginDir = %q", plugin)
	}
	depot, err := p.DepotCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if depot != filepath.Join(steamDir, "depotcache") {
		t.Errorf("DepotCacheDir = %q", depot)
	}
}

func TestKillCommand(t *testing.T) {
	name, args := killCommand()
	if name == "" || len(args) == 0 {
		t.Fatalf("killCommand = %q %v", name, args)
	}
}
