// Package steam locates the Steam and SteamTools installations and controls
// their processes.
package steam

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// ErrSteamNotFound is returned when no candidate Steam directory exists.
var ErrSteamNotFound = errors.New("steam installation not found")

// ErrSteamToolsNotFound is returned when SteamTools.exe cannot be located.
var ErrSteamToolsNotFound = errors.New("steamtools executable not found")

const steamToolsExeName = "SteamTools.exe"

// Paths resolves install locations by probing fixed candidate lists in order;
// the first existing path wins. Results are cached for the process lifetime
// and never re-probed once found.
type Paths struct {
	steamCandidates []string
	toolsCandidates []string
	log             *logrus.Logger

	steamDir string
	toolsExe string
}

// NewPaths returns a Paths probing the given candidate directories.
func NewPaths(steamDirs, steamToolsDirs []string, log *logrus.Logger) *Paths {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Paths{
		steamCandidates: steamDirs,
		toolsCandidates: steamToolsDirs,
		log:             log,
	}
}

// SteamDir returns the Steam installation directory.
func (p *Paths) SteamDir() (string, error) {
	if p.steamDir != "" {
		return p.steamDir, nil
	}
	for _, dir := range p.steamCandidates {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		p.steamDir = dir
		p.log.WithField("dir", dir).Debug("steam directory resolved")
		return dir, nil
	}
	return "", ErrSteamNotFound
}

// SteamExe returns the path to the Steam executable inside the resolved
// installation directory.
func (p *Paths) SteamExe() (string, error) {
	dir, err := p.SteamDir()
	if err != nil {
		return "", err
	}
	exe := filepath.Join(dir, steamExeName())
	if _, err := os.Stat(exe); err != nil {
		return "", ErrSteamNotFound
	}
	return exe, nil
}

// SteamToolsExe returns the SteamTools executable, searching each candidate
// base directory recursively.
func (p *Paths) SteamToolsExe() (string, error) {
	if p.toolsExe != "" {
		return p.toolsExe, nil
	}
	for _, base := range p.toolsCandidates {
		if _, err := os.Stat(base); err != nil {
			continue
		}
		found := findFileNamed(base, steamToolsExeName)
		if found == "" {
			continue
		}
		p.toolsExe = found
		p.log.WithField("exe", found).Debug("steamtools executable resolved")
		return found, nil
	}
	return "", ErrSteamToolsNotFound
}

// PluginDir returns the SteamTools plugin destination under the Steam root.
func (p *Paths) PluginDir() (string, error) {
	dir, err := p.SteamDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config", "stplug-in"), nil
}

// DepotCacheDir returns the manifest destination under the Steam root.
func (p *Paths) DepotCacheDir() (string, error) {
	dir, err := p.SteamDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "depotcache"), nil
}

func steamExeName() string {
	if runtime.GOOS == "windows" {
		return "steam.exe"
	}
	return "steam"
}

// findFileNamed walks root and returns the first file with the given base
// name, or "" when none exists.
func findFileNamed(root, name string) string {
	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}
