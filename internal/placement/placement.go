// Package placement classifies extracted bundle files by extension and copies
// them into the SteamTools destinations under the Steam root.
package placement

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/remixware/steamadd/internal/steam"
)

// Class tags a staged file by what it is, derived solely from its extension.
type Class int

const (
	ClassUnknown Class = iota
	ClassPluginScript    // *.lua
	ClassCompanionToken  // *.st
	ClassManifest        // *.manifest
)

// Classify maps a filename to its placement class.
func Classify(path string) Class {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		return ClassPluginScript
	case ".st":
		return ClassCompanionToken
	case ".manifest":
		return ClassManifest
	default:
		return ClassUnknown
	}
}

// Result summarizes a placement run.
type Result struct {
	// NothingToCopy is set when the staging tree held no classifiable files;
	// in that case no destination was touched and staging was left in place.
	NothingToCopy bool
	Plugins       int
	Manifests     int
	Failed        int
}

// Engine copies staged bundle files into the Steam directories.
type Engine struct {
	Paths *steam.Paths
	Log   *logrus.Logger

	// KeepStaging leaves the staging directory in place after a successful
	// placement instead of deleting it.
	KeepStaging bool
}

// NewEngine returns an Engine placing into the directories resolved by paths.
func NewEngine(paths *steam.Paths, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{Paths: paths, Log: log}
}

// Place scans stagingDir for plugin scripts, companion tokens, and manifests,
// then copies them into the plugin and depotcache destinations by file name,
// overwriting existing files. Per-file copy failures are logged and counted
// but do not abort the batch. On completion the staging directory is deleted
// (failure to delete is logged, not fatal).
func (e *Engine) Place(stagingDir string, notify func(string)) (Result, error) {
	if notify == nil {
		notify = func(string) {}
	}

	var plugins, manifests []string
	err := filepath.WalkDir(stagingDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		switch Classify(path) {
		case ClassPluginScript, ClassCompanionToken:
			plugins = append(plugins, path)
		case ClassManifest:
			manifests = append(manifests, path)
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("cannot scan staging dir: %w", err)
	}

	if len(plugins) == 0 && len(manifests) == 0 {
		notify("no files found to copy")
		return Result{NothingToCopy: true}, nil
	}

	pluginDir, err := e.Paths.PluginDir()
	if err != nil {
		return Result{}, err
	}
	depotDir, err := e.Paths.DepotCacheDir()
	if err != nil {
		return Result{}, err
	}
	for _, dir := range []string{pluginDir, depotDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("cannot create destination %s: %w", dir, err)
		}
	}

	var res Result
	if len(plugins) > 0 {
		notify(fmt.Sprintf("copying %d plugin file(s) to config/stplug-in", len(plugins)))
		res.Plugins, res.Failed = e.copyAll(plugins, pluginDir, notify, res.Failed)
	}
	if len(manifests) > 0 {
		notify(fmt.Sprintf("copying %d manifest file(s) to depotcache", len(manifests)))
		res.Manifests, res.Failed = e.copyAll(manifests, depotDir, notify, res.Failed)
	}

	if !e.KeepStaging {
		if err := os.RemoveAll(stagingDir); err != nil {
			e.Log.WithError(err).Warn("cannot delete staging dir")
			notify(fmt.Sprintf("could not delete staging dir: %v", err))
		} else {
			notify("deleted staging files")
		}
	}
	return res, nil
}

func (e *Engine) copyAll(files []string, destDir string, notify func(string), failed int) (copied, totalFailed int) {
	totalFailed = failed
	for _, src := range files {
		dst := filepath.Join(destDir, filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			e.Log.WithError(err).WithField("file", src).Warn("copy failed")
			notify(fmt.Sprintf("failed: %s: %v", filepath.Base(src), err))
			totalFailed++
			continue
		}
		copied++
	}
	return copied, totalFailed
}

// copyFile copies src to dst, overwriting dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return nil
}
