package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the in-memory representation of ~/.steamadd/steamadd.yaml.
//
// The file is optional: steamadd ships with working defaults for every field
// and only reads the file to let users point at a different content bucket or
// at non-standard Steam/SteamTools install locations. steamadd never writes it.
type Config struct {
	BucketURL      string        `yaml:"bucket_url,omitempty"`
	StoreURL       string        `yaml:"store_url,omitempty"`
	APIURL         string        `yaml:"api_url,omitempty"`
	StagingDir     string        `yaml:"staging_dir,omitempty"`
	SteamDirs      []string      `yaml:"steam_dirs,omitempty"`
	SteamToolsDirs []string      `yaml:"steamtools_dirs,omitempty"`
	HTTPTimeout    time.Duration `yaml:"http_timeout,omitempty"`
}

// SteamAddDir returns the absolute path to ~/.steamadd/.
func SteamAddDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".steamadd"), nil
}

// ConfigPath returns the absolute path to ~/.steamadd/steamadd.yaml.
func ConfigPath() (string, error) {
	dir, err := SteamAddDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "steamadd.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the compiled-in defaults used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		BucketURL:      "https://pub-5b6d3b7c03fd4ac1afb5bd3017850e20.r2.dev",
		StoreURL:       "https://store.steampowered.com",
		APIURL:         "https://api.steampowered.com",
		StagingDir:     "downloads",
		SteamDirs:      defaultSteamDirs(),
		SteamToolsDirs: defaultSteamToolsDirs(),
		HTTPTimeout:    15 * time.Second,
	}
}

func defaultSteamDirs() []string {
	var dirs []string
	if pf := os.Getenv("ProgramFiles(x86)"); pf != "" {
		dirs = append(dirs, filepath.Join(pf, "Steam"))
	}
	if pf := os.Getenv("ProgramFiles"); pf != "" {
		dirs = append(dirs, filepath.Join(pf, "Steam"))
	}
	dirs = append(dirs,
		`C:\Program Files (x86)\Steam`,
		`C:\Program Files\Steam`,
	)
	return dirs
}

func defaultSteamToolsDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs,
			filepath.Join(home, "AppData", "Local", "SteamTools"),
			filepath.Join(home, "AppData", "Roaming", "SteamTools"),
		)
	}
	dirs = append(dirs,
		`C:\Program Files\SteamTools`,
		`C:\Program Files (x86)\SteamTools`,
	)
	return dirs
}

// Load reads ~/.steamadd/steamadd.yaml if it exists and layers it over the
// defaults. A missing file is not an error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a specific config file, layering it over the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	// Expand ~ in user-supplied paths at load time.
	for i, d := range cfg.SteamDirs {
		if cfg.SteamDirs[i], err = ExpandPath(d); err != nil {
			return nil, err
		}
	}
	for i, d := range cfg.SteamToolsDirs {
		if cfg.SteamToolsDirs[i], err = ExpandPath(d); err != nil {
			return nil, err
		}
	}
	if cfg.StagingDir, err = ExpandPath(cfg.StagingDir); err != nil {
		return nil, err
	}
	return cfg, nil
}
