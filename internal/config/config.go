// Package config loads lem.toml, the optional per-project settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"lem/internal/weave"
)

// FileName is the name of the settings file searched for by Discover.
const FileName = "lem.toml"

// Config mirrors lem.toml.
type Config struct {
	Scan  ScanConfig  `toml:"scan"`
	Weave WeaveConfig `toml:"weave"`
	Strip StripConfig `toml:"strip"`
	Cache CacheConfig `toml:"cache"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type ScanConfig struct {
	Nested     bool     `toml:"nested"`
	Extensions []string `toml:"extensions"`
}

type WeaveConfig struct {
	Language    string   `toml:"language"`
	SkipMarkers []string `toml:"skip_markers"`
}

type StripConfig struct {
	KeepLines bool `toml:"keep_lines"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir overrides the cache location; empty means $XDG_CACHE_HOME/lem.
	Dir string `toml:"dir"`
}

// DefaultExtensions are the file extensions scanned in directories by default.
var DefaultExtensions = []string{".c", ".h", ".cc", ".cpp", ".hpp", ".go", ".java", ".kt", ".js", ".ts", ".rs", ".swift"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			Extensions: append([]string(nil), DefaultExtensions...),
		},
		Weave: WeaveConfig{
			SkipMarkers: append([]string(nil), weave.DefaultSkipMarkers...),
		},
	}
}

// Find walks up from startDir looking for lem.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path on top of the defaults. Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads the nearest lem.toml above startDir, or returns the defaults when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	for i, ext := range c.Scan.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return fmt.Errorf("[scan].extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Scan.Extensions[i] = ext
	}
	return nil
}

// MatchExtension reports whether path has one of exts, compared case-insensitively.
// An empty list matches every path.
func MatchExtension(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
