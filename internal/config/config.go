package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Weights contains the penalty weights applied by the medium distance scorer.
type Weights struct {
	MediaWeight   float64 `toml:"media_weight" json:"media_weight"`
	AlbumIDWeight float64 `toml:"album_id_weight" json:"album_id_weight"`
}

// MusicBrainz contains configuration for the release lookup service.
type MusicBrainz struct {
	BaseURL           string  `toml:"base_url" json:"base_url"`
	UserAgent         string  `toml:"user_agent" json:"user_agent"`
	TimeoutSeconds    int     `toml:"timeout_seconds" json:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second" json:"requests_per_second"`
}

// Evidence contains configuration for the per-directory log evidence cache.
type Evidence struct {
	Backend      string `toml:"backend" json:"backend"`             // "memory" or "sqlite"
	LogExtension string `toml:"log_extension" json:"log_extension"` // matched case-insensitively
}

// Probe contains configuration for audio item probing.
type Probe struct {
	FFprobeBinary string `toml:"ffprobe_binary" json:"ffprobe_binary"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" json:"format"`
	Level  string `toml:"level" json:"level"`
	File   string `toml:"file" json:"file"`
}

// Config encapsulates all configuration values for guessmedia.
//
// Configuration sections by subsystem:
//   - Weights: penalty weights for the medium and album id buckets
//   - MusicBrainz: TOC and release lookups
//   - Evidence: log evidence cache backend and log file extension
//   - Probe: ffprobe binary used to read bit depth and sample rate
//   - Logging: log format, level, and optional log file
type Config struct {
	Weights     Weights     `toml:"weights" json:"weights"`
	MusicBrainz MusicBrainz `toml:"musicbrainz" json:"musicbrainz"`
	Evidence    Evidence    `toml:"evidence" json:"evidence"`
	Probe       Probe       `toml:"probe" json:"probe"`
	Logging     Logging     `toml:"logging" json:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigRelativeLocation)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// MusicBrainzTimeout returns the HTTP timeout for MusicBrainz requests.
func (c *Config) MusicBrainzTimeout() time.Duration {
	return time.Duration(c.MusicBrainz.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
