package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWeights(); err != nil {
		return err
	}
	if err := c.validateMusicBrainz(); err != nil {
		return err
	}
	if err := c.validateEvidence(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateWeights() error {
	if !validWeight(c.Weights.MediaWeight) {
		return fmt.Errorf("weights.media_weight must be a finite number >= 0, got %v", c.Weights.MediaWeight)
	}
	if !validWeight(c.Weights.AlbumIDWeight) {
		return fmt.Errorf("weights.album_id_weight must be a finite number >= 0, got %v", c.Weights.AlbumIDWeight)
	}
	return nil
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}

func (c *Config) validateMusicBrainz() error {
	parsed, err := url.Parse(c.MusicBrainz.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("musicbrainz.base_url must be an absolute URL, got %q", c.MusicBrainz.BaseURL)
	}
	if c.MusicBrainz.TimeoutSeconds < 0 {
		return errors.New("musicbrainz.timeout_seconds must be positive")
	}
	if c.MusicBrainz.RequestsPerSecond < 0 {
		return errors.New("musicbrainz.requests_per_second must be positive")
	}
	return nil
}

func (c *Config) validateEvidence() error {
	switch c.Evidence.Backend {
	case BackendMemory, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("evidence.backend: unsupported value %q (want %q or %q)", c.Evidence.Backend, BackendMemory, BackendSQLite)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
