package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeMusicBrainz()
	c.normalizeEvidence()
	c.normalizeProbe()
	return c.normalizeLogging()
}

func (c *Config) normalizeMusicBrainz() {
	if value, ok := os.LookupEnv("GUESSMEDIA_MUSICBRAINZ_URL"); ok && strings.TrimSpace(value) != "" {
		c.MusicBrainz.BaseURL = value
	}
	c.MusicBrainz.BaseURL = strings.TrimRight(strings.TrimSpace(c.MusicBrainz.BaseURL), "/")
	if c.MusicBrainz.BaseURL == "" {
		c.MusicBrainz.BaseURL = defaultMusicBrainzBaseURL
	}
	c.MusicBrainz.UserAgent = strings.TrimSpace(c.MusicBrainz.UserAgent)
	if c.MusicBrainz.UserAgent == "" {
		c.MusicBrainz.UserAgent = defaultMusicBrainzUserAgent
	}
	if c.MusicBrainz.TimeoutSeconds == 0 {
		c.MusicBrainz.TimeoutSeconds = defaultMusicBrainzTimeout
	}
	if c.MusicBrainz.RequestsPerSecond == 0 {
		c.MusicBrainz.RequestsPerSecond = defaultMusicBrainzRatePerSec
	}
}

func (c *Config) normalizeEvidence() {
	c.Evidence.Backend = strings.ToLower(strings.TrimSpace(c.Evidence.Backend))
	if c.Evidence.Backend == "" {
		c.Evidence.Backend = defaultEvidenceBackend
	}
	ext := strings.ToLower(strings.TrimSpace(c.Evidence.LogExtension))
	if ext == "" {
		ext = defaultEvidenceLogExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Evidence.LogExtension = ext
}

func (c *Config) normalizeProbe() {
	c.Probe.FFprobeBinary = strings.TrimSpace(c.Probe.FFprobeBinary)
	if c.Probe.FFprobeBinary == "" {
		c.Probe.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		expanded, err := expandPath(strings.TrimSpace(c.Logging.File))
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
