package config

const (
	defaultMediaWeight            = 1.0
	defaultAlbumIDWeight          = 1.0
	defaultMusicBrainzBaseURL     = "https://musicbrainz.org/ws/2"
	defaultMusicBrainzUserAgent   = "guessmedia/dev"
	defaultMusicBrainzTimeout     = 10
	defaultMusicBrainzRatePerSec  = 1.0
	defaultEvidenceBackend        = BackendMemory
	defaultEvidenceLogExtension   = ".log"
	defaultFFprobeBinary          = "ffprobe"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultConfigRelativeLocation = "~/.config/guessmedia/config.toml"
	projectConfigName             = "guessmedia.toml"
)

// Evidence store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Weights: Weights{
			MediaWeight:   defaultMediaWeight,
			AlbumIDWeight: defaultAlbumIDWeight,
		},
		MusicBrainz: MusicBrainz{
			BaseURL:           defaultMusicBrainzBaseURL,
			UserAgent:         defaultMusicBrainzUserAgent,
			TimeoutSeconds:    defaultMusicBrainzTimeout,
			RequestsPerSecond: defaultMusicBrainzRatePerSec,
		},
		Evidence: Evidence{
			Backend:      defaultEvidenceBackend,
			LogExtension: defaultEvidenceLogExtension,
		},
		Probe: Probe{
			FFprobeBinary: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
