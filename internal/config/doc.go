// Package config loads, normalizes, and validates guessmedia configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GUESSMEDIA_MUSICBRAINZ_URL. Scoring weights, the MusicBrainz endpoint, the
// evidence store backend and logging all come from one Config value.
package config
