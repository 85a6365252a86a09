// Package musicbrainz resolves disc tables of contents and release ids
// against the MusicBrainz web service (ws/2, JSON).
//
// Requests are rate limited per client (MusicBrainz allows one request per
// second for anonymous callers) and identify themselves with the configured
// User-Agent. Failed requests are not retried here; callers decide how a
// failure degrades.
package musicbrainz
