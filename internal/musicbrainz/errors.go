package musicbrainz

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates MusicBrainz has no entity for the requested id.
var ErrNotFound = errors.New("musicbrainz: not found")

// UnavailableError indicates a transient failure (rate-limited, timeout, server error).
type UnavailableError struct {
	Cause      error
	RetryAfter time.Duration
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("musicbrainz unavailable: %v", e.Cause)
}

func (e *UnavailableError) Unwrap() error { return e.Cause }
