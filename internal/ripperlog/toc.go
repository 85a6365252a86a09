package ripperlog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Pregap is the lead-in, in sectors, that precedes the first track on every
// audio CD. Log tables report sectors relative to it.
const Pregap = 150

// TOC is a disc table of contents in MusicBrainz disc id addressing.
type TOC struct {
	Leadout int
	Offsets []int
}

// TrackCount returns the number of tracks on the disc.
func (t TOC) TrackCount() int {
	return len(t.Offsets)
}

// Numbers returns the query fields in order: first track, track count,
// lead-out offset, then one offset per track.
func (t TOC) Numbers() []int {
	numbers := make([]int, 0, 3+len(t.Offsets))
	numbers = append(numbers, 1, len(t.Offsets), t.Leadout)
	return append(numbers, t.Offsets...)
}

// String renders the TOC as the space separated query accepted by the
// MusicBrainz discid endpoint, e.g. "1 3 1151 150 400 700".
func (t TOC) String() string {
	numbers := t.Numbers()
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

// IsZero reports whether t holds no tracks.
func (t TOC) IsZero() bool {
	return len(t.Offsets) == 0
}

var errTrackSequence = errors.New("track numbers are not 1..n in order")

// Canonicalize folds table rows into a TOC. Rows must be numbered exactly
// 1, 2, ..., n in the order given; anything else, including no rows at all,
// returns an error wrapping ErrNoTOC.
func Canonicalize(entries []Entry) (TOC, error) {
	if len(entries) == 0 {
		return TOC{}, fmt.Errorf("%w: no track rows", ErrNoTOC)
	}
	offsets := make([]int, len(entries))
	for i, entry := range entries {
		if entry.Track != i+1 {
			return TOC{}, fmt.Errorf("%w: %w: position %d holds track %d", ErrNoTOC, errTrackSequence, i+1, entry.Track)
		}
		if entry.StartSector < 0 || entry.StartSector > math.MaxInt-Pregap {
			return TOC{}, fmt.Errorf("%w: track %d start sector %d out of range", ErrNoTOC, entry.Track, entry.StartSector)
		}
		offsets[i] = entry.StartSector + Pregap
	}
	last := entries[len(entries)-1].EndSector
	if last < 0 || last > math.MaxInt-Pregap-1 {
		return TOC{}, fmt.Errorf("%w: end sector %d out of range", ErrNoTOC, last)
	}
	return TOC{Leadout: last + Pregap + 1, Offsets: offsets}, nil
}

// ParseTOC reads the track table from src and canonicalizes it.
func ParseTOC(src LineSource) (TOC, error) {
	var entries []Entry
	for entry, err := range Entries(src) {
		if err != nil {
			return TOC{}, fmt.Errorf("%w: %w", ErrNoTOC, err)
		}
		entries = append(entries, entry)
	}
	return Canonicalize(entries)
}
