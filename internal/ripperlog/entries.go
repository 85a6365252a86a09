package ripperlog

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
)

// Entry is one row of a ripper log's track table.
type Entry struct {
	Track       int
	StartTime   string
	Length      string
	StartSector int
	EndSector   int
}

var (
	// Five pipe-separated columns; only the column count and order matter.
	tableHeaderPattern = regexp.MustCompile(`^\s*.+\s+\|\s+.+\s+\|\s+.+\s+\|\s+.+\s+\|\s+.+\s*$`)
	tableRowPattern    = regexp.MustCompile(`^\s*(\d+)\s*\|\s*([0-9:.]+)\s*\|\s*([0-9:.]+)\s*\|\s*(\d+)\s*\|\s*(\d+)\s*$`)
)

// Entries returns the rows of the first track table found in src.
//
// Lines are skipped until one looks like the table header; the separator line
// after it is discarded and every following line that matches the row layout
// is yielded. The sequence ends at the first non-matching line. A source
// without a header yields nothing after being read to the end.
//
// The sequence consumes src and is therefore single-use. A row whose numeric
// fields do not fit in an int yields a non-nil error and ends the sequence.
func Entries(src LineSource) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		if !skipToTable(src) {
			return
		}
		for {
			line, ok := src.Next()
			if !ok {
				return
			}
			m := tableRowPattern.FindStringSubmatch(line)
			if m == nil {
				return
			}
			entry, err := parseRow(m)
			if err != nil {
				yield(Entry{}, fmt.Errorf("track row %q: %w", line, err))
				return
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

func skipToTable(src LineSource) bool {
	for {
		line, ok := src.Next()
		if !ok {
			return false
		}
		if tableHeaderPattern.MatchString(line) {
			src.Next() // separator
			return true
		}
	}
}

func parseRow(m []string) (Entry, error) {
	track, err := strconv.Atoi(m[1])
	if err != nil {
		return Entry{}, err
	}
	start, err := strconv.Atoi(m[4])
	if err != nil {
		return Entry{}, err
	}
	end, err := strconv.Atoi(m[5])
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Track:       track,
		StartTime:   m[2],
		Length:      m[3],
		StartSector: start,
		EndSector:   end,
	}, nil
}
