package ripperlog

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestCanonicalizeSequentialEntries(t *testing.T) {
	entries := []Entry{
		{Track: 1, StartSector: 0, EndSector: 299},
		{Track: 2, StartSector: 300, EndSector: 599},
		{Track: 3, StartSector: 600, EndSector: 1000},
	}
	toc, err := Canonicalize(entries)
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}
	if got, want := toc.String(), "1 3 1151 150 450 750"; got != want {
		t.Fatalf("toc = %q, want %q", got, want)
	}
	if toc.TrackCount() != 3 {
		t.Fatalf("track count = %d", toc.TrackCount())
	}
}

func TestCanonicalizeOffsetsFollowPregap(t *testing.T) {
	for n := 1; n <= 20; n++ {
		entries := make([]Entry, n)
		for i := range entries {
			entries[i] = Entry{Track: i + 1, StartSector: i * 1000, EndSector: i*1000 + 999}
		}
		toc, err := Canonicalize(entries)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		numbers := toc.Numbers()
		if numbers[0] != 1 || numbers[1] != n {
			t.Fatalf("n=%d: header = %v", n, numbers[:2])
		}
		if want := entries[n-1].EndSector + 151; numbers[2] != want {
			t.Fatalf("n=%d: leadout = %d, want %d", n, numbers[2], want)
		}
		for i, entry := range entries {
			if numbers[3+i] != entry.StartSector+150 {
				t.Fatalf("n=%d: offset %d = %d, want %d", n, i+1, numbers[3+i], entry.StartSector+150)
			}
		}
	}
}

func TestCanonicalizeRejectsNonSequentialTracks(t *testing.T) {
	tests := []struct {
		name   string
		tracks []int
	}{
		{"empty", nil},
		{"starts at zero", []int{0, 1, 2}},
		{"starts at two", []int{2, 3}},
		{"gap", []int{1, 2, 4}},
		{"duplicate", []int{1, 2, 2}},
		{"reversed", []int{3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := make([]Entry, len(tt.tracks))
			for i, track := range tt.tracks {
				entries[i] = Entry{Track: track, StartSector: i * 10, EndSector: i*10 + 9}
			}
			if _, err := Canonicalize(entries); !errors.Is(err, ErrNoTOC) {
				t.Fatalf("expected ErrNoTOC, got %v", err)
			}
		})
	}
}

func TestCanonicalizeRejectsOverflow(t *testing.T) {
	entries := []Entry{{Track: 1, StartSector: 0, EndSector: math.MaxInt}}
	if _, err := Canonicalize(entries); !errors.Is(err, ErrNoTOC) {
		t.Fatalf("expected ErrNoTOC, got %v", err)
	}
}

func TestParseTOCHugeNumberIsNoTOC(t *testing.T) {
	huge := strconv.Itoa(math.MaxInt) + "0"
	src := NewSliceLines(
		"Track | Start | Length | Start sector | End sector",
		"---------------------------------------------",
		"1 | 0:00.00 | 1:00.00 | 0 | "+huge,
	)
	if _, err := ParseTOC(src); !errors.Is(err, ErrNoTOC) {
		t.Fatalf("expected ErrNoTOC, got %v", err)
	}
}
