package identification

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	cdBitDepth   = 16
	cdSampleRate = 44100
)

// Item is one audio file of the album being identified.
type Item struct {
	Path       string `json:"path"`
	BitDepth   int    `json:"bitdepth"`
	SampleRate int    `json:"samplerate"`
}

// mediumInference summarizes what the items say about their source.
type mediumInference struct {
	// known is false when there are no items to judge.
	known   bool
	notCD   bool
	maxBits int
	maxRate int
}

func (m mediumInference) couldBeCD() bool {
	return m.known && !m.notCD
}

func inferMedium(items []Item) mediumInference {
	if len(items) == 0 {
		return mediumInference{}
	}
	inf := mediumInference{known: true, maxBits: items[0].BitDepth, maxRate: items[0].SampleRate}
	for _, item := range items[1:] {
		inf.maxBits = max(inf.maxBits, item.BitDepth)
		inf.maxRate = max(inf.maxRate, item.SampleRate)
	}
	inf.notCD = inf.maxBits > cdBitDepth || inf.maxRate != cdSampleRate
	return inf
}

// isCDMedium reports whether a declared medium such as "CD", "2xCD" or
// "Enhanced CD" names a compact disc.
func isCDMedium(medium string) bool {
	if strings.TrimSpace(medium) == "" {
		return false
	}
	return strings.Contains(cases.Upper(language.Und).String(medium), "CD")
}

func itemPaths(items []Item) []string {
	paths := make([]string, len(items))
	for i, item := range items {
		paths[i] = item.Path
	}
	return paths
}
