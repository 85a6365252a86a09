package musicbrainz

import "strings"

// Release is the subset of a MusicBrainz release used for candidate matching.
type Release struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Status  string   `json:"status"`
	Date    string   `json:"date"`
	Country string   `json:"country"`
	Artist  string   `json:"-"`
	Media   []Medium `json:"media"`

	ArtistCredit []artistCredit `json:"artist-credit"`
}

// Medium is one disc or side of a release.
type Medium struct {
	Position   int    `json:"position"`
	Format     string `json:"format"`
	TrackCount int    `json:"track-count"`
}

type artistCredit struct {
	Name       string `json:"name"`
	JoinPhrase string `json:"joinphrase"`
}

// MediumFormat summarizes the release's media, e.g. "CD" or "CD+DVD-Video".
// Repeated formats are listed once. An empty string means MusicBrainz does
// not know the format.
func (r Release) MediumFormat() string {
	seen := make(map[string]struct{}, len(r.Media))
	formats := make([]string, 0, len(r.Media))
	for _, medium := range r.Media {
		format := strings.TrimSpace(medium.Format)
		if format == "" {
			continue
		}
		if _, ok := seen[format]; ok {
			continue
		}
		seen[format] = struct{}{}
		formats = append(formats, format)
	}
	return strings.Join(formats, "+")
}

func (r *Release) resolveArtist() {
	var b strings.Builder
	for _, credit := range r.ArtistCredit {
		b.WriteString(credit.Name)
		b.WriteString(credit.JoinPhrase)
	}
	r.Artist = b.String()
}

// tocResponse is the body of /discid/-?toc=... lookups.
type tocResponse struct {
	ReleaseCount int       `json:"release-count"`
	Releases     []Release `json:"releases"`
}
