package identification

import (
	"maps"
	"slices"
)

// Penalty buckets written by AlbumDistance.
const (
	BucketMedia   = "media"
	BucketAlbumID = "album_id"
)

// Diagnostic tags, one per penalty rule.
const (
	TagNotACD            = "guess_media_NOT_A_CD"
	TagIsACD             = "guess_media_IS_A_CD"
	TagAlbumIDFromLogBad = "guess_media_ALBUM_ID_FROM_LOG_WRONG"
)

// Distance accumulates weighted penalties per named bucket. The zero value is
// ready to use.
type Distance struct {
	penalties map[string]float64
	// Tags lists the diagnostic tag of every rule that fired, in firing order.
	Tags []string
}

// Add adds weight to bucket.
func (d *Distance) Add(bucket string, weight float64) {
	if d.penalties == nil {
		d.penalties = make(map[string]float64)
	}
	d.penalties[bucket] += weight
}

// Penalty returns the accumulated weight of bucket.
func (d Distance) Penalty(bucket string) float64 {
	return d.penalties[bucket]
}

// Buckets returns a copy of every bucket that received a penalty.
func (d Distance) Buckets() map[string]float64 {
	out := make(map[string]float64, len(d.penalties))
	maps.Copy(out, d.penalties)
	return out
}

// BucketNames returns the names of the penalized buckets, sorted.
func (d Distance) BucketNames() []string {
	return slices.Sorted(maps.Keys(d.penalties))
}

// Total sums every bucket.
func (d Distance) Total() float64 {
	var total float64
	for _, name := range d.BucketNames() {
		total += d.penalties[name]
	}
	return total
}

func (d *Distance) tag(tag string) {
	d.Tags = append(d.Tags, tag)
}
