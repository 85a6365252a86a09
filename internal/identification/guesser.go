package identification

import (
	"context"
	"log/slog"
	"slices"

	"guessmedia/internal/logging"
	"guessmedia/internal/musicbrainz"
)

// EvidenceSource reports the release ids named by ripper logs next to a set
// of files. found is false when no valid log exists; ids may then be nil.
type EvidenceSource interface {
	ForItems(ctx context.Context, itemPaths []string) (ids []string, found bool)
}

// ReleaseFetcher loads a release by MusicBrainz id.
type ReleaseFetcher interface {
	Release(ctx context.Context, id string) (musicbrainz.Release, error)
}

// Weights scale the penalties of AlbumDistance.
type Weights struct {
	Media   float64 `json:"media_weight"`
	AlbumID float64 `json:"album_id_weight"`
}

// DefaultWeights returns a weight of 1 for both buckets.
func DefaultWeights() Weights {
	return Weights{Media: 1, AlbumID: 1}
}

// Candidate is a release proposed for an album, reduced to the fields the
// medium rules read.
type Candidate struct {
	ReleaseID  string `json:"release_id"`
	Medium     string `json:"medium,omitempty"`
	DataSource string `json:"data_source,omitempty"`
}

// CandidateFromRelease builds a Candidate for a fetched release.
func CandidateFromRelease(release musicbrainz.Release) Candidate {
	return Candidate{
		ReleaseID:  release.ID,
		Medium:     release.MediumFormat(),
		DataSource: "MusicBrainz",
	}
}

// Guesser applies log evidence and audio characteristics to candidates.
type Guesser struct {
	evidence EvidenceSource
	releases ReleaseFetcher
	weights  Weights
	logger   *slog.Logger
}

// NewGuesser creates a Guesser. releases may be nil when Candidates is not
// used.
func NewGuesser(evidence EvidenceSource, releases ReleaseFetcher, weights Weights, logger *slog.Logger) *Guesser {
	return &Guesser{
		evidence: evidence,
		releases: releases,
		weights:  weights,
		logger:   logging.NewComponentLogger(logger, "guesser"),
	}
}

// ImportTaskStart gathers evidence for the items' directories so later calls
// for the same album are served from the cache.
func (g *Guesser) ImportTaskStart(ctx context.Context, items []Item) {
	ids, found := g.evidence.ForItems(ctx, itemPaths(items))
	g.logger.Debug("evidence warmed",
		logging.Int("items", len(items)),
		logging.Bool("log_found", found),
		logging.Int("release_count", len(ids)))
}

// Candidates fetches every release a ripper log TOC pointed at. Releases
// that cannot be fetched are skipped.
func (g *Guesser) Candidates(ctx context.Context, items []Item) []musicbrainz.Release {
	ids, found := g.evidence.ForItems(ctx, itemPaths(items))
	if !found || len(ids) == 0 || g.releases == nil {
		return nil
	}
	ids = slices.Sorted(slices.Values(ids))

	releases := make([]musicbrainz.Release, 0, len(ids))
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		release, err := g.releases.Release(ctx, id)
		if err != nil {
			logging.WarnWithContext(g.logger, "release fetch failed", "release_fetch_failed",
				logging.String("release_id", id),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check network access to MusicBrainz"),
				logging.String(logging.FieldImpact, "release is not proposed as a candidate"),
			)
			continue
		}
		if release.ID == "" {
			continue
		}
		releases = append(releases, release)
	}
	return releases
}

// AlbumDistance scores candidate against items:
//
//   - media += Media when the items cannot be from a CD but the candidate is one;
//   - media += Media when a ripper log exists, the items could be from a CD,
//     and the candidate is not one;
//   - album_id += AlbumID when the logs named releases and the candidate is
//     not among them.
//
// With no items the medium is unknown and only the album id rule applies.
func (g *Guesser) AlbumDistance(ctx context.Context, items []Item, candidate Candidate) Distance {
	ids, logFound := g.evidence.ForItems(ctx, itemPaths(items))
	medium := inferMedium(items)
	candidateIsCD := isCDMedium(candidate.Medium)

	var dist Distance
	if medium.known && medium.notCD && candidateIsCD {
		dist.Add(BucketMedia, g.weights.Media)
		dist.tag(TagNotACD)
	}
	if logFound && medium.couldBeCD() && !candidateIsCD {
		dist.Add(BucketMedia, g.weights.Media)
		dist.tag(TagIsACD)
	}
	if logFound && !slices.Contains(ids, candidate.ReleaseID) {
		dist.Add(BucketAlbumID, g.weights.AlbumID)
		dist.tag(TagAlbumIDFromLogBad)
	}

	g.logger.Debug("album distance",
		logging.String("release_id", candidate.ReleaseID),
		logging.String("medium", candidate.Medium),
		logging.Int("max_bitdepth", medium.maxBits),
		logging.Int("max_samplerate", medium.maxRate),
		logging.Bool("log_found", logFound),
		logging.Float64("media_penalty", dist.Penalty(BucketMedia)),
		logging.Float64("album_id_penalty", dist.Penalty(BucketAlbumID)),
		logging.Float64("total", dist.Total()),
		logging.Strings("tags", dist.Tags))
	return dist
}

// Annotate returns candidate with "+TAG" appended to its data source for
// every tag in dist.
func Annotate(candidate Candidate, dist Distance) Candidate {
	for _, tag := range dist.Tags {
		candidate.DataSource += "+" + tag
	}
	return candidate
}
