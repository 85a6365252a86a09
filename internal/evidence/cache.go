package evidence

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"guessmedia/internal/logging"
	"guessmedia/internal/ripperlog"
)

// DefaultLogExtension is the file extension, compared case-insensitively,
// of files inspected as ripper logs.
const DefaultLogExtension = ".log"

// ReleaseLookup resolves a TOC query string to MusicBrainz release ids.
type ReleaseLookup interface {
	ReleasesByTOC(ctx context.Context, toc string) ([]string, error)
}

// LogReader reads one ripper log.
type LogReader func(path string) (ripperlog.Log, error)

// Option configures a Cache.
type Option func(*Cache)

// WithStore replaces the default MemoryStore.
func WithStore(store Store) Option {
	return func(c *Cache) {
		if store != nil {
			c.store = store
		}
	}
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logging.NewComponentLogger(logger, "evidence")
	}
}

// WithLogExtension overrides DefaultLogExtension.
func WithLogExtension(ext string) Option {
	return func(c *Cache) {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" {
			c.extension = ext
		}
	}
}

// WithLogReader overrides ripperlog.ReadFile.
func WithLogReader(reader LogReader) Option {
	return func(c *Cache) {
		if reader != nil {
			c.readLog = reader
		}
	}
}

// Cache memoizes Evidence per directory.
type Cache struct {
	store     Store
	lookup    ReleaseLookup
	readLog   LogReader
	extension string
	logger    *slog.Logger
	flight    singleflight.Group
	walks     atomic.Int64
}

// New creates a Cache resolving TOCs through lookup.
func New(lookup ReleaseLookup, opts ...Option) *Cache {
	c := &Cache{
		store:     NewMemoryStore(),
		lookup:    lookup,
		readLog:   ripperlog.ReadFile,
		extension: DefaultLogExtension,
		logger:    logging.NewComponentLogger(nil, "evidence"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Walks returns how many directory walks the cache has performed.
func (c *Cache) Walks() int64 {
	return c.walks.Load()
}

// ForDirectory returns the evidence for dir, walking it on first use.
func (c *Cache) ForDirectory(ctx context.Context, dir string) (Evidence, error) {
	key, err := filepath.Abs(dir)
	if err != nil {
		return Evidence{}, err
	}
	if ev, ok, err := c.store.Get(ctx, key); err != nil || ok {
		return ev, err
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		if ev, ok, err := c.store.Get(ctx, key); err != nil || ok {
			return ev, err
		}
		ev, err := c.scan(ctx, key)
		if err != nil {
			return Evidence{}, err
		}
		if err := c.store.Put(ctx, key, ev); err != nil {
			return Evidence{}, err
		}
		return ev, nil
	})
	if err != nil {
		return Evidence{}, err
	}
	return v.(Evidence), nil
}

// ForItems combines the evidence of the parent directories of itemPaths.
// found is false when no directory holds a valid log; ids is then nil. When
// found is true ids is non-nil, sorted, and may be empty.
func (c *Cache) ForItems(ctx context.Context, itemPaths []string) (ids []string, found bool) {
	seen := make(map[string]struct{}, len(itemPaths))
	union := make(map[string]struct{})
	for _, path := range itemPaths {
		dir := filepath.Dir(path)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}

		ev, err := c.ForDirectory(ctx, dir)
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.logger.Debug("evidence gathering canceled", logging.String(logging.FieldPath, dir), logging.Error(ctxErr))
			return nil, false
		}
		if err != nil {
			logging.WarnWithContext(c.logger, "evidence lookup failed", "evidence_store_failed",
				logging.String(logging.FieldPath, dir),
				logging.Error(err),
				logging.String(logging.FieldImpact, "directory treated as having no ripper log"),
			)
			continue
		}
		if !ev.HasValidLog {
			continue
		}
		found = true
		for _, id := range ev.ReleaseIDs {
			union[id] = struct{}{}
		}
	}
	if !found {
		return nil, false
	}
	ids = make([]string, 0, len(union))
	for id := range union {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, true
}

// scan walks dir and evaluates every log below it. An error is returned only
// when ctx ends the walk early; the partial result must not be stored.
func (c *Cache) scan(ctx context.Context, dir string) (Evidence, error) {
	c.walks.Add(1)
	union := make(map[string]struct{})
	ev := Evidence{}

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			c.logger.Debug("skipping unreadable path", logging.String(logging.FieldPath, path), logging.Error(err))
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(strings.ToLower(d.Name()), c.extension) {
			return nil
		}
		ids, ok, err := c.evaluateLog(ctx, path)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		ev.HasValidLog = true
		for _, id := range ids {
			union[id] = struct{}{}
		}
		return nil
	})
	if err := ctx.Err(); err != nil {
		walkErr = err
	}
	if walkErr != nil {
		c.logger.Debug("directory walk aborted", logging.String(logging.FieldPath, dir), logging.Error(walkErr))
		return Evidence{}, walkErr
	}

	ev.ReleaseIDs = make([]string, 0, len(union))
	for id := range union {
		ev.ReleaseIDs = append(ev.ReleaseIDs, id)
	}
	slices.Sort(ev.ReleaseIDs)

	c.logger.Debug("directory evidence computed",
		logging.String(logging.FieldPath, dir),
		logging.Bool("has_valid_log", ev.HasValidLog),
		logging.Strings("release_ids", ev.ReleaseIDs),
		logging.Int64("walks", c.walks.Load()))
	return ev, nil
}

// evaluateLog returns the release ids one file contributes, and false when
// the file is not evidence at all. A non-nil error means ctx ended the lookup.
func (c *Cache) evaluateLog(ctx context.Context, path string) ([]string, bool, error) {
	log, err := c.readLog(path)
	switch {
	case errors.Is(err, ripperlog.ErrNotRipperLog):
		c.logger.Debug("not a ripper log", logging.String(logging.FieldPath, path))
		return nil, false, nil
	case errors.Is(err, ripperlog.ErrNoTOC):
		logging.WarnWithContext(c.logger, "ignoring ripper log without usable TOC", "ripperlog_no_toc",
			logging.String(logging.FieldPath, path),
			logging.String("tool", log.Tool.String()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the log's track table for gaps or edits"),
			logging.String(logging.FieldImpact, "log does not contribute disc evidence"),
		)
		return nil, false, nil
	case err != nil:
		c.logger.Debug("unreadable log file", logging.String(logging.FieldPath, path), logging.Error(err))
		return nil, false, nil
	}

	if c.lookup == nil {
		return []string{}, true, nil
	}
	toc := log.TOC.String()
	ids, err := c.lookup.ReleasesByTOC(ctx, toc)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, false, err
	}
	if err != nil {
		logging.WarnWithContext(c.logger, "release lookup failed", "release_lookup_failed",
			logging.String(logging.FieldPath, path),
			logging.String("toc", toc),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network access to MusicBrainz"),
			logging.String(logging.FieldImpact, "log does not contribute disc evidence"),
		)
		return nil, false, nil
	}
	c.logger.Debug("ripper log resolved",
		logging.String(logging.FieldPath, path),
		logging.String("tool", log.Tool.String()),
		logging.String("toc", toc),
		logging.Int("release_count", len(ids)))
	return ids, true, nil
}
