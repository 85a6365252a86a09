package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"guessmedia/internal/config"
	"guessmedia/internal/evidence"
	"guessmedia/internal/identification"
	"guessmedia/internal/logging"
	"guessmedia/internal/musicbrainz"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
	sessionID  string

	servicesOnce sync.Once
	servicesErr  error
	musicbrainz  *musicbrainz.Client
	evidence     *evidence.Cache
	closers      []func() error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// ensureLogger builds the invocation's logger. Every record carries the same
// session id so one run can be picked out of a shared log file.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.sessionID = uuid.NewString()
		c.logger = logger.With(logging.String(logging.FieldSessionID, c.sessionID))
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) ensureServices(ctx context.Context) error {
	c.servicesOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.servicesErr = err
			return
		}
		logger, err := c.ensureLogger()
		if err != nil {
			c.servicesErr = err
			return
		}

		c.musicbrainz = musicbrainz.New(musicbrainz.Options{
			BaseURL:           cfg.MusicBrainz.BaseURL,
			UserAgent:         cfg.MusicBrainz.UserAgent,
			Timeout:           cfg.MusicBrainzTimeout(),
			RequestsPerSecond: cfg.MusicBrainz.RequestsPerSecond,
			Logger:            logger,
		})

		store, err := c.openStore(ctx, cfg.Evidence.Backend)
		if err != nil {
			c.servicesErr = err
			return
		}
		c.evidence = evidence.New(c.musicbrainz,
			evidence.WithStore(store),
			evidence.WithLogger(logger),
			evidence.WithLogExtension(cfg.Evidence.LogExtension),
		)
	})
	return c.servicesErr
}

func (c *commandContext) openStore(ctx context.Context, backend string) (evidence.Store, error) {
	switch backend {
	case config.BackendSQLite:
		store, err := evidence.OpenSQLiteStore(ctx)
		if err != nil {
			return nil, fmt.Errorf("open evidence store: %w", err)
		}
		c.closers = append(c.closers, store.Close)
		return store, nil
	default:
		return evidence.NewMemoryStore(), nil
	}
}

func (c *commandContext) evidenceCache(ctx context.Context) (*evidence.Cache, error) {
	if err := c.ensureServices(ctx); err != nil {
		return nil, err
	}
	return c.evidence, nil
}

func (c *commandContext) guesser(ctx context.Context) (*identification.Guesser, error) {
	if err := c.ensureServices(ctx); err != nil {
		return nil, err
	}
	cfg, _ := c.ensureConfig()
	logger, _ := c.ensureLogger()
	weights := identification.Weights{
		Media:   cfg.Weights.MediaWeight,
		AlbumID: cfg.Weights.AlbumIDWeight,
	}
	return identification.NewGuesser(c.evidence, c.musicbrainz, weights, logger), nil
}

func (c *commandContext) close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
