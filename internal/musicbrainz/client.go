package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"guessmedia/internal/logging"
)

const (
	DefaultBaseURL   = "https://musicbrainz.org/ws/2"
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 1 << 20
)

// Options configures a Client. Zero values fall back to MusicBrainz defaults.
type Options struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

// Client talks to the MusicBrainz web service.
type Client struct {
	client    *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
	baseURL   string
	userAgent string
}

// New creates a MusicBrainz client.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	limit := rate.Limit(opts.RequestsPerSecond)
	if opts.RequestsPerSecond <= 0 {
		limit = rate.Limit(1)
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = "guessmedia/dev"
	}
	return &Client{
		client:    httpClient,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logging.NewComponentLogger(opts.Logger, "musicbrainz"),
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// ReleasesByTOC returns the ids of every release with a disc matching toc,
// a space separated query such as "1 3 1151 150 450 750". An unknown TOC
// yields an empty slice, not an error.
func (c *Client) ReleasesByTOC(ctx context.Context, toc string) ([]string, error) {
	toc = strings.TrimSpace(toc)
	if toc == "" {
		return nil, errors.New("releases by toc: empty toc")
	}
	params := url.Values{
		"toc":     {toc},
		"cdstubs": {"no"},
		"fmt":     {"json"},
	}
	body, err := c.doRequest(ctx, c.baseURL+"/discid/-?"+params.Encode())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	var resp tocResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing toc response: %w", err)
	}
	ids := make([]string, 0, len(resp.Releases))
	for _, release := range resp.Releases {
		if id := strings.TrimSpace(release.ID); id != "" {
			ids = append(ids, id)
		}
	}
	c.logger.Debug("toc lookup complete",
		logging.String("toc", toc),
		logging.Int("release_count", len(ids)))
	return ids, nil
}

// Release fetches a release with its media formats and artist credit.
func (c *Client) Release(ctx context.Context, id string) (Release, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Release{}, errors.New("release: empty id")
	}
	params := url.Values{
		"inc": {"artist-credits+media"},
		"fmt": {"json"},
	}
	body, err := c.doRequest(ctx, c.baseURL+"/release/"+url.PathEscape(id)+"?"+params.Encode())
	if err != nil {
		return Release{}, err
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return Release{}, fmt.Errorf("parsing release response: %w", err)
	}
	release.resolveArtist()
	return release, nil
}

// doRequest executes an HTTP GET with rate limiting and standard headers.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &UnavailableError{Cause: fmt.Errorf("rate limiter: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("requesting", logging.String("url", reqURL))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UnavailableError{Cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &UnavailableError{
			Cause:      fmt.Errorf("HTTP %d", resp.StatusCode),
			RetryAfter: 2 * time.Second,
		}
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &UnavailableError{Cause: fmt.Errorf("unexpected HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
