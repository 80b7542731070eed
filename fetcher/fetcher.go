package fetcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/SylvanB/meme.crabenjoyer.xyz/metrics"
)

// RecentMemesPath is the endpoint listing memes uploaded recently.
const RecentMemesPath = "/meme"

// Fetcher retrieves the recent memes listing from a single origin.
type Fetcher struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// NewFetcher builds a Fetcher with its own http.Client bounded by timeout.
func NewFetcher(baseURL string, timeout time.Duration, logger *log.Logger) *Fetcher {
	return NewFetcherWithClient(baseURL, &http.Client{Timeout: timeout}, logger)
}

// NewFetcherWithClient builds a Fetcher around an existing http.Client.
func NewFetcherWithClient(baseURL string, client *http.Client, logger *log.Logger) *Fetcher {
	return &Fetcher{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

// GetRecentMemes fetches and decodes the recent memes payload. Failures are
// logged and reported only through ok being false; a JSON null body yields
// (nil, true).
func (f *Fetcher) GetRecentMemes(ctx context.Context) (data any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("Fetch error", "err", errors.Errorf("panic: %v", r))
			data, ok = nil, false
		}
	}()

	data, err := f.Fetch(ctx)
	if err != nil {
		f.logger.Error("Fetch error", "err", err)
		return nil, false
	}
	return data, true
}

// Fetch performs the request and returns one of *NetworkError,
// *HTTPStatusError or *ParseError on failure. Every call is recorded in the
// fetch metrics.
func (f *Fetcher) Fetch(ctx context.Context) (any, error) {
	start := time.Now()
	data, err := f.fetch(ctx)
	metrics.MemeFetchDuration.Observe(time.Since(start).Seconds())
	metrics.MemeFetchesTotal.WithLabelValues(Outcome(err)).Inc()
	return data, err
}

func (f *Fetcher) fetch(ctx context.Context) (any, error) {
	url := f.baseURL + RecentMemesPath
	f.logger.Debug("Fetching recent memes", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{Err: errors.Wrap(err, "building request")}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ParseError{Err: errors.Wrap(err, "reading body")}
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &ParseError{Err: err}
	}

	f.logger.Debug("Fetched recent memes", "bytes", len(body))
	return data, nil
}

// Outcome maps a Fetch error to its metrics label.
func Outcome(err error) string {
	var (
		statusErr *HTTPStatusError
		parseErr  *ParseError
	)
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &statusErr):
		return metrics.OutcomeHTTPError
	case errors.As(err, &parseErr):
		return metrics.OutcomeParseError
	default:
		return metrics.OutcomeNetworkError
	}
}
