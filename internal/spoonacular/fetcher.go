package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/apex/log"

	"recipe-finder/internal/cache"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Response is a raw response body from the provider.
type Response struct {
	Body       []byte
	StatusCode int
	Cached     bool
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spoonacular api error: status=%d body=%s", e.StatusCode, e.Body)
}

// Fetcher performs a GET for a fully built request URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Response, error)
}

// httpFetcher performs requests over the network.
type httpFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher creates a Fetcher whose requests time out after timeout.
func NewHTTPFetcher(timeout time.Duration) Fetcher {
	return &httpFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (f *httpFetcher) Fetch(ctx context.Context, rawURL string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("failed to execute request: %w", redactURLError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return Response{StatusCode: resp.StatusCode}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{StatusCode: resp.StatusCode}, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	if len(body) > maxBodyBytes {
		return Response{StatusCode: resp.StatusCode}, fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)
	}

	return Response{Body: body, StatusCode: resp.StatusCode}, nil
}

// CachingFetcher serves repeated requests from a cache.Store while they are
// fresh. The store key is the full request URL, credentials included. Only
// successful responses with a well-formed JSON body are stored.
type CachingFetcher struct {
	next  Fetcher
	store cache.Store
	ttl   time.Duration
	valid func([]byte) bool
}

// NewCachingFetcher wraps next with store using the fixed freshness window.
func NewCachingFetcher(next Fetcher, store cache.Store) *CachingFetcher {
	return &CachingFetcher{
		next:  next,
		store: store,
		ttl:   cache.FreshnessWindow,
		valid: json.Valid,
	}
}

// Fetch checks the cache first. A cache failure is treated as a miss.
func (c *CachingFetcher) Fetch(ctx context.Context, rawURL string) (Response, error) {
	body, ok, err := c.store.Get(ctx, rawURL)
	if err != nil {
		log.WithError(err).Warn("cache lookup failed, fetching from network")
	} else if ok {
		return Response{Body: body, StatusCode: http.StatusOK, Cached: true}, nil
	}

	resp, err := c.next.Fetch(ctx, rawURL)
	if err != nil {
		return resp, err
	}

	if !c.valid(resp.Body) {
		log.WithField("bytes", len(resp.Body)).Warn("not caching malformed response body")
		return resp, nil
	}

	if err := c.store.Set(ctx, rawURL, resp.Body, c.ttl); err != nil {
		log.WithError(err).Warn("failed to store response in cache")
	}
	return resp, nil
}

// redactURLError masks the apiKey parameter in the URL of a *url.Error.
func redactURLError(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	return &url.Error{Op: uerr.Op, URL: redactURL(uerr.URL), Err: uerr.Err}
}

func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<unparseable url>"
	}
	q := u.Query()
	if q.Has("apiKey") {
		q.Set("apiKey", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
