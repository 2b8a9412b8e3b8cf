package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"

	"recipe-finder/internal/config"
	"recipe-finder/internal/metrics"
	"recipe-finder/internal/recipe"
)

// RequestTimeout bounds every outbound request.
const RequestTimeout = 10 * time.Second

const (
	EndpointFindByIngredients = "findByIngredients"
	EndpointInformation       = "information"
)

// Client is the recipe provider API. Failures are logged and surface as
// empty results, never as errors.
type Client interface {
	FindByIngredients(ctx context.Context, ingredients []string) []recipe.Summary
	GetDetails(ctx context.Context, id int64) (recipe.Detail, bool)
}

// CallRecorder persists per-call metrics.
type CallRecorder interface {
	Record(ctx context.Context, m metrics.APICallMetric) error
}

// Option configures a Client.
type Option func(*spoonacularClient)

// WithFetcher replaces the default network fetcher, e.g. with a CachingFetcher.
func WithFetcher(f Fetcher) Option {
	return func(c *spoonacularClient) { c.fetcher = f }
}

// WithRecorder records a metric for every call.
func WithRecorder(r CallRecorder) Option {
	return func(c *spoonacularClient) { c.recorder = r }
}

// spoonacularClient is the concrete implementation of the Spoonacular client.
type spoonacularClient struct {
	baseURL     string
	apiKey      string
	resultLimit int
	fetcher     Fetcher
	recorder    CallRecorder
}

// NewClient creates a new Spoonacular API client.
func NewClient(cfg *config.Config, opts ...Option) Client {
	c := &spoonacularClient{
		baseURL:     strings.TrimRight(cfg.SpoonacularURL, "/"),
		apiKey:      cfg.SpoonacularAPIKey,
		resultLimit: cfg.SpoonacularResultLimit,
		fetcher:     NewHTTPFetcher(RequestTimeout),
	}
	if c.resultLimit <= 0 {
		c.resultLimit = 10
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// JoinIngredients trims each ingredient, drops empty ones and joins the rest
// into the provider's comma-separated form.
func JoinIngredients(ingredients []string) string {
	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			cleaned = append(cleaned, ing)
		}
	}
	return strings.Join(cleaned, ",")
}

// FindByIngredients searches recipes that use the given ingredients.
func (c *spoonacularClient) FindByIngredients(ctx context.Context, ingredients []string) []recipe.Summary {
	joined := JoinIngredients(ingredients)
	if joined == "" {
		return nil
	}

	params := url.Values{}
	params.Set("ingredients", joined)
	params.Set("number", strconv.Itoa(c.resultLimit))

	var summaries []recipe.Summary
	if !c.getJSON(ctx, EndpointFindByIngredients, "/recipes/findByIngredients", params, &summaries) {
		return nil
	}
	return summaries
}

// GetDetails fetches full recipe information. ok is false when the recipe
// could not be retrieved.
func (c *spoonacularClient) GetDetails(ctx context.Context, id int64) (recipe.Detail, bool) {
	var detail recipe.Detail
	path := fmt.Sprintf("/recipes/%d/information", id)
	if !c.getJSON(ctx, EndpointInformation, path, url.Values{}, &detail) {
		return recipe.Detail{}, false
	}
	return detail, true
}

func (c *spoonacularClient) getJSON(ctx context.Context, endpoint, path string, params url.Values, out any) bool {
	params.Set("apiKey", c.apiKey)
	rawURL := c.baseURL + path + "?" + params.Encode()

	start := time.Now()
	resp, err := c.fetcher.Fetch(ctx, rawURL)
	latency := time.Since(start)

	ok := c.decode(endpoint, path, resp, err, out)
	c.record(ctx, endpoint, resp, latency, !ok)
	return ok
}

func (c *spoonacularClient) decode(endpoint, path string, resp Response, err error, out any) bool {
	logger := log.WithFields(log.Fields{"endpoint": endpoint, "path": path})
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			logger.WithField("status", statusErr.StatusCode).WithError(err).Error("recipe api returned an error status")
		} else {
			logger.WithError(err).Error("recipe api request failed")
		}
		return false
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		logger.WithError(err).Error("failed to decode recipe api response")
		return false
	}

	logger.WithField("cached", resp.Cached).Debug("recipe api call succeeded")
	return true
}

func (c *spoonacularClient) record(ctx context.Context, endpoint string, resp Response, latency time.Duration, failed bool) {
	if c.recorder == nil {
		return
	}
	err := c.recorder.Record(ctx, metrics.APICallMetric{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		CacheHit:   resp.Cached,
		Failed:     failed,
		LatencyMS:  latency.Milliseconds(),
	})
	if err != nil {
		log.WithError(err).Warn("failed to record api call metric")
	}
}
