package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultTimeout bounds a single request
	DefaultTimeout = 15 * time.Second

	defaultUserAgent = "cinescope"
)

// Client represents a TMDB API client
type Client struct {
	baseURL    string
	apiKey     string
	bearer     bool
	language   string
	userAgent  string
	rateLimit  float64
	limiter    *rate.Limiter
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client. The key may be a v3 API key or a
// v4 read access token; the latter is sent as a bearer token.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL:   DefaultBaseURL,
		apiKey:    apiKey,
		bearer:    isAccessToken(apiKey),
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger.With().Str("component", "tmdb").Logger(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.rateLimit < 0 {
		return nil, fmt.Errorf("%w: rate limit must not be negative", ErrInvalidConfig)
	}
	if client.rateLimit > 0 {
		client.limiter = rate.NewLimiter(rate.Limit(client.rateLimit), 1)
	}

	if _, err := url.Parse(client.baseURL); err != nil {
		return nil, fmt.Errorf("%w: bad base URL: %v", ErrInvalidConfig, err)
	}

	return client, nil
}

// isAccessToken checks if the key is a v4 JWT read access token
func isAccessToken(key string) bool {
	return strings.HasPrefix(key, "eyJ") && strings.Count(key, ".") == 2
}

// get performs a GET request with authentication and decodes the JSON body into out.
// It makes exactly one attempt.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	if !c.bearer {
		params.Set("api_key", c.apiKey)
	}
	if c.language != "" && params.Get("language") == "" {
		params.Set("language", c.language)
	}

	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &RequestError{Endpoint: endpoint, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInvalidArgument, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("query", redact(params)).
		Msg("Making TMDB API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.baseURL + endpoint
		}
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("TMDB request failed")
		return &RequestError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Endpoint: endpoint, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("TMDB API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope errorEnvelope
		if json.Unmarshal(body, &envelope) == nil {
			apiErr.Code = envelope.StatusCode
			apiErr.Message = envelope.StatusMessage
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("TMDB API returned an error")
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, endpoint, err)
	}

	return nil
}

// redact renders query parameters with the credential masked
func redact(params url.Values) string {
	masked := url.Values{}
	for k, v := range params {
		if k == "api_key" {
			masked.Set(k, "REDACTED")
			continue
		}
		masked[k] = v
	}
	return masked.Encode()
}

// Ping verifies the credential against the configuration endpoint
func (c *Client) Ping(ctx context.Context) error {
	var out map[string]any
	return c.get(ctx, "/configuration", nil, &out)
}

// FetchList retrieves one page of a categorized movie or TV list
func (c *Client) FetchList(ctx context.Context, resource Kind, category string, page int) (*ListPage, error) {
	if !resource.IsResource() {
		return nil, fmt.Errorf("%w: list resource must be movie or tv, got %q", ErrInvalidArgument, resource)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidArgument)
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var response ListPage
	endpoint := fmt.Sprintf("/%s/%s", resource, url.PathEscape(category))
	if err := c.get(ctx, endpoint, params, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch %s %s page %d: %w", resource, category, page, err)
	}
	if response.Page == 0 {
		response.Page = page
	}
	response.Received = len(response.Results)
	response.Results = keepIdentified(response.Results)

	c.logger.Debug().
		Str("resource", string(resource)).
		Str("category", category).
		Int("page", response.Page).
		Int("total_pages", response.TotalPages).
		Int("count", len(response.Results)).
		Msg("Retrieved list page from TMDB")

	return &response, nil
}

// FetchSearch runs a title search
func (c *Client) FetchSearch(ctx context.Context, kind Kind, query string) (*SearchPage, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: search kind must be movie, tv or multi, got %q", ErrInvalidArgument, kind)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidArgument)
	}

	params := url.Values{}
	params.Set("query", query)

	var response SearchPage
	if err := c.get(ctx, "/search/"+string(kind), params, &response); err != nil {
		return nil, fmt.Errorf("failed to search %s for %q: %w", kind, query, err)
	}
	response.Results = keepIdentified(response.Results)

	c.logger.Debug().
		Str("kind", string(kind)).
		Str("query", query).
		Int("count", len(response.Results)).
		Msg("Retrieved search results from TMDB")

	return &response, nil
}

// FetchDetail retrieves a single movie or TV show. The kind is passed
// through as given so that navigation parameters reach the service unchanged.
func (c *Client) FetchDetail(ctx context.Context, kind Kind, id int) (*DetailRecord, error) {
	if kind == "" {
		return nil, fmt.Errorf("%w: kind is required", ErrInvalidArgument)
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive, got %d", ErrInvalidArgument, id)
	}

	var record DetailRecord
	endpoint := fmt.Sprintf("/%s/%d", url.PathEscape(string(kind)), id)
	if err := c.get(ctx, endpoint, nil, &record); err != nil {
		return nil, fmt.Errorf("failed to fetch %s %d: %w", kind, id, err)
	}
	if record.ID == 0 {
		return nil, fmt.Errorf("%w: %s has no id", ErrMalformedPayload, endpoint)
	}
	record.Kind = kind

	return &record, nil
}

// keepIdentified drops records without an identifier
func keepIdentified(entities []Entity) []Entity {
	kept := entities[:0]
	for _, e := range entities {
		if e.ID != 0 {
			kept = append(kept, e)
		}
	}
	return kept
}
