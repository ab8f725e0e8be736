package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	// DefaultBaseURL is the TMDB v3 REST root
	DefaultBaseURL = "https://api.themoviedb.org/3"

	defaultTimeout  = 30 * time.Second
	userAgent       = "Marquee/1.0"
	credentialParam = "api_key"
)

// Endpoint paths
const (
	PathSearchMovie = "/search/movie"
	PathPopular     = "/movie/popular"
	PathGenres      = "/genre/movie/list"
	PathDiscover    = "/discover/movie"
)

// MoviePath returns the details path for a movie id
func MoviePath(id int) string {
	return "/movie/" + strconv.Itoa(id)
}

// Client performs raw GET requests against TMDB and implements domain.CatalogClient.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new TMDB client. A zero timeout uses the default.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs one GET of path with query, injecting the API key.
// The caller's query is not modified.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	params := url.Values{}
	for k, v := range query {
		params[k] = append([]string(nil), v...)
	}
	params.Set(credentialParam, c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	safeURL := redact(path, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "url", safeURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "url", safeURL, "error", err)
		return nil, &domain.NetworkError{Op: "get", URL: safeURL, Err: stripURL(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Op: "get", URL: safeURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &domain.NetworkError{Op: "get", URL: safeURL, StatusCode: resp.StatusCode, Err: domain.ErrInvalidAPIKey}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("tmdb request error", "url", safeURL, "status", resp.StatusCode, "body", string(body))
		return nil, &domain.NetworkError{Op: "get", URL: safeURL, StatusCode: resp.StatusCode, Err: statusError(resp.StatusCode, body)}
	}

	return body, nil
}

// redact renders path and query without the credential parameter
func redact(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	params := url.Values{}
	for k, v := range query {
		if k == credentialParam {
			continue
		}
		params[k] = v
	}
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

// stripURL drops the *url.Error wrapper, whose message carries the api_key
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

// statusError prefers the status_message TMDB returns in error bodies
func statusError(code int, body []byte) error {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.StatusMessage != "" {
		return errors.New(e.StatusMessage)
	}
	return fmt.Errorf("unexpected status code: %d", code)
}
