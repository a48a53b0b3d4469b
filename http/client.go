package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/movies"
	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// DefaultClientTimeout is the default timeout for requests to the movie server.
const DefaultClientTimeout = 10 * time.Second

// Ensure Client implements movies.Catalog at compile time.
var _ movies.Catalog = (*Client)(nil)

// Client talks to a movie Server over HTTP. Every call is a single attempt;
// failures are reported as ENETWORK and never retried.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the timeout for each request.
// Defaults to DefaultClientTimeout. Zero disables the timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client. The timeout option is
// ignored when a client is supplied.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimit throttles outbound requests to rps requests per second with
// no bursting. Zero or negative disables throttling.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			c.limiter = nil
		}
	}
}

// NewClient creates a new Client for the server at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultClientTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// SearchMovies queries the server's full-text endpoint.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]*movies.Movie, error) {
	if query == "" {
		return []*movies.Movie{}, nil
	}

	body, err := c.get(ctx, "/search", url.Values{"q": {query}})
	if err != nil {
		return nil, err
	}

	var decoded []*movies.Movie
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, movies.Errorf(movies.ENETWORK, "decode search response: %v", err)
	}

	// Null entries carry no movie and are dropped.
	result := make([]*movies.Movie, 0, len(decoded))
	for _, m := range decoded {
		if m != nil {
			result = append(result, m)
		}
	}
	return result, nil
}

// FetchCatalog downloads the full catalog and returns the body unchanged.
func (c *Client) FetchCatalog(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "/all-movies.json", nil)
}

// FindMovieByID retrieves a single movie.
func (c *Client) FindMovieByID(ctx context.Context, id int) (*movies.Movie, error) {
	body, err := c.get(ctx, "/movie/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}

	var m movies.Movie
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, movies.Errorf(movies.ENETWORK, "decode movie response: %v", err)
	}
	return &m, nil
}

// get performs a JSON GET request and returns the response body.
// A 404 maps to ENOTFOUND; any other non-200 status maps to ENETWORK.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, movies.Errorf(movies.ENETWORK, "GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, movies.Errorf(movies.ENOTFOUND, "%s not found", path)
	case resp.StatusCode != http.StatusOK:
		return nil, movies.Errorf(movies.ENETWORK, "HTTP %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, movies.Errorf(movies.ENETWORK, "read %s: %v", path, err)
	}

	return body, nil
}
