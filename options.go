package truesocks

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger
}

// searchConfig holds configuration for zip code searches.
type searchConfig struct {
	units      string
	rangeValue int
}

// historyConfig holds configuration for history listing.
type historyConfig struct {
	onlyActive bool
	page       int
}

// Option configures the client.
type Option func(*clientConfig)

// SearchOption configures a zip code search.
type SearchOption func(*searchConfig)

// HistoryOption configures a history listing.
type HistoryOption func(*historyConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithLogger sets a logger for request-level debug logging.
// By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithUnits sets the distance units for the search radius.
func WithUnits(units string) SearchOption {
	return func(c *searchConfig) {
		c.units = units
	}
}

// WithSearchRange sets the search radius around the zip code.
func WithSearchRange(r int) SearchOption {
	return func(c *searchConfig) {
		c.rangeValue = r
	}
}

// WithOnlyActive restricts the history listing to active entries.
func WithOnlyActive() HistoryOption {
	return func(c *historyConfig) {
		c.onlyActive = true
	}
}

// WithPage selects the history page to fetch (1-based).
func WithPage(page int) HistoryOption {
	return func(c *historyConfig) {
		c.page = page
	}
}
