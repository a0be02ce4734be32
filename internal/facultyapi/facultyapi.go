package facultyapi

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultServerURL = "http://localhost:5000"
	userAgent        = "spigell/facultymatch"
)

// Endpoint names used in logs, metrics and errors.
const (
	EndpointFiles    = "files"
	EndpointScrape   = "scrape"
	EndpointLoad     = "load_profiles"
	EndpointMatch    = "match"
	EndpointAnalyze  = "analyze"
	EndpointExport   = "export"
	filesPath        = "/files"
	scrapePath       = "/scrape"
	loadProfilesPath = "/load_profiles"
	matchPath        = "/match"
	analyzePath      = "/analyze/%d"
	exportPath       = "/export"
)

// Client talks to the faculty research backend.
type Client struct {
	logger     *zap.Logger
	limiter    *rate.Limiter
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
}

// New returns a client for the backend at baseURL. A zero timeout leaves the
// transport defaults in place, scraping requests can run for minutes.
func New(logger *zap.Logger, baseURL string, timeout time.Duration) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultServerURL
	}

	return &Client{
		logger:  logger,
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: userAgent,
	}
}

// WithRateLimit paces outgoing requests to rpm requests per minute.
// Non-positive values disable pacing.
func (c *Client) WithRateLimit(rpm int) *Client {
	if rpm <= 0 {
		c.limiter = nil
		return c
	}

	limit := rate.Limit(float64(rpm) / 60.0)
	c.limiter = rate.NewLimiter(limit, 1)
	c.logger.Debug("request pacing enabled", zap.Int("rpm", rpm))

	return c
}
