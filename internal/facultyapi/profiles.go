package facultyapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// ScrapeRequest starts a scraping job. Delay is nil when the user input did
// not parse as a number, which is sent as JSON null for the server to reject.
type ScrapeRequest struct {
	Headless bool     `json:"headless"`
	Delay    *float64 `json:"delay"`
}

// ScrapeResult is the backend answer to a finished scraping job.
type ScrapeResult struct {
	Message  string `json:"message"`
	Filename string `json:"filename,omitempty"`
	Count    int    `json:"count,omitempty"`
}

type scrapeResponse struct {
	envelope
	ScrapeResult
}

// LoadResult is the backend answer to a profile load.
type LoadResult struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

type loadResponse struct {
	envelope
	LoadResult
}

type loadRequest struct {
	Filename string `json:"filename"`
}

// StartScrape triggers a scraping job and blocks until the backend answers.
func (c *Client) StartScrape(ctx context.Context, req ScrapeRequest) (*ScrapeResult, error) {
	var resp scrapeResponse
	if err := c.call(ctx, EndpointScrape, http.MethodPost, scrapePath, req, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("scraping finished",
		zap.String("filename", resp.Filename),
		zap.Int("count", resp.Count),
	)

	return &resp.ScrapeResult, nil
}

// LoadProfiles asks the backend to load profiles from the named file.
func (c *Client) LoadProfiles(ctx context.Context, filename string) (*LoadResult, error) {
	var resp loadResponse
	if err := c.call(ctx, EndpointLoad, http.MethodPost, loadProfilesPath, loadRequest{Filename: filename}, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("profiles loaded", zap.String("filename", filename), zap.Int("count", resp.Count))

	return &resp.LoadResult, nil
}
