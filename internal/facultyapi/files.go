package facultyapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// File is a profile data file available on the backend.
type File struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Modified string `json:"modified,omitempty"`
}

type filesResponse struct {
	envelope
	Files []File `json:"files"`
}

// ListFiles returns the data files the backend can load profiles from.
func (c *Client) ListFiles(ctx context.Context) ([]File, error) {
	var resp filesResponse
	if err := c.call(ctx, EndpointFiles, http.MethodGet, filesPath, nil, &resp); err != nil {
		return nil, err
	}

	c.logger.Debug("got available files", zap.Int("count", len(resp.Files)))

	return resp.Files, nil
}
