package facultyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/facultymatch/internal/metrics"
	"github.com/spigell/facultymatch/internal/util"
)

const (
	contentType     = "application/json"
	formContentType = "application/x-www-form-urlencoded"
	requestIDHeader = "X-Request-ID"
	// Max length of a response body preview in debug logs.
	previewLength = 300
)

// envelope is the part shared by every backend response.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (e envelope) result() envelope { return e }

type enveloped interface {
	result() envelope
}

// ServerError is returned when the backend answers with success set to false.
type ServerError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: server error (status %d): %s", e.Endpoint, e.Status, e.Message)
}

// call sends payload as JSON (or nothing when nil) and decodes the response into target.
// The body is decoded regardless of the HTTP status since the backend reports
// failures as JSON envelopes on 4xx and 5xx responses.
func (c *Client) call(ctx context.Context, endpoint, method, path string, payload any, target enveloped) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", endpoint, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}

	req = c.setHeaders(req)
	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.request(ctx, req)
	if err != nil {
		metrics.ObserveRequest(endpoint, metrics.OutcomeTransportError, start)
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveRequest(endpoint, metrics.OutcomeTransportError, start)
		return fmt.Errorf("%s: read response: %w", endpoint, err)
	}

	c.logger.Debug("got response from backend",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.String("body_preview", util.TruncateForLog(string(data), previewLength)),
	)

	if err := json.Unmarshal(data, target); err != nil {
		metrics.ObserveRequest(endpoint, metrics.OutcomeTransportError, start)
		return fmt.Errorf("%s: decode response (%s): %w", endpoint, resp.Status, err)
	}

	res := target.result()
	if !res.Success {
		metrics.ObserveRequest(endpoint, metrics.OutcomeServerError, start)
		return &ServerError{Endpoint: endpoint, Status: resp.StatusCode, Message: res.Error}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ObserveRequest(endpoint, metrics.OutcomeTransportError, start)
		return fmt.Errorf("%s: bad status: %s", endpoint, resp.Status)
	}

	metrics.ObserveRequest(endpoint, metrics.OutcomeOK, start)

	return nil
}

// postForm submits fields the way a browser submits a plain HTML form.
// The caller owns the returned response body.
func (c *Client) postForm(ctx context.Context, endpoint, path string, fields url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, strings.NewReader(fields.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", formContentType)

	start := time.Now()
	resp, err := c.request(ctx, req)
	if err != nil {
		metrics.ObserveRequest(endpoint, metrics.OutcomeTransportError, start)
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}

	outcome := metrics.OutcomeOK
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = metrics.OutcomeServerError
	}
	metrics.ObserveRequest(endpoint, outcome, start)

	return resp, nil
}

func (c *Client) request(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	c.logger.Debug("make request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("request_id", req.Header.Get(requestIDHeader)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set(requestIDHeader, uuid.NewString())

	return req
}
