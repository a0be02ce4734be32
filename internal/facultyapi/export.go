package facultyapi

import (
	"context"
	"net/http"
	"net/url"
)

// SubmitExport posts the serialized matches as a plain form, the same way a
// browser form submission would. The caller must close the response body.
func (c *Client) SubmitExport(ctx context.Context, matchesJSON, format string) (*http.Response, error) {
	fields := url.Values{}
	fields.Set("matches", matchesJSON)
	fields.Set("format", format)

	return c.postForm(ctx, EndpointExport, exportPath, fields)
}
