// Package export plays the browser's part in a result export: it submits the
// export form and saves whatever file the server sends back.
package export

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/facultymatch/internal/util"
)

const (
	DefaultFormat  = "json"
	previewLength  = 300
	nameTimeLayout = "20060102_150405"
)

// Submitter posts the export form.
type Submitter interface {
	SubmitExport(ctx context.Context, matchesJSON, format string) (*http.Response, error)
}

// Downloader saves export responses as files under Dir.
type Downloader struct {
	submitter Submitter
	logger    *zap.Logger
	Dir       string

	// LastFile is the path of the most recent download.
	LastFile string

	now func() time.Time
}

func New(submitter Submitter, dir string, logger *zap.Logger) *Downloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}

	return &Downloader{
		submitter: submitter,
		logger:    logger,
		Dir:       dir,
		now:       time.Now,
	}
}

// Export submits the matches and stores the returned file.
func (d *Downloader) Export(ctx context.Context, matchesJSON, format string) error {
	if strings.TrimSpace(format) == "" {
		format = DefaultFormat
	}

	resp, err := d.submitter.SubmitExport(ctx, matchesJSON, format)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("export rejected: %s: %s", resp.Status, util.TruncateForLog(string(body), previewLength))
	}

	name := d.filename(resp.Header.Get("Content-Disposition"), format)
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(d.Dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	written, err := io.Copy(file, resp.Body)
	if err != nil {
		return fmt.Errorf("saving export to %s: %w", path, err)
	}

	d.LastFile = path
	d.logger.Info("export saved",
		zap.String("filename", path),
		zap.String("format", format),
		zap.Int64("bytes", written),
	)

	return nil
}

// filename picks the server supplied attachment name, falling back to a
// timestamped one. Directory parts of the server name are dropped.
func (d *Downloader) filename(disposition, format string) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			name := filepath.Base(filepath.Clean("/" + params["filename"]))
			if name != "/" && name != "." && name != "" {
				return name
			}
		}
	}

	return fmt.Sprintf("faculty_matches_%s.%s", d.now().Format(nameTimeLayout), format)
}
