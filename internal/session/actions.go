package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/facultymatch/internal/facultyapi"
	"github.com/spigell/facultymatch/internal/view"
)

var errNoExporter = errors.New("export is not configured")

// RefreshFiles reloads the file selector. On failure the selector is left as is.
func (c *Controller) RefreshFiles(ctx context.Context) error {
	done, err := c.begin(ActionFiles)
	if err != nil {
		return err
	}
	defer done()

	files, err := c.backend.ListFiles(ctx)
	if err != nil {
		c.screen.ShowStatus(view.RegionLoading, c.failureStatus(ActionFiles, err, msgFilesFailed))
		return err
	}

	for _, f := range files {
		c.logger.Debug("available file", zap.String("name", f.Name), zap.Int64("size", f.Size), zap.String("modified", f.Modified))
	}

	c.screen.ShowFiles(view.NewFileSelector(files))

	return nil
}

// StartScrape triggers a scraping job with the current scraping inputs.
func (c *Controller) StartScrape(ctx context.Context) error {
	done, err := c.begin(ActionScrape)
	if err != nil {
		return err
	}
	defer done()

	form := c.Form()
	req := facultyapi.ScrapeRequest{
		Headless: form.Headless,
		Delay:    parseDelay(form.Delay),
	}

	c.screen.ShowStatus(view.RegionScraping, view.Info(msgScrapeStarted))

	res, err := c.backend.StartScrape(ctx, req)
	if err != nil {
		c.screen.ShowStatus(view.RegionScraping, c.failureStatus(ActionScrape, err, msgScrapeFailed))
		return err
	}

	c.screen.ShowStatus(view.RegionScraping, view.Success(res.Message))
	c.screen.SetMatchEnabled(true)

	// A new data file is expected after scraping.
	if err := c.RefreshFiles(ctx); err != nil {
		c.logger.Warn("refreshing files after scraping", zap.Error(err))
	}

	return nil
}

// LoadProfiles asks the backend to load the selected file.
func (c *Controller) LoadProfiles(ctx context.Context) error {
	done, err := c.begin(ActionLoad)
	if err != nil {
		return err
	}
	defer done()

	filename := c.Form().File
	if filename == "" {
		c.screen.ShowStatus(view.RegionLoading, view.Error(msgNoFile))
		return c.reject(ActionLoad, ErrNoFile)
	}

	c.screen.ShowStatus(view.RegionLoading, view.Info(msgLoadStarted))

	res, err := c.backend.LoadProfiles(ctx, filename)
	if err != nil {
		c.screen.ShowStatus(view.RegionLoading, c.failureStatus(ActionLoad, err, msgLoadFailed))
		return err
	}

	c.screen.ShowStatus(view.RegionLoading, view.Success(res.Message))
	c.screen.SetMatchEnabled(true)

	return nil
}

// FindMatches runs matching for the current interests and replaces the
// current matches on success.
func (c *Controller) FindMatches(ctx context.Context) error {
	done, err := c.begin(ActionMatch)
	if err != nil {
		return err
	}
	defer done()

	form := c.Form()
	interests := strings.TrimSpace(form.Interests)
	if interests == "" {
		c.screen.ShowStatus(view.RegionMatching, view.Error(msgNoInterests))
		return c.reject(ActionMatch, ErrNoInterests)
	}

	c.screen.ShowStatus(view.RegionMatching, view.Info(msgMatchStarted))

	res, err := c.backend.Match(ctx, facultyapi.MatchRequest{
		Interests: interests,
		OpenAIKey: strings.TrimSpace(form.OpenAIKey),
	})
	if err != nil {
		c.screen.ShowStatus(view.RegionMatching, c.failureStatus(ActionMatch, err, msgMatchFailed))
		return err
	}

	c.mu.Lock()
	c.matches = append([]facultyapi.Match(nil), res.Matches...)
	rendered := view.NewResults(&facultyapi.MatchResult{
		Matches:       c.matches,
		TotalMatches:  res.TotalMatches,
		TotalProfiles: res.TotalProfiles,
	})
	c.mu.Unlock()

	c.screen.ShowResults(rendered)
	c.screen.ShowStatus(view.RegionMatching, view.Success(rendered.Summary))

	return nil
}

// DetailedAnalysis fetches the analysis of the match at index in the current
// list, using the interests as they are now.
func (c *Controller) DetailedAnalysis(ctx context.Context, index int) error {
	done, err := c.begin(ActionAnalyze)
	if err != nil {
		return err
	}
	defer done()

	interests := strings.TrimSpace(c.Form().Interests)
	if interests == "" {
		c.screen.Alert(msgInterestsFirst)
		return c.reject(ActionAnalyze, ErrNoInterests)
	}

	c.mu.Lock()
	count := len(c.matches)
	c.mu.Unlock()

	if index < 0 || index >= count {
		c.screen.Alert(msgInvalidIndex)
		return c.reject(ActionAnalyze, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, index, count))
	}

	c.screen.ShowAnalysis(view.LoadingModal())

	analysis, err := c.backend.Analyze(ctx, index, interests)
	if err != nil {
		if msg, ok := serverMessage(err); ok {
			c.screen.ShowAnalysis(view.ErrorModal("Error: " + msg))
		} else {
			c.logger.Error("backend request failed", zap.String("action", string(ActionAnalyze)), zap.Error(err))
			c.screen.ShowAnalysis(view.ErrorModal(msgAnalysisFailed))
		}
		return err
	}

	c.screen.ShowAnalysis(view.NewAnalysisModal(analysis))

	return nil
}

// Export submits the current matches in the given format.
func (c *Controller) Export(ctx context.Context, format string) error {
	done, err := c.begin(ActionExport)
	if err != nil {
		return err
	}
	defer done()

	if c.exporter == nil {
		return errNoExporter
	}

	matches := c.Matches()
	if len(matches) == 0 {
		c.screen.Alert(msgNoResults)
		return c.reject(ActionExport, ErrNoMatches)
	}

	data, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("serialize matches: %w", err)
	}

	c.logger.Info("exporting matches", zap.Int("count", len(matches)), zap.String("format", format))

	if err := c.exporter.Export(ctx, string(data), format); err != nil {
		c.logger.Error("export failed", zap.Error(err))
		return err
	}

	return nil
}
