// Package session implements the results page controller: it owns the page
// inputs and the current matches, drives the request/render cycles against
// the backend and renders into a Screen.
package session

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/spigell/facultymatch/internal/facultyapi"
	"github.com/spigell/facultymatch/internal/metrics"
	"github.com/spigell/facultymatch/internal/view"
)

// Local messages.
const (
	msgScrapeStarted  = "Starting scraping process..."
	msgScrapeFailed   = "Error during scraping"
	msgLoadStarted    = "Loading profiles..."
	msgLoadFailed     = "Error loading profiles"
	msgNoFile         = "Please select a file"
	msgFilesFailed    = "Error loading files"
	msgMatchStarted   = "Finding matches..."
	msgMatchFailed    = "Error finding matches"
	msgNoInterests    = "Please enter your research interests"
	msgAnalysisFailed = "Error loading analysis"
	msgInterestsFirst = "Please enter your research interests first"
	msgInvalidIndex   = "Invalid match index"
	msgNoResults      = "No results to export"
)

var (
	ErrInFlight     = errors.New("action is already in progress")
	ErrNoFile       = errors.New("no file selected")
	ErrNoInterests  = errors.New("research interests are empty")
	ErrInvalidIndex = errors.New("match index out of range")
	ErrNoMatches    = errors.New("no matches to export")
)

// Action names a user triggered cycle.
type Action string

const (
	ActionFiles   Action = "files"
	ActionScrape  Action = "scrape"
	ActionLoad    Action = "load"
	ActionMatch   Action = "match"
	ActionAnalyze Action = "analyze"
	ActionExport  Action = "export"
)

// Backend is the part of the faculty API the controller needs.
type Backend interface {
	ListFiles(ctx context.Context) ([]facultyapi.File, error)
	StartScrape(ctx context.Context, req facultyapi.ScrapeRequest) (*facultyapi.ScrapeResult, error)
	LoadProfiles(ctx context.Context, filename string) (*facultyapi.LoadResult, error)
	Match(ctx context.Context, req facultyapi.MatchRequest) (*facultyapi.MatchResult, error)
	Analyze(ctx context.Context, index int, interests string) (*facultyapi.Analysis, error)
}

// Exporter submits the serialized matches. What happens to the response is
// up to the implementation.
type Exporter interface {
	Export(ctx context.Context, matchesJSON, format string) error
}

// Screen is the render target of the controller, one method per page region.
type Screen interface {
	ShowStatus(region view.Region, status view.Status)
	ShowFiles(selector view.FileSelector)
	SetMatchEnabled(enabled bool)
	ShowResults(results view.Results)
	ShowAnalysis(modal view.AnalysisModal)
	Alert(message string)
}

// Form holds the page inputs, read live by every action.
type Form struct {
	Headless  bool
	Delay     string
	File      string
	Interests string
	OpenAIKey string
}

// Controller is the results page. It is safe for concurrent use; each action
// rejects re-entry with ErrInFlight while its previous request is unresolved.
type Controller struct {
	backend  Backend
	exporter Exporter
	screen   Screen
	logger   *zap.Logger

	mu      sync.Mutex
	form    Form
	matches []facultyapi.Match

	inFlight map[Action]*atomic.Bool
}

// New creates a controller. exporter may be nil when export is not offered.
func New(backend Backend, exporter Exporter, screen Screen, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}

	inFlight := make(map[Action]*atomic.Bool)
	for _, a := range []Action{ActionFiles, ActionScrape, ActionLoad, ActionMatch, ActionAnalyze, ActionExport} {
		inFlight[a] = &atomic.Bool{}
	}

	return &Controller{
		backend:  backend,
		exporter: exporter,
		screen:   screen,
		logger:   logger,
		inFlight: inFlight,
	}
}

// Init loads the file selector.
func (c *Controller) Init(ctx context.Context) error {
	return c.RefreshFiles(ctx)
}

// SetInterests updates the interests input and toggles the match action.
func (c *Controller) SetInterests(text string) {
	c.mu.Lock()
	c.form.Interests = text
	c.mu.Unlock()

	c.screen.SetMatchEnabled(strings.TrimSpace(text) != "")
}

// SelectFile updates the file selector value.
func (c *Controller) SelectFile(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.File = name
}

// SetOpenAIKey updates the API key input.
func (c *Controller) SetOpenAIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.OpenAIKey = key
}

// SetScrapeOptions updates the scraping inputs. delay is kept as typed.
func (c *Controller) SetScrapeOptions(headless bool, delay string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Headless = headless
	c.form.Delay = delay
}

// Form returns a copy of the current inputs.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Matches returns a copy of the current matches.
func (c *Controller) Matches() []facultyapi.Match {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]facultyapi.Match(nil), c.matches...)
}

// begin marks action as running. The returned func must be deferred.
func (c *Controller) begin(action Action) (func(), error) {
	flag := c.inFlight[action]
	if !flag.CompareAndSwap(false, true) {
		metrics.RejectAction(string(action), "in_flight")
		c.logger.Warn("ignoring action", zap.String("action", string(action)), zap.String("reason", ErrInFlight.Error()))
		return nil, ErrInFlight
	}
	return func() { flag.Store(false) }, nil
}

func (c *Controller) reject(action Action, err error) error {
	metrics.RejectAction(string(action), "validation")
	c.logger.Debug("action rejected", zap.String("action", string(action)), zap.Error(err))
	return err
}

// serverMessage returns the server supplied error text, if err carries one.
func serverMessage(err error) (string, bool) {
	var serverErr *facultyapi.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Message, true
	}
	return "", false
}

// failureStatus picks the verbatim server error or the generic transport message.
func (c *Controller) failureStatus(action Action, err error, generic string) view.Status {
	if msg, ok := serverMessage(err); ok {
		c.logger.Warn("backend refused action", zap.String("action", string(action)), zap.String("error", msg))
		return view.ServerError(msg)
	}

	c.logger.Error("backend request failed", zap.String("action", string(action)), zap.Error(err))
	return view.Error(generic)
}

// parseDelay mirrors a lenient numeric input: anything unparsable becomes nil
// and is sent as null. JSON has no NaN or Inf, so those become null as well.
func parseDelay(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
