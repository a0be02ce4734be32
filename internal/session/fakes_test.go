package session

import (
	"context"
	"sync"

	"github.com/spigell/facultymatch/internal/facultyapi"
	"github.com/spigell/facultymatch/internal/view"
)

type statusRecord struct {
	region view.Region
	status view.Status
}

// recordingScreen keeps everything rendered into it.
type recordingScreen struct {
	mu           sync.Mutex
	statuses     []statusRecord
	selectors    []view.FileSelector
	matchEnabled []bool
	results      []view.Results
	modals       []view.AnalysisModal
	alerts       []string
}

func (s *recordingScreen) ShowStatus(region view.Region, status view.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, statusRecord{region: region, status: status})
}

func (s *recordingScreen) ShowFiles(selector view.FileSelector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectors = append(s.selectors, selector)
}

func (s *recordingScreen) SetMatchEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matchEnabled = append(s.matchEnabled, enabled)
}

func (s *recordingScreen) ShowResults(results view.Results) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, results)
}

func (s *recordingScreen) ShowAnalysis(modal view.AnalysisModal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modals = append(s.modals, modal)
}

func (s *recordingScreen) Alert(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, message)
}

func (s *recordingScreen) lastStatus(region view.Region) (view.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.statuses) - 1; i >= 0; i-- {
		if s.statuses[i].region == region {
			return s.statuses[i].status, true
		}
	}
	return view.Status{}, false
}

// stubBackend answers from its fields and counts calls.
type stubBackend struct {
	mu sync.Mutex

	files       []facultyapi.File
	filesErr    error
	scrape      *facultyapi.ScrapeResult
	scrapeErr   error
	load        *facultyapi.LoadResult
	loadErr     error
	match       *facultyapi.MatchResult
	matchErr    error
	analysis    *facultyapi.Analysis
	analysisErr error

	// matchGate, when set, blocks Match until closed. matchEntered is
	// closed once Match has been called.
	matchGate    chan struct{}
	matchEntered chan struct{}

	calls        map[string]int
	lastScrape   facultyapi.ScrapeRequest
	lastFile     string
	lastMatch    facultyapi.MatchRequest
	lastIndex    int
	lastAnalysis string
}

func (b *stubBackend) record(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.calls == nil {
		b.calls = make(map[string]int)
	}
	b.calls[name]++
}

func (b *stubBackend) count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[name]
}

func (b *stubBackend) ListFiles(context.Context) ([]facultyapi.File, error) {
	b.record("files")
	return b.files, b.filesErr
}

func (b *stubBackend) StartScrape(_ context.Context, req facultyapi.ScrapeRequest) (*facultyapi.ScrapeResult, error) {
	b.record("scrape")
	b.lastScrape = req
	return b.scrape, b.scrapeErr
}

func (b *stubBackend) LoadProfiles(_ context.Context, filename string) (*facultyapi.LoadResult, error) {
	b.record("load")
	b.lastFile = filename
	return b.load, b.loadErr
}

func (b *stubBackend) Match(_ context.Context, req facultyapi.MatchRequest) (*facultyapi.MatchResult, error) {
	b.record("match")
	b.lastMatch = req
	if b.matchEntered != nil {
		close(b.matchEntered)
	}
	if b.matchGate != nil {
		<-b.matchGate
	}
	return b.match, b.matchErr
}

func (b *stubBackend) Analyze(_ context.Context, index int, interests string) (*facultyapi.Analysis, error) {
	b.record("analyze")
	b.lastIndex = index
	b.lastAnalysis = interests
	return b.analysis, b.analysisErr
}

type capturingExporter struct {
	calls   int
	matches string
	format  string
	err     error
}

func (e *capturingExporter) Export(_ context.Context, matchesJSON, format string) error {
	e.calls++
	e.matches = matchesJSON
	e.format = format
	return e.err
}
