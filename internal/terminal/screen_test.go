package terminal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/spigell/facultymatch/internal/facultyapi"
	"github.com/spigell/facultymatch/internal/view"
)

func sampleResults() view.Results {
	return view.NewResults(&facultyapi.MatchResult{
		Matches: []facultyapi.Match{{
			Name:              "Dr. Chen",
			Title:             "Assistant Professor",
			Department:        "AI Thrust",
			SimilarityScore:   0.812,
			MatchReasons:      []string{"Research involves robotics"},
			ResearchInterests: []string{"robotics"},
			Email:             "chen@example.edu",
		}},
		TotalMatches:  1,
		TotalProfiles: 50,
	})
}

func TestTextScreen(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, "text", false)

	s.ShowStatus(view.RegionMatching, view.Info("Finding matches..."))
	s.ShowFiles(view.NewFileSelector([]facultyapi.File{{Name: "profiles_2024.json", Size: 2048}}))
	s.ShowResults(sampleResults())
	s.Alert("No results to export")

	text := out.String()
	for _, want := range []string{
		"* [matching] Finding matches...",
		"  profiles_2024.json (2.00 KB)",
		"Found 1 matches out of 50 profiles",
		"[0] Dr. Chen  81.2% Match",
		"Research Interests: robotics",
		"      - Research involves robotics",
		"Email: mailto:chen@example.edu",
		"Detailed Analysis: #0",
		"!! No results to export",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, text)
		}
	}

	if got := s.FileOptions(); len(got) != 1 || got[0].Value != "profiles_2024.json" {
		t.Fatalf("unexpected file options: %+v", got)
	}

	if got := s.Cards(); len(got) != 1 || got[0].Index != 0 {
		t.Fatalf("unexpected cards: %+v", got)
	}
}

func TestTextScreenEmptyResults(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, "", false)

	s.ShowResults(view.NewResults(&facultyapi.MatchResult{TotalProfiles: 50}))

	if !strings.Contains(out.String(), view.EmptyResultsText) {
		t.Fatalf("expected empty state, got:\n%s", out.String())
	}
}

func TestTextScreenAnalysis(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, FormatText, false)

	s.ShowAnalysis(view.LoadingModal())
	s.ShowAnalysis(view.NewAnalysisModal(&facultyapi.Analysis{
		AlignmentScore:   8,
		Strengths:        []string{"robotics"},
		SupervisionStyle: "hands-on",
	}))

	text := out.String()
	for _, want := range []string{
		view.LoadingAnalysis,
		"Alignment Score",
		"[################----] 8/10",
		"Strengths\n  - robotics",
		"Supervision Style\n  hands-on",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, text)
		}
	}
}

func TestMatchEnabledState(t *testing.T) {
	s := NewScreen(&bytes.Buffer{}, FormatText, false)

	if s.MatchEnabled() {
		t.Fatal("match must start disabled")
	}

	s.SetMatchEnabled(true)
	if !s.MatchEnabled() {
		t.Fatal("expected match to be enabled")
	}
}

func TestBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		percent float64
		expect  string
	}{
		{0, "[--------------------]"},
		{-10, "[--------------------]"},
		{50, "[##########----------]"},
		{100, "[####################]"},
		{120, "[########################]"},
	}

	for _, tt := range tests {
		if got := Bar(tt.percent); got != tt.expect {
			t.Errorf("Bar(%v) = %q, want %q", tt.percent, got, tt.expect)
		}
	}
}

func TestJSONScreen(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, FormatJSON, true)

	s.ShowStatus(view.RegionLoading, view.Success("Loaded 50 faculty profiles"))
	s.ShowResults(sampleResults())

	dec := json.NewDecoder(&out)

	var first event
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("decode first event: %v", err)
	}
	if first.Event != "status" || first.Region != view.RegionLoading || first.Status.Message != "Loaded 50 faculty profiles" {
		t.Fatalf("unexpected first event: %+v", first)
	}

	var second event
	if err := dec.Decode(&second); err != nil {
		t.Fatalf("decode second event: %v", err)
	}
	if second.Event != "results" || len(second.Results.Cards) != 1 || second.Results.Cards[0].Color != "#28a745" {
		t.Fatalf("unexpected second event: %+v", second)
	}
}

func TestYAMLScreen(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, FormatYAML, false)

	s.Alert("No results to export")
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var got event
	if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}

	if got.Event != "alert" || got.Alert != "No results to export" {
		t.Fatalf("unexpected event: %+v", got)
	}
}
