// Package view holds the view models of the results page and the pure
// functions that build them from backend data.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/spigell/facultymatch/internal/facultyapi"
)

const (
	FilePlaceholder    = "Select a file..."
	EmptyResultsText   = "No faculty members found that match your research interests. Try broadening your search criteria."
	LoadingAnalysis    = "Loading analysis..."
	DetailedAnalysis   = "Detailed Analysis"
	successClearsAfter = 5 * time.Second
)

// Region identifies a status area of the page.
type Region string

const (
	RegionScraping Region = "scraping"
	RegionLoading  Region = "loading"
	RegionMatching Region = "matching"
)

// StatusKind is the severity of a status message.
type StatusKind string

const (
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is a transient message shown in a region. ClearAfter is a hint for
// screens that can redraw; zero means the message stays.
type Status struct {
	Kind       StatusKind    `json:"kind" yaml:"kind"`
	Message    string        `json:"message" yaml:"message"`
	ClearAfter time.Duration `json:"clear_after,omitempty" yaml:"clear_after,omitempty"`
}

func Info(message string) Status {
	return Status{Kind: StatusInfo, Message: message}
}

func Success(message string) Status {
	return Status{Kind: StatusSuccess, Message: message, ClearAfter: successClearsAfter}
}

func Error(message string) Status {
	return Status{Kind: StatusError, Message: message}
}

// ServerError renders a server supplied error verbatim.
func ServerError(message string) Status {
	return Error("Error: " + message)
}

// Option is one entry of the file selector.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// FileSelector is the file selection control. The first option is always the
// empty placeholder.
type FileSelector struct {
	Options []Option `json:"options" yaml:"options"`
}

// NewFileSelector builds the selector for files, labelled "name (size)".
func NewFileSelector(files []facultyapi.File) FileSelector {
	options := make([]Option, 0, len(files)+1)
	options = append(options, Option{Value: "", Label: FilePlaceholder})
	for _, f := range files {
		options = append(options, Option{
			Value: f.Name,
			Label: fmt.Sprintf("%s (%s)", f.Name, FormatFileSize(f.Size)),
		})
	}
	return FileSelector{Options: options}
}

// Files returns the selectable options without the placeholder.
func (s FileSelector) Files() []Option {
	if len(s.Options) == 0 {
		return nil
	}
	return s.Options[1:]
}

// Summary renders the "Found X matches out of Y profiles" line.
func Summary(totalMatches, totalProfiles int) string {
	return fmt.Sprintf("Found %d matches out of %d profiles", totalMatches, totalProfiles)
}

// Link is an icon link on a card.
type Link struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// Card is the rendered form of one match.
type Card struct {
	Index           int      `json:"index" yaml:"index"`
	Name            string   `json:"name" yaml:"name"`
	Title           string   `json:"title" yaml:"title"`
	Department      string   `json:"department" yaml:"department"`
	Interests       string   `json:"interests,omitempty" yaml:"interests,omitempty"`
	Bio             string   `json:"bio,omitempty" yaml:"bio,omitempty"`
	Reasons         []string `json:"reasons" yaml:"reasons"`
	Badge           string   `json:"badge" yaml:"badge"`
	Tier            Tier     `json:"tier" yaml:"tier"`
	Color           string   `json:"color" yaml:"color"`
	AnalysisAction  string   `json:"analysis_action" yaml:"analysis_action"`
	Links           []Link   `json:"links,omitempty" yaml:"links,omitempty"`
	SimilarityScore float64  `json:"similarity_score" yaml:"similarity_score"`
}

// NewCard renders match at position index.
func NewCard(m facultyapi.Match, index int) Card {
	tier := SimilarityTier(m.SimilarityScore)

	card := Card{
		Index:           index,
		Name:            m.Name,
		Title:           m.Title,
		Department:      m.Department,
		Bio:             m.Bio,
		Reasons:         m.MatchReasons,
		Badge:           SimilarityLabel(m.SimilarityScore),
		Tier:            tier,
		Color:           tier.Color(),
		AnalysisAction:  DetailedAnalysis,
		SimilarityScore: m.SimilarityScore,
	}

	if len(m.ResearchInterests) > 0 {
		card.Interests = strings.Join(m.ResearchInterests, ", ")
	}

	if m.Email != "" {
		card.Links = append(card.Links, Link{Title: "Email", URL: "mailto:" + m.Email})
	}
	if m.GoogleScholar != "" {
		card.Links = append(card.Links, Link{Title: "Google Scholar", URL: m.GoogleScholar})
	}
	if m.ResearchGate != "" {
		card.Links = append(card.Links, Link{Title: "ResearchGate", URL: m.ResearchGate})
	}
	if m.ProfileURL != "" {
		card.Links = append(card.Links, Link{Title: "Profile", URL: m.ProfileURL})
	}

	return card
}

// Results is the results section: summary plus cards, or the empty state.
type Results struct {
	Summary string `json:"summary" yaml:"summary"`
	Cards   []Card `json:"cards" yaml:"cards"`
	Empty   string `json:"empty,omitempty" yaml:"empty,omitempty"`
}

// NewResults renders the results section of a match response.
func NewResults(res *facultyapi.MatchResult) Results {
	results := Results{
		Summary: Summary(res.TotalMatches, res.TotalProfiles),
		Cards:   make([]Card, 0, len(res.Matches)),
	}

	if len(res.Matches) == 0 {
		results.Empty = EmptyResultsText
		return results
	}

	for i, m := range res.Matches {
		results.Cards = append(results.Cards, NewCard(m, i))
	}

	return results
}
