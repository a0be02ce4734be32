// Package terminal renders the results page to a terminal or as a stream of
// JSON or YAML documents.
package terminal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/manifoldco/promptui"
	"gopkg.in/yaml.v3"

	"github.com/spigell/facultymatch/internal/view"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const barWidth = 20

var tierStyles = map[view.Tier]func(interface{}) string{
	view.TierGreen:  promptui.Styler(promptui.FGGreen, promptui.FGBold),
	view.TierYellow: promptui.Styler(promptui.FGYellow, promptui.FGBold),
	// ANSI has no orange, magenta is the closest distinct colour.
	view.TierOrange: promptui.Styler(promptui.FGMagenta, promptui.FGBold),
	view.TierRed:    promptui.Styler(promptui.FGRed, promptui.FGBold),
}

var (
	styleInfo    = promptui.Styler(promptui.FGCyan)
	styleSuccess = promptui.Styler(promptui.FGGreen)
	styleError   = promptui.Styler(promptui.FGRed)
	styleHeading = promptui.Styler(promptui.FGBold)
	styleFaint   = promptui.Styler(promptui.FGFaint)
)

// Screen implements the page regions on top of an io.Writer. It also keeps the
// last rendered state so interactive front ends can build menus from it.
type Screen struct {
	mu     sync.Mutex
	out    io.Writer
	format string
	color  bool

	selector     view.FileSelector
	matchEnabled bool
	results      view.Results

	jsonEnc *json.Encoder
	yamlEnc *yaml.Encoder
}

// NewScreen returns a screen writing to out. Unknown formats fall back to text.
func NewScreen(out io.Writer, format string, color bool) *Screen {
	s := &Screen{out: out, format: strings.ToLower(strings.TrimSpace(format)), color: color}

	switch s.format {
	case FormatJSON:
		s.jsonEnc = json.NewEncoder(out)
	case FormatYAML:
		s.yamlEnc = yaml.NewEncoder(out)
		s.yamlEnc.SetIndent(2)
	default:
		s.format = FormatText
	}

	return s
}

// event is one structured document in json or yaml mode.
type event struct {
	Event    string              `json:"event" yaml:"event"`
	Region   view.Region         `json:"region,omitempty" yaml:"region,omitempty"`
	Status   *view.Status        `json:"status,omitempty" yaml:"status,omitempty"`
	Files    *view.FileSelector  `json:"files,omitempty" yaml:"files,omitempty"`
	Enabled  *bool               `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Results  *view.Results       `json:"results,omitempty" yaml:"results,omitempty"`
	Analysis *view.AnalysisModal `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Alert    string              `json:"alert,omitempty" yaml:"alert,omitempty"`
}

func (s *Screen) emit(e event) bool {
	switch s.format {
	case FormatJSON:
		_ = s.jsonEnc.Encode(e)
		return true
	case FormatYAML:
		_ = s.yamlEnc.Encode(e)
		return true
	default:
		return false
	}
}

// Close flushes the yaml stream.
func (s *Screen) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.yamlEnc != nil {
		return s.yamlEnc.Close()
	}
	return nil
}

func (s *Screen) style(fn func(interface{}) string, text string) string {
	if !s.color {
		return text
	}
	return fn(text)
}

func (s *Screen) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Screen) ShowStatus(region view.Region, status view.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emit(event{Event: "status", Region: region, Status: &status}) {
		return
	}

	marker := "*"
	styler := styleInfo
	switch status.Kind {
	case view.StatusSuccess:
		marker, styler = "+", styleSuccess
	case view.StatusError:
		marker, styler = "!", styleError
	}

	s.printf("%s [%s] %s\n", s.style(styler, marker), region, s.style(styler, status.Message))
}

func (s *Screen) ShowFiles(selector view.FileSelector) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selector = selector
	if s.emit(event{Event: "files", Files: &selector}) {
		return
	}

	files := selector.Files()
	if len(files) == 0 {
		s.printf("%s\n", s.style(styleFaint, "no data files available"))
		return
	}

	s.printf("%s\n", s.style(styleHeading, "Available files:"))
	for _, opt := range files {
		s.printf("  %s\n", opt.Label)
	}
}

func (s *Screen) SetMatchEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matchEnabled = enabled
	s.emit(event{Event: "match_enabled", Enabled: &enabled})
}

func (s *Screen) ShowResults(results view.Results) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = results
	if s.emit(event{Event: "results", Results: &results}) {
		return
	}

	s.printf("\n%s\n", s.style(styleHeading, results.Summary))
	if results.Empty != "" {
		s.printf("%s\n", s.style(styleError, results.Empty))
		return
	}

	for _, card := range results.Cards {
		s.printCard(card)
	}
}

func (s *Screen) printCard(card view.Card) {
	s.printf("\n[%d] %s  %s\n", card.Index, s.style(styleHeading, card.Name), s.style(tierStyles[card.Tier], card.Badge))
	s.printf("    %s, %s\n", card.Title, card.Department)
	if card.Interests != "" {
		s.printf("    Research Interests: %s\n", card.Interests)
	}
	if card.Bio != "" {
		s.printf("    %s\n", s.style(styleFaint, card.Bio))
	}
	s.printf("    Why this match:\n")
	for _, reason := range card.Reasons {
		s.printf("      - %s\n", reason)
	}
	for _, link := range card.Links {
		s.printf("    %s: %s\n", link.Title, link.URL)
	}
	s.printf("    %s: #%d\n", card.AnalysisAction, card.Index)
}

func (s *Screen) ShowAnalysis(modal view.AnalysisModal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emit(event{Event: "analysis", Analysis: &modal}) {
		return
	}

	switch {
	case modal.Loading:
		s.printf("%s\n", s.style(styleInfo, view.LoadingAnalysis))
		return
	case modal.Error != "":
		s.printf("%s\n", s.style(styleError, modal.Error))
		return
	case modal.Warning != "":
		s.printf("%s\n", s.style(styleError, modal.Warning))
		return
	}

	if modal.Score != nil {
		s.printf("\n%s\n  %s %s\n", s.style(styleHeading, view.HeadingScore), Bar(modal.Score.Width), modal.Score.Label)
	}

	for _, section := range modal.Sections {
		s.printf("%s\n", s.style(styleHeading, section.Heading))
		if section.Text != "" {
			s.printf("  %s\n", section.Text)
		}
		for _, item := range section.Items {
			s.printf("  - %s\n", item)
		}
	}
}

func (s *Screen) Alert(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emit(event{Event: "alert", Alert: message}) {
		return
	}

	s.printf("%s %s\n", s.style(styleError, "!!"), message)
}

// Bar draws a progress bar for a percentage. Values above 100 overflow the
// frame like the page's progress bar does.
func Bar(percent float64) string {
	filled := int(percent / (100 / barWidth))
	if filled < 0 {
		filled = 0
	}

	empty := barWidth - filled
	if empty < 0 {
		empty = 0
	}

	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", empty) + "]"
}

// FileOptions returns the selectable files of the last rendered selector.
func (s *Screen) FileOptions() []view.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selector.Files()
}

// MatchEnabled reports whether the match action is currently enabled.
func (s *Screen) MatchEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matchEnabled
}

// Cards returns the cards of the last rendered results.
func (s *Screen) Cards() []view.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]view.Card(nil), s.results.Cards...)
}
