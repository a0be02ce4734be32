package cmd

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spigell/facultymatch/internal/facultyapi"
	"github.com/spigell/facultymatch/internal/secrets"
	"github.com/spigell/facultymatch/internal/terminal"
	"github.com/spigell/facultymatch/internal/view"
)

func TestGetConfigDefaults(t *testing.T) {
	config, err := getConfig()
	if err != nil {
		t.Fatalf("getConfig: %v", err)
	}

	if config.Server != facultyapi.DefaultServerURL {
		t.Fatalf("server = %q, want %q", config.Server, facultyapi.DefaultServerURL)
	}
	if config.Output != terminal.FormatText {
		t.Fatalf("output = %q, want %q", config.Output, terminal.FormatText)
	}
	if config.Export == nil || config.Export.Dir != "." || config.Export.Format != "json" {
		t.Fatalf("unexpected export config: %+v", config.Export)
	}
	if config.Timeout != 0 {
		t.Fatalf("timeout = %v, want 0", config.Timeout)
	}
}

func TestOpenAIKeySource(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	if err := os.WriteFile(keyFile, []byte("sk-file\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	tests := []struct {
		name   string
		config *Config
		want   string
	}{
		{name: "nothing configured", config: &Config{}, want: ""},
		{name: "inline value", config: &Config{OpenAI: &OpenAIConfig{APIKey: " sk-inline "}}, want: "sk-inline"},
		{name: "file wins", config: &Config{OpenAI: &OpenAIConfig{APIKey: "sk-inline", APIKeyFile: keyFile}}, want: "sk-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := secrets.Load(openAIKeySource(tt.config))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got != tt.want {
				t.Fatalf("key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExportFormat(t *testing.T) {
	p := &page{config: &Config{Export: &ExportConfig{Format: "csv"}}}

	if got := p.exportFormat("json"); got != "json" {
		t.Fatalf("flag value should win, got %q", got)
	}
	if got := p.exportFormat(""); got != "csv" {
		t.Fatalf("configured format expected, got %q", got)
	}

	p.config.Export = nil
	if got := p.exportFormat(""); got != "json" {
		t.Fatalf("default format expected, got %q", got)
	}
}

func TestMenuItemsFollowPageState(t *testing.T) {
	screen := terminal.NewScreen(io.Discard, terminal.FormatText, false)
	p := &page{screen: screen}

	base := []string{PromptRefresh, PromptScrape, PromptLoad, PromptInterests, PromptOpenAIKey}

	if got, want := menuItems(p), append(append([]string{}, base...), PromptExit); !reflect.DeepEqual(got, want) {
		t.Fatalf("initial menu = %v, want %v", got, want)
	}

	screen.SetMatchEnabled(true)
	screen.ShowResults(view.NewResults(&facultyapi.MatchResult{
		Matches:       []facultyapi.Match{{Name: "Dr. Ada", SimilarityScore: 0.9}},
		TotalMatches:  1,
		TotalProfiles: 3,
	}))

	want := append(append([]string{}, base...), PromptMatch, PromptAnalysis, PromptExportJSON, PromptExportCSV, PromptExit)
	if got := menuItems(p); !reflect.DeepEqual(got, want) {
		t.Fatalf("menu with results = %v, want %v", got, want)
	}
}
