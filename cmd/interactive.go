package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/facultymatch/internal/terminal"
)

const (
	PromptYes        = "Yes"
	PromptNo         = "No"
	PromptBack       = "back"
	PromptRefresh    = "Refresh files"
	PromptScrape     = "Start scraping"
	PromptLoad       = "Load profiles"
	PromptInterests  = "Enter research interests"
	PromptOpenAIKey  = "Set OpenAI API key"
	PromptMatch      = "Find matches"
	PromptAnalysis   = "Detailed analysis"
	PromptExportJSON = "Export JSON"
	PromptExportCSV  = "Export CSV"
	PromptExit       = "Exit"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Work with the results page through menus",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := newPage(cmd.OutOrStdout(), terminal.FormatText)
		if err != nil {
			return err
		}
		defer p.close()

		ctx, cancel := commandContext()
		defer cancel()

		return interactive(ctx, p)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func interactive(ctx context.Context, p *page) error {
	if err := p.controller.Init(ctx); err != nil {
		p.logger.Debug("initial file list failed", zap.Error(err))
	}

	for {
		prompt := promptui.Select{
			Label: "What next?",
			Items: menuItems(p),
			Size:  12,
		}

		_, selected, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		if selected == PromptExit {
			return nil
		}

		if err := runMenuItem(ctx, p, selected); err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				continue
			}
			// The controller already rendered the failure.
			p.logger.Debug("action finished with error", zap.String("action", selected), zap.Error(err))
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func menuItems(p *page) []string {
	items := []string{PromptRefresh, PromptScrape, PromptLoad, PromptInterests, PromptOpenAIKey}
	if p.screen.MatchEnabled() {
		items = append(items, PromptMatch)
	}
	if len(p.screen.Cards()) > 0 {
		items = append(items, PromptAnalysis, PromptExportJSON, PromptExportCSV)
	}

	return append(items, PromptExit)
}

func runMenuItem(ctx context.Context, p *page, selected string) error {
	switch selected {
	case PromptRefresh:
		return p.controller.RefreshFiles(ctx)
	case PromptScrape:
		return scrapeInteractive(ctx, p)
	case PromptLoad:
		return loadInteractive(ctx, p)
	case PromptInterests:
		prompt := promptui.Prompt{
			Label:     "Research interests",
			Default:   p.controller.Form().Interests,
			AllowEdit: true,
		}
		text, err := prompt.Run()
		if err != nil {
			return err
		}
		p.controller.SetInterests(text)
	case PromptOpenAIKey:
		prompt := promptui.Prompt{
			Label: "OpenAI API key (empty to clear)",
			Mask:  '*',
		}
		key, err := prompt.Run()
		if err != nil {
			return err
		}
		p.controller.SetOpenAIKey(key)
	case PromptMatch:
		return p.controller.FindMatches(ctx)
	case PromptAnalysis:
		return analysisInteractive(ctx, p)
	case PromptExportJSON:
		return exportInteractive(ctx, p, "json")
	case PromptExportCSV:
		return exportInteractive(ctx, p, "csv")
	}

	return nil
}

func exportInteractive(ctx context.Context, p *page, format string) error {
	if err := p.controller.Export(ctx, format); err != nil {
		return err
	}

	fmt.Printf("Saved %s\n", p.downloader.LastFile)
	return nil
}

func scrapeInteractive(ctx context.Context, p *page) error {
	headlessPrompt := promptui.Select{
		Label: "Run the browser headless?",
		Items: []string{PromptYes, PromptNo},
	}
	_, headless, err := headlessPrompt.Run()
	if err != nil {
		return err
	}

	delayPrompt := promptui.Prompt{
		Label:   "Delay between requests, seconds",
		Default: defaultDelay,
	}
	delay, err := delayPrompt.Run()
	if err != nil {
		return err
	}

	p.controller.SetScrapeOptions(headless == PromptYes, delay)
	return p.controller.StartScrape(ctx)
}

func loadInteractive(ctx context.Context, p *page) error {
	options := p.screen.FileOptions()

	// Index 0 is the placeholder, which doubles as "nothing selected".
	items := make([]string, 0, len(options)+1)
	for _, o := range options {
		items = append(items, o.Label)
	}

	filePrompt := promptui.Select{
		Label: "Choose a file and press ENTER",
		Items: append(items, PromptBack),
	}
	i, selected, err := filePrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	p.controller.SelectFile(options[i].Value)
	return p.controller.LoadProfiles(ctx)
}

func analysisInteractive(ctx context.Context, p *page) error {
	cards := p.screen.Cards()

	items := make([]string, 0, len(cards)+1)
	for _, card := range cards {
		items = append(items, fmt.Sprintf("[%d] %s  %s", card.Index, card.Name, card.Badge))
	}

	cardPrompt := promptui.Select{
		Label: "Choose a faculty member and press ENTER",
		Items: append(items, PromptBack),
	}
	i, selected, err := cardPrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	return p.controller.DetailedAnalysis(ctx, cards[i].Index)
}
