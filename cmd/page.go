package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/facultymatch/internal/export"
	"github.com/spigell/facultymatch/internal/facultyapi"
	"github.com/spigell/facultymatch/internal/logger"
	"github.com/spigell/facultymatch/internal/metrics"
	"github.com/spigell/facultymatch/internal/secrets"
	"github.com/spigell/facultymatch/internal/session"
	"github.com/spigell/facultymatch/internal/terminal"
)

// page is one client session: the controller and everything it renders to.
type page struct {
	config     *Config
	logger     *zap.Logger
	screen     *terminal.Screen
	downloader *export.Downloader
	controller *session.Controller
}

func newPage(out io.Writer, format string) (*page, error) {
	log, err := logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
		File:  viper.GetString("log-file"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	log = logger.WithSession(log, config.Server, uuid.NewString())

	key, err := secrets.Load(openAIKeySource(config))
	if err != nil {
		return nil, err
	}
	log.Debug("openai api key", zap.Bool("configured", key != ""))

	metrics.Register()

	client := facultyapi.New(log, config.Server, config.Timeout).WithRateLimit(config.MaxRequestsPerMinute)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	if format == "" {
		format = config.Output
	}

	exportDir := ""
	if config.Export != nil {
		exportDir = config.Export.Dir
	}

	downloader := export.New(client, exportDir, log)
	screen := terminal.NewScreen(out, format, !config.NoColor)
	controller := session.New(client, downloader, screen, log)
	controller.SetOpenAIKey(key)

	return &page{
		config:     config,
		logger:     log,
		screen:     screen,
		downloader: downloader,
		controller: controller,
	}, nil
}

func openAIKeySource(config *Config) secrets.Source {
	src := secrets.Source{Name: "openai api key", Optional: true}
	if config.OpenAI != nil {
		src.Value = config.OpenAI.APIKey
		src.File = config.OpenAI.APIKeyFile
	}

	return src
}

// exportFormat picks the flag value, then the configured default.
func (p *page) exportFormat(flag string) string {
	if flag != "" {
		return flag
	}
	if p.config.Export != nil && p.config.Export.Format != "" {
		return p.config.Export.Format
	}

	return export.DefaultFormat
}

func (p *page) close() {
	if err := p.screen.Close(); err != nil {
		p.logger.Warn("flushing output", zap.Error(err))
	}

	if p.config.Metrics != nil && p.config.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(p.config.Metrics.Textfile); err != nil {
			p.logger.Warn("writing metrics textfile", zap.String("path", p.config.Metrics.Textfile), zap.Error(err))
		}
	}

	_ = p.logger.Sync()
}

// commandContext is cancelled on interrupt so pending requests stop.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
