package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/facultymatch/internal/export"
	"github.com/spigell/facultymatch/internal/facultyapi"
	"github.com/spigell/facultymatch/internal/terminal"
)

const (
	app       = "facultymatch"
	envPrefix = "FACULTYMATCH"
)

type Config struct {
	Server               string         `mapstructure:"server"`
	UserAgent            string         `mapstructure:"user-agent"`
	Timeout              time.Duration  `mapstructure:"timeout"`
	MaxRequestsPerMinute int            `mapstructure:"max-requests-per-minute"`
	Output               string         `mapstructure:"output"`
	NoColor              bool           `mapstructure:"no-color"`
	OpenAI               *OpenAIConfig  `mapstructure:"openai"`
	Export               *ExportConfig  `mapstructure:"export"`
	Metrics              *MetricsConfig `mapstructure:"metrics"`
}

type OpenAIConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "facultymatch is a cli for finding faculty members whose research matches your interests",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is facultymatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringP("server", "s", facultyapi.DefaultServerURL, "base url of the matching backend")
	rootCmd.PersistentFlags().StringP("output", "o", terminal.FormatText, "output format: text, json or yaml")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))

	viper.SetDefault("user-agent", "")
	viper.SetDefault("timeout", "0s")
	viper.SetDefault("max-requests-per-minute", 0)
	viper.SetDefault("openai.api-key", "")
	viper.SetDefault("openai.api-key-file", "")
	viper.SetDefault("export.dir", ".")
	viper.SetDefault("export.format", export.DefaultFormat)
	viper.SetDefault("metrics.textfile", "")
}

func initConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("openai.api-key", envPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		log.Fatalf("binding OPENAI_API_KEY environment variable: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional unless it was asked for explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
