package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/ledger-import/internal/categorizer"
	"fjacquet/ledger-import/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override, e.g. LEDGER_LOG_LEVEL.
const EnvPrefix = "LEDGER"

// Ledger backends
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// LedgerConfig locates the persisted ledger.
type LedgerConfig struct {
	Backend    string `mapstructure:"backend" yaml:"backend"`
	File       string `mapstructure:"file" yaml:"file"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	Lock       bool   `mapstructure:"lock" yaml:"lock"`
}

// ImportsConfig locates incoming batch exports.
type ImportsConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	Pattern   string `mapstructure:"pattern" yaml:"pattern"`
}

// CategoriesConfig locates the category map.
type CategoriesConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// CategorizationConfig tunes keyword matching.
type CategorizationConfig struct {
	CaseSensitive bool   `mapstructure:"case_sensitive" yaml:"case_sensitive"`
	MatchPolicy   string `mapstructure:"match_policy" yaml:"match_policy"`
}

// CSVConfig describes the on-disk CSV dialect shared by ledger and batches.
type CSVConfig struct {
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
}

// StatsConfig tunes the statistics report.
type StatsConfig struct {
	TopN     int    `mapstructure:"top_n" yaml:"top_n"`
	Currency string `mapstructure:"currency" yaml:"currency"`
}

// Config represents the complete application configuration
type Config struct {
	Log            LogConfig            `mapstructure:"log" yaml:"log"`
	Ledger         LedgerConfig         `mapstructure:"ledger" yaml:"ledger"`
	Imports        ImportsConfig        `mapstructure:"imports" yaml:"imports"`
	Categories     CategoriesConfig     `mapstructure:"categories" yaml:"categories"`
	Categorization CategorizationConfig `mapstructure:"categorization" yaml:"categorization"`
	CSV            CSVConfig            `mapstructure:"csv" yaml:"csv"`
	Stats          StatsConfig          `mapstructure:"stats" yaml:"stats"`
}

// DelimiterRune returns the configured CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	if c.CSV.Delimiter == "" {
		return ','
	}
	return []rune(c.CSV.Delimiter)[0]
}

// InitializeConfig loads configuration from defaults, the first config.yaml
// found in the standard locations, and LEDGER_* environment variables.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile is InitializeConfig with an explicit config file.
// An empty path searches the standard locations; a missing explicit file is an error.
func InitializeConfigFromFile(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(".ledger-import")
		v.AddConfigPath("$HOME/.ledger-import")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration with every default applied and nothing read
// from disk or the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ledger.backend", BackendCSV)
	v.SetDefault("ledger.file", "data.csv")
	v.SetDefault("ledger.sqlite_path", "ledger.db")
	v.SetDefault("ledger.lock", true)

	v.SetDefault("imports.directory", "./imports_dropbox")
	v.SetDefault("imports.pattern", "*.csv")

	v.SetDefault("categories.file", "categories.yaml")

	v.SetDefault("categorization.case_sensitive", true)
	v.SetDefault("categorization.match_policy", string(categorizer.FirstMatch))

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.date_format", "2006-01-02")

	v.SetDefault("stats.top_n", 5)
	v.SetDefault("stats.currency", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.CSV.DateFormat == "" {
		return fmt.Errorf("csv.date_format must not be empty")
	}

	switch config.Ledger.Backend {
	case BackendCSV:
		if config.Ledger.File == "" {
			return fmt.Errorf("ledger.file is required for the csv backend")
		}
	case BackendSQLite:
		if config.Ledger.SQLitePath == "" {
			return fmt.Errorf("ledger.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown ledger backend: %s (must be 'csv' or 'sqlite')", config.Ledger.Backend)
	}

	policy, ok := categorizer.ParseMatchPolicy(config.Categorization.MatchPolicy)
	if !ok {
		return fmt.Errorf("unknown categorization.match_policy: %s (must be 'first' or 'longest')",
			config.Categorization.MatchPolicy)
	}
	config.Categorization.MatchPolicy = string(policy)

	if config.Stats.TopN < 1 {
		return fmt.Errorf("stats.top_n must be positive, got: %d", config.Stats.TopN)
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
