// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/ledger-import/internal/config"
	"fjacquet/ledger-import/internal/container"
	"fjacquet/ledger-import/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by every command
type CommonFlags struct {
	ConfigFile     string
	LedgerFile     string
	ImportsDir     string
	CategoriesFile string
	Backend        string
	LogLevel       string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer is built before any subcommand runs
	AppContainer *container.Container

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ledger-import",
		Short: "Import bank exports into a personal ledger and categorize them.",
		Long: `ledger-import merges headerless bank export batches into a single
newest-first ledger. Records already in the ledger are skipped and new ones
are categorized from a keyword map.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE:  initialize,
		PersistentPostRunE: shutdown,
	}
)

func init() {
	flags := Cmd.PersistentFlags()
	flags.StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: ./config.yaml, ./.ledger-import/ or $HOME/.ledger-import/)")
	flags.StringVarP(&SharedFlags.LedgerFile, "ledger", "l", "", "Ledger file (CSV file or SQLite database, depending on the backend)")
	flags.StringVar(&SharedFlags.Backend, "backend", "", "Ledger backend: csv or sqlite")
	flags.StringVarP(&SharedFlags.ImportsDir, "imports", "i", "", "Directory holding bank export batches")
	flags.StringVar(&SharedFlags.CategoriesFile, "categories", "", "Category map file (YAML or JSON)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
}

// ApplyFlags overrides configuration values with the flags that were set.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if flags.Backend != "" {
		cfg.Ledger.Backend = flags.Backend
	}
	if flags.LedgerFile != "" {
		if cfg.Ledger.Backend == config.BackendSQLite {
			cfg.Ledger.SQLitePath = flags.LedgerFile
		} else {
			cfg.Ledger.File = flags.LedgerFile
		}
	}
	if flags.ImportsDir != "" {
		cfg.Imports.Directory = flags.ImportsDir
	}
	if flags.CategoriesFile != "" {
		cfg.Categories.File = flags.CategoriesFile
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
}

func initialize(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	ApplyFlags(cfg, SharedFlags)

	Log = config.ConfigureLoggingFromConfig(cfg)
	AppContainer, err = container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	return nil
}

func shutdown(cmd *cobra.Command, args []string) error {
	if AppContainer == nil {
		return nil
	}
	err := AppContainer.Close()
	AppContainer = nil
	return err
}

// GetContainer returns the application container. It fails when called
// outside a command run.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return AppContainer, nil
}
