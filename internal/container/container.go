// Package container provides dependency injection for the ledger-import application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"io"
	"sync"

	"fjacquet/ledger-import/internal/categorizer"
	"fjacquet/ledger-import/internal/config"
	"fjacquet/ledger-import/internal/importer"
	"fjacquet/ledger-import/internal/logging"
	"fjacquet/ledger-import/internal/reconcile"
	"fjacquet/ledger-import/internal/report"
	"fjacquet/ledger-import/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// The category map is loaded on first use, so commands that never categorize
// (stats) run without one. A missing map is fatal for the commands that do.
type Container struct {
	logger        logging.Logger
	config        *config.Config
	categoryStore store.CategoryMapLoader
	ledgerStore   store.LedgerStore
	batches       *store.BatchReader
	reports       *report.ReportGenerator

	once        sync.Once
	categorizer *categorizer.Categorizer
	service     *importer.Service
	initErr     error
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewMockLogger()
	}

	ledgerStore, err := newLedgerStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	c := &Container{
		logger:        logger,
		config:        cfg,
		categoryStore: store.NewCategoryStore(cfg.Categories.File, logger),
		ledgerStore:   ledgerStore,
		batches: store.NewBatchReader(
			cfg.Imports.Directory,
			cfg.Imports.Pattern,
			cfg.DelimiterRune(),
			cfg.CSV.DateFormat,
			logger,
		),
		reports: report.NewReportGenerator(logger),
	}

	logger.Debug("Container initialized",
		logging.F(logging.FieldBackend, cfg.Ledger.Backend),
		logging.F(logging.FieldFile, ledgerStore.Location()))
	return c, nil
}

func newLedgerStore(cfg *config.Config, logger logging.Logger) (store.LedgerStore, error) {
	switch cfg.Ledger.Backend {
	case config.BackendSQLite:
		s, err := store.NewSQLiteLedgerStore(cfg.Ledger.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite ledger: %w", err)
		}
		return s, nil
	case config.BackendCSV, "":
		return store.NewCSVLedgerStore(cfg.Ledger.File, cfg.DelimiterRune(), cfg.CSV.DateFormat, logger), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend: %s", cfg.Ledger.Backend)
	}
}

// initCategorization loads the category map and builds the categorizer and
// import service once.
func (c *Container) initCategorization() error {
	c.once.Do(func() {
		categories, err := c.categoryStore.LoadCategories()
		if err != nil {
			c.initErr = err
			return
		}

		policy, ok := categorizer.ParseMatchPolicy(c.config.Categorization.MatchPolicy)
		if !ok {
			c.initErr = fmt.Errorf("unknown match policy: %s", c.config.Categorization.MatchPolicy)
			return
		}

		c.categorizer = categorizer.NewCategorizer(categories, categorizer.Options{
			CaseSensitive: c.config.Categorization.CaseSensitive,
			Policy:        policy,
		}, c.logger)
		c.service = importer.NewService(
			c.ledgerStore,
			c.batches,
			reconcile.NewEngine(c.categorizer, c.logger),
			importer.Options{Lock: c.config.Ledger.Lock},
			c.logger,
		)

		c.logger.Debug("Category map loaded",
			logging.F(logging.FieldCount, len(categories)),
			logging.F(logging.FieldPolicy, string(policy)))
	})
	return c.initErr
}

// GetCategorizer returns the categorizer, loading the category map on first use.
func (c *Container) GetCategorizer() (*categorizer.Categorizer, error) {
	if err := c.initCategorization(); err != nil {
		return nil, err
	}
	return c.categorizer, nil
}

// GetImportService returns the import service, loading the category map on first use.
func (c *Container) GetImportService() (*importer.Service, error) {
	if err := c.initCategorization(); err != nil {
		return nil, err
	}
	return c.service, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLedgerStore returns the configured ledger store.
func (c *Container) GetLedgerStore() store.LedgerStore {
	return c.ledgerStore
}

// GetBatchReader returns the batch reader for the import-drop directory.
func (c *Container) GetBatchReader() *store.BatchReader {
	return c.batches
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// Close releases resources held by the ledger store.
func (c *Container) Close() error {
	if closer, ok := c.ledgerStore.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close ledger store: %w", err)
		}
	}
	return nil
}
