// Package importer runs imports end to end: it loads the ledger, reads a
// batch, reconciles the two and persists the result.
package importer

import (
	"context"
	"fmt"

	"fjacquet/ledger-import/internal/categorizer"
	"fjacquet/ledger-import/internal/logging"
	"fjacquet/ledger-import/internal/models"
	"fjacquet/ledger-import/internal/reconcile"
	"fjacquet/ledger-import/internal/store"

	"github.com/google/uuid"
)

// BatchSource provides incoming batches.
type BatchSource interface {
	Read(ctx context.Context, name string) ([]models.Transaction, error)
	List() ([]string, error)
	Resolve(name string) string
}

// ImportResult describes one imported batch.
type ImportResult struct {
	RunID  string
	Source string
	reconcile.Result
}

// Options tunes a Service.
type Options struct {
	// Lock guards the ledger with a lock file for the duration of a write.
	Lock bool
}

// Service imports batches into a ledger store.
type Service struct {
	ledger  store.LedgerStore
	batches BatchSource
	engine  *reconcile.Engine
	opts    Options
	logger  logging.Logger
}

// NewService creates an import service.
func NewService(ledger store.LedgerStore, batches BatchSource, engine *reconcile.Engine, opts Options, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return &Service{
		ledger:  ledger,
		batches: batches,
		engine:  engine,
		opts:    opts,
		logger:  logger,
	}
}

// Ledger loads the current ledger without taking the lock.
func (s *Service) Ledger(ctx context.Context) (models.Ledger, error) {
	return s.ledger.Load(ctx)
}

// ImportFile imports one batch. The ledger is saved only when records were
// added; on any error the stored ledger is left untouched.
func (s *Service) ImportFile(ctx context.Context, name string) (ImportResult, error) {
	source := s.batches.Resolve(name)
	result := ImportResult{RunID: uuid.NewString(), Source: source}
	log := s.logger.WithFields(
		logging.F(logging.FieldRunID, result.RunID),
		logging.F(logging.FieldSource, source),
	)

	err := s.withLock(func() error {
		ledger, err := s.ledger.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load ledger: %w", err)
		}

		batch, err := s.batches.Read(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to read batch: %w", err)
		}

		updated, res, err := s.engine.Import(batch, ledger)
		if err != nil {
			return err
		}
		result.Result = res

		if res.Added == 0 {
			log.Info("Nothing new to import", logging.F(logging.FieldRead, res.Read))
			return nil
		}
		if err := s.ledger.Save(ctx, updated); err != nil {
			return fmt.Errorf("failed to save ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Import failed")
		return result, err
	}

	log.Info("Import completed",
		logging.F(logging.FieldRead, result.Read),
		logging.F(logging.FieldDropped, result.BeforeBoundary),
		logging.F(logging.FieldDuplicates, result.Duplicates),
		logging.F(logging.FieldAdded, result.Added),
		logging.F(logging.FieldUncategorized, result.Uncategorized),
	)
	return result, nil
}

// ImportAll imports every batch in the import-drop directory in name order.
// It stops at the first failing batch and returns the results so far.
func (s *Service) ImportAll(ctx context.Context) ([]ImportResult, error) {
	files, err := s.batches.List()
	if err != nil {
		return nil, err
	}

	results := make([]ImportResult, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := s.ImportFile(ctx, file)
		if err != nil {
			return results, fmt.Errorf("%s: %w", file, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Recategorize assigns categories to uncategorized ledger records and saves
// the ledger when any record changed.
func (s *Service) Recategorize(ctx context.Context) (categorizer.Result, error) {
	var res categorizer.Result
	err := s.withLock(func() error {
		ledger, err := s.ledger.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load ledger: %w", err)
		}

		var updated models.Ledger
		updated, res = s.engine.Recategorize(ledger)
		if res.Categorized == 0 {
			return nil
		}
		if err := s.ledger.Save(ctx, updated); err != nil {
			return fmt.Errorf("failed to save ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		return res, err
	}

	s.logger.Info("Recategorization completed",
		logging.F(logging.FieldCategorized, res.Categorized),
		logging.F(logging.FieldUncategorized, res.Uncategorized))
	return res, nil
}

func (s *Service) withLock(fn func() error) error {
	if !s.opts.Lock {
		return fn()
	}
	lock, err := store.AcquireLock(s.ledger.Location())
	if err != nil {
		return err
	}
	defer func() {
		if rerr := lock.Release(); rerr != nil {
			s.logger.WithError(rerr).Warn("Failed to release ledger lock",
				logging.F(logging.FieldFile, lock.Path()))
		}
	}()
	return fn()
}
