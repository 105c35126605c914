package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"fjacquet/ledger-import/internal/dateutils"
	"fjacquet/ledger-import/internal/fileutils"
	"fjacquet/ledger-import/internal/logging"
	"fjacquet/ledger-import/internal/models"
	"fjacquet/ledger-import/internal/parsererror"

	_ "modernc.org/sqlite"
)

// SQLiteLedgerStore keeps the ledger in a SQLite database. Ledger order is
// kept in the position column.
type SQLiteLedgerStore struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// NewSQLiteLedgerStore opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteLedgerStore(dbPath string, logger logging.Logger) (*SQLiteLedgerStore, error) {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteLedgerStore{db: db, path: dbPath, logger: logger}, nil
}

// Location returns the database file path.
func (s *SQLiteLedgerStore) Location() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteLedgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads every record in ledger order.
func (s *SQLiteLedgerStore) Load(ctx context.Context) (models.Ledger, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, description, category, amount_spent, amount_received
		   FROM transactions ORDER BY position`)
	if err != nil {
		return models.Ledger{}, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	var records []models.Transaction
	for rows.Next() {
		var date, description, category, spent, received string
		if err := rows.Scan(&date, &description, &category, &spent, &received); err != nil {
			return models.Ledger{}, fmt.Errorf("scan ledger row: %w", err)
		}
		row := len(records) + 1

		d, err := dateutils.ParseDay(date, dateutils.DateLayoutISO)
		if err != nil {
			return models.Ledger{}, &parsererror.ParseError{Source: s.path, Row: row, Field: "date", Value: date, Err: err}
		}
		sp, err := parseAmount(spent)
		if err != nil {
			return models.Ledger{}, &parsererror.ParseError{Source: s.path, Row: row, Field: "amount_spent", Value: spent, Err: err}
		}
		rc, err := parseAmount(received)
		if err != nil {
			return models.Ledger{}, &parsererror.ParseError{Source: s.path, Row: row, Field: "amount_received", Value: received, Err: err}
		}
		if category == "" {
			category = models.CategoryUncategorized
		}

		records = append(records, models.Transaction{
			Date:           d,
			Description:    description,
			Category:       category,
			AmountSpent:    sp,
			AmountReceived: rc,
		})
	}
	if err := rows.Err(); err != nil {
		return models.Ledger{}, fmt.Errorf("iterate ledger rows: %w", err)
	}

	s.logger.Debug("Loaded ledger",
		logging.F(logging.FieldFile, s.path),
		logging.F(logging.FieldCount, len(records)))
	return models.NewLedger(records), nil
}

// Save replaces the stored ledger inside a single transaction.
func (s *SQLiteLedgerStore) Save(ctx context.Context, ledger models.Ledger) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (position, date, description, category, amount_spent, amount_received)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range ledger.Records() {
		if _, err = stmt.ExecContext(ctx,
			i,
			dateutils.FormatDay(r.Date, dateutils.DateLayoutISO),
			r.Description,
			r.Category,
			r.AmountSpent.String(),
			r.AmountReceived.String(),
		); err != nil {
			return fmt.Errorf("insert ledger row %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger: %w", err)
	}

	s.logger.Debug("Saved ledger",
		logging.F(logging.FieldFile, s.path),
		logging.F(logging.FieldCount, ledger.Len()))
	return nil
}
