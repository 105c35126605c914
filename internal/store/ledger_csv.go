package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/ledger-import/internal/currencyutils"
	"fjacquet/ledger-import/internal/dateutils"
	"fjacquet/ledger-import/internal/fileutils"
	"fjacquet/ledger-import/internal/logging"
	"fjacquet/ledger-import/internal/models"
	"fjacquet/ledger-import/internal/parsererror"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// ledgerRow is the on-disk shape of one ledger record.
type ledgerRow struct {
	Date           string `csv:"Date"`
	Transaction    string `csv:"Transaction"`
	Category       string `csv:"Category"`
	AmountSpent    string `csv:"Amount Spent"`
	AmountReceived string `csv:"Amount Received"`
}

// CSVLedgerStore keeps the ledger in a single headed CSV file, newest first.
type CSVLedgerStore struct {
	path       string
	delimiter  rune
	dateLayout string
	logger     logging.Logger
}

// NewCSVLedgerStore creates a store for the ledger file at path. A zero
// delimiter means ',' and an empty layout means ISO dates.
func NewCSVLedgerStore(path string, delimiter rune, dateLayout string, logger logging.Logger) *CSVLedgerStore {
	if delimiter == 0 {
		delimiter = ','
	}
	if dateLayout == "" {
		dateLayout = dateutils.DateLayoutISO
	}
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return &CSVLedgerStore{path: path, delimiter: delimiter, dateLayout: dateLayout, logger: logger}
}

// Location returns the ledger file path.
func (s *CSVLedgerStore) Location() string {
	return s.path
}

// Load reads the ledger. A missing file is created with only the header row
// and read as an empty ledger.
func (s *CSVLedgerStore) Load(ctx context.Context) (models.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return models.Ledger{}, err
	}

	if !fileutils.FileExists(s.path) {
		s.logger.Info("Ledger file not found, creating an empty one",
			logging.F(logging.FieldFile, s.path))
		if err := s.write(nil); err != nil {
			return models.Ledger{}, err
		}
		return models.NewLedger(nil), nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return models.Ledger{}, fmt.Errorf("error opening ledger: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.WithError(cerr).Warn("Failed to close ledger file",
				logging.F(logging.FieldFile, s.path))
		}
	}()

	records, err := s.decode(f)
	if err != nil {
		return models.Ledger{}, err
	}

	s.logger.Debug("Loaded ledger",
		logging.F(logging.FieldFile, s.path),
		logging.F(logging.FieldCount, len(records)))
	return models.NewLedger(records), nil
}

func (s *CSVLedgerStore) decode(r io.Reader) ([]models.Transaction, error) {
	reader := csv.NewReader(r)
	reader.Comma = s.delimiter

	var rows []ledgerRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			return nil, &parsererror.ParseError{
				Source: s.path,
				Row:    max(csvErr.Line-1, 0),
				Field:  "record",
				Err:    csvErr.Err,
			}
		}
		return nil, &parsererror.InvalidFormatError{
			FilePath:       s.path,
			ExpectedFormat: "CSV with header Date,Transaction,Category,Amount Spent,Amount Received",
			Msg:            err.Error(),
		}
	}

	records := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := s.fromRow(row)
		if err != nil {
			var perr *parsererror.ParseError
			if errors.As(err, &perr) {
				perr.Row = i + 1
			}
			return nil, err
		}
		records = append(records, tx)
	}
	return records, nil
}

func (s *CSVLedgerStore) fromRow(row ledgerRow) (models.Transaction, error) {
	date, err := dateutils.ParseDay(row.Date, s.dateLayout)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Source: s.path, Field: "Date", Value: row.Date, Err: err}
	}
	spent, err := parseAmount(row.AmountSpent)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Source: s.path, Field: "Amount Spent", Value: row.AmountSpent, Err: err}
	}
	received, err := parseAmount(row.AmountReceived)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Source: s.path, Field: "Amount Received", Value: row.AmountReceived, Err: err}
	}

	category := strings.TrimSpace(row.Category)
	if category == "" {
		category = models.CategoryUncategorized
	}

	return models.Transaction{
		Date:           date,
		Description:    row.Transaction,
		Category:       category,
		AmountSpent:    spent,
		AmountReceived: received,
	}, nil
}

// Save rewrites the whole ledger file atomically.
func (s *CSVLedgerStore) Save(ctx context.Context, ledger models.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.write(ledger.Records()); err != nil {
		return err
	}
	s.logger.Debug("Saved ledger",
		logging.F(logging.FieldFile, s.path),
		logging.F(logging.FieldCount, ledger.Len()))
	return nil
}

func (s *CSVLedgerStore) write(records []models.Transaction) error {
	rows := make([]ledgerRow, 0, len(records))
	for _, tx := range records {
		rows = append(rows, ledgerRow{
			Date:           dateutils.FormatDay(tx.Date, s.dateLayout),
			Transaction:    tx.Description,
			Category:       tx.Category,
			AmountSpent:    formatAmount(tx.AmountSpent),
			AmountReceived: formatAmount(tx.AmountReceived),
		})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = s.delimiter
	csvWriter := gocsv.NewSafeCSVWriter(w)
	if err := gocsv.MarshalCSV(&rows, csvWriter); err != nil {
		return fmt.Errorf("error encoding ledger: %w", err)
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("error encoding ledger: %w", err)
	}

	if err := fileutils.WriteFileAtomic(s.path, buf.Bytes(), models.PermissionDataFile); err != nil {
		return fmt.Errorf("error writing ledger: %w", err)
	}
	return nil
}

// parseAmount reads a non-negative amount; blank means zero.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := currencyutils.ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("amount must not be negative")
	}
	return d, nil
}

// formatAmount renders zero as an empty cell. Amounts are written with two
// decimals when that is exact, otherwise at their full precision.
func formatAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}
