package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/ledger-import/internal/dateutils"
	"fjacquet/ledger-import/internal/fileutils"
	"fjacquet/ledger-import/internal/logging"
	"fjacquet/ledger-import/internal/models"
	"fjacquet/ledger-import/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// batchRow is one line of a bank export: no header, no category column.
type batchRow struct {
	Date           string `csv:"date"`
	Description    string `csv:"description"`
	AmountSpent    string `csv:"amount_spent"`
	AmountReceived string `csv:"amount_received"`
}

const batchColumns = 4

// BatchReader reads incoming batch files from the import-drop directory.
type BatchReader struct {
	dir        string
	pattern    string
	delimiter  rune
	dateLayout string
	logger     logging.Logger
}

// NewBatchReader creates a reader rooted at dir. pattern selects the files
// List returns ("*.csv" when empty).
func NewBatchReader(dir, pattern string, delimiter rune, dateLayout string, logger logging.Logger) *BatchReader {
	if pattern == "" {
		pattern = "*.csv"
	}
	if delimiter == 0 {
		delimiter = ','
	}
	if dateLayout == "" {
		dateLayout = dateutils.DateLayoutISO
	}
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return &BatchReader{dir: dir, pattern: pattern, delimiter: delimiter, dateLayout: dateLayout, logger: logger}
}

// Dir returns the import-drop directory.
func (r *BatchReader) Dir() string {
	return r.dir
}

// Resolve returns the path of a batch: absolute names are kept, others are
// taken relative to the import-drop directory.
func (r *BatchReader) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.dir, name)
}

// List returns the batch files in the import-drop directory sorted by name.
func (r *BatchReader) List() ([]string, error) {
	files, err := fileutils.ListFiles(r.dir, r.pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, parsererror.ErrNoBatchFiles
	}
	return files, nil
}

// Read parses a batch file. Records come back in file order with the
// uncategorized marker; one bad row fails the whole batch.
func (r *BatchReader) Read(ctx context.Context, name string) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := r.Resolve(name)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening batch: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			r.logger.WithError(cerr).Warn("Failed to close batch file",
				logging.F(logging.FieldFile, path))
		}
	}()

	reader := csv.NewReader(f)
	reader.Comma = r.delimiter
	reader.FieldsPerRecord = batchColumns

	var rows []batchRow
	if err := gocsv.UnmarshalCSVWithoutHeaders(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			r.logger.Warn("Batch file is empty", logging.F(logging.FieldFile, path))
			return []models.Transaction{}, nil
		}
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			return nil, &parsererror.ParseError{Source: path, Row: csvErr.Line, Field: "record", Err: csvErr.Err}
		}
		return nil, fmt.Errorf("error reading batch %s: %w", path, err)
	}

	records := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := r.fromRow(path, i+1, row)
		if err != nil {
			return nil, err
		}
		records = append(records, tx)
	}

	r.logger.Debug("Read batch",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(records)))
	return records, nil
}

func (r *BatchReader) fromRow(path string, n int, row batchRow) (models.Transaction, error) {
	date, err := dateutils.ParseDay(row.Date, r.dateLayout)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Source: path, Row: n, Field: "date", Value: row.Date, Err: err}
	}
	spent, err := parseAmount(row.AmountSpent)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Source: path, Row: n, Field: "amount spent", Value: row.AmountSpent, Err: err}
	}
	received, err := parseAmount(row.AmountReceived)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Source: path, Row: n, Field: "amount received", Value: row.AmountReceived, Err: err}
	}
	return models.Transaction{
		Date:           date,
		Description:    row.Description,
		Category:       models.CategoryUncategorized,
		AmountSpent:    spent,
		AmountReceived: received,
	}, nil
}
