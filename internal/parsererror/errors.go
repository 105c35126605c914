// Package parsererror defines the typed errors surfaced by ledger imports.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoBatchFiles is returned when the import directory holds no batch to import.
var ErrNoBatchFiles = errors.New("no batch files found")

// ParseError represents a record that could not be converted to a transaction.
// Row is the 1-based data row in Source; zero means the row is unknown.
type ParseError struct {
	Source string
	Row    int
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: row %d: failed to parse %s='%s': %v",
			e.Source, e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingCategoryMapError is returned when the category map cannot be loaded.
// Running without it would leave every record uncategorized silently.
type MissingCategoryMapError struct {
	Path string
	Err  error
}

func (e *MissingCategoryMapError) Error() string {
	return fmt.Sprintf("category map unavailable at '%s': %v", e.Path, e.Err)
}

func (e *MissingCategoryMapError) Unwrap() error {
	return e.Err
}

// LockError is returned when another writer already holds the ledger lock.
type LockError struct {
	Path string
}

func (e *LockError) Error() string {
	return fmt.Sprintf("ledger is locked by another writer (remove '%s' if no import is running)", e.Path)
}

// InvalidFormatError represents an input file that does not have the expected shape.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
