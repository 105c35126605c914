package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fjacquet/ledger-import/internal/models"
	"fjacquet/ledger-import/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchReader_Read(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "jan.csv"),
		"2024-01-06,GROCERY MART,32.10,\n"+
			"2024-01-05,COFFEE SHOP,4.50,\n"+
			"2024-01-04,\"REFUND, SHOP\",,12\n")

	r := NewBatchReader(dir, "", 0, "", nil)
	records, err := r.Read(context.Background(), "jan.csv")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, date("2024-01-06"), records[0].Date)
	assert.Equal(t, "GROCERY MART", records[0].Description)
	assert.Equal(t, "32.1", records[0].AmountSpent.String())
	assert.True(t, records[0].AmountReceived.IsZero())
	assert.Equal(t, "REFUND, SHOP", records[2].Description)
	assert.Equal(t, "12", records[2].AmountReceived.String())
	for _, rec := range records {
		assert.Equal(t, models.CategoryUncategorized, rec.Category)
	}
}

func TestBatchReader_ReadAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feb.csv")
	writeFile(t, path, "05.02.2024;TRAIN;7.80;\n")

	r := NewBatchReader(filepath.Join(dir, "elsewhere"), "", ';', "02.01.2006", nil)
	assert.Equal(t, path, r.Resolve(path))

	records, err := r.Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, date("2024-02-05"), records[0].Date)
}

func TestBatchReader_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "empty.csv"), "")

	records, err := NewBatchReader(dir, "", 0, "", nil).Read(context.Background(), "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBatchReader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		row   int
		field string
	}{
		{"bad date", "2024-01-06,A,1,\n2024-13-45,B,1,\n", 2, "date"},
		{"bad amount", "2024-01-06,A,one,\n", 1, "amount spent"},
		{"negative amount", "2024-01-06,A,-1,\n", 1, "amount spent"},
		{"too few columns", "2024-01-06,A,1,\n2024-01-06,B\n", 2, "record"},
		{"too many columns", "2024-01-06,A,Food,1,\n", 1, "record"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "b.csv"), tt.body)

			records, err := NewBatchReader(dir, "", 0, "", nil).Read(context.Background(), "b.csv")
			require.Error(t, err)
			assert.Nil(t, records)

			var perr *parsererror.ParseError
			require.True(t, errors.As(err, &perr), "got %T: %v", err, err)
			assert.Equal(t, tt.row, perr.Row)
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestBatchReader_MissingFile(t *testing.T) {
	_, err := NewBatchReader(t.TempDir(), "", 0, "", nil).Read(context.Background(), "nope.csv")
	assert.Error(t, err)
}

func TestBatchReader_List(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.csv"), "")
	writeFile(t, filepath.Join(dir, "a.csv"), "")
	writeFile(t, filepath.Join(dir, "readme.txt"), "")

	files, err := NewBatchReader(dir, "*.csv", 0, "", nil).List()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, files)

	_, err = NewBatchReader(dir, "*.tsv", 0, "", nil).List()
	assert.ErrorIs(t, err, parsererror.ErrNoBatchFiles)
}

func TestBatchReader_FormattedAmounts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "fmt.csv"), "2024-01-06,RENT,\"CHF 1'234.50\",\n2024-01-07,REFUND,,\"12,5\"\n")

	records, err := NewBatchReader(dir, "", 0, "", nil).Read(context.Background(), "fmt.csv")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1234.5", records[0].AmountSpent.String())
	assert.Equal(t, "12.5", records[1].AmountReceived.String())
}
