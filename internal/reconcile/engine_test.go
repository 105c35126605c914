package reconcile

import (
	"errors"
	"testing"
	"time"

	"fjacquet/ledger-import/internal/categorizer"
	"fjacquet/ledger-import/internal/models"
	"fjacquet/ledger-import/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func spent(date, desc, amount string) models.Transaction {
	return models.Transaction{Date: day(date), Description: desc, AmountSpent: decimal.RequireFromString(amount)}
}

func newEngine() *Engine {
	cat := categorizer.NewCategorizer(models.CategoryMap{
		{Name: "Food", Keywords: []string{"GROCERY", "COFFEE"}},
	}, categorizer.DefaultOptions(), nil)
	return NewEngine(cat, nil)
}

func assertNewestFirst(t *testing.T, l models.Ledger) {
	t.Helper()
	recs := l.Records()
	for i := 1; i < len(recs); i++ {
		assert.False(t, recs[i].Date.After(recs[0].Date), "record %d is newer than the head", i)
	}
	assert.True(t, l.IsNewestFirst())
}

func TestImport_BoundaryScenario(t *testing.T) {
	coffee := spent("2024-01-05", "COFFEE SHOP", "4.50")
	coffee.Category = "Treats"
	ledger := models.NewLedger([]models.Transaction{coffee})

	batch := []models.Transaction{
		spent("2024-01-05", "COFFEE SHOP", "4.50"),
		spent("2024-01-06", "GROCERY MART", "32.10"),
	}

	updated, res, err := newEngine().Import(batch, ledger)
	require.NoError(t, err)

	recs := updated.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "GROCERY MART", recs[0].Description)
	assert.Equal(t, "Food", recs[0].Category)
	assert.Equal(t, day("2024-01-06"), recs[0].Date)
	assert.Equal(t, "COFFEE SHOP", recs[1].Description)
	assert.Equal(t, "Treats", recs[1].Category)

	assert.Equal(t, Result{Read: 2, Duplicates: 1, Added: 1, Categorized: 1}, res)
	assert.Equal(t, 1, ledger.Len(), "input ledger must not change")
}

func TestImport_EmptyLedgerOrdersNewestFirst(t *testing.T) {
	batch := []models.Transaction{
		spent("2024-01-02", "A", "1"),
		spent("2024-01-09", "B", "2"),
		spent("2024-01-05", "C", "3"),
	}

	updated, res, err := newEngine().Import(batch, models.NewLedger(nil))
	require.NoError(t, err)

	require.Equal(t, 3, updated.Len())
	var got []string
	for _, r := range updated.Records() {
		got = append(got, r.Description)
	}
	assert.Equal(t, []string{"B", "C", "A"}, got)
	assert.Equal(t, 3, res.Added)
	assertNewestFirst(t, updated)
}

func TestImport_Idempotent(t *testing.T) {
	start := models.NewLedger([]models.Transaction{spent("2024-01-05", "COFFEE SHOP", "4.50")})
	batch := []models.Transaction{
		spent("2024-01-05", "COFFEE SHOP", "4.50"),
		spent("2024-01-06", "GROCERY MART", "32.10"),
		spent("2024-01-06", "BAKERY", "3.20"),
	}
	engine := newEngine()

	once, _, err := engine.Import(batch, start)
	require.NoError(t, err)
	twice, res, err := engine.Import(batch, once)
	require.NoError(t, err)

	assert.Equal(t, once.Records(), twice.Records())
	assert.Zero(t, res.Added)
	assert.Equal(t, 2, res.Duplicates)
	assert.Equal(t, 1, res.BeforeBoundary)
}

func TestImport_NoMatchStaysUncategorized(t *testing.T) {
	updated, res, err := newEngine().Import(
		[]models.Transaction{spent("2024-03-01", "UNKNOWN VENDOR 123", "9.99")},
		models.NewLedger(nil))
	require.NoError(t, err)

	assert.Equal(t, models.CategoryUncategorized, updated.Records()[0].Category)
	assert.Equal(t, 1, res.Uncategorized)
}

func TestImport_PreBoundaryRecordDropped(t *testing.T) {
	ledger := models.NewLedger([]models.Transaction{spent("2024-02-01", "RENT", "1200")})

	updated, res, err := newEngine().Import(
		[]models.Transaction{spent("2024-01-15", "GROCERY MART", "32.10")}, ledger)
	require.NoError(t, err)

	assert.Equal(t, 1, updated.Len())
	assert.Equal(t, 1, res.BeforeBoundary)
}

func TestImport_ZeroDateRejected(t *testing.T) {
	ledger := models.NewLedger([]models.Transaction{spent("2024-02-01", "RENT", "1200")})
	batch := []models.Transaction{
		spent("2024-02-02", "GROCERY MART", "1"),
		{Description: "NO DATE"},
	}

	updated, _, err := newEngine().Import(batch, ledger)
	require.Error(t, err)

	var perr *parsererror.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Row)
	assert.Equal(t, ledger.Records(), updated.Records(), "nothing is merged on failure")
}

func TestImport_WithoutCategorizerFails(t *testing.T) {
	_, _, err := NewEngine(nil, nil).Import(nil, models.NewLedger(nil))
	assert.Error(t, err)
}

func TestRecategorize(t *testing.T) {
	ledger := models.NewLedger([]models.Transaction{
		{Date: day("2024-01-06"), Description: "GROCERY MART", Category: models.CategoryUncategorized},
		{Date: day("2024-01-05"), Description: "COFFEE SHOP", Category: "Treats"},
	})

	updated, res := newEngine().Recategorize(ledger)
	assert.Equal(t, "Food", updated.Records()[0].Category)
	assert.Equal(t, "Treats", updated.Records()[1].Category)
	assert.Equal(t, 1, res.Categorized)
	assert.Equal(t, models.CategoryUncategorized, ledger.Records()[0].Category)
}
