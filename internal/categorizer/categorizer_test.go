package categorizer

import (
	"testing"

	"fjacquet/ledger-import/internal/logging"
	"fjacquet/ledger-import/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func foodMap() models.CategoryMap {
	return models.CategoryMap{
		{Name: "Food", Keywords: []string{"GROCERY", "COFFEE"}},
	}
}

func TestCategorizer_Name(t *testing.T) {
	assert.Equal(t, "Keyword", NewCategorizer(nil, DefaultOptions(), nil).Name())
}

func TestCategorizer_Categorize(t *testing.T) {
	tests := []struct {
		name        string
		categories  models.CategoryMap
		opts        Options
		description string
		category    string
		expected    string
	}{
		{
			name:        "keyword substring match",
			categories:  foodMap(),
			opts:        DefaultOptions(),
			description: "GROCERY MART",
			expected:    "Food",
		},
		{
			name:        "no match keeps uncategorized marker",
			categories:  foodMap(),
			opts:        DefaultOptions(),
			description: "UNKNOWN VENDOR 123",
			expected:    models.CategoryUncategorized,
		},
		{
			name:        "empty category is treated as uncategorized",
			categories:  foodMap(),
			opts:        DefaultOptions(),
			description: "COFFEE SHOP",
			category:    "",
			expected:    "Food",
		},
		{
			name:        "already categorized record is untouched",
			categories:  foodMap(),
			opts:        DefaultOptions(),
			description: "COFFEE SHOP",
			category:    "Treats",
			expected:    "Treats",
		},
		{
			name:        "case sensitive by default",
			categories:  foodMap(),
			opts:        DefaultOptions(),
			description: "grocery mart",
			expected:    models.CategoryUncategorized,
		},
		{
			name:        "case insensitive when configured",
			categories:  foodMap(),
			opts:        Options{CaseSensitive: false, Policy: FirstMatch},
			description: "grocery mart",
			expected:    "Food",
		},
		{
			name: "first category in map order wins",
			categories: models.CategoryMap{
				{Name: "Groceries", Keywords: []string{"MIGROS"}},
				{Name: "Restaurants", Keywords: []string{"MIGROS RESTAURANT"}},
			},
			opts:        DefaultOptions(),
			description: "MIGROS RESTAURANT LAUSANNE",
			expected:    "Groceries",
		},
		{
			name: "longest keyword wins when configured",
			categories: models.CategoryMap{
				{Name: "Groceries", Keywords: []string{"MIGROS"}},
				{Name: "Restaurants", Keywords: []string{"MIGROS RESTAURANT"}},
			},
			opts:        Options{CaseSensitive: true, Policy: LongestMatch},
			description: "MIGROS RESTAURANT LAUSANNE",
			expected:    "Restaurants",
		},
		{
			name: "longest match ties keep map order",
			categories: models.CategoryMap{
				{Name: "A", Keywords: []string{"ABC"}},
				{Name: "B", Keywords: []string{"XYZ"}},
			},
			opts:        Options{CaseSensitive: true, Policy: LongestMatch},
			description: "XYZ ABC",
			expected:    "A",
		},
		{
			name: "empty keyword never matches",
			categories: models.CategoryMap{
				{Name: "Everything", Keywords: []string{""}},
			},
			opts:        DefaultOptions(),
			description: "ANYTHING",
			expected:    models.CategoryUncategorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCategorizer(tt.categories, tt.opts, nil)
			out, _ := c.Categorize([]models.Transaction{{Description: tt.description, Category: tt.category}})
			require.Len(t, out, 1)
			assert.Equal(t, tt.expected, out[0].Category)
		})
	}
}

func TestCategorizer_KeywordOrderWithinCategory(t *testing.T) {
	c := NewCategorizer(models.CategoryMap{
		{Name: "Food", Keywords: []string{"SHOP", "COFFEE"}},
	}, DefaultOptions(), nil)

	m, ok := c.Match("COFFEE SHOP")
	require.True(t, ok)
	assert.Equal(t, Match{Category: "Food", Keyword: "SHOP"}, m)
}

func TestCategorizer_DoesNotMutateInput(t *testing.T) {
	in := []models.Transaction{{Description: "GROCERY MART"}}
	out, res := NewCategorizer(foodMap(), DefaultOptions(), nil).Categorize(in)

	assert.Equal(t, "", in[0].Category)
	assert.Equal(t, "Food", out[0].Category)
	assert.Equal(t, Result{Categorized: 1}, res)
}

func TestCategorizer_StableOnRerun(t *testing.T) {
	c := NewCategorizer(foodMap(), DefaultOptions(), nil)
	first, _ := c.Categorize([]models.Transaction{
		{Description: "GROCERY MART"},
		{Description: "UNKNOWN VENDOR 123"},
		{Description: "COFFEE SHOP", Category: "Treats"},
	})
	second, res := c.Categorize(first)

	assert.Equal(t, first, second)
	assert.Equal(t, Result{AlreadyCategorized: 2, Uncategorized: 1}, res)
}

func TestCategorizer_LogsMatches(t *testing.T) {
	logger := logging.NewMockLogger()
	c := NewCategorizer(foodMap(), DefaultOptions(), logger)
	c.Categorize([]models.Transaction{{Description: "GROCERY MART"}})

	entries := logger.GetEntriesByLevel("DEBUG")
	require.Len(t, entries, 1)
	kw, ok := entries[0].FieldValue(logging.FieldKeyword)
	assert.True(t, ok)
	assert.Equal(t, "GROCERY", kw)
}

func TestParseMatchPolicy(t *testing.T) {
	p, ok := ParseMatchPolicy("Longest")
	assert.True(t, ok)
	assert.Equal(t, LongestMatch, p)

	p, ok = ParseMatchPolicy("")
	assert.True(t, ok)
	assert.Equal(t, FirstMatch, p)

	_, ok = ParseMatchPolicy("score")
	assert.False(t, ok)
}
