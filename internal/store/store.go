// Package store provides functionality for storing and retrieving application data:
// the category map, the ledger (CSV or SQLite) and incoming batch files.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/ledger-import/internal/logging"
	"fjacquet/ledger-import/internal/models"
	"fjacquet/ledger-import/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// DefaultCategoriesFile is used when no category map path is configured.
const DefaultCategoriesFile = "categories.yaml"

// LedgerStore loads and persists the full ledger.
type LedgerStore interface {
	Load(ctx context.Context) (models.Ledger, error)
	Save(ctx context.Context, ledger models.Ledger) error
	// Location identifies the backing file, used for locking and logs.
	Location() string
}

// CategoryMapLoader is implemented by CategoryStore and its test double.
type CategoryMapLoader interface {
	LoadCategories() (models.CategoryMap, error)
}

// CategoryStore loads the category map from a YAML or JSON file.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a new store for the category map.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "ledger-import", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories reads the category map. Any failure, including a map with no
// categories, is reported as a MissingCategoryMapError.
func (s *CategoryStore) LoadCategories() (models.CategoryMap, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = DefaultCategoriesFile
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Warn("Category map not found", logging.F(logging.FieldFile, filename))
		return nil, &parsererror.MissingCategoryMapError{Path: filename, Err: err}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &parsererror.MissingCategoryMapError{Path: filePath, Err: err}
	}

	categories, err := ParseCategoryMap(data)
	if err != nil {
		return nil, &parsererror.MissingCategoryMapError{Path: filePath, Err: err}
	}

	s.logger.Debug("Loaded category map",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(categories)))
	return categories, nil
}

// ParseCategoryMap decodes a category map document. Three shapes are accepted:
//
//	Food: [GROCERY, COFFEE]          # mapping, document order is match order
//	- name: Food                     # list
//	  keywords: [GROCERY, COFFEE]
//	categories:                      # list under a top-level key
//	  - name: Food
//
// JSON documents are accepted as YAML.
func ParseCategoryMap(data []byte) (models.CategoryMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing category map: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("category map is empty")
	}

	root := doc.Content[0]
	var categories models.CategoryMap
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&categories); err != nil {
			return nil, fmt.Errorf("error parsing category list: %w", err)
		}
	case yaml.MappingNode:
		if isWrappedList(root) {
			var wrapped models.CategoriesConfig
			if err := root.Decode(&wrapped); err != nil {
				return nil, fmt.Errorf("error parsing category list: %w", err)
			}
			categories = wrapped.Categories
			break
		}
		for i := 0; i+1 < len(root.Content); i += 2 {
			var keywords []string
			if err := root.Content[i+1].Decode(&keywords); err != nil {
				return nil, fmt.Errorf("category %q: keywords must be a list of strings: %w",
					root.Content[i].Value, err)
			}
			categories = append(categories, models.CategoryConfig{
				Name:     root.Content[i].Value,
				Keywords: keywords,
			})
		}
	default:
		return nil, errors.New("category map must be a mapping or a list")
	}

	return normalizeCategories(categories)
}

func isWrappedList(root *yaml.Node) bool {
	if len(root.Content) != 2 || root.Content[0].Value != "categories" {
		return false
	}
	list := root.Content[1]
	if list.Kind != yaml.SequenceNode {
		return false
	}
	// A single category named "categories" has plain string keywords.
	return len(list.Content) == 0 || list.Content[0].Kind == yaml.MappingNode
}

func normalizeCategories(in models.CategoryMap) (models.CategoryMap, error) {
	if len(in) == 0 {
		return nil, errors.New("category map has no categories")
	}

	seen := make(map[string]bool, len(in))
	out := make(models.CategoryMap, 0, len(in))
	for _, c := range in {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, errors.New("category with an empty name")
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate category %q", name)
		}
		seen[name] = true

		keywords := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		out = append(out, models.CategoryConfig{Name: name, Keywords: keywords})
	}
	return out, nil
}
