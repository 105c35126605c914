package categorizer

import (
	"strings"

	"fjacquet/ledger-import/internal/models"
)

// MatchPolicy decides which category wins when a description contains
// keywords from several categories.
type MatchPolicy string

const (
	// FirstMatch assigns the category of the first keyword found, walking
	// categories and then keywords in map order.
	FirstMatch MatchPolicy = "first"
	// LongestMatch assigns the category of the longest keyword found.
	// Equal lengths keep the earlier keyword in map order.
	LongestMatch MatchPolicy = "longest"
)

// ParseMatchPolicy converts a configuration value into a MatchPolicy.
func ParseMatchPolicy(s string) (MatchPolicy, bool) {
	switch MatchPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case FirstMatch, "":
		return FirstMatch, true
	case LongestMatch:
		return LongestMatch, true
	}
	return "", false
}

// Match is the outcome of looking a description up in the category map.
type Match struct {
	Category string
	Keyword  string
}

// keywordMatcher holds the category map prepared for one matching mode.
type keywordMatcher struct {
	categories    models.CategoryMap
	caseSensitive bool
	policy        MatchPolicy
}

func newKeywordMatcher(categories models.CategoryMap, caseSensitive bool, policy MatchPolicy) keywordMatcher {
	prepared := make(models.CategoryMap, 0, len(categories))
	for _, c := range categories {
		kws := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			if kw == "" {
				continue
			}
			if !caseSensitive {
				kw = strings.ToUpper(kw)
			}
			kws = append(kws, kw)
		}
		prepared = append(prepared, models.CategoryConfig{Name: c.Name, Keywords: kws})
	}
	return keywordMatcher{categories: prepared, caseSensitive: caseSensitive, policy: policy}
}

func (m keywordMatcher) match(description string) (Match, bool) {
	if !m.caseSensitive {
		description = strings.ToUpper(description)
	}

	var best Match
	found := false
	for _, c := range m.categories {
		for _, kw := range c.Keywords {
			if !strings.Contains(description, kw) {
				continue
			}
			if m.policy == FirstMatch {
				return Match{Category: c.Name, Keyword: kw}, true
			}
			if !found || len(kw) > len(best.Keyword) {
				best = Match{Category: c.Name, Keyword: kw}
				found = true
			}
		}
	}
	return best, found
}
