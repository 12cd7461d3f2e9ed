package usecase

import (
	"regexp"
	"strings"

	"github.com/shopsense/backend/internal/domain"
	"github.com/shopsense/backend/internal/rules"
)

// Package-level compiled regex patterns for performance
var (
	multiSpaceRegex = regexp.MustCompile(`\s+`)
	wordRegex       = regexp.MustCompile(`\w+`)
)

// canonicalRule is one compiled canonicalization entry
type canonicalRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// QueryBuilder normalizes item names and builds optimized search queries.
// Pure: both methods depend only on their inputs and the loaded tables.
type QueryBuilder struct {
	canonical []canonicalRule
}

// NewQueryBuilder compiles the canonicalization table into word-boundary
// patterns
func NewQueryBuilder(tables *rules.Tables) *QueryBuilder {
	compiled := make([]canonicalRule, 0, len(tables.Canonical))
	for term, canonical := range tables.Canonical {
		compiled = append(compiled, canonicalRule{
			pattern:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`),
			replacement: canonical,
		})
	}
	return &QueryBuilder{canonical: compiled}
}

// Normalize collapses whitespace and applies canonical casing to known
// product terms. Idempotent: Normalize(Normalize(q)) == Normalize(q).
func (b *QueryBuilder) Normalize(query string) string {
	cleaned := multiSpaceRegex.ReplaceAllString(strings.TrimSpace(query), " ")
	for _, rule := range b.canonical {
		cleaned = rule.pattern.ReplaceAllString(cleaned, rule.replacement)
	}
	return cleaned
}

// Build produces the optimized search query for an item. It appends "new"
// unless the cleaned query already contains it, and appends the retailer
// display name as a bias keyword when a specific retailer is requested.
// The retailer keyword biases the loose full-text search; it is not a
// strict site filter.
func (b *QueryBuilder) Build(item string, pref domain.RetailerPreference) string {
	cleaned := b.Normalize(item)

	parts := []string{cleaned}
	if !strings.Contains(strings.ToLower(cleaned), "new") {
		parts = append(parts, "new")
	}
	if !pref.IsAny() {
		parts = append(parts, pref.DisplayName())
	}

	return strings.Join(parts, " ")
}

// tokenize splits a string into lowercase word tokens
func tokenize(s string) []string {
	return wordRegex.FindAllString(strings.ToLower(s), -1)
}

// wordSet returns the lowercase word tokens of s as a lookup set
func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range tokenize(s) {
		set[w] = true
	}
	return set
}
