package usecase

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopsense/backend/internal/domain"
	"github.com/shopsense/backend/internal/rules"
)

// FilterChain is a conjunction of independent, pure predicates. An offer is
// included only if every predicate passes; predicate order does not change
// the result.
type FilterChain struct {
	tables    *rules.Tables
	stopWords map[string]bool
}

// NewFilterChain creates a filter chain over one table set
func NewFilterChain(tables *rules.Tables) *FilterChain {
	return &FilterChain{
		tables:    tables,
		stopWords: tables.StopWordSet(),
	}
}

// Apply returns the offers that pass every predicate, preserving input order
func (f *FilterChain) Apply(offers []domain.Offer, item string, pref domain.RetailerPreference) []domain.Offer {
	kept := make([]domain.Offer, 0, len(offers))
	for _, offer := range offers {
		if f.Include(&offer, item, pref) {
			kept = append(kept, offer)
		}
	}
	return kept
}

// Include decides whether a single offer survives the chain
func (f *FilterChain) Include(offer *domain.Offer, item string, pref domain.RetailerPreference) bool {
	title := strings.ToLower(offer.Title)
	if title == "" || offer.Price == "" {
		return false
	}

	price, err := ParsePrice(offer.Price)
	if err != nil || price <= 0 {
		return false
	}

	if !f.isSemanticallyRelevant(title, item) {
		return false
	}
	if f.isAccessory(title, item) {
		return false
	}
	if f.isUsedOrRefurbished(offer, title) {
		return false
	}
	if !f.MatchesRetailer(offer, pref) {
		return false
	}
	if !f.isPriceReasonable(price, item) {
		return false
	}

	return true
}

// ParsePrice converts a provider price string like "$1,299.00" to a float.
// Strips the currency symbol and thousands separators.
func ParsePrice(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	return strconv.ParseFloat(cleaned, 64)
}

// isSemanticallyRelevant requires the item's core words (stop words removed)
// to overlap the title's word set. An item with no core words passes by
// default since there is nothing to judge against.
func (f *FilterChain) isSemanticallyRelevant(title, item string) bool {
	coreWords := make(map[string]bool)
	for _, w := range tokenize(item) {
		if !f.stopWords[w] {
			coreWords[w] = true
		}
	}
	if len(coreWords) == 0 {
		return true
	}

	titleWords := wordSet(title)
	for w := range coreWords {
		if titleWords[w] {
			return true
		}
	}
	return false
}

// isAccessory rejects titles carrying an accessory keyword, unless the same
// keyword appears in the item name (searching for "laptop case" must not be
// filtered by "case")
func (f *FilterChain) isAccessory(title, item string) bool {
	itemLower := strings.ToLower(item)
	for _, keyword := range f.tables.AccessoryKeywords {
		if strings.Contains(title, keyword) && !strings.Contains(itemLower, keyword) {
			return true
		}
	}
	return false
}

// isUsedOrRefurbished checks the provider's condition field and the title
// for used-condition markers
func (f *FilterChain) isUsedOrRefurbished(offer *domain.Offer, title string) bool {
	if offer.SecondHandCondition != "" {
		return true
	}
	for _, marker := range f.tables.UsedMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

// MatchesRetailer passes unconditionally for the wildcard. Otherwise the
// offer's source field must contain the preference key, or the link's host
// must contain one of the retailer's alias domains. An unparsable link
// cannot pass via the link route.
func (f *FilterChain) MatchesRetailer(offer *domain.Offer, pref domain.RetailerPreference) bool {
	if pref.IsAny() {
		return true
	}

	key := pref.Key()
	source := strings.ReplaceAll(strings.ToLower(offer.Source), " ", "")
	if strings.Contains(source, key) {
		return true
	}

	if offer.Link != "" {
		if parsed, err := url.Parse(offer.Link); err == nil {
			host := strings.ToLower(parsed.Hostname())
			for _, alias := range f.tables.RetailerDomains[key] {
				if strings.Contains(host, alias) {
					return true
				}
			}
		}
	}

	return false
}

// isPriceReasonable checks the price against the first category band whose
// name appears in the item, falling back to the default band
func (f *FilterChain) isPriceReasonable(price float64, item string) bool {
	itemLower := strings.ToLower(item)
	for _, band := range f.tables.PriceBands {
		if strings.Contains(itemLower, band.Category) {
			return price >= band.Min && price <= band.Max
		}
	}
	band := f.tables.DefaultBand
	return price >= band.Min && price <= band.Max
}
