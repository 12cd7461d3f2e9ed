// Package rules holds the keyword and category tables the pipeline filters
// and query builder consult. The tables are versioned configuration data:
// Default() returns the built-in set, and Load() reads an override file so
// the tables can be extended without touching pipeline logic.
package rules

import (
	"fmt"

	"github.com/spf13/viper"
)

// PriceBand is the acceptable price range for a product category. Category
// is matched as a case-insensitive substring of the item name.
type PriceBand struct {
	Category string  `mapstructure:"category"`
	Min      float64 `mapstructure:"min"`
	Max      float64 `mapstructure:"max"`
}

// Tables is one versioned set of filter and query tables
type Tables struct {
	Version int `mapstructure:"version"`

	// StopWords are removed from item names before semantic-relevance checks
	StopWords []string `mapstructure:"stop_words"`

	// AccessoryKeywords mark an offer title as an accessory unless the
	// keyword also appears in the item name
	AccessoryKeywords []string `mapstructure:"accessory_keywords"`

	// UsedMarkers mark an offer title as used or refurbished
	UsedMarkers []string `mapstructure:"used_markers"`

	// PriceBands are checked in order; the first category matching the item
	// name wins. DefaultBand applies when none match.
	PriceBands  []PriceBand `mapstructure:"price_bands"`
	DefaultBand PriceBand   `mapstructure:"default_band"`

	// RetailerDomains maps a retailer key (lowercase, no spaces) to the
	// hostnames that identify it
	RetailerDomains map[string][]string `mapstructure:"retailer_domains"`

	// Canonical maps lowercase product terms to their canonical casing for
	// query normalization
	Canonical map[string]string `mapstructure:"canonical"`
}

// Default returns the built-in table set
func Default() *Tables {
	return &Tables{
		Version: 1,
		StopWords: []string{
			"a", "an", "the", "and", "for", "with", "in", "on", "of", "to", "new",
		},
		AccessoryKeywords: []string{
			"case", "cover", "skin", "screen protector", "charger", "cable",
			"adapter", "stand", "mount", "sleeve", "bag", "keyboard", "mouse",
			"dock", "hub", "sticker", "decal", "film", "guard", "protector",
			"holder", "grip", "cleaning", "cloth", "kit", "tool", "repair",
			"replacement part",
		},
		UsedMarkers: []string{
			"used", "refurbished", "renewed", "pre-owned", "open box",
			"grade b", "grade c", "scratched",
		},
		PriceBands: []PriceBand{
			{Category: "macbook", Min: 500, Max: 5000},
			{Category: "iphone", Min: 200, Max: 2000},
			{Category: "ipad", Min: 200, Max: 2000},
			{Category: "laptop", Min: 300, Max: 5000},
			{Category: "tv", Min: 150, Max: 5000},
			{Category: "tablet", Min: 100, Max: 2000},
		},
		DefaultBand: PriceBand{Min: 1, Max: 10000},
		RetailerDomains: map[string][]string{
			"walmart": {"walmart.com"},
			"amazon":  {"amazon.com", "amazon.ca"},
			"target":  {"target.com"},
			"bestbuy": {"bestbuy.com"},
		},
		Canonical: map[string]string{
			"macbook pro": "MacBook Pro",
			"macbook air": "MacBook Air",
			"iphone":      "iPhone",
			"ipad":        "iPad",
		},
	}
}

// Load reads a table override file. An empty path returns the defaults.
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var tables Tables
	if err := v.Unmarshal(&tables); err != nil {
		return nil, fmt.Errorf("unable to decode rules file: %w", err)
	}

	if err := validate(&tables); err != nil {
		return nil, fmt.Errorf("invalid rules file: %w", err)
	}

	return &tables, nil
}

// validate rejects table sets the pipeline cannot run with
func validate(t *Tables) error {
	if t.Version <= 0 {
		return fmt.Errorf("rules version must be positive, got %d", t.Version)
	}
	if t.DefaultBand.Max <= t.DefaultBand.Min {
		return fmt.Errorf("default price band is empty: min %.2f, max %.2f",
			t.DefaultBand.Min, t.DefaultBand.Max)
	}
	for _, band := range t.PriceBands {
		if band.Category == "" {
			return fmt.Errorf("price band with empty category")
		}
		if band.Max <= band.Min {
			return fmt.Errorf("price band %q is empty: min %.2f, max %.2f",
				band.Category, band.Min, band.Max)
		}
	}
	return nil
}

// StopWordSet returns the stop words as a lookup set
func (t *Tables) StopWordSet() map[string]bool {
	set := make(map[string]bool, len(t.StopWords))
	for _, w := range t.StopWords {
		set[w] = true
	}
	return set
}
