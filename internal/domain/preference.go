package domain

import "strings"

// RetailerPreference selects which retailer the user wants to buy from.
// RetailerAny is the wildcard.
type RetailerPreference string

const (
	RetailerAny     RetailerPreference = "any"
	RetailerWalmart RetailerPreference = "walmart"
	RetailerAmazon  RetailerPreference = "amazon"
	RetailerTarget  RetailerPreference = "target"
	RetailerBestBuy RetailerPreference = "bestbuy"
)

// retailerDisplayNames maps preferences to the name used as a query bias keyword
var retailerDisplayNames = map[RetailerPreference]string{
	RetailerWalmart: "Walmart",
	RetailerAmazon:  "Amazon",
	RetailerTarget:  "Target",
	RetailerBestBuy: "Best Buy",
}

// ParseRetailer parses a case-insensitive retailer name. Unknown or empty
// input maps to RetailerAny.
func ParseRetailer(s string) RetailerPreference {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "") {
	case "walmart":
		return RetailerWalmart
	case "amazon":
		return RetailerAmazon
	case "target":
		return RetailerTarget
	case "bestbuy":
		return RetailerBestBuy
	default:
		return RetailerAny
	}
}

// IsAny reports whether the preference is the wildcard
func (r RetailerPreference) IsAny() bool {
	return r == RetailerAny || r == ""
}

// Key returns the lowercase, whitespace-free form used for source-field and
// domain-alias matching
func (r RetailerPreference) Key() string {
	return strings.ReplaceAll(strings.ToLower(string(r)), " ", "")
}

// DisplayName returns the human-readable retailer name, empty for the wildcard
func (r RetailerPreference) DisplayName() string {
	return retailerDisplayNames[r]
}

// SortPolicy selects how surviving offers are ordered
type SortPolicy string

const (
	SortBalanced     SortPolicy = "balanced"
	SortCheapest     SortPolicy = "cheapest"
	SortHighestRated SortPolicy = "highest_rated"
)

// ParseSortPolicy parses a case-insensitive sort policy name. Unknown or
// empty input maps to SortBalanced.
func ParseSortPolicy(s string) SortPolicy {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_") {
	case "cheapest":
		return SortCheapest
	case "highest_rated", "highestrated":
		return SortHighestRated
	default:
		return SortBalanced
	}
}
