package usecase

import (
	"math"
	"sort"

	"github.com/shopsense/backend/internal/domain"
)

// SortOffers annotates every offer with its numeric price and orders the
// slice in place according to the policy:
//
//   - Cheapest: ascending numeric price.
//   - HighestRated: descending rating. When no offer carries a rating the
//     policy falls back to Balanced ordering rather than degrading silently.
//   - Balanced: descending relevance score, ascending price as tie-break.
//
// A price that fails to parse becomes +Inf so the offer sorts last.
func SortOffers(offers []domain.Offer, policy domain.SortPolicy, item string) {
	for i := range offers {
		price, err := ParsePrice(offers[i].Price)
		if err != nil {
			price = math.Inf(1)
		}
		offers[i].NumericPrice = price
	}

	switch policy {
	case domain.SortCheapest:
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].NumericPrice < offers[j].NumericPrice
		})

	case domain.SortHighestRated:
		if !anyRated(offers) {
			sortBalanced(offers, item)
			return
		}
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].Rating > offers[j].Rating
		})

	default:
		sortBalanced(offers, item)
	}
}

// sortBalanced scores the offers, then orders by descending relevance with
// ascending price as the tie-break
func sortBalanced(offers []domain.Offer, item string) {
	ScoreOffers(offers, item)
	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].RelevanceScore != offers[j].RelevanceScore {
			return offers[i].RelevanceScore > offers[j].RelevanceScore
		}
		return offers[i].NumericPrice < offers[j].NumericPrice
	})
}

// anyRated reports whether at least one offer carries a rating
func anyRated(offers []domain.Offer) bool {
	for i := range offers {
		if offers[i].HasRating() {
			return true
		}
	}
	return false
}
