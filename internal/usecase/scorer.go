package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/shopsense/backend/internal/domain"
)

// Scoring weights and bonuses
const (
	wordOverlapWeight  = 100.0  // per item word present in the title
	exactPhraseBonus   = 1000.0 // item appears verbatim in the title
	ratingWeight       = 20.0   // a 5-star offer gains 100 points
	reviewDivisor      = 4.0
	reviewBonusCap     = 150.0 // keeps review volume from dominating
	longTitlePenalty   = 25.0
	longTitleThreshold = 100
)

// ScoreOffers annotates each offer with its relevance score for the item.
// Word overlap uses raw tokenization without stop-word removal; the filter
// chain has already enforced semantic relevance.
func ScoreOffers(offers []domain.Offer, item string) {
	itemLower := strings.ToLower(item)
	itemWords := wordSet(item)

	for i := range offers {
		title := strings.ToLower(offers[i].Title)
		score := 0.0

		for w := range wordSet(title) {
			if itemWords[w] {
				score += wordOverlapWeight
			}
		}

		if strings.Contains(title, itemLower) {
			score += exactPhraseBonus
		}

		if offers[i].HasRating() {
			score += offers[i].Rating * ratingWeight
		}
		if offers[i].Reviews > 0 {
			bonus := float64(offers[i].Reviews) / reviewDivisor
			if bonus > reviewBonusCap {
				bonus = reviewBonusCap
			}
			score += bonus
		}

		if utf8.RuneCountInString(offers[i].Title) > longTitleThreshold {
			score -= longTitlePenalty
		}

		offers[i].RelevanceScore = score
	}
}
