package usecase

import (
	"strings"

	"github.com/shopsense/backend/internal/domain"
)

// Deduplicate collapses near-duplicate offers. An offer is kept only if both
// its identity (product ID, fallback ID, or link) and its normalized title
// are previously unseen. First occurrence wins; input order is preserved.
func Deduplicate(offers []domain.Offer) []domain.Offer {
	seenIDs := make(map[string]bool, len(offers))
	seenTitles := make(map[string]bool, len(offers))

	unique := make([]domain.Offer, 0, len(offers))
	for _, offer := range offers {
		id := offer.Identity()
		title := normalizeTitle(offer.Title)

		if seenIDs[id] || seenTitles[title] {
			continue
		}
		seenIDs[id] = true
		seenTitles[title] = true
		unique = append(unique, offer)
	}

	return unique
}

// normalizeTitle lowercases, collapses internal whitespace, and trims
func normalizeTitle(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	return multiSpaceRegex.ReplaceAllString(lowered, " ")
}
