package usecase

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/shopsense/backend/internal/domain"
	"github.com/shopsense/backend/internal/rules"
)

// LinkResolver finds the best actionable purchase link for a chosen offer.
// Every failure path degrades to the best link already at hand; Resolve
// never returns an error.
type LinkResolver struct {
	sellers domain.SellerProvider
	filters *FilterChain
	tables  *rules.Tables
}

// NewLinkResolver creates a resolver over the given seller provider
func NewLinkResolver(sellers domain.SellerProvider, tables *rules.Tables) *LinkResolver {
	return &LinkResolver{
		sellers: sellers,
		filters: NewFilterChain(tables),
		tables:  tables,
	}
}

// Resolve returns the offer's own link when it already satisfies the
// retailer preference. Otherwise it looks up the product's seller list and
// walks it: for a specific retailer, the first seller whose name or link
// host matches wins; for the wildcard, or when no seller matches, the first
// seller wins. On lookup failure or a missing product identifier the
// original link is returned, which may be empty.
func (r *LinkResolver) Resolve(ctx context.Context, offer domain.Offer, pref domain.RetailerPreference) string {
	if offer.Link != "" && r.filters.MatchesRetailer(&offer, pref) {
		return offer.Link
	}

	productID := offer.ProductID
	if productID == "" {
		productID = offer.FallbackID
	}
	if productID == "" {
		return offer.Link
	}

	sellers, err := r.sellers.Sellers(ctx, productID)
	if err != nil {
		log.Printf("[RESOLVER] Seller lookup failed for product %q: %v", productID, err)
		return offer.Link
	}
	if len(sellers) == 0 {
		return offer.Link
	}

	if !pref.IsAny() {
		if link := r.matchSeller(sellers, pref); link != "" {
			return link
		}
	}

	// No matching retailer, or wildcard preference: take the top-listed seller
	return sellers[0].Link
}

// matchSeller returns the link of the first seller whose name or link host
// matches the retailer preference, or empty when none do
func (r *LinkResolver) matchSeller(sellers []domain.Seller, pref domain.RetailerPreference) string {
	key := pref.Key()
	aliases := r.tables.RetailerDomains[key]

	for _, seller := range sellers {
		name := strings.ReplaceAll(strings.ToLower(seller.Name), " ", "")
		if strings.Contains(name, key) {
			return seller.Link
		}

		parsed, err := url.Parse(seller.Link)
		if err != nil {
			continue
		}
		host := strings.ToLower(parsed.Hostname())
		for _, alias := range aliases {
			if strings.Contains(host, alias) {
				return seller.Link
			}
		}
	}

	return ""
}
