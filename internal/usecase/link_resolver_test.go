package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopsense/backend/internal/domain"
	"github.com/shopsense/backend/internal/rules"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the offer link when it already matches the retailer", func(t *testing.T) {
		resolver := NewLinkResolver(&fakeSellerProvider{
			sellers: []domain.Seller{{Name: "Other", Link: "https://other.example"}},
		}, rules.Default())
		offer := domain.Offer{
			ProductID: "p1",
			Source:    "amazon.com",
			Link:      "https://www.amazon.com/dp/xyz",
		}

		got := resolver.Resolve(ctx, offer, domain.RetailerAmazon)
		if got != offer.Link {
			t.Errorf("link = %q, want the offer's own link", got)
		}
	})

	t.Run("walks sellers for a matching retailer by name", func(t *testing.T) {
		resolver := NewLinkResolver(&fakeSellerProvider{
			sellers: []domain.Seller{
				{Name: "eBay", Link: "https://ebay.com/itm/1"},
				{Name: "Best Buy", Link: "https://www.bestbuy.com/site/2"},
			},
		}, rules.Default())
		offer := domain.Offer{ProductID: "p1", Source: "ebay", Link: "https://ebay.com/itm/1"}

		got := resolver.Resolve(ctx, offer, domain.RetailerBestBuy)
		if got != "https://www.bestbuy.com/site/2" {
			t.Errorf("link = %q, want the Best Buy seller", got)
		}
	})

	t.Run("matches sellers by link host alias", func(t *testing.T) {
		resolver := NewLinkResolver(&fakeSellerProvider{
			sellers: []domain.Seller{
				{Name: "Marketplace seller", Link: "https://www.walmart.com/ip/3"},
			},
		}, rules.Default())
		offer := domain.Offer{ProductID: "p1", Source: "ebay"}

		got := resolver.Resolve(ctx, offer, domain.RetailerWalmart)
		if got != "https://www.walmart.com/ip/3" {
			t.Errorf("link = %q, want the Walmart seller", got)
		}
	})

	t.Run("falls back to the first seller when no retailer matches", func(t *testing.T) {
		resolver := NewLinkResolver(&fakeSellerProvider{
			sellers: []domain.Seller{
				{Name: "eBay", Link: "https://ebay.com/itm/1"},
				{Name: "Newegg", Link: "https://newegg.com/2"},
			},
		}, rules.Default())
		offer := domain.Offer{ProductID: "p1", Source: "unknown shop"}

		got := resolver.Resolve(ctx, offer, domain.RetailerTarget)
		if got != "https://ebay.com/itm/1" {
			t.Errorf("link = %q, want the top-listed seller", got)
		}
	})

	t.Run("wildcard preference takes the first seller", func(t *testing.T) {
		resolver := NewLinkResolver(&fakeSellerProvider{
			sellers: []domain.Seller{{Name: "eBay", Link: "https://ebay.com/itm/1"}},
		}, rules.Default())
		// No link on the offer, so the wildcard cannot short-circuit
		offer := domain.Offer{ProductID: "p1"}

		got := resolver.Resolve(ctx, offer, domain.RetailerAny)
		if got != "https://ebay.com/itm/1" {
			t.Errorf("link = %q, want the top-listed seller", got)
		}
	})

	t.Run("lookup failure degrades to the original link", func(t *testing.T) {
		resolver := NewLinkResolver(&fakeSellerProvider{err: errors.New("down")}, rules.Default())
		offer := domain.Offer{ProductID: "p1", Source: "ebay", Link: "https://ebay.com/itm/1"}

		got := resolver.Resolve(ctx, offer, domain.RetailerAmazon)
		if got != offer.Link {
			t.Errorf("link = %q, want the original link", got)
		}
	})

	t.Run("missing product id degrades to the original link", func(t *testing.T) {
		resolver := NewLinkResolver(&fakeSellerProvider{
			sellers: []domain.Seller{{Name: "Amazon", Link: "https://amazon.com/dp/1"}},
		}, rules.Default())
		offer := domain.Offer{Source: "ebay", Link: "https://ebay.com/itm/1"}

		got := resolver.Resolve(ctx, offer, domain.RetailerAmazon)
		if got != offer.Link {
			t.Errorf("link = %q, want the original link", got)
		}
	})

	t.Run("uses the fallback id when the product id is absent", func(t *testing.T) {
		resolver := NewLinkResolver(&fakeSellerProvider{
			sellers: []domain.Seller{{Name: "Amazon", Link: "https://amazon.com/dp/1"}},
		}, rules.Default())
		offer := domain.Offer{FallbackID: "f1", Source: "ebay"}

		got := resolver.Resolve(ctx, offer, domain.RetailerAmazon)
		if got != "https://amazon.com/dp/1" {
			t.Errorf("link = %q, want the Amazon seller", got)
		}
	})
}
