package domain

import (
	"context"
	"time"
)

// SearchProvider defines the interface to the shopping-search provider
type SearchProvider interface {
	Search(ctx context.Context, query string, pref RetailerPreference, limit int) ([]Offer, error)
}

// SellerProvider defines the interface to the product-detail provider,
// used only for direct-link resolution
type SellerProvider interface {
	Sellers(ctx context.Context, productID string) ([]Seller, error)
}

// TextExtractor defines the interface to the OCR service
type TextExtractor interface {
	ExtractLines(ctx context.Context, image []byte) ([]string, error)
}

// ItemExtractor defines the interface to the natural-language list extractor.
// Implementations return the shopping items named in the input; a response
// that cannot be parsed surfaces as an error so callers can fall back.
type ItemExtractor interface {
	ExtractItems(ctx context.Context, input string) ([]string, error)
}

// Explainer defines the interface to the explanation generator
type Explainer interface {
	Explain(ctx context.Context, item string, chosen Offer, shown []Offer) (string, error)
}

// CacheRepository defines the interface for caching pipeline results
type CacheRepository interface {
	Get(ctx context.Context, key string) (*SearchResult, error)
	Set(ctx context.Context, key string, value *SearchResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
