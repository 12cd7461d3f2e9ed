package domain

// Offer represents one candidate product result from the shopping-search provider
type Offer struct {
	Title               string  `json:"title"`
	Price               string  `json:"price"`                   // raw provider string, e.g. "$1,299.00"
	NumericPrice        float64 `json:"numericPrice"`            // derived; +Inf when the raw price does not parse
	Source              string  `json:"source"`                  // retailer name as reported by the provider
	Link                string  `json:"link,omitempty"`
	ProductID           string  `json:"productId,omitempty"`
	FallbackID          string  `json:"id,omitempty"`            // secondary provider identifier
	Rating              float64 `json:"rating,omitempty"`
	Reviews             int     `json:"reviews,omitempty"`
	Thumbnail           string  `json:"thumbnail,omitempty"`
	SecondHandCondition string  `json:"secondHandCondition,omitempty"`
	RelevanceScore      float64 `json:"relevanceScore"` // computed under the Balanced policy, 0 otherwise
}

// Identity returns the deduplication identifier for the offer:
// product ID, then the provider's fallback ID, then the link.
func (o *Offer) Identity() string {
	if o.ProductID != "" {
		return o.ProductID
	}
	if o.FallbackID != "" {
		return o.FallbackID
	}
	return o.Link
}

// HasRating reports whether the provider supplied a rating for this offer.
// The provider never emits a zero rating, so zero means absent.
func (o *Offer) HasRating() bool {
	return o.Rating > 0
}

// Seller is one entry from the product-detail provider's seller list
type Seller struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// SearchResult is the outcome of one pipeline run for a single item.
// InitialCount is the raw provider result count before deduplication and
// filtering, returned so callers can log or display it.
type SearchResult struct {
	Item         string  `json:"item"`
	Offers       []Offer `json:"offers"`
	InitialCount int     `json:"initialCount"`
}
