package serp

import "github.com/shopsense/backend/internal/domain"

// searchResponse is the subset of the Google Shopping response we consume
type searchResponse struct {
	ShoppingResults []shoppingResult `json:"shopping_results"`
}

// shoppingResult is one raw offer record from the provider
type shoppingResult struct {
	Title               string  `json:"title"`
	Price               string  `json:"price"`
	Source              string  `json:"source"`
	Link                string  `json:"link"`
	ProductID           string  `json:"product_id"`
	ID                  string  `json:"id"`
	Rating              float64 `json:"rating"`
	Reviews             int     `json:"reviews"`
	Thumbnail           string  `json:"thumbnail"`
	SecondHandCondition string  `json:"second_hand_condition"`
}

// productResponse is the subset of the Google Product response we consume
type productResponse struct {
	SellersResults struct {
		OnlineSellers []onlineSeller `json:"online_sellers"`
	} `json:"sellers_results"`
}

// onlineSeller is one raw seller record from the product-detail engine
type onlineSeller struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// mapOffers converts raw shopping results to domain offers
func mapOffers(results []shoppingResult) []domain.Offer {
	offers := make([]domain.Offer, 0, len(results))
	for _, r := range results {
		offers = append(offers, domain.Offer{
			Title:               r.Title,
			Price:               r.Price,
			Source:              r.Source,
			Link:                r.Link,
			ProductID:           r.ProductID,
			FallbackID:          r.ID,
			Rating:              r.Rating,
			Reviews:             r.Reviews,
			Thumbnail:           r.Thumbnail,
			SecondHandCondition: r.SecondHandCondition,
		})
	}
	return offers
}

// mapSellers converts raw seller records to domain sellers
func mapSellers(sellers []onlineSeller) []domain.Seller {
	mapped := make([]domain.Seller, 0, len(sellers))
	for _, s := range sellers {
		mapped = append(mapped, domain.Seller{Name: s.Name, Link: s.Link})
	}
	return mapped
}
