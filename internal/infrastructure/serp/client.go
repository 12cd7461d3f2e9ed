// Package serp implements the shopping-search and product-detail providers
// on top of the SerpApi Google Shopping engine.
package serp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopsense/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the SerpApi search endpoints
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new SerpApi client. hourlyLimit caps outbound
// requests; zero applies a conservative default.
func NewClient(apiKey, baseURL string, hourlyLimit int) *Client {
	if hourlyLimit <= 0 {
		hourlyLimit = 100
	}
	// rate.Limit is requests per second
	limiter := rate.NewLimiter(rate.Limit(float64(hourlyLimit)/3600.0), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait time before the given retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// Search queries the Google Shopping engine and returns the raw offer list.
// Only the wildcard preference requests merchant-aggregated, ranked-by-
// relevance ordering; retailer-specific queries are already narrowed by the
// bias keyword in the query itself.
func (c *Client) Search(ctx context.Context, query string, pref domain.RetailerPreference, limit int) ([]domain.Offer, error) {
	params := url.Values{}
	params.Add("engine", "google_shopping")
	params.Add("q", query)
	params.Add("gl", "us")
	params.Add("hl", "en")
	params.Add("num", strconv.Itoa(limit))
	params.Add("api_key", c.apiKey)
	params.Add("tbm", "shop")
	if pref.IsAny() {
		params.Add("tbs", "p_ord:p,mr:1,merchagg:g")
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if c.debug {
		log.Printf("[SERP] %d shopping results for %q", len(searchResp.ShoppingResults), query)
	}

	return mapOffers(searchResp.ShoppingResults), nil
}

// Sellers fetches the online-seller list for a product from the product-
// detail engine
func (c *Client) Sellers(ctx context.Context, productID string) ([]domain.Seller, error) {
	params := url.Values{}
	params.Add("engine", "google_product")
	params.Add("product_id", productID)
	params.Add("api_key", c.apiKey)
	params.Add("offers", "1")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var productResp productResponse
	if err := json.Unmarshal(body, &productResp); err != nil {
		return nil, fmt.Errorf("failed to decode product response: %w", err)
	}

	return mapSellers(productResp.SellersResults.OnlineSellers), nil
}

// get executes a search.json request with rate limiting and bounded retries
func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "ShopSense/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
			if c.debug {
				log.Printf("[SERP] Request error (attempt %d): %v", attempt, err)
			}
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode)
			if c.debug {
				log.Printf("[SERP] API error (attempt %d) - Status: %d, Body: %s",
					attempt, resp.StatusCode, string(body))
			}
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		return body, nil
	}

	return nil, lastErr
}
