package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopsense/backend/internal/domain"
	"github.com/shopsense/backend/internal/rules"
)

// genericExplanation is returned when the explanation generator fails
const genericExplanation = "This product offers a strong combination of relevance and competitive pricing for your search."

// ShoppingServiceConfig holds configuration for the shopping service
type ShoppingServiceConfig struct {
	Pipeline PipelineConfig
	CacheTTL time.Duration
}

// ShoppingService runs the retrieval pipeline across item lists, caching
// per-(item, retailer, sort) results and fanning out one goroutine per item.
type ShoppingService struct {
	pipeline  *Pipeline
	resolver  *LinkResolver
	explainer domain.Explainer
	cache     domain.CacheRepository
	cacheTTL  time.Duration
}

// NewShoppingService creates the service with its dependencies. The cache
// and explainer may be nil; both concerns then degrade gracefully.
func NewShoppingService(
	search domain.SearchProvider,
	sellers domain.SellerProvider,
	explainer domain.Explainer,
	cache domain.CacheRepository,
	tables *rules.Tables,
	config ShoppingServiceConfig,
) *ShoppingService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &ShoppingService{
		pipeline:  NewPipeline(search, tables, config.Pipeline),
		resolver:  NewLinkResolver(sellers, tables),
		explainer: explainer,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// ProcessItem runs the pipeline for one item, consulting the cache first
func (s *ShoppingService) ProcessItem(ctx context.Context, item string, pref domain.RetailerPreference, policy domain.SortPolicy) *domain.SearchResult {
	key := cacheKey(item, pref, policy)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
			return cached
		}
	}

	result := s.pipeline.Process(ctx, item, pref, policy)

	if s.cache != nil && len(result.Offers) > 0 {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			log.Printf("[SHOPPING] Cache write failed for %q: %v", item, err)
		}
	}

	return result
}

// ProcessList fans out one ProcessItem call per item and collects the
// results into a map keyed by item name. Completion order is not
// guaranteed; one item's failure never affects another's result.
func (s *ShoppingService) ProcessList(ctx context.Context, items []string, pref domain.RetailerPreference, policy domain.SortPolicy) map[string]*domain.SearchResult {
	results := make(map[string]*domain.SearchResult, len(items))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, item := range items {
		if item == "" {
			continue
		}
		wg.Add(1)
		go func(item string) {
			defer wg.Done()
			result := s.ProcessItem(ctx, item, pref, policy)
			mu.Lock()
			results[item] = result
			mu.Unlock()
		}(item)
	}
	wg.Wait()

	return results
}

// ResolveLink finds the best purchase link for a chosen offer
func (s *ShoppingService) ResolveLink(ctx context.Context, offer domain.Offer, pref domain.RetailerPreference) string {
	return s.resolver.Resolve(ctx, offer, pref)
}

// ExplainChoice asks the explanation generator why the chosen offer is the
// best pick, falling back to a fixed justification on any failure
func (s *ShoppingService) ExplainChoice(ctx context.Context, item string, chosen domain.Offer, shown []domain.Offer) string {
	if s.explainer == nil {
		return genericExplanation
	}

	explanation, err := s.explainer.Explain(ctx, item, chosen, shown)
	if err != nil || explanation == "" {
		log.Printf("[SHOPPING] Explanation failed for %q: %v", item, err)
		return genericExplanation
	}
	return explanation
}

// cacheKey builds the per-(item, retailer, sort) cache key
func cacheKey(item string, pref domain.RetailerPreference, policy domain.SortPolicy) string {
	return fmt.Sprintf("search:%s:%s:%s", normalizeTitle(item), pref.Key(), policy)
}
