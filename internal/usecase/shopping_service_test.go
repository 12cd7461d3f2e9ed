package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopsense/backend/internal/domain"
	"github.com/shopsense/backend/internal/rules"
)

// fakeCache is an in-memory CacheRepository for tests
type fakeCache struct {
	mu   sync.Mutex
	data map[string]*domain.SearchResult
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]*domain.SearchResult)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (*domain.SearchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if result, ok := c.data[key]; ok {
		return result, nil
	}
	return nil, domain.ErrCacheMiss
}

func (c *fakeCache) Set(ctx context.Context, key string, value *domain.SearchResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// fakeExplainer returns a canned explanation
type fakeExplainer struct {
	explanation string
	err         error
}

func (f *fakeExplainer) Explain(ctx context.Context, item string, chosen domain.Offer, shown []domain.Offer) (string, error) {
	return f.explanation, f.err
}

func newTestService(search domain.SearchProvider, cache domain.CacheRepository, explainer domain.Explainer) *ShoppingService {
	return NewShoppingService(search, &fakeSellerProvider{}, explainer, cache, rules.Default(),
		ShoppingServiceConfig{Pipeline: PipelineConfig{FetchLimit: 50, TopN: 10}})
}

func TestProcessList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns one entry per item", func(t *testing.T) {
		svc := newTestService(&fakeSearchProvider{offers: fixtureOffers()}, nil, nil)
		items := []string{"macbook pro", "iphone", "garden hose"}

		results := svc.ProcessList(ctx, items, domain.RetailerAny, domain.SortBalanced)

		if len(results) != len(items) {
			t.Fatalf("len(results) = %d, want %d", len(results), len(items))
		}
		for _, item := range items {
			if results[item] == nil {
				t.Errorf("missing result for %q", item)
			}
		}
	})

	t.Run("one failing item does not affect the others", func(t *testing.T) {
		svc := newTestService(&fakeSearchProvider{err: errors.New("boom")}, nil, nil)
		results := svc.ProcessList(ctx, []string{"a", "b"}, domain.RetailerAny, domain.SortBalanced)

		for item, result := range results {
			if result == nil || result.Offers == nil {
				t.Errorf("result for %q is nil", item)
			}
		}
	})

	t.Run("skips empty item names", func(t *testing.T) {
		svc := newTestService(&fakeSearchProvider{}, nil, nil)
		results := svc.ProcessList(ctx, []string{"", "ipad"}, domain.RetailerAny, domain.SortBalanced)

		if len(results) != 1 {
			t.Errorf("len(results) = %d, want 1", len(results))
		}
	})
}

func TestProcessItemCaching(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit bypasses the search provider", func(t *testing.T) {
		fake := &fakeSearchProvider{offers: fixtureOffers()}
		svc := newTestService(fake, newFakeCache(), nil)

		first := svc.ProcessItem(ctx, "macbook pro", domain.RetailerAny, domain.SortBalanced)
		second := svc.ProcessItem(ctx, "macbook pro", domain.RetailerAny, domain.SortBalanced)

		if fake.calls != 1 {
			t.Errorf("provider calls = %d, want 1", fake.calls)
		}
		if len(first.Offers) != len(second.Offers) {
			t.Errorf("cached result differs: %d vs %d offers", len(first.Offers), len(second.Offers))
		}
	})

	t.Run("different sort policy misses the cache", func(t *testing.T) {
		fake := &fakeSearchProvider{offers: fixtureOffers()}
		svc := newTestService(fake, newFakeCache(), nil)

		svc.ProcessItem(ctx, "macbook pro", domain.RetailerAny, domain.SortBalanced)
		svc.ProcessItem(ctx, "macbook pro", domain.RetailerAny, domain.SortCheapest)

		if fake.calls != 2 {
			t.Errorf("provider calls = %d, want 2", fake.calls)
		}
	})

	t.Run("empty results are not cached", func(t *testing.T) {
		fake := &fakeSearchProvider{}
		svc := newTestService(fake, newFakeCache(), nil)

		svc.ProcessItem(ctx, "macbook pro", domain.RetailerAny, domain.SortBalanced)
		svc.ProcessItem(ctx, "macbook pro", domain.RetailerAny, domain.SortBalanced)

		if fake.calls != 2 {
			t.Errorf("provider calls = %d, want 2 (empty result must not be cached)", fake.calls)
		}
	})
}

func TestExplainChoice(t *testing.T) {
	ctx := context.Background()
	chosen := domain.Offer{Title: "MacBook Pro 14", NumericPrice: 1999}

	t.Run("returns the generator's explanation", func(t *testing.T) {
		svc := newTestService(&fakeSearchProvider{}, nil, &fakeExplainer{explanation: "best value"})
		got := svc.ExplainChoice(ctx, "macbook pro", chosen, nil)
		if got != "best value" {
			t.Errorf("explanation = %q, want %q", got, "best value")
		}
	})

	t.Run("falls back to the generic sentence on failure", func(t *testing.T) {
		svc := newTestService(&fakeSearchProvider{}, nil, &fakeExplainer{err: errors.New("quota")})
		got := svc.ExplainChoice(ctx, "macbook pro", chosen, nil)
		if got != genericExplanation {
			t.Errorf("explanation = %q, want generic fallback", got)
		}
	})

	t.Run("falls back when no generator is configured", func(t *testing.T) {
		svc := newTestService(&fakeSearchProvider{}, nil, nil)
		got := svc.ExplainChoice(ctx, "macbook pro", chosen, nil)
		if got != genericExplanation {
			t.Errorf("explanation = %q, want generic fallback", got)
		}
	})
}
