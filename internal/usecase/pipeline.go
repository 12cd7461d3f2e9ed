package usecase

import (
	"context"
	"log"

	"github.com/shopsense/backend/internal/domain"
	"github.com/shopsense/backend/internal/rules"
)

// PipelineConfig holds configuration for the retrieval pipeline
type PipelineConfig struct {
	FetchLimit         int // result-count ceiling requested from the provider
	TopN               int // offers returned per item
	EnableDebugLogging bool
}

// Pipeline composes query building, fetching, deduplication, filtering,
// scoring, and sorting into a single per-item call. One Process call per
// item is the unit of concurrency: calls share no mutable state and are
// safe to run in parallel.
type Pipeline struct {
	search     domain.SearchProvider
	builder    *QueryBuilder
	filters    *FilterChain
	fetchLimit int
	topN       int
	debug      bool
}

// NewPipeline creates a pipeline over one provider and table set
func NewPipeline(search domain.SearchProvider, tables *rules.Tables, config PipelineConfig) *Pipeline {
	fetchLimit := config.FetchLimit
	if fetchLimit <= 0 {
		fetchLimit = 50
	}
	topN := config.TopN
	if topN <= 0 {
		topN = 10
	}

	return &Pipeline{
		search:     search,
		builder:    NewQueryBuilder(tables),
		filters:    NewFilterChain(tables),
		fetchLimit: fetchLimit,
		topN:       topN,
		debug:      config.EnableDebugLogging,
	}
}

// Builder exposes the pipeline's query builder
func (p *Pipeline) Builder() *QueryBuilder {
	return p.builder
}

// Filters exposes the pipeline's filter chain
func (p *Pipeline) Filters() *FilterChain {
	return p.filters
}

// Process runs the full pipeline for one item:
// fetch -> deduplicate -> filter -> sort -> truncate to top N.
// A fetch failure is logged and yields an empty result; it never aborts a
// multi-item run.
func (p *Pipeline) Process(ctx context.Context, item string, pref domain.RetailerPreference, policy domain.SortPolicy) *domain.SearchResult {
	query := p.builder.Build(item, pref)

	raw, err := p.search.Search(ctx, query, pref, p.fetchLimit)
	if err != nil {
		log.Printf("[PIPELINE] Search failed for %q: %v", item, err)
		return &domain.SearchResult{Item: item, Offers: []domain.Offer{}}
	}
	if len(raw) == 0 {
		return &domain.SearchResult{Item: item, Offers: []domain.Offer{}}
	}

	unique := Deduplicate(raw)
	filtered := p.filters.Apply(unique, item, pref)
	SortOffers(filtered, policy, item)

	if p.debug {
		log.Printf("[PIPELINE] %q: %d raw, %d unique, %d filtered",
			item, len(raw), len(unique), len(filtered))
	}

	if len(filtered) > p.topN {
		filtered = filtered[:p.topN]
	}

	return &domain.SearchResult{
		Item:         item,
		Offers:       filtered,
		InitialCount: len(raw),
	}
}
