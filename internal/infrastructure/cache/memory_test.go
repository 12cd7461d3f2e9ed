package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopsense/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult(item string) *domain.SearchResult {
	return &domain.SearchResult{
		Item:         item,
		Offers:       []domain.Offer{{Title: item, Price: "$10", ProductID: "p1"}},
		InitialCount: 3,
	}
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "search:macbook pro:any:balanced", testResult("macbook pro"), time.Minute))

	got, err := c.Get(ctx, "search:macbook pro:any:balanced")
	require.NoError(t, err)
	assert.Equal(t, "macbook pro", got.Item)
	assert.Equal(t, 3, got.InitialCount)
	require.Len(t, got.Offers, 1)
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache()

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", testResult("ipad"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", testResult("tv"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Size(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	assert.Equal(t, 0, c.Size())

	c.Set(ctx, "a", testResult("a"), time.Minute)
	c.Set(ctx, "b", testResult("b"), time.Minute)
	assert.Equal(t, 2, c.Size())

	c.Delete(ctx, "a")
	assert.Equal(t, 1, c.Size())
}
