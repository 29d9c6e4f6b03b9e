package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/court-booking-engine/internal/adapters/out/logger"
	"github.com/suchimauz/court-booking-engine/internal/core/domain"
)

func testQuery(court domain.Court) domain.SearchQuery {
	return domain.SearchQuery{
		Court: court,
		Day:   domain.WeekdayMonday,
		Start: domain.MinutesOfDay(14, 0),
	}
}

func TestSuggestionCacheStoreAndGet(t *testing.T) {
	adapter, err := NewSuggestionCacheAdapter(8, logger.NewNoopLogger())
	require.NoError(t, err)
	ctx := context.Background()

	query := testQuery("A")
	_, exists := adapter.GetSuggestions(ctx, query)
	assert.False(t, exists)

	suggestions := []domain.Suggestion{
		{
			Court: "B",
			Day:   domain.WeekdayMonday,
			Start: domain.MinutesOfDay(14, 0),
			End:   domain.MinutesOfDay(15, 0),
			Kind:  domain.SuggestionKindAlternative,
		},
	}
	adapter.StoreSuggestions(ctx, query, suggestions)

	cached, exists := adapter.GetSuggestions(ctx, query)
	require.True(t, exists)
	assert.Equal(t, suggestions, cached)

	// Другой запрос - другой ключ
	_, exists = adapter.GetSuggestions(ctx, testQuery("B"))
	assert.False(t, exists)
}

func TestSuggestionCacheInvalidate(t *testing.T) {
	adapter, err := NewSuggestionCacheAdapter(8, logger.NewNoopLogger())
	require.NoError(t, err)
	ctx := context.Background()

	adapter.StoreSuggestions(ctx, testQuery("A"), []domain.Suggestion{})
	adapter.StoreSuggestions(ctx, testQuery("B"), []domain.Suggestion{})

	adapter.InvalidateSuggestions(ctx)

	_, exists := adapter.GetSuggestions(ctx, testQuery("A"))
	assert.False(t, exists)
	_, exists = adapter.GetSuggestions(ctx, testQuery("B"))
	assert.False(t, exists)
}

func TestSuggestionCacheBadSize(t *testing.T) {
	_, err := NewSuggestionCacheAdapter(0, logger.NewNoopLogger())
	assert.Error(t, err)
}
