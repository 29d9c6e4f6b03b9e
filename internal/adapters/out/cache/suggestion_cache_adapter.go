package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/court-booking-engine/internal/core/domain"
	"github.com/suchimauz/court-booking-engine/internal/core/ports/out"
)

// SuggestionCacheAdapter - lru-кэш результатов поиска альтернативных
// слотов. Результаты зависят от всего множества активных бронирований,
// поэтому при любой мутации журнала кэш сбрасывается целиком.
type SuggestionCacheAdapter struct {
	cache  *lru.Cache[domain.SearchQuery, []domain.Suggestion]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewSuggestionCacheAdapter(size int, logger out.LoggerPort) (*SuggestionCacheAdapter, error) {
	cache, err := lru.New[domain.SearchQuery, []domain.Suggestion](size)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  size,
		})
		return nil, err
	}

	return &SuggestionCacheAdapter{
		cache:  cache,
		logger: logger.WithModule("SuggestionCacheAdapter"),
	}, nil
}

func (c *SuggestionCacheAdapter) GetSuggestions(ctx context.Context, query domain.SearchQuery) ([]domain.Suggestion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	suggestions, exists := c.cache.Get(query)
	if !exists {
		c.logger.Debug("cache.get.miss", out.LogFields{
			"court": query.Court,
			"day":   query.Day,
			"start": query.Start.String(),
		})
		return nil, false
	}

	c.logger.Debug("cache.get.hit", out.LogFields{
		"court":            query.Court,
		"day":              query.Day,
		"start":            query.Start.String(),
		"suggestionsCount": len(suggestions),
	})
	return suggestions, true
}

func (c *SuggestionCacheAdapter) StoreSuggestions(ctx context.Context, query domain.SearchQuery, suggestions []domain.Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Add(query, suggestions)
}

func (c *SuggestionCacheAdapter) InvalidateSuggestions(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}

var _ out.CachePort = (*SuggestionCacheAdapter)(nil)
