package out

import (
	"context"

	"github.com/suchimauz/court-booking-engine/internal/core/domain"
)

// CachePort - кэш результатов поиска альтернативных слотов.
// Кэш не является источником истины и целиком сбрасывается
// при любой мутации журнала бронирований.
type CachePort interface {
	GetSuggestions(ctx context.Context, query domain.SearchQuery) ([]domain.Suggestion, bool)
	StoreSuggestions(ctx context.Context, query domain.SearchQuery, suggestions []domain.Suggestion)
	InvalidateSuggestions(ctx context.Context)
}
