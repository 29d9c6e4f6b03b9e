package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/court-booking-engine/internal/core/domain"
)

func TestFindAlternativesFullyBookedCourt(t *testing.T) {
	courts := domain.NewCourtSet([]domain.Court{"A", "B"})
	service := newTestService(t, courts, &stubStorage{})
	ctx := context.Background()

	// Корт A занят весь день, у корта B свободен только час с 2 до 3
	_, err := service.CreateBooking(ctx, "alice", "A", "Monday", "08:00 AM", 14)
	require.NoError(t, err)
	_, err = service.CreateBooking(ctx, "bob", "B", "Monday", "08:00 AM", 6)
	require.NoError(t, err)
	_, err = service.CreateBooking(ctx, "bob", "B", "Monday", "03:00 PM", 7)
	require.NoError(t, err)

	suggestions, err := service.FindAlternatives(ctx, "A", "Monday", "02:00 PM", 1.0)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	assert.Equal(t, domain.Court("B"), suggestions[0].Court)
	assert.Equal(t, "02:00 PM", suggestions[0].Start.String())
	assert.Equal(t, "03:00 PM", suggestions[0].End.String())
	assert.Equal(t, domain.SuggestionKindAlternative, suggestions[0].Kind)
}

func TestFindAlternativesSortedByTime(t *testing.T) {
	courts := domain.NewCourtSet([]domain.Court{"A", "B"})
	service := newTestService(t, courts, &stubStorage{})
	ctx := context.Background()

	suggestions, err := service.FindAlternatives(ctx, "A", "Monday", "02:00 PM", 1.0)
	require.NoError(t, err)

	// Окно поиска 2 часа: 9 времен с шагом в слот, оба корта свободны
	require.Len(t, suggestions, 18)

	windowOpen := domain.MinutesOfDay(12, 0)
	windowClose := domain.MinutesOfDay(16, 0)
	for i, suggestion := range suggestions {
		assert.GreaterOrEqual(t, int(suggestion.Start), int(windowOpen))
		assert.LessOrEqual(t, int(suggestion.Start), int(windowClose))
		if i > 0 {
			assert.LessOrEqual(t, int(suggestions[i-1].Start), int(suggestion.Start))
		}
	}

	// Самое раннее время первым
	assert.Equal(t, "12:00 PM", suggestions[0].Start.String())

	// Запрошенный слот свободен и помечен как предпочтительный;
	// при равном времени он идет раньше альтернативы
	for i, suggestion := range suggestions {
		if suggestion.Kind != domain.SuggestionKindPreferred {
			continue
		}
		assert.Equal(t, domain.Court("A"), suggestion.Court)
		assert.Equal(t, "02:00 PM", suggestion.Start.String())
		require.Less(t, i+1, len(suggestions))
		assert.Equal(t, suggestions[i+1].Start, suggestion.Start)
		assert.Equal(t, domain.SuggestionKindAlternative, suggestions[i+1].Kind)
	}
}

func TestFindAlternativesWindowClippedByGrid(t *testing.T) {
	courts := domain.NewCourtSet([]domain.Court{"A"})
	service := newTestService(t, courts, &stubStorage{})

	// Рядом с открытием часть кандидатов выпадает за рабочее окно
	suggestions, err := service.FindAlternatives(context.Background(), "A", "Monday", "08:30 AM", 1.0)
	require.NoError(t, err)

	require.Len(t, suggestions, 6)
	assert.Equal(t, "08:00 AM", suggestions[0].Start.String())
	assert.Equal(t, "10:30 AM", suggestions[len(suggestions)-1].Start.String())
}

func TestFindAlternativesNoCandidates(t *testing.T) {
	courts := domain.NewCourtSet([]domain.Court{"A"})
	service := newTestService(t, courts, &stubStorage{})
	ctx := context.Background()

	_, err := service.CreateBooking(ctx, "alice", "A", "Monday", "08:00 AM", 14)
	require.NoError(t, err)

	suggestions, err := service.FindAlternatives(ctx, "A", "Monday", "02:00 PM", 1.0)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestFindAlternativesValidation(t *testing.T) {
	service := newTestService(t, domain.DefaultCourtSet(), &stubStorage{})
	ctx := context.Background()

	_, err := service.FindAlternatives(ctx, "Z", "Monday", "02:00 PM", 1.0)
	assert.ErrorIs(t, err, domain.ErrInvalidCourt)

	_, err = service.FindAlternatives(ctx, "A", "Monday", "02:00 PM", 0.75)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestCandidateTimesOrder(t *testing.T) {
	service := newTestService(t, domain.DefaultCourtSet(), &stubStorage{})

	times := service.search.candidateTimes(domain.MinutesOfDay(14, 0))
	require.Len(t, times, 9)

	// Исходное время, затем попеременно позже и раньше с шагом в слот
	assert.Equal(t, "02:00 PM", times[0].String())
	assert.Equal(t, "02:30 PM", times[1].String())
	assert.Equal(t, "01:30 PM", times[2].String())
	assert.Equal(t, "04:00 PM", times[7].String())
	assert.Equal(t, "12:00 PM", times[8].String())

	// Каждое время встречается ровно один раз
	seen := make(map[domain.TimeOfDay]bool)
	for _, candidate := range times {
		assert.False(t, seen[candidate])
		seen[candidate] = true
	}
}
