package services

import (
	"context"
	"sync"

	"github.com/suchimauz/court-booking-engine/internal/core/availability"
	"github.com/suchimauz/court-booking-engine/internal/core/domain"
	"github.com/suchimauz/court-booking-engine/internal/core/ledger"
	"github.com/suchimauz/court-booking-engine/internal/core/ports/in"
	"github.com/suchimauz/court-booking-engine/internal/core/ports/out"
)

// BookingService - движок бронирования: валидация запросов, проверка
// пересечений по журналу, транзакционная мутация журнала и пересборка
// таблицы занятости.
//
// Проверка пересечений считается по интервалам журнала, а не по таблице
// занятости: таблица - булев кэш, детали конфликта она не хранит.
type BookingService struct {
	grid      domain.Grid
	courts    *domain.CourtSet
	ledger    *ledger.Ledger
	index     *availability.Index
	cachePort out.CachePort
	eventPort out.EventPublisherPort
	logger    out.LoggerPort
	search    *alternativeSearch

	// Единая блокировка записи: проверка пересечения, запись в журнал
	// и пересборка таблицы занятости выполняются как одна транзакция
	writeMu sync.Mutex
}

func NewBookingService(
	grid domain.Grid,
	courts *domain.CourtSet,
	bookingLedger *ledger.Ledger,
	index *availability.Index,
	cachePort out.CachePort,
	eventPort out.EventPublisherPort,
	logger out.LoggerPort,
	searchWindow int,
) *BookingService {
	return &BookingService{
		grid:      grid,
		courts:    courts,
		ledger:    bookingLedger,
		index:     index,
		cachePort: cachePort,
		eventPort: eventPort,
		logger:    logger.WithModule("BookingService"),
		search:    newAlternativeSearch(grid, courts, index, searchWindow),
	}
}

// validateRequest нормализует и проверяет общий набор параметров запроса
func (s *BookingService) validateRequest(court, day, start string, durationHours float64) (domain.SearchQuery, error) {
	normalizedCourt := domain.NormalizeCourt(court)
	if !s.courts.Contains(normalizedCourt) {
		return domain.SearchQuery{}, domain.ErrInvalidCourt
	}

	normalizedDay, err := domain.ParseWeekday(day)
	if err != nil {
		return domain.SearchQuery{}, err
	}

	normalizedStart, err := domain.ParseTimeOfDay(start)
	if err != nil {
		return domain.SearchQuery{}, err
	}

	duration, err := s.grid.DurationFromHours(durationHours)
	if err != nil {
		return domain.SearchQuery{}, err
	}

	return domain.SearchQuery{
		Court:    normalizedCourt,
		Day:      normalizedDay,
		Start:    normalizedStart,
		Duration: duration,
	}, nil
}

func (s *BookingService) CreateBooking(ctx context.Context, owner, court, day, start string, durationHours float64) (*domain.Booking, error) {
	query, err := s.validateRequest(court, day, start, durationHours)
	if err != nil {
		s.logger.Debug("booking.create.invalid_request", out.LogFields{
			"court": court,
			"day":   day,
			"start": start,
			"error": err.Error(),
		})
		return nil, err
	}

	// Интервал должен раскладываться на целое число слотов внутри окна
	slots, err := s.grid.CoveredSlots(query.Start, query.Duration)
	if err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.checkOverlap(query, slots); err != nil {
		s.logger.Info("booking.create.overlap", out.LogFields{
			"court": query.Court,
			"day":   query.Day,
			"start": query.Start.String(),
			"owner": owner,
		})
		return nil, err
	}

	booking := domain.Booking{
		ID:     s.ledger.NextID(),
		Court:  query.Court,
		Day:    query.Day,
		Start:  query.Start,
		End:    query.Start.Add(query.Duration),
		Status: domain.BookingStatusActive,
		Owner:  owner,
	}

	if err := s.ledger.Append(ctx, booking); err != nil {
		return nil, err
	}

	s.afterMutation(ctx)

	if s.eventPort != nil {
		if err := s.eventPort.BookingCreated(ctx, booking); err != nil {
			s.logger.Warn("booking.create.publish_failed", out.LogFields{
				"bookingId": booking.ID,
				"error":     err.Error(),
			})
		}
	}

	s.logger.Info("booking.create.finished", out.LogFields{
		"bookingId": booking.ID,
		"court":     booking.Court,
		"day":       booking.Day,
		"start":     booking.Start.String(),
		"end":       booking.End.String(),
		"owner":     booking.Owner,
	})
	return &booking, nil
}

// checkOverlap проверяет пересечение множества слотов запроса со слотами
// каждого активного бронирования того же корта и дня
func (s *BookingService) checkOverlap(query domain.SearchQuery, slots []domain.TimeOfDay) error {
	requested := make(map[domain.TimeOfDay]bool, len(slots))
	for _, slot := range slots {
		requested[slot] = true
	}

	active := s.ledger.FindBy(func(b domain.Booking) bool {
		return b.IsActive() && b.Court == query.Court && b.Day == query.Day
	})

	for _, booking := range active {
		covered, err := s.grid.CoveredSlots(booking.Start, booking.Duration())
		if err != nil {
			// Запись вне сетки не участвует в проверке, как и в пересборке таблицы
			continue
		}
		for _, slot := range covered {
			if requested[slot] {
				return domain.ErrOverlap
			}
		}
	}
	return nil
}

func (s *BookingService) CancelBooking(ctx context.Context, id int, requester string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	booking, exists := s.ledger.Get(id)
	if !exists {
		return domain.ErrNotFound
	}
	if !booking.IsActive() {
		return domain.ErrNotActive
	}
	if !booking.OwnedBy(requester) {
		s.logger.Warn("booking.cancel.forbidden", out.LogFields{
			"bookingId": id,
			"owner":     booking.Owner,
			"requester": requester,
		})
		return domain.ErrForbidden
	}

	canceled, err := s.ledger.SetStatus(ctx, id, domain.BookingStatusCanceled)
	if err != nil {
		return err
	}

	s.afterMutation(ctx)

	if s.eventPort != nil {
		if err := s.eventPort.BookingCanceled(ctx, canceled); err != nil {
			s.logger.Warn("booking.cancel.publish_failed", out.LogFields{
				"bookingId": id,
				"error":     err.Error(),
			})
		}
	}

	s.logger.Info("booking.cancel.finished", out.LogFields{
		"bookingId": id,
		"requester": requester,
	})
	return nil
}

// afterMutation пересобирает таблицу занятости и сбрасывает кэш поиска
func (s *BookingService) afterMutation(ctx context.Context) {
	s.index.Synchronize(s.ledger.Active())
	if s.cachePort != nil {
		s.cachePort.InvalidateSuggestions(ctx)
	}
}

func (s *BookingService) UserBookings(ctx context.Context, owner string) ([]domain.Booking, error) {
	return s.ledger.FindBy(func(b domain.Booking) bool {
		return b.IsActive() && b.OwnedBy(owner)
	}), nil
}

func (s *BookingService) FindAlternatives(ctx context.Context, court, day, start string, durationHours float64) ([]domain.Suggestion, error) {
	query, err := s.validateRequest(court, day, start, durationHours)
	if err != nil {
		return nil, err
	}

	if s.cachePort != nil {
		if suggestions, exists := s.cachePort.GetSuggestions(ctx, query); exists {
			s.logger.Debug("booking.alternatives.cache.hit", out.LogFields{
				"court": query.Court,
				"day":   query.Day,
				"start": query.Start.String(),
			})
			return suggestions, nil
		}
	}

	suggestions := s.search.run(query)

	if s.cachePort != nil {
		s.cachePort.StoreSuggestions(ctx, query, suggestions)
	}

	s.logger.Debug("booking.alternatives.finished", out.LogFields{
		"court":            query.Court,
		"day":              query.Day,
		"start":            query.Start.String(),
		"suggestionsCount": len(suggestions),
	})
	return suggestions, nil
}

func (s *BookingService) IsFree(ctx context.Context, day, court, start string) (bool, error) {
	normalizedDay, err := domain.ParseWeekday(day)
	if err != nil {
		return false, err
	}
	normalizedStart, err := domain.ParseTimeOfDay(start)
	if err != nil {
		return false, err
	}
	return s.index.IsFree(normalizedDay, domain.NormalizeCourt(court), normalizedStart)
}

func (s *BookingService) FreeCourts(ctx context.Context, day, start string) ([]domain.Court, error) {
	normalizedDay, err := domain.ParseWeekday(day)
	if err != nil {
		return nil, err
	}
	normalizedStart, err := domain.ParseTimeOfDay(start)
	if err != nil {
		return nil, err
	}
	return s.index.FreeCourts(normalizedDay, normalizedStart)
}

func (s *BookingService) FullDays(ctx context.Context) ([]domain.Weekday, error) {
	return s.index.FullDays(), nil
}

var (
	_ in.BookingUseCase      = (*BookingService)(nil)
	_ in.AvailabilityUseCase = (*BookingService)(nil)
)
