package in

import (
	"context"

	"github.com/suchimauz/court-booking-engine/internal/core/domain"
)

type BookingUseCase interface {
	// Создание бронирования, длительность в часах с шагом 0.5
	CreateBooking(ctx context.Context, owner, court, day, start string, durationHours float64) (*domain.Booking, error)

	// Отмена собственного активного бронирования
	CancelBooking(ctx context.Context, id int, requester string) error

	// Активные бронирования пользователя в порядке журнала
	UserBookings(ctx context.Context, owner string) ([]domain.Booking, error)

	// Поиск ближайших свободных альтернатив для недоступного запроса
	FindAlternatives(ctx context.Context, court, day, start string, durationHours float64) ([]domain.Suggestion, error)
}

type AvailabilityUseCase interface {
	// Свободен ли конкретный слот
	IsFree(ctx context.Context, day, court, start string) (bool, error)

	// Корты, свободные в указанный слот
	FreeCourts(ctx context.Context, day, start string) ([]domain.Court, error)

	// Дни, в которых не осталось ни одного свободного слота
	FullDays(ctx context.Context) ([]domain.Weekday, error)
}
