package out

import (
	"context"

	"github.com/suchimauz/court-booking-engine/internal/core/domain"
)

// StoragePort - долговременное хранилище журнала бронирований.
// Load возвращает записи в порядке их сохранения, при этом неполные или
// некорректные записи отбрасываются без ошибки.
// Persist перезаписывает журнал целиком.
type StoragePort interface {
	Load(ctx context.Context) ([]domain.Booking, error)
	Persist(ctx context.Context, bookings []domain.Booking) error
	Close() error
}
