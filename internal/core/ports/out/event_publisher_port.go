package out

import (
	"context"

	"github.com/suchimauz/court-booking-engine/internal/core/domain"
)

// EventPublisherPort - публикация событий жизненного цикла бронирований
// во внешнюю шину. Ошибки публикации не откатывают мутацию журнала.
type EventPublisherPort interface {
	BookingCreated(ctx context.Context, booking domain.Booking) error
	BookingCanceled(ctx context.Context, booking domain.Booking) error
	Close() error
}
