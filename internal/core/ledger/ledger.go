package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/suchimauz/court-booking-engine/internal/core/domain"
	"github.com/suchimauz/court-booking-engine/internal/core/ports/out"
)

// Ledger - авторитетный журнал бронирований. Держит записи в памяти
// в порядке сохранения и синхронно пишет каждое изменение в хранилище.
// Запись в память происходит только после успешной записи в хранилище.
type Ledger struct {
	storage out.StoragePort
	logger  out.LoggerPort

	mu       sync.RWMutex
	bookings []domain.Booking
}

func NewLedger(storage out.StoragePort, logger out.LoggerPort) *Ledger {
	return &Ledger{
		storage:  storage,
		logger:   logger.WithModule("Ledger"),
		bookings: make([]domain.Booking, 0),
	}
}

// Load загружает журнал из хранилища, заменяя состояние в памяти
func (l *Ledger) Load(ctx context.Context) error {
	bookings, err := l.storage.Load(ctx)
	if err != nil {
		l.logger.Error("ledger.load.failed", out.LogFields{
			"error": err.Error(),
		})
		return fmt.Errorf("ledger.load.failed: %w", err)
	}

	l.mu.Lock()
	l.bookings = bookings
	l.mu.Unlock()

	l.logger.Info("ledger.load.finished", out.LogFields{
		"bookingsCount": len(bookings),
	})
	return nil
}

// All возвращает копию всех записей журнала в порядке сохранения
func (l *Ledger) All() []domain.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bookings := make([]domain.Booking, len(l.bookings))
	copy(bookings, l.bookings)
	return bookings
}

// Active возвращает все активные бронирования
func (l *Ledger) Active() []domain.Booking {
	return l.FindBy(func(b domain.Booking) bool {
		return b.IsActive()
	})
}

// FindBy возвращает записи, удовлетворяющие предикату, в порядке журнала
func (l *Ledger) FindBy(predicate func(domain.Booking) bool) []domain.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()

	found := make([]domain.Booking, 0)
	for _, booking := range l.bookings {
		if predicate(booking) {
			found = append(found, booking)
		}
	}
	return found
}

// Get возвращает запись по идентификатору
func (l *Ledger) Get(id int) (domain.Booking, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, booking := range l.bookings {
		if booking.ID == id {
			return booking, true
		}
	}
	return domain.Booking{}, false
}

// NextID возвращает следующий свободный идентификатор:
// максимальный существующий + 1, отмененные записи тоже учитываются
func (l *Ledger) NextID() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	maxID := 0
	for _, booking := range l.bookings {
		if booking.ID > maxID {
			maxID = booking.ID
		}
	}
	return maxID + 1
}

// Append добавляет запись и сохраняет журнал
func (l *Ledger) Append(ctx context.Context, booking domain.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	updated := make([]domain.Booking, len(l.bookings), len(l.bookings)+1)
	copy(updated, l.bookings)
	updated = append(updated, booking)

	if err := l.storage.Persist(ctx, updated); err != nil {
		l.logger.Error("ledger.append.persist_failed", out.LogFields{
			"bookingId": booking.ID,
			"error":     err.Error(),
		})
		return fmt.Errorf("ledger.append.persist_failed: %w", err)
	}

	l.bookings = updated
	return nil
}

// SetStatus переводит запись с данным идентификатором в новый статус
// и сохраняет журнал. Возвращает обновленную запись.
func (l *Ledger) SetStatus(ctx context.Context, id int, status domain.BookingStatus) (domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	index := -1
	for i, booking := range l.bookings {
		if booking.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return domain.Booking{}, domain.ErrNotFound
	}

	updated := make([]domain.Booking, len(l.bookings))
	copy(updated, l.bookings)
	updated[index].Status = status

	if err := l.storage.Persist(ctx, updated); err != nil {
		l.logger.Error("ledger.set_status.persist_failed", out.LogFields{
			"bookingId": id,
			"status":    status,
			"error":     err.Error(),
		})
		return domain.Booking{}, fmt.Errorf("ledger.set_status.persist_failed: %w", err)
	}

	l.bookings = updated
	return updated[index], nil
}
