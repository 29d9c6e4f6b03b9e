package availability

import (
	"sync"
	"time"

	"github.com/suchimauz/court-booking-engine/internal/core/domain"
)

// Index - производная таблица занятости по (день, корт, слот).
// Всегда является чистой функцией от множества активных бронирований
// и полностью перестраивается из журнала вызовом Synchronize.
// Таблица булева: пересечения бронирований она выразить не может,
// отсутствие пересечений гарантирует движок при создании.
type Index struct {
	grid   domain.Grid
	courts *domain.CourtSet

	mu sync.RWMutex
	// occupied[день][корт][слот]
	occupied [][][]bool
}

func NewIndex(grid domain.Grid, courts *domain.CourtSet) *Index {
	index := &Index{
		grid:   grid,
		courts: courts,
	}
	index.occupied = index.emptyTable()
	return index
}

func (idx *Index) emptyTable() [][][]bool {
	table := make([][][]bool, len(domain.Weekdays))
	for day := range table {
		table[day] = make([][]bool, idx.courts.Len())
		for court := range table[day] {
			table[day][court] = make([]bool, idx.grid.SlotCount())
		}
	}
	return table
}

// Synchronize перестраивает таблицу из множества активных бронирований.
// Операция идемпотентна и не зависит от порядка бронирований.
// Новая таблица подменяет старую атомарно: читатели не видят
// частично заполненного состояния.
func (idx *Index) Synchronize(bookings []domain.Booking) {
	table := idx.emptyTable()

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		dayIndex, exists := booking.Day.Index()
		if !exists {
			continue
		}
		courtIndex, exists := idx.courts.Index(booking.Court)
		if !exists {
			continue
		}

		// Записи с интервалом вне сетки пропускаем так же,
		// как некорректные строки при загрузке журнала
		slots, err := idx.grid.CoveredSlots(booking.Start, booking.Duration())
		if err != nil {
			continue
		}

		for _, slot := range slots {
			slotIndex, err := idx.grid.SlotIndex(slot)
			if err != nil {
				continue
			}
			table[dayIndex][courtIndex][slotIndex] = true
		}
	}

	idx.mu.Lock()
	idx.occupied = table
	idx.mu.Unlock()
}

func (idx *Index) keys(day domain.Weekday, court domain.Court, slot domain.TimeOfDay) (int, int, int, error) {
	dayIndex, exists := day.Index()
	if !exists {
		return 0, 0, 0, domain.ErrInvalidDay
	}
	courtIndex, exists := idx.courts.Index(court)
	if !exists {
		return 0, 0, 0, domain.ErrUnknownCourt
	}
	slotIndex, err := idx.grid.SlotIndex(slot)
	if err != nil {
		return 0, 0, 0, err
	}
	return dayIndex, courtIndex, slotIndex, nil
}

// IsFree сообщает, свободен ли слот. Ключи вне статичного домена - ошибка.
func (idx *Index) IsFree(day domain.Weekday, court domain.Court, slot domain.TimeOfDay) (bool, error) {
	dayIndex, courtIndex, slotIndex, err := idx.keys(day, court, slot)
	if err != nil {
		return false, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return !idx.occupied[dayIndex][courtIndex][slotIndex], nil
}

// IsRangeFree сообщает, свободны ли все слоты, покрываемые интервалом
// [start, start+duration), на одном корте
func (idx *Index) IsRangeFree(day domain.Weekday, court domain.Court, start domain.TimeOfDay, duration time.Duration) (bool, error) {
	slots, err := idx.grid.CoveredSlots(start, duration)
	if err != nil {
		return false, err
	}

	for _, slot := range slots {
		free, err := idx.IsFree(day, court, slot)
		if err != nil {
			return false, err
		}
		if !free {
			return false, nil
		}
	}
	return true, nil
}

// FreeCourts возвращает корты, свободные в данный слот, в фиксированном порядке набора
func (idx *Index) FreeCourts(day domain.Weekday, slot domain.TimeOfDay) ([]domain.Court, error) {
	dayIndex, exists := day.Index()
	if !exists {
		return nil, domain.ErrInvalidDay
	}
	slotIndex, err := idx.grid.SlotIndex(slot)
	if err != nil {
		return nil, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	free := make([]domain.Court, 0)
	for courtIndex, court := range idx.courts.Codes() {
		if !idx.occupied[dayIndex][courtIndex][slotIndex] {
			free = append(free, court)
		}
	}
	return free, nil
}

// IsDayFull - true, если в дне не осталось ни одного свободного слота
func (idx *Index) IsDayFull(day domain.Weekday) (bool, error) {
	dayIndex, exists := day.Index()
	if !exists {
		return false, domain.ErrInvalidDay
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, courtSlots := range idx.occupied[dayIndex] {
		for _, occupied := range courtSlots {
			if !occupied {
				return false, nil
			}
		}
	}
	return true, nil
}

// FullDays возвращает полностью занятые дни в порядке Monday..Sunday
func (idx *Index) FullDays() []domain.Weekday {
	full := make([]domain.Weekday, 0)
	for _, day := range domain.Weekdays {
		isFull, err := idx.IsDayFull(day)
		if err != nil {
			continue
		}
		if isFull {
			full = append(full, day)
		}
	}
	return full
}
