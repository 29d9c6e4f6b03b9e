package domain

import (
	"fmt"
	"math"
	"time"
)

// Grid - недельная сетка слотов: рабочее окно одного дня, разбитое на
// интервалы фиксированной ширины. Сетка едина для всех дней и кортов.
// Компонент чистый, состояния не имеет.
type Grid struct {
	open  TimeOfDay
	close TimeOfDay
	width time.Duration
}

// NewGrid создает сетку слотов. Окно должно делиться на целое число слотов.
func NewGrid(open, close TimeOfDay, width time.Duration) (Grid, error) {
	if width <= 0 || width%time.Minute != 0 {
		return Grid{}, fmt.Errorf("grid width must be a positive number of minutes, got %s", width)
	}
	if close <= open {
		return Grid{}, fmt.Errorf("grid window close %s must be after open %s", close, open)
	}
	if close.Sub(open)%width != 0 {
		return Grid{}, fmt.Errorf("grid window %s-%s is not a whole number of %s slots", open, close, width)
	}
	return Grid{open: open, close: close, width: width}, nil
}

// DefaultGrid - рабочее окно 08:00 AM - 10:00 PM, слоты по 30 минут
func DefaultGrid() Grid {
	return Grid{
		open:  MinutesOfDay(8, 0),
		close: MinutesOfDay(22, 0),
		width: 30 * time.Minute,
	}
}

func (g Grid) Open() TimeOfDay {
	return g.open
}

func (g Grid) Close() TimeOfDay {
	return g.close
}

func (g Grid) Width() time.Duration {
	return g.width
}

// SlotCount возвращает количество слотов в одном дне
func (g Grid) SlotCount() int {
	return int(g.close.Sub(g.open) / g.width)
}

// SlotIndex возвращает порядковый номер слота, который начинается в момент t.
// Время вне окна или не кратное ширине слота - не слот.
func (g Grid) SlotIndex(t TimeOfDay) (int, error) {
	if t < g.open || t >= g.close {
		return 0, ErrInvalidSlot
	}
	offset := t.Sub(g.open)
	if offset%g.width != 0 {
		return 0, ErrInvalidSlot
	}
	return int(offset / g.width), nil
}

// SlotAt возвращает время начала слота с порядковым номером index
func (g Grid) SlotAt(index int) (TimeOfDay, error) {
	if index < 0 || index >= g.SlotCount() {
		return 0, ErrInvalidSlot
	}
	return g.open.Add(time.Duration(index) * g.width), nil
}

// Slots возвращает упорядоченный список времен начала всех слотов дня
func (g Grid) Slots() []TimeOfDay {
	slots := make([]TimeOfDay, g.SlotCount())
	for i := range slots {
		slots[i] = g.open.Add(time.Duration(i) * g.width)
	}
	return slots
}

// DurationFromHours переводит длительность в часах (0.5, 1, 1.5, ...)
// в time.Duration. Длительность должна быть положительной и кратной ширине слота.
func (g Grid) DurationFromHours(hours float64) (time.Duration, error) {
	minutes := hours * 60
	if minutes <= 0 || minutes != math.Trunc(minutes) {
		return 0, ErrInvalidDuration
	}
	duration := time.Duration(minutes) * time.Minute
	if duration%g.width != 0 {
		return 0, ErrInvalidDuration
	}
	return duration, nil
}

// CoveredSlots возвращает упорядоченные времена начала всех слотов,
// которые покрывает интервал [start, start+duration)
func (g Grid) CoveredSlots(start TimeOfDay, duration time.Duration) ([]TimeOfDay, error) {
	if duration <= 0 || duration%g.width != 0 {
		return nil, ErrInvalidDuration
	}
	if start < g.open || start.Sub(g.open)%g.width != 0 {
		return nil, ErrOutOfWindow
	}

	end := start.Add(duration)
	if end > g.close {
		return nil, ErrOutOfWindow
	}

	slots := make([]TimeOfDay, 0, duration/g.width)
	for t := start; t < end; t = t.Add(g.width) {
		slots = append(slots, t)
	}
	return slots, nil
}
