package domain

import "time"

type BookingStatus string

const (
	BookingStatusActive   BookingStatus = "active"
	BookingStatusCanceled BookingStatus = "canceled"
)

// Booking - бронирование корта. Записи никогда не удаляются,
// отмена - единственный допустимый переход статуса: active -> canceled.
type Booking struct {
	ID     int           `json:"id"`
	Court  Court         `json:"court"`
	Day    Weekday       `json:"day"`
	Start  TimeOfDay     `json:"start"`
	End    TimeOfDay     `json:"end"`
	Status BookingStatus `json:"status"`
	Owner  string        `json:"owner"`
}

func (b Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}

// Duration возвращает длительность бронирования
func (b Booking) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// OwnedBy проверяет принадлежность бронирования пользователю
func (b Booking) OwnedBy(owner string) bool {
	return b.Owner == owner
}

type SuggestionKind string

const (
	SuggestionKindPreferred   SuggestionKind = "preferred"
	SuggestionKindAlternative SuggestionKind = "alternative"
)

// Suggestion - кандидат, найденный поиском ближайшей альтернативы
type Suggestion struct {
	Court Court          `json:"court"`
	Day   Weekday        `json:"day"`
	Start TimeOfDay      `json:"start"`
	End   TimeOfDay      `json:"end"`
	Kind  SuggestionKind `json:"kind"`
}
