package domain

import "time"

// SearchQuery - нормализованный запрос поиска альтернативных слотов.
// Тип сравним, поэтому используется и как ключ кэша.
type SearchQuery struct {
	Court    Court
	Day      Weekday
	Start    TimeOfDay
	Duration time.Duration
}
