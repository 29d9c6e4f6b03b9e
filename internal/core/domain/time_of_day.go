package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// TimeOfDay - время суток в минутах от полуночи.
// Каноничный текстовый формат - 12-часовой, например "08:00 AM", "01:30 PM".
type TimeOfDay int

const timeOfDayLayout = "03:04 PM"

// ParseTimeOfDay парсит время суток из строки, регистр и пробелы по краям не важны
func ParseTimeOfDay(str string) (TimeOfDay, error) {
	normalized := strings.ToUpper(strings.TrimSpace(str))
	parsedTime, err := time.Parse(timeOfDayLayout, normalized)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return TimeOfDay(parsedTime.Hour()*60 + parsedTime.Minute()), nil
}

// MinutesOfDay возвращает TimeOfDay для часов и минут
func MinutesOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Add возвращает время, сдвинутое на d. Может выйти за пределы суток,
// валидность относительно рабочего окна проверяет Grid.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

// Sub возвращает разницу между двумя временами
func (t TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return time.Duration(int(t)-int(other)) * time.Minute
}

// String возвращает каноничную форму, например "01:30 PM"
func (t TimeOfDay) String() string {
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC).Format(timeOfDayLayout)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
