package domain

import "strings"

type Weekday string

const (
	WeekdayMonday    Weekday = "Monday"
	WeekdayTuesday   Weekday = "Tuesday"
	WeekdayWednesday Weekday = "Wednesday"
	WeekdayThursday  Weekday = "Thursday"
	WeekdayFriday    Weekday = "Friday"
	WeekdaySaturday  Weekday = "Saturday"
	WeekdaySunday    Weekday = "Sunday"
)

// Weekdays - все дни недели в фиксированном порядке Monday..Sunday
var Weekdays = [7]Weekday{
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
	WeekdaySunday,
}

var weekdayIndexes = map[Weekday]int{
	WeekdayMonday:    0,
	WeekdayTuesday:   1,
	WeekdayWednesday: 2,
	WeekdayThursday:  3,
	WeekdayFriday:    4,
	WeekdaySaturday:  5,
	WeekdaySunday:    6,
}

// ParseWeekday приводит строку к каноничному дню недели, регистр не важен
func ParseWeekday(str string) (Weekday, error) {
	normalized := strings.TrimSpace(strings.ToLower(str))
	for _, weekday := range Weekdays {
		if strings.ToLower(string(weekday)) == normalized {
			return weekday, nil
		}
	}
	return "", ErrInvalidDay
}

// Index возвращает порядковый номер дня недели, 0 - понедельник
func (w Weekday) Index() (int, bool) {
	index, exists := weekdayIndexes[w]
	return index, exists
}
