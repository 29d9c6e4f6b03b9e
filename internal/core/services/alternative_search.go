package services

import (
	"time"

	"github.com/suchimauz/court-booking-engine/internal/core/availability"
	"github.com/suchimauz/court-booking-engine/internal/core/domain"
)

// alternativeSearch - поиск ближайших свободных альтернатив для
// недоступного запроса. Времена обходятся явным списком кандидатов
// с отметкой посещенных: исходное время, затем попеременно позже и
// раньше с шагом в один слот, в пределах окна поиска. На каждом
// времени сначала исходный корт, затем остальные в порядке набора.
type alternativeSearch struct {
	grid   domain.Grid
	courts *domain.CourtSet
	index  *availability.Index
	window time.Duration
}

func newAlternativeSearch(grid domain.Grid, courts *domain.CourtSet, index *availability.Index, windowMinutes int) *alternativeSearch {
	window := time.Duration(windowMinutes) * time.Minute
	if window <= 0 {
		window = 2 * time.Hour
	}
	return &alternativeSearch{
		grid:   grid,
		courts: courts,
		index:  index,
		window: window,
	}
}

// candidateTimes строит очередь времен для обхода: 0, +1 слот, -1 слот,
// +2 слота, -2 слота и так далее, пока смещение не превысит окно поиска.
// Каждое время попадает в очередь не более одного раза, поэтому обход
// ограничен размером окна и гарантированно завершается.
func (s *alternativeSearch) candidateTimes(start domain.TimeOfDay) []domain.TimeOfDay {
	width := s.grid.Width()
	times := make([]domain.TimeOfDay, 0)
	visited := make(map[domain.TimeOfDay]bool)

	appendTime := func(t domain.TimeOfDay) {
		if visited[t] {
			return
		}
		visited[t] = true
		times = append(times, t)
	}

	appendTime(start)
	for offset := width; offset <= s.window; offset += width {
		appendTime(start.Add(offset))
		appendTime(start.Add(-offset))
	}
	return times
}

// orderedCourts возвращает корты для обхода: предпочтительный первым,
// остальные в фиксированном порядке набора
func (s *alternativeSearch) orderedCourts(preferred domain.Court) []domain.Court {
	ordered := make([]domain.Court, 0, s.courts.Len())
	ordered = append(ordered, preferred)
	for _, court := range s.courts.Codes() {
		if court != preferred {
			ordered = append(ordered, court)
		}
	}
	return ordered
}

// run возвращает свободные кандидаты, отсортированные для показа:
// по времени по возрастанию, при равном времени preferred раньше alternative
func (s *alternativeSearch) run(query domain.SearchQuery) []domain.Suggestion {
	suggestions := make([]domain.Suggestion, 0)

	for _, start := range s.candidateTimes(query.Start) {
		for _, court := range s.orderedCourts(query.Court) {
			// Кандидату нужен непрерывный блок свободных слотов нужной длины;
			// времена за пределами рабочего окна кандидатами не являются
			free, err := s.index.IsRangeFree(query.Day, court, start, query.Duration)
			if err != nil || !free {
				continue
			}

			kind := domain.SuggestionKindAlternative
			if court == query.Court && start == query.Start {
				kind = domain.SuggestionKindPreferred
			}

			suggestions = append(suggestions, domain.Suggestion{
				Court: court,
				Day:   query.Day,
				Start: start,
				End:   start.Add(query.Duration),
				Kind:  kind,
			})
		}
	}

	return SuggestionSlice(suggestions).quickSort()
}
