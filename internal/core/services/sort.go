package services

import "github.com/suchimauz/court-booking-engine/internal/core/domain"

type SuggestionSlice []domain.Suggestion

// quickSort сортирует кандидатов по времени начала по возрастанию,
// при равном времени preferred идет раньше alternative
func (s SuggestionSlice) quickSort() SuggestionSlice {
	if len(s) < 2 {
		return s
	}

	// Выбираем опорный элемент
	pivot := s[len(s)/2]

	less := SuggestionSlice{}
	equal := SuggestionSlice{}
	greater := SuggestionSlice{}

	for _, suggestion := range s {
		switch compareSuggestions(suggestion, pivot) {
		case -1:
			less = append(less, suggestion)
		case 0:
			equal = append(equal, suggestion)
		case 1:
			greater = append(greater, suggestion)
		}
	}

	// Рекурсивно сортируем подмассивы и объединяем их
	return append(append(less.quickSort(), equal...), greater.quickSort()...)
}

func compareSuggestions(a, b domain.Suggestion) int {
	if a.Start != b.Start {
		if a.Start < b.Start {
			return -1
		}
		return 1
	}
	if a.Kind == b.Kind {
		return 0
	}
	if a.Kind == domain.SuggestionKindPreferred {
		return -1
	}
	return 1
}
