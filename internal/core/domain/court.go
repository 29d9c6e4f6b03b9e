package domain

import "strings"

// Court - код корта из фиксированного набора, например "A".."H"
type Court string

// NormalizeCourt приводит код корта к каноничной форме
func NormalizeCourt(str string) Court {
	return Court(strings.ToUpper(strings.TrimSpace(str)))
}

// CourtSet - закрытый набор кортов, задается при старте приложения.
// Порядок кортов фиксирован и используется как детерминированный порядок обхода.
type CourtSet struct {
	codes   []Court
	indexes map[Court]int
}

func NewCourtSet(codes []Court) *CourtSet {
	set := &CourtSet{
		codes:   make([]Court, 0, len(codes)),
		indexes: make(map[Court]int, len(codes)),
	}
	for _, code := range codes {
		normalized := NormalizeCourt(string(code))
		if _, exists := set.indexes[normalized]; exists {
			continue
		}
		set.indexes[normalized] = len(set.codes)
		set.codes = append(set.codes, normalized)
	}
	return set
}

// DefaultCourtSet возвращает набор кортов по умолчанию: A-H
func DefaultCourtSet() *CourtSet {
	return NewCourtSet([]Court{"A", "B", "C", "D", "E", "F", "G", "H"})
}

func (s *CourtSet) Contains(court Court) bool {
	_, exists := s.indexes[court]
	return exists
}

// Index возвращает порядковый номер корта в наборе
func (s *CourtSet) Index(court Court) (int, bool) {
	index, exists := s.indexes[court]
	return index, exists
}

// Codes возвращает копию списка кортов в фиксированном порядке
func (s *CourtSet) Codes() []Court {
	codes := make([]Court, len(s.codes))
	copy(codes, s.codes)
	return codes
}

func (s *CourtSet) Len() int {
	return len(s.codes)
}
