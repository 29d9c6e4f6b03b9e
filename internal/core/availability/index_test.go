package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/court-booking-engine/internal/core/domain"
)

func mustTime(t *testing.T, value string) domain.TimeOfDay {
	t.Helper()
	parsed, err := domain.ParseTimeOfDay(value)
	require.NoError(t, err)
	return parsed
}

func activeBooking(t *testing.T, id int, court domain.Court, day domain.Weekday, start, end string) domain.Booking {
	t.Helper()
	return domain.Booking{
		ID:     id,
		Court:  court,
		Day:    day,
		Start:  mustTime(t, start),
		End:    mustTime(t, end),
		Status: domain.BookingStatusActive,
		Owner:  "alice",
	}
}

func TestIndexSynchronize(t *testing.T) {
	index := NewIndex(domain.DefaultGrid(), domain.DefaultCourtSet())

	index.Synchronize([]domain.Booking{
		activeBooking(t, 1, "A", domain.WeekdayMonday, "10:00 AM", "11:00 AM"),
	})

	free, err := index.IsFree(domain.WeekdayMonday, "A", mustTime(t, "10:00 AM"))
	require.NoError(t, err)
	assert.False(t, free)

	free, err = index.IsFree(domain.WeekdayMonday, "A", mustTime(t, "10:30 AM"))
	require.NoError(t, err)
	assert.False(t, free)

	// Слот после конца интервала не занят
	free, err = index.IsFree(domain.WeekdayMonday, "A", mustTime(t, "11:00 AM"))
	require.NoError(t, err)
	assert.True(t, free)

	// Другой корт и другой день не затронуты
	free, err = index.IsFree(domain.WeekdayMonday, "B", mustTime(t, "10:00 AM"))
	require.NoError(t, err)
	assert.True(t, free)

	free, err = index.IsFree(domain.WeekdayTuesday, "A", mustTime(t, "10:00 AM"))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIndexSynchronizeIdempotent(t *testing.T) {
	index := NewIndex(domain.DefaultGrid(), domain.DefaultCourtSet())
	first := activeBooking(t, 1, "A", domain.WeekdayMonday, "10:00 AM", "11:00 AM")
	second := activeBooking(t, 2, "B", domain.WeekdayMonday, "09:00 AM", "10:00 AM")

	index.Synchronize([]domain.Booking{first, second})
	index.Synchronize([]domain.Booking{second, first})

	free, err := index.IsFree(domain.WeekdayMonday, "A", mustTime(t, "10:00 AM"))
	require.NoError(t, err)
	assert.False(t, free)

	free, err = index.IsFree(domain.WeekdayMonday, "B", mustTime(t, "09:30 AM"))
	require.NoError(t, err)
	assert.False(t, free)
}

func TestIndexSynchronizeReplacesState(t *testing.T) {
	index := NewIndex(domain.DefaultGrid(), domain.DefaultCourtSet())
	booking := activeBooking(t, 1, "A", domain.WeekdayMonday, "10:00 AM", "11:00 AM")

	index.Synchronize([]domain.Booking{booking})
	index.Synchronize([]domain.Booking{})

	free, err := index.IsFree(domain.WeekdayMonday, "A", mustTime(t, "10:00 AM"))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIndexSynchronizeSkipsBadRecords(t *testing.T) {
	index := NewIndex(domain.DefaultGrid(), domain.DefaultCourtSet())

	canceled := activeBooking(t, 1, "A", domain.WeekdayMonday, "10:00 AM", "11:00 AM")
	canceled.Status = domain.BookingStatusCanceled

	unknownCourt := activeBooking(t, 2, "Z", domain.WeekdayMonday, "10:00 AM", "11:00 AM")
	unknownDay := activeBooking(t, 3, "B", domain.Weekday("Funday"), "10:00 AM", "11:00 AM")
	outOfWindow := activeBooking(t, 4, "C", domain.WeekdayMonday, "06:00 AM", "07:00 AM")

	index.Synchronize([]domain.Booking{canceled, unknownCourt, unknownDay, outOfWindow})

	free, err := index.IsFree(domain.WeekdayMonday, "A", mustTime(t, "10:00 AM"))
	require.NoError(t, err)
	assert.True(t, free)

	free, err = index.IsFree(domain.WeekdayMonday, "B", mustTime(t, "10:00 AM"))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIndexIsFreeErrors(t *testing.T) {
	index := NewIndex(domain.DefaultGrid(), domain.DefaultCourtSet())

	_, err := index.IsFree(domain.Weekday("Funday"), "A", mustTime(t, "10:00 AM"))
	assert.ErrorIs(t, err, domain.ErrInvalidDay)

	_, err = index.IsFree(domain.WeekdayMonday, "Z", mustTime(t, "10:00 AM"))
	assert.ErrorIs(t, err, domain.ErrUnknownCourt)

	_, err = index.IsFree(domain.WeekdayMonday, "A", mustTime(t, "10:15 AM"))
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)
}

func TestIndexIsRangeFree(t *testing.T) {
	index := NewIndex(domain.DefaultGrid(), domain.DefaultCourtSet())
	index.Synchronize([]domain.Booking{
		activeBooking(t, 1, "A", domain.WeekdayMonday, "10:30 AM", "11:00 AM"),
	})

	free, err := index.IsRangeFree(domain.WeekdayMonday, "A", mustTime(t, "09:30 AM"), time.Hour)
	require.NoError(t, err)
	assert.True(t, free)

	// Занят хотя бы один слот диапазона
	free, err = index.IsRangeFree(domain.WeekdayMonday, "A", mustTime(t, "10:00 AM"), time.Hour)
	require.NoError(t, err)
	assert.False(t, free)

	_, err = index.IsRangeFree(domain.WeekdayMonday, "A", mustTime(t, "09:30 PM"), time.Hour)
	assert.ErrorIs(t, err, domain.ErrOutOfWindow)
}

func TestIndexFreeCourts(t *testing.T) {
	index := NewIndex(domain.DefaultGrid(), domain.DefaultCourtSet())
	index.Synchronize([]domain.Booking{
		activeBooking(t, 1, "A", domain.WeekdayMonday, "10:00 AM", "11:00 AM"),
		activeBooking(t, 2, "C", domain.WeekdayMonday, "10:00 AM", "10:30 AM"),
	})

	free, err := index.FreeCourts(domain.WeekdayMonday, mustTime(t, "10:00 AM"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Court{"B", "D", "E", "F", "G", "H"}, free)

	free, err = index.FreeCourts(domain.WeekdayMonday, mustTime(t, "10:30 AM"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Court{"B", "C", "D", "E", "F", "G", "H"}, free)

	_, err = index.FreeCourts(domain.Weekday("Funday"), mustTime(t, "10:00 AM"))
	assert.ErrorIs(t, err, domain.ErrInvalidDay)
}

func TestIndexFullDays(t *testing.T) {
	// Маленький домен, чтобы день можно было заполнить одной записью
	grid, err := domain.NewGrid(domain.MinutesOfDay(8, 0), domain.MinutesOfDay(9, 0), 30*time.Minute)
	require.NoError(t, err)
	courts := domain.NewCourtSet([]domain.Court{"A"})

	index := NewIndex(grid, courts)
	assert.Empty(t, index.FullDays())

	index.Synchronize([]domain.Booking{
		activeBooking(t, 1, "A", domain.WeekdayTuesday, "08:00 AM", "09:00 AM"),
		activeBooking(t, 2, "A", domain.WeekdayMonday, "08:00 AM", "08:30 AM"),
	})

	full, err := index.IsDayFull(domain.WeekdayTuesday)
	require.NoError(t, err)
	assert.True(t, full)

	full, err = index.IsDayFull(domain.WeekdayMonday)
	require.NoError(t, err)
	assert.False(t, full)

	assert.Equal(t, []domain.Weekday{domain.WeekdayTuesday}, index.FullDays())
}
