package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/court-booking-engine/internal/adapters/out/logger"
	"github.com/suchimauz/court-booking-engine/internal/core/domain"
)

func TestCsvStoreLoadMissingFile(t *testing.T) {
	store, err := NewCsvStore(filepath.Join(t.TempDir(), "bookings.csv"), logger.NewNoopLogger())
	require.NoError(t, err)

	bookings, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCsvStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.csv")
	store, err := NewCsvStore(path, logger.NewNoopLogger())
	require.NoError(t, err)

	bookings := []domain.Booking{
		{
			ID:     1,
			Court:  "A",
			Day:    domain.WeekdayMonday,
			Start:  domain.MinutesOfDay(10, 0),
			End:    domain.MinutesOfDay(11, 0),
			Status: domain.BookingStatusActive,
			Owner:  "alice",
		},
		{
			ID:     2,
			Court:  "B",
			Day:    domain.WeekdaySunday,
			Start:  domain.MinutesOfDay(14, 0),
			End:    domain.MinutesOfDay(14, 30),
			Status: domain.BookingStatusCanceled,
			Owner:  "bob",
		},
	}

	ctx := context.Background()
	require.NoError(t, store.Persist(ctx, bookings))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, bookings, loaded)

	// Временный файл переименован, мусора не осталось
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestCsvStoreLoadSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.csv")
	content := strings.Join([]string{
		"booking_id,court_id,day,start_time,end_time,duration,status,username",
		"1,A,Monday,10:00 AM,11:00 AM,1,active,alice",
		",B,Monday,10:00 AM,11:00 AM,1,active,bob",
		"x,B,Monday,10:00 AM,11:00 AM,1,active,bob",
		"2,B,Funday,10:00 AM,11:00 AM,1,active,bob",
		"3,C,Monday,25:00,26:00,1,active,bob",
		"4,D,Monday,10:00 AM,09:00 AM,1,active,bob",
		"5,E,Monday,10:00 AM,11:00 AM,1,paused,bob",
		"6,F,Monday",
		"7,g,tuesday,02:00 PM,02:30 PM,0.5,canceled,carol",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))

	store, err := NewCsvStore(path, logger.NewNoopLogger())
	require.NoError(t, err)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, 1, loaded[0].ID)
	assert.Equal(t, domain.Court("A"), loaded[0].Court)
	assert.True(t, loaded[0].IsActive())

	// Корт и день нормализуются при загрузке
	assert.Equal(t, 7, loaded[1].ID)
	assert.Equal(t, domain.Court("G"), loaded[1].Court)
	assert.Equal(t, domain.WeekdayTuesday, loaded[1].Day)
	assert.Equal(t, domain.BookingStatusCanceled, loaded[1].Status)
}

func TestCsvStorePersistOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.csv")
	store, err := NewCsvStore(path, logger.NewNoopLogger())
	require.NoError(t, err)

	ctx := context.Background()
	booking := domain.Booking{
		ID:     1,
		Court:  "A",
		Day:    domain.WeekdayMonday,
		Start:  domain.MinutesOfDay(10, 0),
		End:    domain.MinutesOfDay(11, 0),
		Status: domain.BookingStatusActive,
		Owner:  "alice",
	}

	require.NoError(t, store.Persist(ctx, []domain.Booking{booking}))

	booking.Status = domain.BookingStatusCanceled
	require.NoError(t, store.Persist(ctx, []domain.Booking{booking}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, domain.BookingStatusCanceled, loaded[0].Status)
}
