package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/suchimauz/court-booking-engine/internal/core/domain"
	"github.com/suchimauz/court-booking-engine/internal/core/ports/out"
)

// Колонки файла журнала
var csvHeader = []string{"booking_id", "court_id", "day", "start_time", "end_time", "duration", "status", "username"}

// CsvStore - журнал бронирований в csv-файле. Каждое сохранение
// перезаписывает файл целиком через временный файл и переименование.
type CsvStore struct {
	path   string
	logger out.LoggerPort
}

func NewCsvStore(path string, logger out.LoggerPort) (*CsvStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("storage.csv.mkdir_failed: %w", err)
	}

	return &CsvStore{
		path:   path,
		logger: logger.WithModule("CsvStore"),
	}, nil
}

// Load читает журнал из файла. Неполные и некорректные строки
// отбрасываются без ошибки - это политика загрузки, а не сбой.
func (s *CsvStore) Load(ctx context.Context) ([]domain.Booking, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Booking{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage.csv.open_failed: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage.csv.read_failed: %w", err)
	}

	bookings := make([]domain.Booking, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		// Первая строка - заголовок
		if i == 0 {
			continue
		}

		booking, ok := s.parseRow(row)
		if !ok {
			skipped++
			continue
		}
		bookings = append(bookings, booking)
	}

	if skipped > 0 {
		s.logger.Warn("storage.csv.rows_skipped", out.LogFields{
			"path":    s.path,
			"skipped": skipped,
		})
	}
	return bookings, nil
}

func (s *CsvStore) parseRow(row []string) (domain.Booking, bool) {
	if len(row) < len(csvHeader) {
		return domain.Booking{}, false
	}

	for _, required := range []int{0, 1, 2, 3, 4, 6, 7} {
		if strings.TrimSpace(row[required]) == "" {
			return domain.Booking{}, false
		}
	}

	id, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil || id <= 0 {
		return domain.Booking{}, false
	}

	day, err := domain.ParseWeekday(row[2])
	if err != nil {
		return domain.Booking{}, false
	}

	start, err := domain.ParseTimeOfDay(row[3])
	if err != nil {
		return domain.Booking{}, false
	}
	end, err := domain.ParseTimeOfDay(row[4])
	if err != nil || end <= start {
		return domain.Booking{}, false
	}

	status := domain.BookingStatus(strings.ToLower(strings.TrimSpace(row[6])))
	if status != domain.BookingStatusActive && status != domain.BookingStatusCanceled {
		return domain.Booking{}, false
	}

	return domain.Booking{
		ID:     id,
		Court:  domain.NormalizeCourt(row[1]),
		Day:    day,
		Start:  start,
		End:    end,
		Status: status,
		Owner:  strings.TrimSpace(row[7]),
	}, true
}

// Persist перезаписывает файл журнала целиком
func (s *CsvStore) Persist(ctx context.Context, bookings []domain.Booking) error {
	tmpPath := s.path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("storage.csv.create_failed: %w", err)
	}

	writer := csv.NewWriter(file)
	rows := make([][]string, 0, len(bookings)+1)
	rows = append(rows, csvHeader)
	for _, booking := range bookings {
		rows = append(rows, []string{
			strconv.Itoa(booking.ID),
			string(booking.Court),
			string(booking.Day),
			booking.Start.String(),
			booking.End.String(),
			strconv.FormatFloat(booking.Duration().Hours(), 'g', -1, 64),
			string(booking.Status),
			booking.Owner,
		})
	}

	if err := writer.WriteAll(rows); err != nil {
		file.Close()
		return fmt.Errorf("storage.csv.write_failed: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("storage.csv.close_failed: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("storage.csv.rename_failed: %w", err)
	}
	return nil
}

func (s *CsvStore) Close() error {
	return nil
}

var _ out.StoragePort = (*CsvStore)(nil)
