package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/suchimauz/court-booking-engine/internal/core/domain"
	"github.com/suchimauz/court-booking-engine/internal/core/ports/out"
	_ "modernc.org/sqlite"
)

// SqliteStore - журнал бронирований в sqlite. Запись хранится json-блобом,
// Persist заменяет содержимое таблицы целиком в одной транзакции.
type SqliteStore struct {
	db     *sql.DB
	logger out.LoggerPort
}

func NewSqliteStore(path string, logger out.LoggerPort) (*SqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("storage.sqlite.mkdir_failed: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage.sqlite.open_failed: %w", err)
	}

	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS bookings (id INTEGER PRIMARY KEY, data BLOB NOT NULL)"); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, errors.Join(err, cerr)
		}
		return nil, fmt.Errorf("storage.sqlite.init_schema_failed: %w", err)
	}

	return &SqliteStore{
		db:     db,
		logger: logger.WithModule("SqliteStore"),
	}, nil
}

// Load читает журнал в порядке идентификаторов. Идентификаторы
// монотонные, поэтому порядок совпадает с порядком добавления.
// Некорректные записи отбрасываются без ошибки.
func (s *SqliteStore) Load(ctx context.Context) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT data FROM bookings ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("storage.sqlite.select_failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	bookings := make([]domain.Booking, 0)
	skipped := 0
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("storage.sqlite.scan_failed: %w", err)
		}

		var booking domain.Booking
		if err := json.Unmarshal(raw, &booking); err != nil {
			skipped++
			continue
		}
		if !validBooking(booking) {
			skipped++
			continue
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.sqlite.rows_failed: %w", err)
	}

	if skipped > 0 {
		s.logger.Warn("storage.sqlite.rows_skipped", out.LogFields{
			"skipped": skipped,
		})
	}
	return bookings, nil
}

func validBooking(b domain.Booking) bool {
	if b.ID <= 0 || b.Court == "" || b.Owner == "" {
		return false
	}
	if _, exists := b.Day.Index(); !exists {
		return false
	}
	if b.End <= b.Start {
		return false
	}
	return b.Status == domain.BookingStatusActive || b.Status == domain.BookingStatusCanceled
}

// Persist заменяет содержимое таблицы целиком
func (s *SqliteStore) Persist(ctx context.Context, bookings []domain.Booking) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.sqlite.begin_failed: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM bookings"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("storage.sqlite.delete_failed: %w", err)
	}

	for _, booking := range bookings {
		data, err := json.Marshal(booking)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("storage.sqlite.marshal_failed: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO bookings (id, data) VALUES (?, ?)", booking.ID, data); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("storage.sqlite.insert_failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.sqlite.commit_failed: %w", err)
	}
	return nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

var _ out.StoragePort = (*SqliteStore)(nil)
