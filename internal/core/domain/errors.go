package domain

import "errors"

// Ошибки валидации и бизнес-правил, возвращаются вызывающей стороне как есть
var (
	ErrInvalidCourt    = errors.New("invalid_court")
	ErrInvalidDay      = errors.New("invalid_day")
	ErrInvalidTime     = errors.New("invalid_time")
	ErrInvalidDuration = errors.New("invalid_duration")
	ErrOutOfWindow     = errors.New("out_of_window")
	ErrOverlap         = errors.New("booking_overlap")
	ErrNotFound        = errors.New("booking_not_found")
	ErrNotActive       = errors.New("booking_not_active")
	ErrForbidden       = errors.New("booking_forbidden")
	ErrUnknownCourt    = errors.New("unknown_court")
	ErrInvalidSlot     = errors.New("invalid_slot")
)

// Ошибки провайдера учетных записей
var (
	ErrUserExists         = errors.New("user_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)
