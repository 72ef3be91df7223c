package domain

import "time"

// Значения по умолчанию
const (
	DefaultDurationMinutes        = 60
	DefaultConcurrentBookingLimit = 1
	DefaultBookingLength          = time.Hour
	DefaultBookingTitle           = "Appointment"
	DefaultTimezone               = "UTC"
)

// Ограничения входных данных
const (
	MinDurationMinutes     = 5
	MaxDurationMinutes     = 720
	MaxClientContactLength = 255
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, занимающих слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
