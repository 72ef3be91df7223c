package domain

import (
	"time"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking запись о бронировании. Время хранится в UTC.
type Booking struct {
	ID            int64
	CompanyID     int64
	ServiceID     *int64 // nil для ручного бронирования без услуги
	Title         string
	StartTime     time.Time
	EndTime       *time.Time // nil = StartTime + DefaultBookingLength
	ClientContact string
	Price         float64
	Status        BookingStatus
	CreatedAt     time.Time
}

// EffectiveEnd возвращает конец бронирования с учетом значения по умолчанию
func (b *Booking) EffectiveEnd() time.Time {
	if b.EndTime != nil {
		return *b.EndTime
	}
	return b.StartTime.Add(DefaultBookingLength)
}

// IsActive возвращает true, если бронирование занимает время в расписании
func (b *Booking) IsActive() bool {
	for _, s := range ActiveStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// Overlaps проверяет пересечение полуинтервалов [start, end) и [b.StartTime, b.EffectiveEnd())
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EffectiveEnd()) && end.After(b.StartTime)
}

// CompanyBookingsFilter фильтр для получения бронирований компании
type CompanyBookingsFilter struct {
	CompanyID int64
	From      *time.Time // начало периода (UTC), nil - без ограничения
	To        *time.Time // конец периода (UTC), nil - без ограничения
}
