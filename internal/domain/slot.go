package domain

import "time"

// Slot вычисляемый интервал для записи, не хранится в БД
type Slot struct {
	Start time.Time `json:"start"` // локальное время компании
	End   time.Time `json:"end"`
}

// Label время начала в формате HH:MM
func (s Slot) Label() string {
	return s.Start.Format(TimeFormat)
}

// AvailabilityStatus результат вычисления слотов на день
type AvailabilityStatus string

const (
	AvailabilityClosed    AvailabilityStatus = "closed"
	AvailabilityAvailable AvailabilityStatus = "available"
)

// DayAvailability слоты одного дня
type DayAvailability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// ServiceAvailability слоты услуги на несколько дней
type ServiceAvailability struct {
	ServiceID       int64             `json:"serviceId"`
	ServiceName     string            `json:"serviceName"`
	DurationMinutes int               `json:"durationMinutes"`
	Days            []DayAvailability `json:"days"`
}

// SlotQuery параметры вычисления слотов, по которым кешируется результат
type SlotQuery struct {
	CompanyID       int64
	Date            string // YYYY-MM-DD в поясе компании
	DurationMinutes int
	ServiceID       int64 // 0 - без услуги
	Timezone        string
	Limit           int   // действующий лимит параллельных бронирований компании
	Version         int64 // версия расписания компании, меняется при каждом бронировании
}

// CachedDay сохраненный результат вычисления слотов дня
type CachedDay struct {
	Status AvailabilityStatus `json:"status"`
	Slots  []Slot             `json:"slots"`
}
