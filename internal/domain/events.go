package domain

import "time"

const (
	EventTypeBookingCreated = "scheduling.booking.created.v1"
	AggregateTypeBooking    = "booking"
)

// BookingCreatedEvent событие о созданном бронировании, публикуется через outbox
type BookingCreatedEvent struct {
	EventID       string    `json:"eventId"`
	BookingID     int64     `json:"bookingId"`
	CompanyID     int64     `json:"companyId"`
	ServiceID     *int64    `json:"serviceId,omitempty"`
	Title         string    `json:"title"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	ClientContact string    `json:"clientContact"`
	Price         float64   `json:"price"`
	Timezone      string    `json:"timezone"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// OutboxEvent запись в таблице outbox_events
type OutboxEvent struct {
	ID            int64
	EventID       string
	AggregateType string
	AggregateID   int64
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}
