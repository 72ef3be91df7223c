package reminders

import "time"

// TypeReminderSend тип задачи asynq для напоминания клиенту
const TypeReminderSend = "reminder:send"

// Payload данные задачи напоминания
type Payload struct {
	BookingID     int64     `json:"bookingId"`
	CompanyID     int64     `json:"companyId"`
	Title         string    `json:"title"`
	StartTime     time.Time `json:"startTime"`
	Timezone      string    `json:"timezone"`
	ClientContact string    `json:"clientContact"`
	OffsetMinutes int       `json:"offsetMinutes"`
}
