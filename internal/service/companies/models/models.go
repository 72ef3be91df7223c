package models

import "time"

// TimeContextResponse часовой пояс компании и текущее локальное время
type TimeContextResponse struct {
	CompanyID              int64     `json:"companyId"`
	Timezone               string    `json:"timezone"`
	TimezoneFallback       bool      `json:"timezoneFallback"`
	NowLocal               time.Time `json:"nowLocal"`
	Today                  string    `json:"today"` // YYYY-MM-DD в поясе компании
	ConcurrentBookingLimit int       `json:"concurrentBookingLimit"`
}
