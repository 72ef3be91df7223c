package domain

import "time"

// Company настройки компании, которые нужны расписанию
type Company struct {
	ID                     int64
	Name                   string
	Timezone               string // IANA имя или числовое смещение в часах ("+6", "-3.5")
	ConcurrentBookingLimit int
}

// EffectiveLimit лимит параллельных бронирований; значения <= 0 трактуются как 1
func (c *Company) EffectiveLimit() int {
	if c.ConcurrentBookingLimit <= 0 {
		return DefaultConcurrentBookingLimit
	}
	return c.ConcurrentBookingLimit
}

// CompanyTimeContext часовой пояс компании и текущее локальное время
type CompanyTimeContext struct {
	Timezone string
	Location *time.Location
	NowLocal time.Time
	Fallback bool // true, если настройка пояса отсутствует или некорректна и использован UTC
}
