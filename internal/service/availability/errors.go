package availability

import "errors"

var (
	// ErrScheduleUnavailable не удалось прочитать расписание или бронирования
	ErrScheduleUnavailable = errors.New("availability: schedule unavailable")
)
