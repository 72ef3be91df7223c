package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// WindowRepository источник еженедельных окон работы
type WindowRepository interface {
	GetByWeekday(ctx context.Context, companyID int64, weekday time.Weekday) ([]domain.OpeningWindow, error)
}

// BookingRepository источник бронирований
type BookingRepository interface {
	// ListActiveInRange возвращает активные бронирования, пересекающие [from, to) (UTC)
	ListActiveInRange(ctx context.Context, companyID int64, from, to time.Time) ([]domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
