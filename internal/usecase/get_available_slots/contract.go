package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CompanyProvider источник настроек компании и ее временного контекста
type CompanyProvider interface {
	GetCompany(ctx context.Context, companyID int64) (*domain.Company, error)
	TimeContext(company *domain.Company) domain.CompanyTimeContext
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, companyID, serviceID int64) (*domain.Service, error)
}

// ScheduleStore источник окон работы и бронирований на день
type ScheduleStore interface {
	GetDaySchedule(ctx context.Context, companyID int64, localDate time.Time, loc *time.Location) (*domain.DaySchedule, error)
}

// SlotCache кеш вычисленных слотов (опционально)
type SlotCache interface {
	Version(ctx context.Context, companyID int64) (int64, error)
	Get(ctx context.Context, q domain.SlotQuery) (*domain.CachedDay, bool, error)
	Set(ctx context.Context, q domain.SlotQuery, day *domain.CachedDay) error
}

// Metrics счетчики вычислений (опционально)
type Metrics interface {
	ObserveSlotComputation(status string)
	ObserveSlotCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
