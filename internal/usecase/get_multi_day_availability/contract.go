package get_multi_day_availability

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// DayComputer вычисление слотов одного дня
type DayComputer interface {
	GetCompany(ctx context.Context, companyID int64) (*domain.Company, error)
	GetService(ctx context.Context, companyID, serviceID int64) (*domain.Service, error)
	ComputeDay(ctx context.Context, p get_available_slots.DayParams) (*get_available_slots.DayResult, error)
}

// TimeContextProvider временной контекст компании
type TimeContextProvider interface {
	TimeContext(company *domain.Company) domain.CompanyTimeContext
}

// ServiceLister каталог услуг компании
type ServiceLister interface {
	ListByCompany(ctx context.Context, companyID int64) ([]domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
