package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CompanyProvider интерфейс получения компании и ее временного контекста
type CompanyProvider interface {
	GetCompany(ctx context.Context, companyID int64) (*domain.Company, error)
	TimeContext(company *domain.Company) domain.CompanyTimeContext
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByName(ctx context.Context, companyID int64, name string) (*domain.Service, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockCompanySchedule(ctx context.Context, companyID int64) error
	ListActiveInRange(ctx context.Context, companyID int64, from, to time.Time) ([]domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// OutboxRepository интерфейс outbox для событий
type OutboxRepository interface {
	Insert(ctx context.Context, event *domain.OutboxEvent) error
}

// TransactionManager интерфейс для управления транзакциями.
// DoWithRetry открывает READ COMMITTED транзакцию и повторяет ее при 40001/40P01.
type TransactionManager interface {
	DoWithRetry(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotCache интерфейс инвалидации кэша слотов
type SlotCache interface {
	InvalidateCompany(ctx context.Context, companyID int64) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ObserveBookingCommit(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
