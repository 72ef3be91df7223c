package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/companies"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

var tracer = otel.Tracer("github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking")

// UseCase use case для создания бронирования
type UseCase struct {
	companies    CompanyProvider
	serviceRepo  ServiceRepository
	bookingRepo  BookingRepository
	outboxRepo   OutboxRepository
	txManager    TransactionManager
	cache        SlotCache
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// cache и metrics могут быть nil.
func NewUseCase(
	companies CompanyProvider,
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	cache SlotCache,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		companies:    companies,
		serviceRepo:  serviceRepo,
		bookingRepo:  bookingRepo,
		outboxRepo:   outboxRepo,
		txManager:    txManager,
		cache:        cache,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Занятость слота пересчитывается под advisory lock компании в той же транзакции, что и запись.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "CreateBooking")
	defer span.End()
	span.SetAttributes(attribute.Int64("company.id", req.CompanyID))

	uc.logger.Info("CreateBooking: company=%d, service=%q, start=%q",
		req.CompanyID, ptr.Deref(req.ServiceName, ""), req.StartTime)

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.observe(outcomeFor(err))
		return nil, err
	}

	uc.observe(outcomeCreated)
	span.SetAttributes(attribute.Int64("booking.id", resp.Booking.ID))
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Компания и ее часовой пояс
	company, err := uc.companies.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, companies.ErrCompanyNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrPersistence, err)
	}
	tc := uc.companies.TimeContext(company)

	// 3. Разбор времени начала
	start, err := parseStartTime(req.StartTime, tc.Location)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 4. Время начала должно быть строго в будущем
	if err := validateNotPast(start, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 5. Услуга по названию или ручное бронирование
	booking, err := uc.buildBooking(ctx, company.ID, req, start)
	if err != nil {
		return nil, err
	}

	limit := company.EffectiveLimit()
	var created *domain.Booking

	// 6. Повторная проверка занятости и запись в одной транзакции.
	// Блокировка берется первым запросом; в READ COMMITTED следующие запросы
	// видят бронирования, закоммиченные предыдущим владельцем блокировки.
	err = uc.txManager.DoWithRetry(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockCompanySchedule(txCtx, company.ID); err != nil {
			return fmt.Errorf("%w: failed to lock schedule: %w", ErrPersistence, err)
		}

		existing, err := uc.bookingRepo.ListActiveInRange(txCtx, company.ID, booking.StartTime, booking.EffectiveEnd())
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrPersistence, err)
		}

		overlapping := availability.CountOverlapping(existing, booking.StartTime, booking.EffectiveEnd())
		if overlapping >= limit {
			uc.logger.Warn("CreateBooking: slot not available, %d/%d spots taken", overlapping, limit)
			return ErrSlotUnavailable
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d spots taken", overlapping, limit)

		result, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrPersistence, err)
		}

		event, err := newBookingCreatedEvent(result, tc.Timezone, uc.timeProvider.Now())
		if err != nil {
			return fmt.Errorf("%w: failed to build event: %v", ErrPersistence, err)
		}
		if err := uc.outboxRepo.Insert(txCtx, event); err != nil {
			return fmt.Errorf("%w: failed to save event: %w", ErrPersistence, err)
		}

		created = result
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			return nil, err
		}
		if errors.Is(err, txmanager.ErrRetriesExhausted) {
			uc.logger.Warn("CreateBooking: company=%d: schedule contention, giving up: %v", company.ID, err)
			return nil, fmt.Errorf("%w: schedule is busy, retry with fresh availability", ErrSlotUnavailable)
		}
		uc.logger.Error("CreateBooking: company=%d: %v", company.ID, err)
		if !errors.Is(err, ErrPersistence) {
			err = fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	// 7. Кэш слотов компании устарел
	uc.invalidateCache(ctx, company.ID)

	return &Response{
		Booking:          *created,
		Timezone:         tc.Timezone,
		TimezoneFallback: tc.Fallback,
		LocalStart:       created.StartTime.In(tc.Location),
		LocalEnd:         created.EffectiveEnd().In(tc.Location),
	}, nil
}

func (uc *UseCase) buildBooking(ctx context.Context, companyID int64, req *Request, start time.Time) (*domain.Booking, error) {
	booking := &domain.Booking{
		CompanyID:     companyID,
		Title:         domain.DefaultBookingTitle,
		StartTime:     start,
		EndTime:       ptr.Ptr(start.Add(domain.DefaultBookingLength)),
		ClientContact: strings.TrimSpace(req.ClientContact),
		Status:        domain.StatusConfirmed,
	}

	if req.ServiceName == nil {
		return booking, nil
	}

	name := strings.TrimSpace(*req.ServiceName)
	service, err := uc.serviceRepo.GetByName(ctx, companyID, name)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service %q not found in company id=%d", name, companyID)
			return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, name)
		}
		uc.logger.Error("CreateBooking: failed to get service %q: %v", name, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrPersistence, err)
	}

	booking.ServiceID = ptr.Ptr(service.ID)
	booking.Title = service.Name
	booking.Price = service.Price
	booking.EndTime = ptr.Ptr(start.Add(time.Duration(service.EffectiveDuration()) * time.Minute))
	return booking, nil
}

func (uc *UseCase) invalidateCache(ctx context.Context, companyID int64) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateCompany(ctx, companyID); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate slot cache for company=%d: %v", companyID, err)
	}
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBookingCommit(outcome)
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrSlotUnavailable):
		return outcomeSlotUnavailable
	case errors.Is(err, ErrPersistence):
		return outcomePersistence
	default:
		return outcomeRejected
	}
}

func newBookingCreatedEvent(b *domain.Booking, timezone string, now time.Time) (*domain.OutboxEvent, error) {
	eventID := uuid.NewString()

	payload, err := json.Marshal(domain.BookingCreatedEvent{
		EventID:       eventID,
		BookingID:     b.ID,
		CompanyID:     b.CompanyID,
		ServiceID:     b.ServiceID,
		Title:         b.Title,
		StartTime:     b.StartTime.UTC(),
		EndTime:       b.EffectiveEnd().UTC(),
		ClientContact: b.ClientContact,
		Price:         b.Price,
		Timezone:      timezone,
		OccurredAt:    now.UTC(),
	})
	if err != nil {
		return nil, err
	}

	return &domain.OutboxEvent{
		EventID:       eventID,
		AggregateType: domain.AggregateTypeBooking,
		AggregateID:   b.ID,
		EventType:     domain.EventTypeBookingCreated,
		Payload:       payload,
	}, nil
}
