package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/companies"
)

const (
	statusError = "error"

	cacheHit    = "hit"
	cacheMiss   = "miss"
	cacheBypass = "bypass"
)

var tracer = otel.Tracer("github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots")

// UseCase use case для получения доступных слотов на день
type UseCase struct {
	companies   CompanyProvider
	serviceRepo ServiceRepository
	store       ScheduleStore
	cache       SlotCache
	metrics     Metrics
	logger      Logger
	cfg         Config
}

// NewUseCase создает новый экземпляр use case.
// cache и metrics могут быть nil.
func NewUseCase(
	companies CompanyProvider,
	serviceRepo ServiceRepository,
	store ScheduleStore,
	cache SlotCache,
	metrics Metrics,
	logger Logger,
	cfg Config,
) *UseCase {
	return &UseCase{
		companies:   companies,
		serviceRepo: serviceRepo,
		store:       store,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
	}
}

// Execute вычисляет слоты на дату запроса (по умолчанию сегодня в поясе компании)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "GetAvailableSlots")
	defer span.End()
	span.SetAttributes(attribute.Int64("company.id", req.CompanyID))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Компания и ее временной контекст
	company, err := uc.GetCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	tc := uc.companies.TimeContext(company)

	// 3. Дата в поясе компании
	date, err := parseDate(req.Date, tc)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: company=%d: %v", req.CompanyID, err)
		return nil, err
	}

	// 4. Услуга (если указана)
	var service *domain.Service
	if req.ServiceID != nil {
		service, err = uc.GetService(ctx, req.CompanyID, *req.ServiceID)
		if err != nil {
			return nil, err
		}
	}

	duration := resolveDuration(req.DurationMinutes, service, uc.cfg.DefaultDurationMinutes)

	// 5. Вычисление слотов
	result, err := uc.ComputeDay(ctx, DayParams{
		Company:         company,
		TimeContext:     tc,
		Date:            date,
		DurationMinutes: duration,
		Service:         service,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "slot computation failed")
		return nil, err
	}

	labels := result.Labels()
	uc.logger.Info("GetAvailableSlots: company=%d date=%s tz=%s duration=%d status=%s slots=%d",
		company.ID, date.Format(domain.DateFormat), tc.Timezone, duration, result.Status, len(labels))

	return &Response{
		CompanyID:        company.ID,
		Date:             date.Format(domain.DateFormat),
		Timezone:         tc.Timezone,
		TimezoneFallback: tc.Fallback,
		DurationMinutes:  duration,
		ServiceID:        req.ServiceID,
		Status:           result.Status,
		Slots:            labels,
	}, nil
}

// GetCompany получает компанию, переводя ошибки в ошибки use case
func (uc *UseCase) GetCompany(ctx context.Context, companyID int64) (*domain.Company, error) {
	company, err := uc.companies.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companies.ErrCompanyNotFound) {
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get company id=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}
	return company, nil
}

// GetService получает услугу компании, переводя ошибки в ошибки use case
func (uc *UseCase) GetService(ctx context.Context, companyID, serviceID int64) (*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, companyID, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found in company=%d", serviceID, companyID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	return service, nil
}

// ComputeDay вычисляет слоты одного локального дня.
// Возвращает Closed для дня без окон работы и ErrComputation, если расписание не прочитано.
func (uc *UseCase) ComputeDay(ctx context.Context, p DayParams) (*DayResult, error) {
	loc := p.TimeContext.Location
	if loc == nil {
		loc = time.UTC
	}
	date := p.Date.In(loc)
	dayStart, dayEnd := availability.DayBounds(date, loc)
	now := p.TimeContext.NowLocal

	// День уже закончился: слотов нет, но статус зависит от окон работы
	if !dayEnd.After(now) {
		return uc.elapsedDay(ctx, p.Company.ID, dayStart, loc)
	}

	q := domain.SlotQuery{
		CompanyID:       p.Company.ID,
		Date:            dayStart.Format(domain.DateFormat),
		DurationMinutes: p.DurationMinutes,
		Timezone:        p.TimeContext.Timezone,
		Limit:           p.Company.EffectiveLimit(),
	}
	if p.Service != nil {
		q.ServiceID = p.Service.ID
	}

	useCache := uc.cache != nil
	if useCache {
		version, err := uc.cache.Version(ctx, q.CompanyID)
		if err != nil {
			uc.logger.Warn("ComputeDay: cache unavailable for company=%d: %v", q.CompanyID, err)
			uc.observeCache(cacheBypass)
			useCache = false
		} else {
			q.Version = version
		}
	}

	if useCache {
		cached, found, err := uc.cache.Get(ctx, q)
		switch {
		case err != nil:
			uc.logger.Warn("ComputeDay: cache read failed for company=%d date=%s: %v", q.CompanyID, q.Date, err)
			uc.observeCache(cacheBypass)
		case found:
			uc.observeCache(cacheHit)
			result := refilter(cached, now, loc)
			uc.observe(string(result.Status))
			return result, nil
		default:
			uc.observeCache(cacheMiss)
		}
	}

	schedule, err := uc.store.GetDaySchedule(ctx, p.Company.ID, dayStart, loc)
	if err != nil {
		uc.observe(statusError)
		uc.logger.Error("ComputeDay: company=%d date=%s: %v", p.Company.ID, q.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrComputation, err)
	}

	result := &DayResult{Status: domain.AvailabilityClosed, Slots: []domain.Slot{}}
	if !schedule.IsClosed() {
		result = &DayResult{
			Status: domain.AvailabilityAvailable,
			Slots: availability.Generate(availability.GenerateParams{
				Date:     dayStart,
				Location: loc,
				Windows:  schedule.Windows,
				Bookings: schedule.Bookings,
				Duration: time.Duration(p.DurationMinutes) * time.Minute,
				Limit:    p.Company.EffectiveLimit(),
				Now:      now,
				Service:  p.Service,
			}),
		}
	}
	uc.logger.Debug("ComputeDay: company=%d date=%s windows=%d bookings=%d slots=%d",
		p.Company.ID, q.Date, len(schedule.Windows), len(schedule.Bookings), len(result.Slots))

	if useCache {
		if err := uc.cache.Set(ctx, q, &domain.CachedDay{Status: result.Status, Slots: result.Slots}); err != nil {
			uc.logger.Warn("ComputeDay: cache write failed for company=%d date=%s: %v", q.CompanyID, q.Date, err)
		}
	}

	uc.observe(string(result.Status))
	return result, nil
}

// elapsedDay результат для дня, который уже закончился в поясе компании
func (uc *UseCase) elapsedDay(ctx context.Context, companyID int64, dayStart time.Time, loc *time.Location) (*DayResult, error) {
	schedule, err := uc.store.GetDaySchedule(ctx, companyID, dayStart, loc)
	if err != nil {
		uc.observe(statusError)
		uc.logger.Error("ComputeDay: company=%d date=%s: %v", companyID, dayStart.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrComputation, err)
	}

	status := domain.AvailabilityAvailable
	if schedule.IsClosed() {
		status = domain.AvailabilityClosed
	}
	uc.observe(string(status))
	return &DayResult{Status: status, Slots: []domain.Slot{}}, nil
}

// refilter отбрасывает слоты из кеша, которые уже начались, и возвращает их в пояс компании
func refilter(cached *domain.CachedDay, now time.Time, loc *time.Location) *DayResult {
	result := &DayResult{Status: cached.Status, Slots: make([]domain.Slot, 0, len(cached.Slots))}
	for _, s := range cached.Slots {
		if !s.Start.After(now) {
			continue
		}
		result.Slots = append(result.Slots, domain.Slot{Start: s.Start.In(loc), End: s.End.In(loc)})
	}
	return result
}

func (uc *UseCase) observe(status string) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotComputation(status)
	}
}

func (uc *UseCase) observeCache(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotCache(result)
	}
}
