package get_multi_day_availability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

var tracer = otel.Tracer("github.com/m04kA/SMC-SchedulingService/internal/usecase/get_multi_day_availability")

// UseCase агрегирует слоты по дням
type UseCase struct {
	days     DayComputer
	times    TimeContextProvider
	services ServiceLister
	logger   Logger
	cfg      Config
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(days DayComputer, times TimeContextProvider, services ServiceLister, logger Logger, cfg Config) *UseCase {
	return &UseCase{
		days:     days,
		times:    times,
		services: services,
		logger:   logger,
		cfg:      cfg,
	}
}

// Execute вычисляет слоты на days дней начиная с сегодняшнего (в поясе компании).
// Дни без слотов не попадают в ответ. Ошибка вычисления отдельного дня логируется,
// день пропускается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "GetMultiDayAvailability")
	defer span.End()
	span.SetAttributes(attribute.Int64("company.id", req.CompanyID))

	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}
	if req.DurationMinutes != nil {
		if err := get_available_slots.ValidateDuration(*req.DurationMinutes); err != nil {
			return nil, err
		}
	}

	company, err := uc.days.GetCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	var service *domain.Service
	if req.ServiceID != nil {
		if service, err = uc.days.GetService(ctx, req.CompanyID, *req.ServiceID); err != nil {
			return nil, err
		}
	}

	days := uc.clampDays(req.Days)
	duration := uc.duration(req.DurationMinutes, service)
	tc := uc.times.TimeContext(company)

	availability := uc.collect(ctx, company, tc, days, duration, service)

	uc.logger.Info("GetMultiDayAvailability: company=%d days=%d duration=%d available_days=%d",
		company.ID, days, duration, len(availability))

	return &Response{
		CompanyID:        company.ID,
		Timezone:         tc.Timezone,
		TimezoneFallback: tc.Fallback,
		Days:             days,
		DurationMinutes:  duration,
		ServiceID:        req.ServiceID,
		Availability:     availability,
	}, nil
}

// ExecuteForAllServices перебирает все услуги компании на короткое окно дней
func (uc *UseCase) ExecuteForAllServices(ctx context.Context, req *AllServicesRequest) (*AllServicesResponse, error) {
	ctx, span := tracer.Start(ctx, "GetAllServicesAvailability")
	defer span.End()
	span.SetAttributes(attribute.Int64("company.id", req.CompanyID))

	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}
	if req.DurationMinutes != nil {
		if err := get_available_slots.ValidateDuration(*req.DurationMinutes); err != nil {
			return nil, err
		}
	}

	company, err := uc.days.GetCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	services, err := uc.services.ListByCompany(ctx, company.ID)
	if err != nil {
		uc.logger.Error("GetAllServicesAvailability: failed to list services for company=%d: %v", company.ID, err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	days := uc.cfg.AllServicesDays
	if days <= 0 {
		days = 1
	}
	tc := uc.times.TimeContext(company)

	result := make([]domain.ServiceAvailability, 0, len(services))
	for i := range services {
		service := &services[i]
		duration := uc.duration(req.DurationMinutes, service)

		result = append(result, domain.ServiceAvailability{
			ServiceID:       service.ID,
			ServiceName:     service.Name,
			DurationMinutes: duration,
			Days:            uc.collect(ctx, company, tc, days, duration, service),
		})
	}

	uc.logger.Info("GetAllServicesAvailability: company=%d services=%d days=%d", company.ID, len(result), days)

	return &AllServicesResponse{
		CompanyID:        company.ID,
		Timezone:         tc.Timezone,
		TimezoneFallback: tc.Fallback,
		Days:             days,
		Services:         result,
	}, nil
}

func (uc *UseCase) collect(
	ctx context.Context,
	company *domain.Company,
	tc domain.CompanyTimeContext,
	days int,
	duration int,
	service *domain.Service,
) []domain.DayAvailability {
	loc := tc.Location
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := tc.NowLocal.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	result := make([]domain.DayAvailability, 0, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i)

		day, err := uc.days.ComputeDay(ctx, get_available_slots.DayParams{
			Company:         company,
			TimeContext:     tc,
			Date:            date,
			DurationMinutes: duration,
			Service:         service,
		})
		if err != nil {
			uc.logger.Warn("GetMultiDayAvailability: skipping company=%d date=%s: %v",
				company.ID, date.Format(domain.DateFormat), err)
			continue
		}
		if len(day.Slots) == 0 {
			continue
		}

		result = append(result, domain.DayAvailability{
			Date:  date.Format(domain.DateFormat),
			Slots: day.Labels(),
		})
	}
	return result
}

func (uc *UseCase) clampDays(requested *int) int {
	days := uc.cfg.DefaultDays
	if requested != nil {
		days = *requested
	}
	if days < 1 {
		days = 1
	}
	if uc.cfg.MaxDays > 0 && days > uc.cfg.MaxDays {
		days = uc.cfg.MaxDays
	}
	return days
}

func (uc *UseCase) duration(requested *int, service *domain.Service) int {
	if requested != nil {
		return *requested
	}
	if service != nil && service.DurationMinutes > 0 {
		return service.DurationMinutes
	}
	if uc.cfg.DefaultDurationMinutes > 0 {
		return uc.cfg.DefaultDurationMinutes
	}
	return domain.DefaultDurationMinutes
}
