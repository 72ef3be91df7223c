package companies

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	companyRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/company"
	"github.com/m04kA/SMC-SchedulingService/internal/service/companies/models"
	"github.com/m04kA/SMC-SchedulingService/internal/timezone"
)

// Service настройки компаний и их временной контекст
type Service struct {
	companyRepo  CompanyRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса компаний
func NewService(companyRepo CompanyRepository, logger Logger) *Service {
	return &Service{
		companyRepo:  companyRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetCompany получает компанию по ID
func (s *Service) GetCompany(ctx context.Context, companyID int64) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.logger.Warn("GetCompany: company id=%d not found", companyID)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("GetCompany: failed to get company id=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetCompany - repository error: %v", ErrInternal, err)
	}
	return company, nil
}

// TimeContext вычисляет часовой пояс и текущее локальное время компании.
// Некорректный или пустой пояс заменяется на UTC с пометкой Fallback.
func (s *Service) TimeContext(company *domain.Company) domain.CompanyTimeContext {
	tc, err := timezone.ForCompany(company.Timezone, s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("TimeContext: company=%d timezone %q unresolved, falling back to UTC: %v",
			company.ID, company.Timezone, err)
	}
	return tc
}

// GetTimeContext возвращает временной контекст компании для внешних вызывающих
func (s *Service) GetTimeContext(ctx context.Context, companyID int64) (*models.TimeContextResponse, error) {
	company, err := s.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	tc := s.TimeContext(company)
	return &models.TimeContextResponse{
		CompanyID:              company.ID,
		Timezone:               tc.Timezone,
		TimezoneFallback:       tc.Fallback,
		NowLocal:               tc.NowLocal,
		Today:                  tc.NowLocal.Format(domain.DateFormat),
		ConcurrentBookingLimit: company.EffectiveLimit(),
	}, nil
}
