package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	companyRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/company"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/timezone"
)

// Service сервис чтения бронирований.
// Бронирования неизменяемы после создания, поэтому здесь только запросы.
type Service struct {
	bookingRepo BookingRepository
	companyRepo CompanyRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	companyRepo CompanyRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Локальное время - дополнительная информация, ошибка чтения компании не критична
	var loc *time.Location
	if company, err := s.companyRepo.GetByID(ctx, booking.CompanyID); err != nil {
		s.logger.Warn("GetByID: failed to load company=%d for booking id=%d: %v", booking.CompanyID, id, err)
	} else {
		loc = s.location(company.Timezone, company.ID)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, loc), nil
}

// GetCompanyBookings получает бронирования компании за период
func (s *Service) GetCompanyBookings(ctx context.Context, req *models.GetCompanyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCompanyBookings: fetching bookings for company=%d", req.CompanyID)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("GetCompanyBookings: invalid range for company=%d: from=%s to=%s",
			req.CompanyID, req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))
		return nil, ErrInvalidTimeRange
	}

	company, err := s.companyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.logger.Warn("GetCompanyBookings: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("GetCompanyBookings: failed to get company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyBookings - company: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.ListByCompany(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetCompanyBookings: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCompanyBookings: successfully fetched %d bookings for company=%d", len(bookings), req.CompanyID)
	return models.FromDomainBookingList(bookings, s.location(company.Timezone, company.ID)), nil
}

func (s *Service) location(raw string, companyID int64) *time.Location {
	loc, err := timezone.Resolve(raw)
	if err != nil {
		s.logger.Warn("company=%d timezone %q unresolved, using UTC: %v", companyID, raw, err)
		return time.UTC
	}
	return loc
}
