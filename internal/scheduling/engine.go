package scheduling

import (
	"context"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_multi_day_availability"
)

// BookingInput данные бронирования от диалогового слоя
type BookingInput struct {
	ServiceName   string // пусто - бронь без услуги
	StartTime     string
	ClientContact string
}

// Engine библиотечный вход в планировщик для встраивающего приложения.
// Ошибки чтения пишутся в лог и превращаются в пустой результат,
// ошибки записи возвращаются вызывающему как есть.
type Engine struct {
	slots        SlotsUseCase
	availability AvailabilityUseCase
	bookings     BookingUseCase
	logger       Logger
}

func NewEngine(slots SlotsUseCase, availability AvailabilityUseCase, bookings BookingUseCase, logger Logger) *Engine {
	return &Engine{
		slots:        slots,
		availability: availability,
		bookings:     bookings,
		logger:       logger,
	}
}

// GetAvailableSlots свободные слоты HH:MM на дату (пустая строка - сегодня)
func (e *Engine) GetAvailableSlots(ctx context.Context, companyID int64, date string, durationMinutes int, serviceID *int64) []string {
	req := &get_available_slots.Request{
		CompanyID:       companyID,
		DurationMinutes: positive(durationMinutes),
		ServiceID:       serviceID,
	}
	if date = strings.TrimSpace(date); date != "" {
		req.Date = &date
	}

	resp, err := e.slots.Execute(ctx, req)
	if err != nil {
		e.logger.Error("GetAvailableSlots: company_id=%d, date=%q: %v", companyID, date, err)
		return []string{}
	}
	if resp.Status != domain.AvailabilityAvailable || resp.Slots == nil {
		return []string{}
	}
	return resp.Slots
}

// GetMultiDayAvailability дни со свободными слотами начиная с сегодня
func (e *Engine) GetMultiDayAvailability(ctx context.Context, companyID int64, days, durationMinutes int, serviceID *int64) []domain.DayAvailability {
	resp, err := e.availability.Execute(ctx, &get_multi_day_availability.Request{
		CompanyID:       companyID,
		Days:            positive(days),
		DurationMinutes: positive(durationMinutes),
		ServiceID:       serviceID,
	})
	if err != nil {
		e.logger.Error("GetMultiDayAvailability: company_id=%d, days=%d: %v", companyID, days, err)
		return []domain.DayAvailability{}
	}
	if resp.Availability == nil {
		return []domain.DayAvailability{}
	}
	return resp.Availability
}

// GetServicesAvailability слоты по всем услугам компании на ближайшие дни
func (e *Engine) GetServicesAvailability(ctx context.Context, companyID int64, durationMinutes int) []domain.ServiceAvailability {
	resp, err := e.availability.ExecuteForAllServices(ctx, &get_multi_day_availability.AllServicesRequest{
		CompanyID:       companyID,
		DurationMinutes: positive(durationMinutes),
	})
	if err != nil {
		e.logger.Error("GetServicesAvailability: company_id=%d: %v", companyID, err)
		return []domain.ServiceAvailability{}
	}
	if resp.Services == nil {
		return []domain.ServiceAvailability{}
	}
	return resp.Services
}

// CreateBooking фиксирует бронь. Ошибки create_booking (ErrSlotUnavailable,
// ErrPastBooking, ErrInvalidTimeFormat и т.д.) возвращаются без изменений.
func (e *Engine) CreateBooking(ctx context.Context, companyID int64, in BookingInput) (*domain.Booking, error) {
	req := &create_booking.Request{
		CompanyID:     companyID,
		StartTime:     in.StartTime,
		ClientContact: in.ClientContact,
	}
	if name := strings.TrimSpace(in.ServiceName); name != "" {
		req.ServiceName = &name
	}

	resp, err := e.bookings.Execute(ctx, req)
	if err != nil {
		e.logger.Warn("CreateBooking: company_id=%d, start=%q: %v", companyID, in.StartTime, err)
		return nil, err
	}

	booking := resp.Booking
	return &booking, nil
}

func positive(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}
