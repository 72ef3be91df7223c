package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// GetCompanyBookingsRequest запрос на получение бронирований компании
type GetCompanyBookingsRequest struct {
	CompanyID int64
	From      *time.Time // начало периода (опционально)
	To        *time.Time // конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCompanyBookingsRequest) ToDomainFilter() domain.CompanyBookingsFilter {
	return domain.CompanyBookingsFilter{
		CompanyID: r.CompanyID,
		From:      r.From,
		To:        r.To,
	}
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	CompanyID     int64   `json:"companyId"`
	ServiceID     *int64  `json:"serviceId,omitempty"`
	Title         string  `json:"title"`
	StartTime     string  `json:"startTime"` // RFC3339, UTC
	EndTime       string  `json:"endTime"`   // RFC3339, UTC (для бронирований без конца = начало + 1 час)
	LocalStart    string  `json:"localStartTime,omitempty"`
	LocalEnd      string  `json:"localEndTime,omitempty"`
	Timezone      string  `json:"timezone,omitempty"`
	ClientContact string  `json:"clientContact"`
	Price         float64 `json:"price"`
	Status        string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO.
// loc - часовой пояс компании для локальных полей, nil - без них.
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}

	end := b.EffectiveEnd()
	resp := &BookingResponse{
		ID:            b.ID,
		CompanyID:     b.CompanyID,
		ServiceID:     b.ServiceID,
		Title:         b.Title,
		StartTime:     b.StartTime.UTC().Format(time.RFC3339),
		EndTime:       end.UTC().Format(time.RFC3339),
		ClientContact: b.ClientContact,
		Price:         b.Price,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}

	if loc != nil {
		resp.LocalStart = b.StartTime.In(loc).Format(time.RFC3339)
		resp.LocalEnd = end.In(loc).Format(time.RFC3339)
		resp.Timezone = loc.String()
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for i := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(&bookings[i], loc))
	}
	return resp
}
