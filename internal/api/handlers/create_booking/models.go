package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceName   *string `json:"serviceName,omitempty"` // без услуги - ручное бронирование на час
	StartTime     string  `json:"startTime"`             // "2026-06-16 10:00:00", "2026-06-16T10:00:00" или RFC3339
	ClientContact string  `json:"clientContact"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	CompanyID        int64   `json:"companyId"`
	ServiceID        *int64  `json:"serviceId,omitempty"`
	Title            string  `json:"title"`
	StartTime        string  `json:"startTime"` // RFC3339, UTC
	EndTime          string  `json:"endTime"`
	LocalStartTime   string  `json:"localStartTime"` // RFC3339 в поясе компании
	LocalEndTime     string  `json:"localEndTime"`
	Timezone         string  `json:"timezone"`
	TimezoneFallback bool    `json:"timezoneFallback"`
	ClientContact    string  `json:"clientContact"`
	Price            float64 `json:"price"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(companyID int64) *createBooking.Request {
	return &createBooking.Request{
		CompanyID:     companyID,
		ServiceName:   r.ServiceName,
		StartTime:     r.StartTime,
		ClientContact: r.ClientContact,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	b := resp.Booking
	return &BookingResponse{
		ID:               b.ID,
		CompanyID:        b.CompanyID,
		ServiceID:        b.ServiceID,
		Title:            b.Title,
		StartTime:        b.StartTime.UTC().Format(time.RFC3339),
		EndTime:          b.EffectiveEnd().UTC().Format(time.RFC3339),
		LocalStartTime:   resp.LocalStart.Format(time.RFC3339),
		LocalEndTime:     resp.LocalEnd.Format(time.RFC3339),
		Timezone:         resp.Timezone,
		TimezoneFallback: resp.TimezoneFallback,
		ClientContact:    b.ClientContact,
		Price:            b.Price,
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
