package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CompanyID        int64    `json:"companyId"`
	Date             string   `json:"date"`
	Timezone         string   `json:"timezone"`
	TimezoneFallback bool     `json:"timezoneFallback"`
	DurationMinutes  int      `json:"durationMinutes"`
	ServiceID        *int64   `json:"serviceId,omitempty"`
	Status           string   `json:"status"` // closed | available
	Slots            []string `json:"slots"`  // HH:MM в поясе компании
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(companyID int64, date string, durationMinutes *int, serviceID *int64) *getAvailableSlots.Request {
	req := &getAvailableSlots.Request{
		CompanyID:       companyID,
		DurationMinutes: durationMinutes,
		ServiceID:       serviceID,
	}
	if date != "" {
		req.Date = &date
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := resp.Slots
	if slots == nil {
		slots = []string{}
	}
	return &AvailableSlotsResponse{
		CompanyID:        resp.CompanyID,
		Date:             resp.Date,
		Timezone:         resp.Timezone,
		TimezoneFallback: resp.TimezoneFallback,
		DurationMinutes:  resp.DurationMinutes,
		ServiceID:        resp.ServiceID,
		Status:           string(resp.Status),
		Slots:            slots,
	}
}
