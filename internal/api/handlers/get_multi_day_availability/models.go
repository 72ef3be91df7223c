package get_multi_day_availability

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getMultiDay "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_multi_day_availability"
)

// MultiDayAvailabilityResponse HTTP response model
type MultiDayAvailabilityResponse struct {
	CompanyID        int64                    `json:"companyId"`
	Timezone         string                   `json:"timezone"`
	TimezoneFallback bool                     `json:"timezoneFallback"`
	Days             int                      `json:"days"`
	DurationMinutes  int                      `json:"durationMinutes"`
	ServiceID        *int64                   `json:"serviceId,omitempty"`
	Availability     []domain.DayAvailability `json:"availability"` // только дни со свободными слотами
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMultiDay.Response) *MultiDayAvailabilityResponse {
	availability := resp.Availability
	if availability == nil {
		availability = []domain.DayAvailability{}
	}
	return &MultiDayAvailabilityResponse{
		CompanyID:        resp.CompanyID,
		Timezone:         resp.Timezone,
		TimezoneFallback: resp.TimezoneFallback,
		Days:             resp.Days,
		DurationMinutes:  resp.DurationMinutes,
		ServiceID:        resp.ServiceID,
		Availability:     availability,
	}
}
