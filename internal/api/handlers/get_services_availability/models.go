package get_services_availability

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getMultiDay "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_multi_day_availability"
)

// ServicesAvailabilityResponse HTTP response model
type ServicesAvailabilityResponse struct {
	CompanyID        int64                        `json:"companyId"`
	Timezone         string                       `json:"timezone"`
	TimezoneFallback bool                         `json:"timezoneFallback"`
	Days             int                          `json:"days"`
	Services         []domain.ServiceAvailability `json:"services"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMultiDay.AllServicesResponse) *ServicesAvailabilityResponse {
	services := resp.Services
	if services == nil {
		services = []domain.ServiceAvailability{}
	}
	return &ServicesAvailabilityResponse{
		CompanyID:        resp.CompanyID,
		Timezone:         resp.Timezone,
		TimezoneFallback: resp.TimezoneFallback,
		Days:             resp.Days,
		Services:         services,
	}
}
