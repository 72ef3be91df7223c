package scheduling

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_multi_day_availability"
)

type SlotsUseCase interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *get_multi_day_availability.Request) (*get_multi_day_availability.Response, error)
	ExecuteForAllServices(ctx context.Context, req *get_multi_day_availability.AllServicesRequest) (*get_multi_day_availability.AllServicesResponse, error)
}

type BookingUseCase interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
