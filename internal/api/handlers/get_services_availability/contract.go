package get_services_availability

import (
	"context"

	getMultiDay "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_multi_day_availability"
)

type GetServicesAvailabilityUseCase interface {
	ExecuteForAllServices(ctx context.Context, req *getMultiDay.AllServicesRequest) (*getMultiDay.AllServicesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
