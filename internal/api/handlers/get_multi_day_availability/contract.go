package get_multi_day_availability

import (
	"context"

	getMultiDay "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_multi_day_availability"
)

type GetMultiDayAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getMultiDay.Request) (*getMultiDay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
