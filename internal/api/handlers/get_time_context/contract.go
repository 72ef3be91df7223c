package get_time_context

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/companies/models"
)

type CompanyService interface {
	GetTimeContext(ctx context.Context, companyID int64) (*models.TimeContextResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
