package get_multi_day_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	getMultiDay "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_multi_day_availability"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidParams    = "некорректные параметры запроса"
	msgCompanyNotFound  = "компания не найдена"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetMultiDayAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetMultiDayAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/availability
// Query params: days, durationMinutes, serviceId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/availability - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	req := &getMultiDay.Request{CompanyID: companyID}
	if req.Days, err = handlers.QueryInt(r, "days"); err == nil {
		if req.DurationMinutes, err = handlers.QueryInt(r, "durationMinutes"); err == nil {
			req.ServiceID, err = handlers.QueryInt64(r, "serviceId")
		}
	}
	if err != nil {
		h.logger.Warn("GET /companies/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getMultiDay.ErrInvalidInput), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/availability - Invalid params: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAvailableSlots.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/availability - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /companies/{id}/availability - Service not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /companies/{id}/availability - Failed to get availability: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/availability - Availability retrieved successfully: company_id=%d, days=%d, available_days=%d",
		companyID, result.Days, len(result.Availability))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
