package get_services_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	getMultiDay "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_multi_day_availability"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidDuration  = "некорректная длительность"
	msgCompanyNotFound  = "компания не найдена"
)

type Handler struct {
	useCase GetServicesAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetServicesAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/services/availability
// Query params: durationMinutes (опционально, переопределяет длительность услуг)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/availability - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	duration, err := handlers.QueryInt(r, "durationMinutes")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/services/availability - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.ExecuteForAllServices(r.Context(), &getMultiDay.AllServicesRequest{
		CompanyID:       companyID,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getMultiDay.ErrInvalidInput), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/services/availability - Invalid params: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailableSlots.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/services/availability - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		default:
			h.logger.Error("GET /companies/{id}/services/availability - Failed to get availability: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/services/availability - Availability retrieved successfully: company_id=%d, services=%d",
		companyID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
