package get_time_context

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/companies"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgCompanyNotFound  = "компания не найдена"
)

type Handler struct {
	service CompanyService
	logger  Logger
}

func NewHandler(service CompanyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/time-context
// Часовой пояс компании, текущее локальное время и лимит параллельных бронирований
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/time-context - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	result, err := h.service.GetTimeContext(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, companies.ErrCompanyNotFound) {
			h.logger.Warn("GET /companies/{id}/time-context - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)
			return
		}

		h.logger.Error("GET /companies/{id}/time-context - Failed to get time context: company_id=%d, error=%v",
			companyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /companies/{id}/time-context - Time context retrieved: company_id=%d, timezone=%s, fallback=%t",
		companyID, result.Timezone, result.TimezoneFallback)
	handlers.RespondJSON(w, http.StatusOK, result)
}
