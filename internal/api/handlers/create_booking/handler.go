package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidTimeFormat  = "некорректный формат времени начала, ожидается YYYY-MM-DD HH:MM:SS"
	msgPastBooking        = "время начала уже прошло"
	msgSlotUnavailable    = "выбранный временной слот недоступен"
	msgCompanyNotFound    = "компания не найдена"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/companies/{companyId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("POST /companies/{id}/bookings - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /companies/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(companyID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /companies/{id}/bookings - Slot not available: company_id=%d, start=%q", companyID, req.StartTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrPastBooking):
			h.logger.Warn("POST /companies/{id}/bookings - Past booking: company_id=%d, start=%q", companyID, req.StartTime)
			handlers.RespondUnprocessable(w, msgPastBooking)

		case errors.Is(err, createBooking.ErrInvalidTimeFormat):
			h.logger.Warn("POST /companies/{id}/bookings - Invalid start time: company_id=%d, start=%q", companyID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeFormat)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /companies/{id}/bookings - Invalid input: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrCompanyNotFound):
			h.logger.Warn("POST /companies/{id}/bookings - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /companies/{id}/bookings - Service not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("POST /companies/{id}/bookings - Failed to create booking: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /companies/{id}/bookings - Booking created successfully: booking_id=%d, company_id=%d",
		result.Booking.ID, companyID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
