package get_services_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	getMultiDay "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_multi_day_availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeUseCase struct {
	req  *getMultiDay.AllServicesRequest
	resp *getMultiDay.AllServicesResponse
	err  error
}

func (f *fakeUseCase) ExecuteForAllServices(_ context.Context, req *getMultiDay.AllServicesRequest) (*getMultiDay.AllServicesResponse, error) {
	f.req = req
	return f.resp, f.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/companies/{companyId}/services/availability", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &getMultiDay.AllServicesResponse{
		CompanyID: 1,
		Timezone:  "UTC",
		Days:      3,
		Services: []domain.ServiceAvailability{
			{ServiceID: 1, ServiceName: "Consultation", DurationMinutes: 30,
				Days: []domain.DayAvailability{{Date: "2026-06-16", Slots: []string{"09:00"}}}},
		},
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := serve(h, "/api/v1/companies/1/services/availability?durationMinutes=45")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 45, *uc.req.DurationMinutes)

	var body ServicesAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Services, 1)
	assert.Equal(t, "Consultation", body.Services[0].ServiceName)
	assert.Equal(t, 3, body.Days)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "bad company", target: "/api/v1/companies/x/services/availability", status: http.StatusBadRequest},
		{name: "bad duration", target: "/api/v1/companies/1/services/availability?durationMinutes=x", status: http.StatusBadRequest},
		{name: "invalid duration", target: "/api/v1/companies/1/services/availability", err: getAvailableSlots.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "company not found", target: "/api/v1/companies/1/services/availability", err: getAvailableSlots.ErrCompanyNotFound, status: http.StatusNotFound},
		{name: "internal", target: "/api/v1/companies/1/services/availability", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			assert.Equal(t, tt.status, serve(h, tt.target).Code)
		})
	}
}
