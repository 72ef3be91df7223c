package get_company_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeService struct {
	req  *models.GetCompanyBookingsRequest
	resp *models.BookingListResponse
	err  error
}

func (f *fakeService) GetCompanyBookings(_ context.Context, req *models.GetCompanyBookingsRequest) (*models.BookingListResponse, error) {
	f.req = req
	return f.resp, f.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/companies/{companyId}/bookings", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{resp: &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}, {ID: 2}}}}
	h := NewHandler(svc, logger.NewNop())

	rec := serve(h, "/api/v1/companies/5/bookings?from=2026-06-16T00:00:00%2B06:00&to=2026-06-17T00:00:00Z")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(5), svc.req.CompanyID)
	require.NotNil(t, svc.req.From)
	assert.Equal(t, time.Date(2026, 6, 15, 18, 0, 0, 0, time.UTC), *svc.req.From)
	assert.Equal(t, time.Date(2026, 6, 17, 0, 0, 0, 0, time.UTC), *svc.req.To)

	var body []models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 2)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "bad company", target: "/api/v1/companies/-3/bookings", status: http.StatusBadRequest},
		{name: "bad from", target: "/api/v1/companies/1/bookings?from=2026-06-16", status: http.StatusBadRequest},
		{name: "bad range", target: "/api/v1/companies/1/bookings", err: bookings.ErrInvalidTimeRange, status: http.StatusBadRequest},
		{name: "company not found", target: "/api/v1/companies/1/bookings", err: bookings.ErrCompanyNotFound, status: http.StatusNotFound},
		{name: "internal", target: "/api/v1/companies/1/bookings", err: errors.New("db"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())
			assert.Equal(t, tt.status, serve(h, tt.target).Code)
		})
	}
}
