package admin_cancel_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingSlots/internal/service/bookings"
	"github.com/m04kA/SMC-BookingSlots/internal/service/bookings/models"
	"github.com/m04kA/SMC-BookingSlots/pkg/logger"
)

type fakeService struct {
	id     int64
	reason string
	err    error
}

func (f *fakeService) CancelByAdmin(ctx context.Context, id int64, req *models.CancelBookingRequest) error {
	f.id = id
	f.reason = req.CancellationReason
	return f.err
}

func serve(svc BookingService, id, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/admin/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch,
		"/api/v1/admin/bookings/"+id+"/cancel", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "5", `{"cancellationReason":"storm warning"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(5), svc.id)
	assert.Equal(t, "storm warning", svc.reason)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "x", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "5", "{").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: bookings.ErrBookingNotFound}, "5", "").Code)
	assert.Equal(t, http.StatusConflict, serve(&fakeService{err: bookings.ErrCannotCancel}, "5", "").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: errors.New("boom")}, "5", "").Code)
}
