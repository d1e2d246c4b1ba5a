package check_slot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
	checkSlot "github.com/m04kA/SMC-BookingSlots/internal/usecase/check_slot"
	"github.com/m04kA/SMC-BookingSlots/pkg/logger"
)

type fakeUseCase struct {
	got  *checkSlot.Request
	resp *checkSlot.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *checkSlot.Request) (*checkSlot.Response, error) {
	f.got = req
	return f.resp, f.err
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{resp: &checkSlot.Response{
		Valid:   false,
		Reason:  availability.ReasonSlotUnavailable,
		Message: availability.ReasonSlotUnavailable.Message(),
	}}

	body := `{"date":"2026-03-11","window":"10am","duration":"long"}`
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec,
		httptest.NewRequest(http.MethodPost, "/api/v1/availability/check", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, availability.DurationLong, uc.got.Duration)

	var resp CheckSlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "slot_unavailable", resp.Reason)
	assert.NotEmpty(t, resp.Message)
}

func TestHandle_BadBody(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeUseCase{}, logger.NewNop()).Handle(rec,
		httptest.NewRequest(http.MethodPost, "/api/v1/availability/check", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_Internal(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeUseCase{err: errors.New("boom")}, logger.NewNop()).Handle(rec,
		httptest.NewRequest(http.MethodPost, "/api/v1/availability/check", strings.NewReader(`{"date":"2026-03-11"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
