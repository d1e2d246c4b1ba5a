package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
	"github.com/m04kA/SMC-BookingSlots/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingSlots/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingSlots/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	created     []*domain.Booking
	createErr   error
	createErrs  []error // ошибки для первых вызовов Create, по одной на вызов
	createCalls int
	expired     int
	expireErr   error
}

func (r *fakeRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.createCalls++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		return nil, err
	}
	if r.createErr != nil {
		return nil, r.createErr
	}
	b.ID = int64(len(r.created) + 1)
	b.CreatedAt = time.Now()
	r.created = append(r.created, b)
	return b, nil
}

func (r *fakeRepo) ExpireHolds(ctx context.Context, now time.Time) (int64, error) {
	r.expired++
	return 0, r.expireErr
}

type fakeLoader struct {
	blockers []availability.Blocker
	err      error
}

func (f *fakeLoader) Load(ctx context.Context, now time.Time) ([]availability.Blocker, error) {
	return f.blockers, f.err
}

type fakeTx struct{ calls int }

func (m *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopMetrics struct{ created []string }

func (m *nopMetrics) ObserveSlotCheck(reason string)      {}
func (m *nopMetrics) ObserveBookingCreated(status string) { m.created = append(m.created, status) }

// 2026-03-10 09:00 Pacific/Auckland
var now = time.Date(2026, time.March, 9, 20, 0, 0, 0, time.UTC)

var fixedRef = uuid.MustParse("2f1c8f0e-8d8b-4c1e-9a57-0d6c2f1b7e11")

func validRequest() *Request {
	return &Request{
		Date:            "2026-03-11",
		Window:          "10am",
		Duration:        availability.DurationLong,
		CustomerName:    "Aroha Smith",
		CustomerPhone:   "+64 21 555 0101",
		CustomerEmail:   "aroha@example.co.nz",
		CustomerAddress: "12 Queen St, Auckland",
	}
}

type fixture struct {
	repo    *fakeRepo
	loader  *fakeLoader
	tx      *fakeTx
	metrics *nopMetrics
	uc      *UseCase
}

// testConfig закрывается в 7pm, чтобы длинная работа с 6pm не помещалась
func testConfig() availability.Config {
	cfg := availability.DefaultConfig()
	cfg.ClosingHour = 19
	return cfg
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	engine, err := availability.NewEngine(testConfig())
	require.NoError(t, err)

	f := &fixture{repo: &fakeRepo{}, loader: &fakeLoader{}, tx: &fakeTx{}, metrics: &nopMetrics{}}
	f.uc = NewUseCase(f.repo, f.loader, engine, f.tx, f.metrics, opts, logger.NewNop()).
		WithTimeProvider(fixedTime{now}).
		WithReferenceGenerator(func() uuid.UUID { return fixedRef })
	return f
}

func TestExecute_CreatesHold(t *testing.T) {
	f := newFixture(t, Options{HoldTTL: 20 * time.Minute})

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, 1, f.repo.expired)
	require.Len(t, f.repo.created, 1)

	b := f.repo.created[0]
	assert.Equal(t, domain.StatusHeld, b.Status)
	assert.Equal(t, fixedRef, b.Reference)
	assert.Equal(t, "10am", b.Window)
	assert.Equal(t, time.Date(2026, time.March, 10, 21, 0, 0, 0, time.UTC), b.StartAt)
	assert.Equal(t, time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC), b.EndAt)
	assert.Equal(t, 15, b.BufferAfterMinutes)
	require.NotNil(t, b.HoldExpiresAt)
	assert.Equal(t, now.Add(20*time.Minute), *b.HoldExpiresAt)

	assert.Equal(t, "held", resp.Status)
	assert.Equal(t, fixedRef, resp.Reference)
	assert.Equal(t, []string{"held"}, f.metrics.created)
}

func TestExecute_AutoConfirm(t *testing.T) {
	f := newFixture(t, Options{AutoConfirm: true})

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Nil(t, resp.HoldExpiresAt)
}

func TestExecute_WindowNameIsCanonicalised(t *testing.T) {
	f := newFixture(t, Options{})
	req := validRequest()
	req.Window = " 10AM "

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "10am", f.repo.created[0].Window)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Request)
		blockers []availability.Blocker
		wantErr  error
		reason   availability.Reason
	}{
		{
			name:    "malformed date",
			mutate:  func(r *Request) { r.Date = "2026-3-11" },
			wantErr: ErrInvalidInput,
			reason:  availability.ReasonInvalidFormat,
		},
		{
			name:    "yesterday",
			mutate:  func(r *Request) { r.Date = "2026-03-09" },
			wantErr: ErrDateInPast,
			reason:  availability.ReasonDateInPast,
		},
		{
			name:    "beyond horizon",
			mutate:  func(r *Request) { r.Date = "2026-04-30" },
			wantErr: ErrDateTooFarInFuture,
			reason:  availability.ReasonTooFarInAdvance,
		},
		{
			name:    "inside notice today",
			mutate:  func(r *Request) { r.Date = "2026-03-10"; r.Window = "10am" },
			wantErr: ErrTooLateToBook,
			reason:  availability.ReasonInsufficientNotice,
		},
		{
			name:    "long job past closing",
			mutate:  func(r *Request) { r.Window = "6pm" },
			wantErr: ErrOutsideOperatingHours,
			reason:  availability.ReasonOutsideHours,
		},
		{
			name: "overlaps calendar event",
			blockers: []availability.Blocker{
				availability.CalendarBlocker("evt",
					time.Date(2026, time.March, 10, 22, 30, 0, 0, time.UTC),
					time.Date(2026, time.March, 10, 23, 30, 0, 0, time.UTC)),
			},
			wantErr: ErrSlotNotAvailable,
			reason:  availability.ReasonSlotUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{})
			f.loader.blockers = tt.blockers

			req := validRequest()
			if tt.mutate != nil {
				tt.mutate(req)
			}

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)

			var rejected *RejectionError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, tt.reason, rejected.Reason)
			assert.Empty(t, f.repo.created)
		})
	}
}

func TestExecute_SlotTakenAtWriteTime(t *testing.T) {
	f := newFixture(t, Options{})
	f.repo.createErr = fmt.Errorf("%w: start_at=...", bookingRepo.ErrSlotTaken)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	var rejected *RejectionError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, availability.ReasonSlotUnavailable, rejected.Reason)
}

func TestExecute_InternalErrors(t *testing.T) {
	f := newFixture(t, Options{})
	f.repo.createErr = errors.New("connection reset")
	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)

	f = newFixture(t, Options{})
	f.loader.err = errors.New("db down")
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)

	f = newFixture(t, Options{})
	f.repo.expireErr = errors.New("db down")
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_CustomerValidation(t *testing.T) {
	long := string(make([]byte, domain.MaxNotesLength+1))

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing name", func(r *Request) { r.CustomerName = "  " }},
		{"missing phone", func(r *Request) { r.CustomerPhone = "" }},
		{"letters in phone", func(r *Request) { r.CustomerPhone = "call me" }},
		{"short phone", func(r *Request) { r.CustomerPhone = "123" }},
		{"missing email", func(r *Request) { r.CustomerEmail = "" }},
		{"bad email", func(r *Request) { r.CustomerEmail = "not-an-email" }},
		{"display name email", func(r *Request) { r.CustomerEmail = "Aroha <aroha@example.co.nz>" }},
		{"missing address", func(r *Request) { r.CustomerAddress = "" }},
		{"notes too long", func(r *Request) { r.Notes = &long }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{})
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.tx.calls)
		})
	}
}
