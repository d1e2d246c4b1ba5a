package bookings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingSlots/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingSlots/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingSlots/internal/service/bookings/models"
	"github.com/m04kA/SMC-BookingSlots/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	bookings  map[int64]*domain.Booking
	listed    domain.BookingsFilter
	err       error
	cancelled map[int64]string
	updated   map[int64]domain.BookingStatus
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	r := &fakeRepo{
		bookings:  make(map[int64]*domain.Booking),
		cancelled: make(map[int64]string),
		updated:   make(map[int64]domain.BookingStatus),
	}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, b := range r.bookings {
		if b.Reference.String() == reference {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeRepo) ListByDateRange(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.listed = filter
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Booking
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	r.updated[id] = status
	return nil
}

func (r *fakeRepo) Cancel(ctx context.Context, id int64, reason string) error {
	r.cancelled[id] = reason
	return nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

var now = time.Date(2026, time.March, 9, 20, 0, 0, 0, time.UTC)

func booking(id int64, status domain.BookingStatus, startIn time.Duration) *domain.Booking {
	b := &domain.Booking{
		ID:        id,
		Reference: uuid.New(),
		Status:    status,
		DateKey:   "2026-03-11",
		Window:    "10am",
		StartAt:   now.Add(startIn),
		EndAt:     now.Add(startIn + 2*time.Hour),
		Customer:  domain.Customer{Name: "Aroha"},
	}
	if status == domain.StatusHeld {
		expires := now.Add(10 * time.Minute)
		b.HoldExpiresAt = &expires
	}
	return b
}

func newService(repo *fakeRepo) *Service {
	return NewService(repo, fakeTx{}, logger.NewNop()).WithTimeProvider(fixedTime{now})
}

func TestGetByReference(t *testing.T) {
	b := booking(1, domain.StatusConfirmed, 24*time.Hour)
	svc := newService(newFakeRepo(b))

	resp, err := svc.GetByReference(context.Background(), b.Reference.String())
	require.NoError(t, err)
	assert.Equal(t, b.Reference, resp.Reference)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "Aroha", resp.CustomerName)

	_, err = svc.GetByReference(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetByReference(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByReference_RepositoryError(t *testing.T) {
	repo := newFakeRepo()
	repo.err = fmt.Errorf("%w: boom", bookingRepo.ErrExecQuery)

	_, err := newService(repo).GetByReference(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name    string
		booking *domain.Booking
		wantErr error
	}{
		{"confirmed future", booking(1, domain.StatusConfirmed, 24*time.Hour), nil},
		{"live hold", booking(1, domain.StatusHeld, 24*time.Hour), nil},
		{"already started", booking(1, domain.StatusConfirmed, -time.Hour), ErrCannotCancel},
		{"already cancelled", booking(1, domain.StatusCancelled, 24*time.Hour), ErrCannotCancel},
		{"expired status", booking(1, domain.StatusExpired, 24*time.Hour), ErrCannotCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(tt.booking)

			err := newService(repo).Cancel(context.Background(), tt.booking.Reference.String(),
				&models.CancelBookingRequest{CancellationReason: "  plans changed "})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.cancelled)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "plans changed", repo.cancelled[1])
		})
	}
}

func TestCancel_LapsedHold(t *testing.T) {
	b := booking(1, domain.StatusHeld, 24*time.Hour)
	lapsed := now.Add(-time.Minute)
	b.HoldExpiresAt = &lapsed
	repo := newFakeRepo(b)

	err := newService(repo).Cancel(context.Background(), b.Reference.String(), &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	b := booking(1, domain.StatusConfirmed, 24*time.Hour)
	long := make([]rune, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'x'
	}

	err := newService(newFakeRepo(b)).Cancel(context.Background(), b.Reference.String(),
		&models.CancelBookingRequest{CancellationReason: string(long)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancelByAdmin(t *testing.T) {
	started := booking(1, domain.StatusConfirmed, -time.Hour)
	cancelled := booking(2, domain.StatusCancelled, time.Hour)
	repo := newFakeRepo(started, cancelled)
	svc := newService(repo)

	require.NoError(t, svc.CancelByAdmin(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: "rain"}))
	assert.Equal(t, "rain", repo.cancelled[1])

	assert.ErrorIs(t, svc.CancelByAdmin(context.Background(), 2, &models.CancelBookingRequest{}), ErrCannotCancel)
	assert.ErrorIs(t, svc.CancelByAdmin(context.Background(), 3, &models.CancelBookingRequest{}), ErrBookingNotFound)
}

func TestConfirm(t *testing.T) {
	held := booking(1, domain.StatusHeld, 24*time.Hour)
	confirmed := booking(2, domain.StatusConfirmed, 24*time.Hour)
	lapsed := booking(3, domain.StatusHeld, 24*time.Hour)
	past := now.Add(-time.Second)
	lapsed.HoldExpiresAt = &past

	repo := newFakeRepo(held, confirmed, lapsed)
	svc := newService(repo)

	resp, err := svc.Confirm(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Nil(t, resp.HoldExpiresAt)
	assert.Equal(t, domain.StatusConfirmed, repo.updated[1])

	_, err = svc.Confirm(context.Background(), 2)
	assert.ErrorIs(t, err, ErrCannotConfirm)

	_, err = svc.Confirm(context.Background(), 3)
	assert.ErrorIs(t, err, ErrCannotConfirm)

	_, err = svc.Confirm(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListForDates(t *testing.T) {
	repo := newFakeRepo(booking(1, domain.StatusConfirmed, 24*time.Hour))
	svc := newService(repo)
	status := "confirmed"

	resp, err := svc.ListForDates(context.Background(), &models.ListBookingsRequest{
		From: "2026-03-01", To: "2026-03-31", Status: &status,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, "2026-03-01", repo.listed.FromDateKey)
	assert.Equal(t, "2026-03-31", repo.listed.ToDateKey)
	require.NotNil(t, repo.listed.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.listed.Status)
}

func TestListForDates_Validation(t *testing.T) {
	bad := "done"
	tests := []struct {
		name    string
		req     models.ListBookingsRequest
		wantErr error
	}{
		{"bad from", models.ListBookingsRequest{From: "03/01/2026", To: "2026-03-02"}, ErrInvalidInput},
		{"bad to", models.ListBookingsRequest{From: "2026-03-01", To: ""}, ErrInvalidInput},
		{"reversed", models.ListBookingsRequest{From: "2026-03-05", To: "2026-03-01"}, ErrInvalidTimeRange},
		{"too long", models.ListBookingsRequest{From: "2026-01-01", To: "2026-03-04"}, ErrInvalidTimeRange},
		{"bad status", models.ListBookingsRequest{From: "2026-03-01", To: "2026-03-02", Status: &bad}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(newFakeRepo()).ListForDates(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListForDates_EmptyIsNotNil(t *testing.T) {
	resp, err := newService(newFakeRepo()).ListForDates(context.Background(),
		&models.ListBookingsRequest{From: "2026-03-01", To: "2026-03-01"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}

func TestListForDates_RepositoryError(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("timeout")

	_, err := newService(repo).ListForDates(context.Background(),
		&models.ListBookingsRequest{From: "2026-03-01", To: "2026-03-02"})
	assert.ErrorIs(t, err, ErrInternal)
}
