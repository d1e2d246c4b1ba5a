package booking

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingSlots/internal/domain"
)

func TestListBlockingQuery(t *testing.T) {
	now := time.Date(2026, time.March, 9, 20, 0, 0, 0, time.UTC)

	query, args, err := listBlockingQuery(now, false)
	require.NoError(t, err)

	assert.Contains(t, query, "status IN ($1,$2)")
	assert.Contains(t, query, "status <> $3")
	assert.Contains(t, query, "hold_expires_at IS NULL")
	assert.Contains(t, query, "hold_expires_at > $4")
	assert.Contains(t, query, "end_at + make_interval(mins => buffer_after_minutes) > $5")
	assert.False(t, strings.HasSuffix(query, "FOR UPDATE"))
	assert.Equal(t, []interface{}{domain.StatusHeld, domain.StatusConfirmed, domain.StatusHeld, now, now}, args)

	query, _, err = listBlockingQuery(now, true)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(query, "FOR UPDATE"))
}

func TestIsActiveSlotViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"active slot index", &pq.Error{Code: uniqueViolation, Constraint: activeSlotIndex}, true},
		{"wrapped", fmt.Errorf("insert: %w", &pq.Error{Code: uniqueViolation, Constraint: activeSlotIndex}), true},
		{"other unique index", &pq.Error{Code: uniqueViolation, Constraint: "bookings_reference_key"}, false},
		{"other code", &pq.Error{Code: "23503", Constraint: activeSlotIndex}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isActiveSlotViolation(tt.err))
		})
	}
}
