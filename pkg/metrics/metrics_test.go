package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("test")

	m.ObserveSlotCheck("")
	m.ObserveSlotCheck("slot_unavailable")
	m.ObserveSlotCheck("slot_unavailable")
	m.ObserveHoldsExpired(3)
	m.ObserveCalendarSync(true, 5)
	m.ObserveCalendarSync(false, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotChecks.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotChecks.WithLabelValues("slot_unavailable")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.holdsExpired))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.calendarEvents))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calendarSyncs.WithLabelValues("error")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", "200", time.Millisecond)
		m.ObserveDBQuery("query", time.Millisecond, nil)
		m.SetDBPoolStats(1, 1, 0)
		m.ObserveCatalogBuild(time.Millisecond)
		m.ObserveSlotCheck("")
		m.ObserveBookingCreated("held")
		m.ObserveCalendarSync(true, 1)
		m.ObserveHoldsExpired(1)
	})
	assert.Nil(t, m.Registry())
}

func TestMetrics_Handler(t *testing.T) {
	m := New("test")
	m.ObserveCatalogBuild(10 * time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `availability_catalog_builds_total{service="test"} 1`))
}
