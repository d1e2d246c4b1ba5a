package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics коллектор Prometheus метрик сервиса
// Все методы безопасно вызывать на nil (метрики выключены в конфиге)
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge

	catalogBuilds   prometheus.Counter
	catalogDuration prometheus.Histogram
	slotChecks      *prometheus.CounterVec
	bookingsCreated *prometheus.CounterVec

	calendarSyncs  *prometheus.CounterVec
	calendarEvents prometheus.Gauge
	holdsExpired   prometheus.Counter
}

// New создает и регистрирует все метрики сервиса в собственном реестре
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established database connections",
			ConstLabels: labels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections currently in use",
			ConstLabels: labels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: labels,
		}),

		catalogBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "availability_catalog_builds_total",
			Help:        "Total number of availability catalogs built",
			ConstLabels: labels,
		}),
		catalogDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "availability_catalog_build_duration_seconds",
			Help:        "Time spent loading blockers and building the catalog",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}),
		slotChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_slot_checks_total",
			Help:        "Slot validations by outcome reason",
			ConstLabels: labels,
		}, []string{"reason"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings created by initial status",
			ConstLabels: labels,
		}, []string{"status"}),

		calendarSyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_syncs_total",
			Help:        "Calendar sync runs by result",
			ConstLabels: labels,
		}, []string{"result"}),
		calendarEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "calendar_cached_events",
			Help:        "Number of busy blocks stored by the last successful sync",
			ConstLabels: labels,
		}),
		holdsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_holds_expired_total",
			Help:        "Total number of holds released by the expiry job",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.catalogBuilds,
		m.catalogDuration,
		m.slotChecks,
		m.bookingsCreated,
		m.calendarSyncs,
		m.calendarEvents,
		m.holdsExpired,
	)

	return m
}

// Handler возвращает HTTP handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает реестр метрик (используется в тестах)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
}

func (m *Metrics) ObserveCatalogBuild(d time.Duration) {
	if m == nil {
		return
	}
	m.catalogBuilds.Inc()
	m.catalogDuration.Observe(d.Seconds())
}

// ObserveSlotCheck учитывает результат валидации слота. Пустая причина = слот свободен
func (m *Metrics) ObserveSlotCheck(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "ok"
	}
	m.slotChecks.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveBookingCreated(status string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveCalendarSync(ok bool, events int) {
	if m == nil {
		return
	}
	if !ok {
		m.calendarSyncs.WithLabelValues("error").Inc()
		return
	}
	m.calendarSyncs.WithLabelValues("ok").Inc()
	m.calendarEvents.Set(float64(events))
}

func (m *Metrics) ObserveHoldsExpired(n int64) {
	if m == nil {
		return
	}
	m.holdsExpired.Add(float64(n))
}
