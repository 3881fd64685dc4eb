// Package metrics Prometheus метрики сервиса
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueries      *prometheus.CounterVec
	dbDuration     *prometheus.HistogramVec
	dbOpenConns    prometheus.Gauge
	dbInUseConns   prometheus.Gauge
	dbIdleConns    prometheus.Gauge
	dbWaitCount    prometheus.Gauge
	dbWaitDuration prometheus.Gauge

	bookingsCreated     *prometheus.CounterVec
	slotConflicts       *prometheus.CounterVec
	reservationsCreated prometheus.Counter
	shiftsCompleted     prometheus.Counter
	shiftsPaid          prometheus.Counter
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries.",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		dbDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_open_connections", Help: "Open connections in the pool.", ConstLabels: constLabels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_in_use_connections", Help: "Connections currently in use.", ConstLabels: constLabels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_idle_connections", Help: "Idle connections.", ConstLabels: constLabels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_count", Help: "Total number of connections waited for.", ConstLabels: constLabels,
		}),
		dbWaitDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_duration_seconds", Help: "Total time blocked waiting for a connection.", ConstLabels: constLabels,
		}),

		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings created by role of the caller.",
			ConstLabels: constLabels,
		}, []string{"role"}),
		slotConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_slot_conflicts_total",
			Help:        "Rejected bookings by detection stage (precheck, storage).",
			ConstLabels: constLabels,
		}, []string{"stage"}),
		reservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "temporary_reservations_created_total", Help: "Temporary slot holds created.", ConstLabels: constLabels,
		}),
		shiftsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shifts_completed_total", Help: "Shifts closed by clock-out.", ConstLabels: constLabels,
		}),
		shiftsPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shifts_paid_total", Help: "Shifts transitioned to paid.", ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.dbQueries, m.dbDuration, m.dbOpenConns, m.dbInUseConns, m.dbIdleConns, m.dbWaitCount, m.dbWaitDuration,
		m.bookingsCreated, m.slotConflicts, m.reservationsCreated, m.shiftsCompleted, m.shiftsPaid,
	)

	return m
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueries.WithLabelValues(operation, status).Inc()
	m.dbDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64, waitDuration time.Duration) {
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
	m.dbWaitDuration.Set(waitDuration.Seconds())
}

// IncBookingCreated фиксирует созданное бронирование
func (m *Metrics) IncBookingCreated(role string) {
	m.bookingsCreated.WithLabelValues(role).Inc()
}

// IncSlotConflict фиксирует отказ из-за занятого слота
func (m *Metrics) IncSlotConflict(stage string) {
	m.slotConflicts.WithLabelValues(stage).Inc()
}

// IncReservationCreated фиксирует новое временное удержание
func (m *Metrics) IncReservationCreated() {
	m.reservationsCreated.Inc()
}

// IncShiftCompleted фиксирует закрытую смену
func (m *Metrics) IncShiftCompleted() {
	m.shiftsCompleted.Inc()
}

// AddShiftsPaid фиксирует оплаченные смены
func (m *Metrics) AddShiftsPaid(n int) {
	m.shiftsPaid.Add(float64(n))
}
