package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lesson_booking"

// Metrics набор prometheus-коллекторов сервиса.
// Все методы безопасны для вызова на nil-указателе: если метрики выключены, вызовы ничего не делают.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration  *prometheus.HistogramVec
	dbOpenConns      prometheus.Gauge
	dbInUseConns     prometheus.Gauge
	dbIdleConns      prometheus.Gauge
	dbWaitCount      prometheus.Gauge
	dbTxRetriesTotal prometheus.Counter

	admissionsTotal     *prometheus.CounterVec
	transitionsTotal    *prometheus.CounterVec
	sweptBookingsTotal  prometheus.Counter
	sweepLastRunSeconds prometheus.Gauge
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре (нужно для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "db_query_duration_seconds",
			Help:        "Database call latency by operation.",
			ConstLabels: labels,
			Buckets:     []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_open_connections",
			Help:        "Open connections in the pool.",
			ConstLabels: labels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use.",
			ConstLabels: labels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool.",
			ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: labels,
		}),
		dbTxRetriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "db_tx_retries_total",
			Help:        "Serializable transactions retried after a conflict.",
			ConstLabels: labels,
		}),
		admissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "booking_admissions_total",
			Help:        "Booking admission attempts by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "booking_status_transitions_total",
			Help:        "Cancellation workflow transitions.",
			ConstLabels: labels,
		}, []string{"from", "to"}),
		sweptBookingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "retention_swept_bookings_total",
			Help:        "Bookings deleted by the retention sweep.",
			ConstLabels: labels,
		}),
		sweepLastRunSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "retention_last_run_timestamp_seconds",
			Help:        "Unix time of the last successful retention sweep.",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.dbTxRetriesTotal,
		m.admissionsTotal,
		m.transitionsTotal,
		m.sweptBookingsTotal,
		m.sweepLastRunSeconds,
	)

	return m
}

// ObserveHTTPRequest фиксирует один обработанный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBCall фиксирует длительность обращения к БД
func (m *Metrics) ObserveDBCall(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetPoolStats обновляет метрики пула соединений
func (m *Metrics) SetPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}

// IncTxRetry фиксирует повтор сериализуемой транзакции
func (m *Metrics) IncTxRetry() {
	if m == nil {
		return
	}
	m.dbTxRetriesTotal.Inc()
}

// ObserveAdmission фиксирует результат попытки бронирования
func (m *Metrics) ObserveAdmission(outcome string) {
	if m == nil {
		return
	}
	m.admissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveTransition фиксирует переход статуса бронирования
func (m *Metrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(from, to).Inc()
}

// ObserveSweep фиксирует выполненную очистку
func (m *Metrics) ObserveSweep(deleted int64, at time.Time) {
	if m == nil {
		return
	}
	m.sweptBookingsTotal.Add(float64(deleted))
	m.sweepLastRunSeconds.Set(float64(at.Unix()))
}
