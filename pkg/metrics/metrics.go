package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal   *prometheus.CounterVec
	dbQueryDuration  *prometheus.HistogramVec
	dbConnectionsOpen prometheus.Gauge
	dbConnectionsIdle prometheus.Gauge

	upstreamRequestsTotal  *prometheus.CounterVec
	upstreamRequestSeconds *prometheus.HistogramVec

	wizardSessionsStarted prometheus.Counter
	wizardStepTransitions *prometheus.CounterVec
	reservationsCommitted prometheus.Counter
	paymentsProcessed     *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: labels,
		}, []string{"operation", "status"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		dbConnectionsOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: labels,
		}),

		dbConnectionsIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: labels,
		}),

		upstreamRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "upstream_requests_total",
			Help:        "Total number of requests to upstream services",
			ConstLabels: labels,
		}, []string{"upstream", "operation", "status"}),

		upstreamRequestSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "upstream_request_duration_seconds",
			Help:        "Upstream request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"upstream", "operation"}),

		wizardSessionsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "wizard_sessions_started_total",
			Help:        "Total number of booking wizard sessions started",
			ConstLabels: labels,
		}),

		wizardStepTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "wizard_step_transitions_total",
			Help:        "Total number of wizard step transitions",
			ConstLabels: labels,
		}, []string{"from", "to"}),

		reservationsCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_committed_total",
			Help:        "Total number of reservations committed through the wizard",
			ConstLabels: labels,
		}),

		paymentsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "payments_processed_total",
			Help:        "Total number of payment attempts",
			ConstLabels: labels,
		}, []string{"method", "outcome"}),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBConnections обновляет gauge'и состояния пула соединений
func (m *Metrics) SetDBConnections(open, idle int) {
	m.dbConnectionsOpen.Set(float64(open))
	m.dbConnectionsIdle.Set(float64(idle))
}

// ObserveUpstreamRequest фиксирует запрос к внешнему сервису
func (m *Metrics) ObserveUpstreamRequest(upstream, operation string, status int, duration time.Duration) {
	m.upstreamRequestsTotal.WithLabelValues(upstream, operation, strconv.Itoa(status)).Inc()
	m.upstreamRequestSeconds.WithLabelValues(upstream, operation).Observe(duration.Seconds())
}

// IncWizardSessionStarted фиксирует старт новой сессии визарда
func (m *Metrics) IncWizardSessionStarted() {
	m.wizardSessionsStarted.Inc()
}

// IncWizardStepTransition фиксирует переход между шагами визарда
func (m *Metrics) IncWizardStepTransition(from, to string) {
	m.wizardStepTransitions.WithLabelValues(from, to).Inc()
}

// IncReservationCommitted фиксирует успешный коммит бронирования
func (m *Metrics) IncReservationCommitted() {
	m.reservationsCommitted.Inc()
}

// IncPaymentProcessed фиксирует попытку оплаты
func (m *Metrics) IncPaymentProcessed(method, outcome string) {
	m.paymentsProcessed.WithLabelValues(method, outcome).Inc()
}
