package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы резервирования слота
const (
	ReservationSucceeded = "succeeded"
	ReservationConflict  = "conflict"
	ReservationFailed    = "failed"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	serviceName string

	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// База данных
	dbQueryDuration     *prometheus.HistogramVec
	dbOpenConnections   *prometheus.GaugeVec
	dbInUseConnections  *prometheus.GaugeVec
	dbIdleConnections   *prometheus.GaugeVec
	dbWaitCount         *prometheus.GaugeVec
	dbMaxOpenConnection *prometheus.GaugeVec

	// Доменные метрики
	slotsGeneratedTotal *prometheus.CounterVec
	reservationsTotal   *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		dbOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		dbInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		dbIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		dbMaxOpenConnection: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_max_open_connections",
			Help: "Maximum number of open connections",
		}, []string{"service"}),
		slotsGeneratedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointment_slots_generated_total",
			Help: "Slots created by bulk generation",
		}, []string{"service"}),
		reservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appointment_reservations_total",
			Help: "Reservation attempts by outcome",
		}, []string{"service", "outcome"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUseConnections,
		m.dbIdleConnections,
		m.dbWaitCount,
		m.dbMaxOpenConnection,
		m.slotsGeneratedTotal,
		m.reservationsTotal,
	)

	return m
}

// RecordHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// RecordDBQuery фиксирует время выполнения запроса к БД
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64, maxOpen int) {
	m.dbOpenConnections.WithLabelValues(m.serviceName).Set(float64(open))
	m.dbInUseConnections.WithLabelValues(m.serviceName).Set(float64(inUse))
	m.dbIdleConnections.WithLabelValues(m.serviceName).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(m.serviceName).Set(float64(waitCount))
	m.dbMaxOpenConnection.WithLabelValues(m.serviceName).Set(float64(maxOpen))
}

// RecordSlotsGenerated увеличивает счетчик сгенерированных слотов
func (m *Metrics) RecordSlotsGenerated(count int) {
	m.slotsGeneratedTotal.WithLabelValues(m.serviceName).Add(float64(count))
}

// RecordReservation фиксирует попытку резервирования
func (m *Metrics) RecordReservation(outcome string) {
	m.reservationsTotal.WithLabelValues(m.serviceName, outcome).Inc()
}

// Noop реализация доменных метрик для режима без Prometheus
type Noop struct{}

// RecordSlotsGenerated ничего не делает
func (Noop) RecordSlotsGenerated(int) {}

// RecordReservation ничего не делает
func (Noop) RecordReservation(string) {}
