package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// БД
	DBQueriesTotal    *prometheus.CounterVec
	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	// Доменные
	SlotComputationsTotal *prometheus.CounterVec
	BookingCommitsTotal   *prometheus.CounterVec
	TxRetriesTotal        *prometheus.CounterVec
	SlotCacheTotal        *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном регистре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном регистре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of open connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		SlotComputationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_computations_total",
			Help:        "Number of slot computations by result status",
			ConstLabels: constLabels,
		}, []string{"status"}),
		BookingCommitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_commits_total",
			Help:        "Number of booking commit attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		TxRetriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "tx_retries_total",
			Help:        "Number of retried transactions after serialization failures",
			ConstLabels: constLabels,
		}, []string{"isolation"}),
		SlotCacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_cache_requests_total",
			Help:        "Slot cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.SlotComputationsTotal,
		m.BookingCommitsTotal,
		m.TxRetriesTotal,
		m.SlotCacheTotal,
	)

	return m
}

// Методы ниже безопасны для nil-получателя: метрики можно отключить в конфиге

// ObserveSlotComputation учитывает результат вычисления слотов
func (m *Metrics) ObserveSlotComputation(status string) {
	if m == nil {
		return
	}
	m.SlotComputationsTotal.WithLabelValues(status).Inc()
}

// ObserveBookingCommit учитывает исход попытки бронирования
func (m *Metrics) ObserveBookingCommit(outcome string) {
	if m == nil {
		return
	}
	m.BookingCommitsTotal.WithLabelValues(outcome).Inc()
}

// ObserveTxRetry учитывает повтор транзакции
func (m *Metrics) ObserveTxRetry(isolation string) {
	if m == nil {
		return
	}
	m.TxRetriesTotal.WithLabelValues(isolation).Inc()
}

// ObserveSlotCache учитывает попадание/промах кеша слотов
func (m *Metrics) ObserveSlotCache(result string) {
	if m == nil {
		return
	}
	m.SlotCacheTotal.WithLabelValues(result).Inc()
}
