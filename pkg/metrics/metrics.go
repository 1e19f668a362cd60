package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Бронирования
	BookingTransitions  *prometheus.CounterVec
	AvailabilityQueries *prometheus.CounterVec

	// Автозавершение
	SweepRuns        *prometheus.CounterVec
	SweepCompletions prometheus.Counter

	// База данных
	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре (для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, reg))

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Количество обработанных HTTP запросов",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Время обработки HTTP запросов",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		BookingTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_transitions_total",
				Help: "Количество попыток перехода состояния бронирования",
			},
			[]string{"event", "result"},
		),
		AvailabilityQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "availability_queries_total",
				Help: "Количество запросов доступности слотов",
			},
			[]string{"result"},
		),
		SweepRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autocomplete_sweep_runs_total",
				Help: "Количество запусков автозавершения",
			},
			[]string{"result"},
		),
		SweepCompletions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "autocomplete_completed_bookings_total",
				Help: "Количество бронирований, завершённых автоматически",
			},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Время выполнения запросов к БД",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
		DBConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_connections",
				Help: "Состояние пула соединений с БД",
			},
			[]string{"state"}, // open, in_use, idle
		),
	}
}

// ObserveTransition учитывает результат перехода состояния. Безопасен для nil.
func (m *Metrics) ObserveTransition(event, result string) {
	if m == nil {
		return
	}
	m.BookingTransitions.WithLabelValues(event, result).Inc()
}

// ObserveAvailability учитывает запрос доступности. Безопасен для nil.
func (m *Metrics) ObserveAvailability(result string) {
	if m == nil {
		return
	}
	m.AvailabilityQueries.WithLabelValues(result).Inc()
}

// ObserveSweep учитывает запуск автозавершения. Безопасен для nil.
func (m *Metrics) ObserveSweep(completed int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.SweepRuns.WithLabelValues("error").Inc()
		return
	}
	m.SweepRuns.WithLabelValues("ok").Inc()
	m.SweepCompletions.Add(float64(completed))
}

// ObserveQuery учитывает длительность запроса к БД. Безопасен для nil.
func (m *Metrics) ObserveQuery(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
