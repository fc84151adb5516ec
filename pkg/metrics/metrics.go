package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	bookingsCreatedTotal   prometheus.Counter
	bookingConflictsTotal  prometheus.Counter
	bookingsCancelledTotal prometheus.Counter
	waitlistPromotedTotal  prometheus.Counter
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

		bookingsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of successfully committed reservations",
			ConstLabels: labels,
		}),

		bookingConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Total number of commits rejected because the slot was taken",
			ConstLabels: labels,
		}),

		bookingsCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of reservations moved to a cancelled status",
			ConstLabels: labels,
		}),

		waitlistPromotedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "waitlist_promoted_total",
			Help:        "Total number of waitlist entries promoted to notified",
			ConstLabels: labels,
		}),
	}
}

// RecordHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncBookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncBookingCreated() { m.bookingsCreatedTotal.Inc() }

// IncBookingConflict увеличивает счетчик конфликтов слотов
func (m *Metrics) IncBookingConflict() { m.bookingConflictsTotal.Inc() }

// IncBookingCancelled увеличивает счетчик отмен
func (m *Metrics) IncBookingCancelled() { m.bookingsCancelledTotal.Inc() }

// IncWaitlistPromoted увеличивает счетчик продвижений листа ожидания
func (m *Metrics) IncWaitlistPromoted() { m.waitlistPromotedTotal.Inc() }
