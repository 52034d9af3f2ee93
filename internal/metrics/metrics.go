package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics agrupa os coletores do serviço. Um *Metrics nil é válido e não
// registra nada, o que permite desligar as métricas pela configuração.
type Metrics struct {
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	bookings   *prometheus.CounterVec
	reminders  *prometheus.CounterVec
	duePending prometheus.Gauge
}

func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_attempts_total",
			Help:      "Booking attempts by outcome.",
		}, []string{"outcome"}),
		reminders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_created_total",
			Help:      "Reminders created by type.",
		}, []string{"type"}),
		duePending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reminders_due_pending",
			Help:      "Pending reminders whose scheduled date has passed.",
		}),
	}

	reg.MustRegister(m.requests, m.latency, m.bookings, m.reminders, m.duePending)
	return m
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) BookingOutcome(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RemindersCreated(reminderType string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.reminders.WithLabelValues(reminderType).Add(float64(n))
}

func (m *Metrics) SetDuePending(n int64) {
	if m == nil {
		return
	}
	m.duePending.Set(float64(n))
}
