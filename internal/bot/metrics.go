package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics структура для метрик Prometheus
type Metrics struct {
	UpdatesProcessed      prometheus.Counter
	CallbacksProcessed    *prometheus.CounterVec
	CommandsProcessed     *prometheus.CounterVec
	IntentsTotal          *prometheus.CounterVec
	BookingsTotal         prometheus.Counter
	OperatorNotifications *prometheus.CounterVec
	RateLimited           prometheus.Counter
	ErrorsTotal           prometheus.Counter
	UpdateProcessingTime  prometheus.Histogram
}

// NewMetrics создает метрики в указанном registry
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		UpdatesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "poolbot_updates_processed_total",
			Help: "Total number of processed updates",
		}),

		CallbacksProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "poolbot_callbacks_processed_total",
			Help: "Total number of processed callbacks by action",
		}, []string{"action"}),

		CommandsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "poolbot_commands_processed_total",
			Help: "Total number of processed commands",
		}, []string{"command"}),

		IntentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "poolbot_intents_total",
			Help: "Free text messages by recognized intent",
		}, []string{"intent"}),

		BookingsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "poolbot_bookings_total",
			Help: "Total number of accepted booking requests",
		}),

		OperatorNotifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "poolbot_operator_notifications_total",
			Help: "Operator notifications by kind and result",
		}, []string{"kind", "result"}),

		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "poolbot_rate_limited_total",
			Help: "Updates dropped by the per-user rate limiter",
		}),

		ErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "poolbot_errors_total",
			Help: "Total number of errors",
		}),

		UpdateProcessingTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "poolbot_update_processing_time_seconds",
			Help:    "Time spent processing updates",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
