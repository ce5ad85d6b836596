package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ResultSent     = "sent"
	ResultFailed   = "failed"
	ResultRejected = "rejected"
)

var (
	OrderNotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_notifications_total",
			Help: "Order submissions by outcome (sent, failed, rejected)",
		},
		[]string{"result"},
	)
	OrderDispatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_dispatch_duration_seconds",
		Help:    "Time spent waiting on the e-mail provider",
		Buckets: prometheus.DefBuckets,
	})
	AnalyticsPublishErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_publish_errors_total",
		Help: "Data-platform events that could not be published",
	})
)

func init() {
	prometheus.MustRegister(OrderNotificationsTotal, OrderDispatchDuration, AnalyticsPublishErrorsTotal)
}
