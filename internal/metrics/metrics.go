package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

type Metrics struct {
	ordersPlaced         *prometheus.CounterVec
	paymentVerifications *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
}

// New registers the storefront collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ordersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders created, by payment method.",
		}, []string{"method"}),
		paymentVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_verifications_total",
			Help:      "Payment verification attempts, by provider and outcome.",
		}, []string{"provider", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(m.ordersPlaced, m.paymentVerifications, m.requestDuration)
	return m
}

func (m *Metrics) OrderPlaced(method string) {
	if m == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(method).Inc()
}

func (m *Metrics) PaymentVerified(provider, outcome string) {
	if m == nil {
		return
	}
	m.paymentVerifications.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
