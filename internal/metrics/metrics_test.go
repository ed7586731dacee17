package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.OrderPlaced("COD")
	m.OrderPlaced("COD")
	m.OrderPlaced("Stripe")
	m.PaymentVerified("razorpay", "invalid_signature")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersPlaced.WithLabelValues("COD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersPlaced.WithLabelValues("Stripe")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentVerifications.WithLabelValues("razorpay", "invalid_signature")))

	m.ObserveRequest("POST", "/api/cart/add", "200", 0.01)
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.OrderPlaced("COD")
		m.PaymentVerified("stripe", "paid")
		m.ObserveRequest("GET", "/", "200", 1)
	})
}
