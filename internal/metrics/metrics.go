package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_active_sessions",
			Help: "Current number of live storefront sessions",
		},
	)

	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_auth_attempts_total",
			Help: "Login and signup attempts",
		},
		[]string{"operation", "status"},
	)

	eventSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_event_submissions_total",
			Help: "Event submissions by outcome",
		},
		[]string{"status"},
	)

	purchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_purchases_total",
			Help: "Confirmed ticket purchases",
		},
		[]string{"event_id", "kind"},
	)

	ticketsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_tickets_confirmed_total",
			Help: "Tickets in confirmed purchases",
		},
		[]string{"event_id"},
	)

	settlementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_settlement_duration_seconds",
			Help:    "Duration of simulated settlements",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 6),
		},
		[]string{"kind"},
	)

	outreachRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_outreach_requests_total",
			Help: "Newsletter and contact form requests",
		},
		[]string{"form", "status"},
	)

	goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_active_goroutines",
			Help: "Current number of active goroutines",
		},
	)
)

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func kind(free bool) string {
	if free {
		return "free"
	}
	return "paid"
}

func SessionOpened() { activeSessions.Inc() }

func SessionClosed() { activeSessions.Dec() }

func RecordAuth(operation string, err error) {
	authAttempts.WithLabelValues(operation, status(err)).Inc()
}

func RecordSubmission(err error) {
	eventSubmissions.WithLabelValues(status(err)).Inc()
}

func RecordPurchase(eventID string, free bool, quantity int, settledIn time.Duration) {
	purchases.WithLabelValues(eventID, kind(free)).Inc()
	ticketsSold.WithLabelValues(eventID).Add(float64(quantity))
	settlementDuration.WithLabelValues(kind(free)).Observe(settledIn.Seconds())
}

func RecordOutreach(form string, err error) {
	outreachRequests.WithLabelValues(form, status(err)).Inc()
}

// CollectRuntime samples runtime gauges every interval until ctx is done.
func CollectRuntime(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		goroutineCount.Set(float64(runtime.NumGoroutine()))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
