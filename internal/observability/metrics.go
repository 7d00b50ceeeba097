// Package observability exposes the Prometheus metrics of the workout
// engine. Metrics are registered at package load; handlers and services
// record through the helper functions.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests handled, by route, method and status class.",
	}, []string{"route", "method", "status"})

	httpDurationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fittrack",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	workoutsCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "workouts",
		Name:      "created_total",
		Help:      "Number of workouts created, including repeats.",
	})

	completionsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "workouts",
		Name:      "completions_total",
		Help:      "Number of progress entries recorded.",
	})

	workoutsSweptCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "cleanup",
		Name:      "workouts_swept_total",
		Help:      "Number of workouts removed by the retention sweep.",
	})

	notificationsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "notifications",
		Name:      "sent_total",
		Help:      "Number of reminder notifications dispatched, by outcome.",
	}, []string{"outcome"})

	lastCompletionGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittrack",
		Subsystem: "workouts",
		Name:      "last_completion_timestamp_seconds",
		Help:      "Unix timestamp of the most recent progress entry recorded.",
	})
)

func init() {
	prometheus.MustRegister(
		httpRequestsCounter,
		httpDurationHistogram,
		workoutsCreatedCounter,
		completionsCounter,
		workoutsSweptCounter,
		notificationsCounter,
		lastCompletionGauge,
	)
}

// RecordHTTPRequest updates the request counter and latency histogram.
func RecordHTTPRequest(route, method, status string, duration time.Duration) {
	httpRequestsCounter.WithLabelValues(route, method, status).Inc()
	httpDurationHistogram.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordWorkoutCreated increments the workout creation counter.
func RecordWorkoutCreated() {
	workoutsCreatedCounter.Inc()
}

// RecordCompletion updates the completion counter and watermark gauge.
func RecordCompletion(ts time.Time) {
	completionsCounter.Inc()
	if !ts.IsZero() {
		lastCompletionGauge.Set(float64(ts.Unix()))
	}
}

// RecordWorkoutsSwept adds the given number of removed workouts to the
// cleanup counter.
func RecordWorkoutsSwept(count int) {
	if count > 0 {
		workoutsSweptCounter.Add(float64(count))
	}
}

// RecordNotification increments the notification counter with the given
// outcome ("sent" or "failed").
func RecordNotification(outcome string) {
	notificationsCounter.WithLabelValues(outcome).Inc()
}
