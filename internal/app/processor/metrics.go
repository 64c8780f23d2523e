package processor

import (
	"github.com/airenas/interviewcoach/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "processor"

type workerMetrics struct {
	submissions   *prometheus.CounterVec
	stageDur      *prometheus.HistogramVec
	storeFailures *prometheus.CounterVec
	idleWaits     prometheus.Counter
}

func newWorkerMetrics() *workerMetrics {
	res := &workerMetrics{}
	res.submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Submissions left pending state",
		}, []string{"status"})
	res.stageDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Processing stage duration",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 14),
		}, []string{"stage"})
	res.storeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_failures_total",
			Help:      "Failed store operations",
		}, []string{"op"})
	res.idleWaits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idle_waits_total",
			Help:      "Idle waits taken by the worker",
		})
	return res
}

func (m *workerMetrics) register() error {
	return metrics.RegisterAll(m.submissions, m.stageDur, m.storeFailures, m.idleWaits)
}
