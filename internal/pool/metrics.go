package pool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics mirrors the teacher's promauto global-vars-at-package-init
// pattern (internal/pkg/metrics/metrics.go), generalized from HTTP
// request counters to worker-pool counters. Every gauge/counter is
// labelled by pool name so multiple pools (e.g. the crawler's two tiers
// in the teacher's original analyzer) don't collide in one registry.
var poolMetrics = struct {
	activeWorkers  *prometheus.GaugeVec
	queueDepth     *prometheus.GaugeVec
	tasksSubmitted *prometheus.CounterVec
	tasksCompleted *prometheus.CounterVec
	tasksCancelled *prometheus.CounterVec
	tasksFailed    *prometheus.CounterVec
}{
	activeWorkers: promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pool_active_workers",
		Help: "Number of worker goroutines currently running in a pool.",
	}, []string{"pool"}),
	queueDepth: promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pool_queue_depth",
		Help: "Number of tasks currently queued in a pool, waiting for a worker.",
	}, []string{"pool"}),
	tasksSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pool_tasks_submitted_total",
		Help: "Total number of tasks accepted by a pool.",
	}, []string{"pool"}),
	tasksCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pool_tasks_completed_total",
		Help: "Total number of tasks that finished without error.",
	}, []string{"pool"}),
	tasksCancelled: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pool_tasks_cancelled_total",
		Help: "Total number of tasks that finished as cancelled.",
	}, []string{"pool"}),
	tasksFailed: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pool_tasks_failed_total",
		Help: "Total number of tasks that finished with a non-cancellation error.",
	}, []string{"pool"}),
}
