/*-------------------------------------------------------------------------
 *
 * prometheus.go
 *    Prometheus metrics for the Gaprio agent server
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <admin@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/metrics/prometheus.go
 *
 *-------------------------------------------------------------------------
 */

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	/* Request metrics */
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gaprio_agent_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gaprio_agent_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	/* Planning metrics */
	plansGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gaprio_agent_plans_generated_total",
			Help: "Total number of action plans generated",
		},
		[]string{"outcome"},
	)

	planActionCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gaprio_agent_plan_action_count",
			Help:    "Number of actions per generated plan",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)

	/* Execution metrics */
	actionExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gaprio_agent_action_executions_total",
			Help: "Total number of action executions",
		},
		[]string{"provider", "status"},
	)

	actionExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gaprio_agent_action_execution_duration_seconds",
			Help:    "Action execution duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider"},
	)
)

/* RecordHTTPRequest records an HTTP request metric */
func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

/* RecordPlanGenerated records a plan generation outcome */
func RecordPlanGenerated(outcome string, actionCount int) {
	plansGeneratedTotal.WithLabelValues(outcome).Inc()
	planActionCount.Observe(float64(actionCount))
}

/* RecordActionExecution records an action execution */
func RecordActionExecution(provider, status string, duration time.Duration) {
	actionExecutionsTotal.WithLabelValues(provider, status).Inc()
	actionExecutionDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

/* Handler returns the Prometheus metrics HTTP handler */
func Handler() http.Handler {
	return promhttp.Handler()
}
