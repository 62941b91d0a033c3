package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	obligationOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paydue",
		Name:      "obligation_operations_total",
		Help:      "Obligation lifecycle operations by operation and result.",
	}, []string{"operation", "result"})

	settlementTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paydue",
		Name:      "payment_settlement_transitions_total",
		Help:      "Settle/unsettle calls by action and whether state changed.",
	}, []string{"action", "changed"})

	paymentsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "paydue",
		Name:      "payments_generated_total",
		Help:      "Payment instances written by schedule generation.",
	})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "paydue",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route, method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

func ObserveObligationOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	obligationOperations.WithLabelValues(operation, result).Inc()
}

func ObserveSettlement(action string, changed bool) {
	settlementTransitions.WithLabelValues(action, strconv.FormatBool(changed)).Inc()
}

func ObservePaymentsGenerated(n int) {
	paymentsGenerated.Add(float64(n))
}

func HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
