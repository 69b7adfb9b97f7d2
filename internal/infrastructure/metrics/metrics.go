// Package metrics holds the Prometheus collectors exported on /api/metrics.
package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hrms"

var (
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Registration attempts by user kind and result.",
	}, []string{"kind", "result"})

	Verifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_verifications_total",
		Help:      "Email verification attempts by result.",
	}, []string{"result"})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Login attempts by result.",
	}, []string{"result"})

	CodesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_codes_issued_total",
		Help:      "Verification codes persisted.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Result turns an error into the "ok"/"error" label used by the counters,
// or into the given reason when err matches one of the named sentinels.
func Result(err error, reasons map[error]string) string {
	if err == nil {
		return "ok"
	}
	for target, label := range reasons {
		if errors.Is(err, target) {
			return label
		}
	}
	return "error"
}

// Status formats an HTTP status code as a label value.
func Status(code int) string { return strconv.Itoa(code) }
