package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	ierrors "github.com/iamporter/iamporter-go/client/internal/errors"
	"github.com/iamporter/iamporter-go/client/internal/types"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iamporter_client",
			Name:      "requests_total",
			Help:      "SDK operations by outcome (ok, empty, validation, authentication, business, transport).",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "iamporter_client",
			Name:      "request_duration_seconds",
			Help:      "Wall time of SDK operations including token refresh and retries.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// observe records the outcome of one operation and passes its results through.
func observe[T any](op types.Operation, start time.Time, res *types.Result[T], err error) (*types.Result[T], error) {
	requestDuration.WithLabelValues(op.Name).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(op.Name, outcome(res.Found(), err)).Inc()
	return res, err
}

func outcome(found bool, err error) string {
	if err == nil {
		if found {
			return "ok"
		}
		return "empty"
	}
	if ie, ok := ierrors.As(err); ok {
		return ie.Kind.String()
	}
	return "error"
}
