package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var retriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "iamporter_client",
		Name:      "request_retries_total",
		Help:      "Requests re-sent after a recoverable transport error.",
	},
	[]string{"operation"},
)
