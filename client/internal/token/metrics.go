package token

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var refreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "iamporter_client",
		Subsystem: "token",
		Name:      "refreshes_total",
		Help:      "Access token fetches, by result.",
	},
	[]string{"result"},
)
