package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricPrefix = "lava_client_"

var submissionsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
	Name: metricPrefix + "submissions_in_flight",
	Help: "Number of submit or modify calls currently waiting on the daemon",
})

var submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: metricPrefix + "submissions_total",
	Help: "Submit and modify calls by outcome",
}, []string{"operation", "outcome"})
