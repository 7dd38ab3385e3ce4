/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package pull

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run metrics. The process is one-shot, so these are pushed nowhere by
// default; they exist so embedders that keep the process resident can
// expose the default registry.
var (
	pullDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lumen",
		Name:      "pull_duration_seconds",
		Help:      "Duration of device pull operations.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"operation"})

	pullsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lumen",
		Name:      "pulls_total",
		Help:      "Count of pull operations by outcome.",
	}, []string{"operation", "status"})

	datapointsEmitted = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "lumen",
		Name:      "datapoints_emitted",
		Help:      "Datapoints or instances emitted by the last pull.",
	}, []string{"operation"})
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

func recordRun(operation string, seconds float64, emitted int, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	pullDuration.WithLabelValues(operation).Observe(seconds)
	pullsTotal.WithLabelValues(operation, status).Inc()
	datapointsEmitted.WithLabelValues(operation).Set(float64(emitted))
}
