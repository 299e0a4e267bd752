// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package metrics provides Prometheus metrics for the hook dispatch
// kernel, adapted from the host application's own observability server
// pattern to the dispatch domain.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements dispatch.Recorder with Prometheus counters and
// histograms registered against a caller-supplied registerer.
type Metrics struct {
	DispatchTotal    *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec
}

// New creates and registers the kernel's Prometheus metrics.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hookkernel_dispatch_total",
				Help: "Total number of hook dispatches by hook name and outcome.",
			},
			[]string{"hook", "outcome"},
		),
		DispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hookkernel_dispatch_duration_seconds",
				Help:    "Dispatch latency by hook name and outcome.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"hook", "outcome"},
		),
	}

	reg.MustRegister(m.DispatchTotal, m.DispatchDuration)
	return m
}

// ObserveDispatch implements dispatch.Recorder.
func (m *Metrics) ObserveDispatch(hookName, outcome string, duration time.Duration) {
	m.DispatchTotal.WithLabelValues(hookName, outcome).Inc()
	m.DispatchDuration.WithLabelValues(hookName, outcome).Observe(duration.Seconds())
}
