// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatchkit/hookkernel/internal/metrics"
)

func TestObserveDispatch_IncrementsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveDispatch("onGreet", "ok", 15*time.Millisecond)
	m.ObserveDispatch("onGreet", "ok", 5*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, fam := range families {
		if fam.GetName() != "hookkernel_dispatch_total" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), total)
}

func TestObserveDispatch_LabelsByHookAndOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveDispatch("onGreet", "ok", time.Millisecond)
	m.ObserveDispatch("onGreet", "error", time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	labels := map[string]float64{}
	for _, fam := range families {
		if fam.GetName() != "hookkernel_dispatch_total" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			labels[labelValue(metric, "outcome")] = metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(1), labels["ok"])
	assert.Equal(t, float64(1), labels["error"])
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
