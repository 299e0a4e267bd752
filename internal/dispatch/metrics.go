// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package dispatch

import "time"

// Recorder receives per-dispatch telemetry. The concrete implementation
// (package internal/metrics) wraps prometheus counters and histograms; a
// nil Recorder field on Dispatcher disables recording entirely.
type Recorder interface {
	ObserveDispatch(hookName, outcome string, duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveDispatch(string, string, time.Duration) {}
