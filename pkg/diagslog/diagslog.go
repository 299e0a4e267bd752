// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package diagslog is a hookkernel.Diagnostics sink that hookctl installs:
// it logs every diagnostic through log/slog, in the same attrs-from-context
// style the host application's own error logging helper uses. A kernel
// built without hookkernel.WithDiagnostics uses a silent no-op instead.
package diagslog

import (
	"log/slog"

	"github.com/dispatchkit/hookkernel/internal/diag"
)

// Sink logs diagnostics through a *slog.Logger at warn level.
type Sink struct {
	Logger *slog.Logger
}

// New builds a Sink. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{Logger: logger}
}

// Emit implements hookkernel.Diagnostics.
func (s *Sink) Emit(kind diag.Kind, message string, context map[string]any) {
	attrs := make([]any, 0, 2+len(context)*2)
	attrs = append(attrs, "kind", kind)
	for k, v := range context {
		attrs = append(attrs, k, v)
	}
	s.Logger.Warn(message, attrs...)
}
