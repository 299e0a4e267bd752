// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package dispatch implements C6 of the hook dispatch kernel: resolving a
// hook name to its spec and eligible impls, running them in canonical
// order, and folding the outcomes through the chosen strategy or user
// reducer.
package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dispatchkit/hookkernel/internal/diag"
	"github.com/dispatchkit/hookkernel/internal/hook"
	"github.com/dispatchkit/hookkernel/internal/kernelerr"
	"github.com/dispatchkit/hookkernel/internal/registry"
	"github.com/dispatchkit/hookkernel/internal/strategy"
)

// Options carries the per-call knobs a host can set on a Dispatch call: the
// receiver value to inject in a spec's erased first parameter, and the
// routing key consumed by SINGLE/TRY_SINGLE.
type Options struct {
	receiver    any
	hasReceiver bool
	target      string
	hasTarget   bool
}

// CallOption mutates Options. Built with WithReceiver / WithTarget.
type CallOption func(*Options)

// WithReceiver supplies the value injected into a spec's receiver slot.
// Ignored by specs with no receiver.
func WithReceiver(v any) CallOption {
	return func(o *Options) { o.receiver = v; o.hasReceiver = true }
}

// WithTarget supplies the routing key consumed by SINGLE/TRY_SINGLE.
// Ignored by every other strategy.
func WithTarget(pluginName string) CallOption {
	return func(o *Options) { o.target = pluginName; o.hasTarget = true }
}

// Dispatcher is C6.
type Dispatcher struct {
	Registry    *registry.Registry
	Specs       *SpecTable
	Diagnostics diag.Sink
	Recorder    Recorder
	Tracer      trace.Tracer
}

// New builds a Dispatcher. A nil diagnostics sink, recorder, or tracer is
// replaced with a no-op so callers never need a nil check.
func New(reg *registry.Registry, specs *SpecTable, diagnostics diag.Sink, recorder Recorder, tracer trace.Tracer) *Dispatcher {
	if diagnostics == nil {
		diagnostics = diag.Noop{}
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if tracer == nil {
		tracer = otel.Tracer("github.com/dispatchkit/hookkernel")
	}
	return &Dispatcher{Registry: reg, Specs: specs, Diagnostics: diagnostics, Recorder: recorder, Tracer: tracer}
}

// Dispatch runs hookName over its eligible, enabled impls in canonical
// order and returns the strategy's reduced value.
func (d *Dispatcher) Dispatch(ctx context.Context, hookName string, args any, opts ...CallOption) (any, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	callID := ulid.Make().String()
	start := time.Now()

	ctx, span := d.Tracer.Start(ctx, "hookkernel.dispatch",
		trace.WithAttributes(
			attribute.String("hook.name", hookName),
			attribute.String("hook.call_id", callID),
		),
	)
	defer span.End()

	value, outcome, err := d.dispatch(ctx, hookName, args, o)
	if d.Recorder != nil {
		d.Recorder.ObserveDispatch(hookName, outcome, time.Since(start))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	return value, err
}

func (d *Dispatcher) dispatch(ctx context.Context, hookName string, args any, o Options) (any, string, error) {
	spec, ok := d.Specs.Get(hookName)
	if !ok {
		return nil, "no_such_hook_spec", kernelerr.NoSuchHookSpec(hookName)
	}

	plugins := d.Registry.EligibleForHook(hookName)

	if len(plugins) == 0 && spec.Required {
		return nil, "hook_required", kernelerr.HookRequired(hookName)
	}

	calls := make([]strategy.Call, 0, len(plugins))
	for _, p := range plugins {
		p := p
		impl := p.Impls()[hookName]
		if !impl.Signature.Equal(spec.Signature) {
			return nil, "signature_mismatch", kernelerr.SignatureMismatch(
				hookName, p.Name, spec.Signature.Erased(), impl.Signature.Erased())
		}
		calls = append(calls, strategy.Call{
			PluginName: p.Name,
			Invoke: func() (any, error) {
				v, err := d.invokeImpl(ctx, spec, p.Name, impl, args, o)
				if err != nil {
					return nil, err
				}
				return v, nil
			},
		})
	}

	if spec.Result.IsCustom() {
		return d.reduceCustom(ctx, spec, calls)
	}

	res, err := strategy.Reduce(spec.Result.Strategy(), calls, o.hasTarget, o.target)
	if err != nil {
		if errors.Is(err, strategy.ErrUnavailable) {
			return nil, "result_unavailable", kernelerr.ResultUnavailable(hookName)
		}
		return nil, "impl_failure", err
	}

	if res.SingleWithoutTarget {
		d.Diagnostics.Emit(diag.KindSingleWithoutTarget,
			"SINGLE dispatch had no routing key, falling back to last eligible impl",
			map[string]any{"hook": hookName})
	}

	return res.Value, "ok", nil
}

// reduceCustom delivers the ordered, unexecuted call list to a
// user-supplied reducer.
func (d *Dispatcher) reduceCustom(ctx context.Context, spec hook.Spec, calls []strategy.Call) (any, string, error) {
	rcalls := make([]hook.ReducerCall, len(calls))
	for i, c := range calls {
		rcalls[i] = hook.ReducerCall{PluginName: c.PluginName, Invoke: c.Invoke}
	}

	if spec.Async {
		if spec.Result.AsyncReducer() == nil {
			return nil, "impl_failure", kernelerr.ResultUnavailable(spec.Name)
		}
		ch := spec.Result.AsyncReducer()(ctx, rcalls)
		v, err := await(ctx, ch)
		if err != nil {
			return nil, "impl_failure", err
		}
		return v, "ok", nil
	}

	if spec.Result.Reducer() == nil {
		return nil, "impl_failure", kernelerr.ResultUnavailable(spec.Name)
	}
	v, err := spec.Result.Reducer()(rcalls)
	if err != nil {
		return nil, "impl_failure", err
	}
	return v, "ok", nil
}

// invokeImpl runs one impl under the sync/async bridging rules of // and injects/erases the receiver per step 2.
func (d *Dispatcher) invokeImpl(ctx context.Context, spec hook.Spec, pluginName string, impl hook.Impl, args any, o Options) (any, error) {
	callArgs := args
	if spec.Signature.HasReceiver() {
		if o.hasReceiver {
			callArgs = receiverArgs{receiver: o.receiver, rest: args}
		} else {
			callArgs = receiverArgs{receiver: nil, rest: args}
		}
	}

	var value any
	var err error

	switch {
	case impl.Async:
		ch := impl.Async_(ctx, callArgs)
		value, err = await(ctx, ch)
	default:
		if spec.Async && spec.WarnSyncImplOnAsync && d.Specs.markWarned(spec.Name) {
			d.Diagnostics.Emit(diag.KindSyncImplOnAsyncSpec,
				"synchronous impl bound to an async hook spec",
				map[string]any{"hook": spec.Name, "plugin": pluginName})
		}
		value, err = impl.Sync(ctx, callArgs)
	}

	if err != nil {
		return nil, kernelerr.ImplFailure(pluginName, spec.Name, err)
	}
	return value, nil
}

// receiverArgs bundles the injected receiver with the rest of the call
// arguments.
type receiverArgs struct {
	receiver any
	rest     any
}

// Receiver returns the injected receiver value.
func (r receiverArgs) Receiver() any { return r.receiver }

// Args returns the remaining call arguments.
func (r receiverArgs) Args() any { return r.rest }

// await blocks on ch, honoring ctx cancellation.
func await(ctx context.Context, ch <-chan hook.AsyncResult) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Value, res.Err
	}
}
