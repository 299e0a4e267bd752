// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package hookkernel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/dispatchkit/hookkernel/internal/diag"
	"github.com/dispatchkit/hookkernel/internal/dispatch"
	"github.com/dispatchkit/hookkernel/internal/registry"
	"github.com/dispatchkit/hookkernel/internal/scopelang"
)

var (
	processMu  sync.Mutex
	processMap = map[string]*Kernel{}
	anonMinted int
)

// Kernel is a process-wide identity bound to a project name. Get
// returns the same Kernel for a previously seen name; calling it with an
// empty name always mints a fresh one (project-0, project-1, …) rather
// than reusing whatever the last anonymous caller got.
type Kernel struct {
	Name        string
	registry    *registry.Registry
	specs       *dispatch.SpecTable
	dispatcher  *dispatch.Dispatcher
	diagnostics diag.Sink
}

// Option configures a Kernel at construction time, via Get.
type Option func(*Kernel)

// WithDiagnostics installs the sink the kernel reports non-fatal
// conditions through. The default is a silent no-op.
func WithDiagnostics(d Diagnostics) Option {
	return func(k *Kernel) {
		if d == nil {
			d = diag.Noop{}
		}
		k.diagnostics = d
		k.dispatcher.Diagnostics = d
	}
}

// WithRecorder installs the telemetry recorder dispatch reports
// outcomes/latency to (see package internal/metrics for the Prometheus
// implementation). The default records nothing.
func WithRecorder(r dispatch.Recorder) Option {
	return func(k *Kernel) {
		k.dispatcher.Recorder = r
	}
}

// WithTracer installs the OpenTelemetry tracer dispatch spans are recorded
// against. The default uses the global tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(k *Kernel) {
		k.dispatcher.Tracer = t
	}
}

// Get returns the kernel bound to name, constructing it on first use. An
// empty name mints a fresh project-N identity every call.
func Get(name string, opts ...Option) *Kernel {
	processMu.Lock()
	defer processMu.Unlock()

	if name == "" {
		name = fmt.Sprintf("project-%d", anonMinted)
		anonMinted++
	} else if k, ok := processMap[name]; ok {
		return k
	}

	k := newKernel(name)
	for _, opt := range opts {
		opt(k)
	}
	processMap[name] = k
	return k
}

func newKernel(name string) *Kernel {
	reg := registry.New()
	specs := dispatch.NewSpecTable()
	k := &Kernel{
		Name:        name,
		registry:    reg,
		specs:       specs,
		diagnostics: diag.Noop{},
	}
	k.dispatcher = dispatch.New(reg, specs, k.diagnostics, nil, nil)
	return k
}

// RegisterSpec registers a HookSpec exactly once.
func (k *Kernel) RegisterSpec(spec Spec) error {
	return k.specs.Register(spec)
}

// Register resolves, auto-instantiates, and inserts a batch of plugin
// objects, all sharing one batch index. Objects
// implementing ImplProvider have their declared impls attached.
func (k *Kernel) Register(objects ...any) error {
	reqs := make([]registry.RegisterRequest, 0, len(objects))
	resolved := make([]any, 0, len(objects))

	for _, obj := range objects {
		inst := registry.Instantiate(obj)
		name, err := registry.ResolveName("", inst)
		if err != nil {
			return err
		}
		priority, hasPriority := registry.ResolvePriority(inst)
		reqs = append(reqs, registry.RegisterRequest{
			Name:        name,
			Version:     registry.ResolveVersion(inst),
			Object:      inst,
			HasPriority: hasPriority,
			Priority:    priority,
		})
		resolved = append(resolved, inst)
	}

	results, err := k.registry.Register(reqs)
	if err != nil {
		var dup *registry.DuplicateNameError
		if errors.As(err, &dup) {
			return ErrDuplicatePluginName(dup.Name)
		}
		return err
	}

	for i, res := range results {
		if !res.Fresh {
			continue
		}
		if provider, ok := resolved[i].(ImplProvider); ok {
			for _, impl := range provider.Impls() {
				if err := k.attachImpl(res.Name, impl); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// attachImpl binds impl to pluginName, checking it against the impl's hook
// spec first when that spec is already registered. An impl attached before
// its spec exists is checked later, at dispatch time, in
// Dispatcher.dispatch.
func (k *Kernel) attachImpl(pluginName string, impl Impl) error {
	if spec, ok := k.specs.Get(impl.HookName); ok {
		if !impl.Signature.Equal(spec.Signature) {
			return ErrSignatureMismatch(impl.HookName, pluginName, spec.Signature.Erased(), impl.Signature.Erased())
		}
	}
	k.registry.AttachImpl(pluginName, impl)
	return nil
}

// RegisterFrom pulls (name, object) pairs from a PluginSource, with the
// discovered name overriding whatever the object would otherwise resolve
// to.
func (k *Kernel) RegisterFrom(ctx context.Context, source PluginSource, group string) error {
	if group == "" {
		group = k.Name
	}
	discovered, err := source.Discover(ctx, group)
	if err != nil {
		return err
	}

	reqs := make([]registry.RegisterRequest, 0, len(discovered))
	resolved := make([]any, 0, len(discovered))

	for _, d := range discovered {
		inst := registry.Instantiate(d.Plugin)
		name, err := registry.ResolveName(d.Name, inst)
		if err != nil {
			return err
		}
		priority, hasPriority := registry.ResolvePriority(inst)
		reqs = append(reqs, registry.RegisterRequest{
			Name:        name,
			Version:     registry.ResolveVersion(inst),
			Object:      inst,
			HasPriority: hasPriority,
			Priority:    priority,
		})
		resolved = append(resolved, inst)
	}

	results, err := k.registry.Register(reqs)
	if err != nil {
		var dup *registry.DuplicateNameError
		if errors.As(err, &dup) {
			return ErrDuplicatePluginName(dup.Name)
		}
		return err
	}

	for i, res := range results {
		if !res.Fresh {
			continue
		}
		if provider, ok := resolved[i].(ImplProvider); ok {
			for _, impl := range provider.Impls() {
				if err := k.attachImpl(res.Name, impl); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Enable enables the named plugins.
func (k *Kernel) Enable(names ...string) error {
	for _, n := range names {
		if !k.registry.SetEnabled(n, true) {
			return ErrNoSuchPlugin(n)
		}
	}
	return nil
}

// Disable disables the named plugins.
func (k *Kernel) Disable(names ...string) error {
	for _, n := range names {
		if !k.registry.SetEnabled(n, false) {
			return ErrNoSuchPlugin(n)
		}
	}
	return nil
}

// GetPlugin returns the registered object for name.
func (k *Kernel) GetPlugin(name string) (any, error) {
	p, ok := k.registry.Get(name)
	if !ok {
		return nil, ErrNoSuchPlugin(name)
	}
	return p.Object, nil
}

// ListAll returns every registered plugin object, in canonical insertion
// order.
func (k *Kernel) ListAll() []any {
	all := k.registry.ListAll()
	out := make([]any, len(all))
	for i, p := range all {
		out[i] = p.Object
	}
	return out
}

// ListEnabled returns every enabled plugin object, in canonical insertion
// order.
func (k *Kernel) ListEnabled() []any {
	all := k.registry.ListAll()
	out := make([]any, 0, len(all))
	for _, p := range all {
		if p.Enabled {
			out = append(out, p.Object)
		}
	}
	return out
}

// Scoped mutates the enabled set for the duration of fn and restores the
// prior enabled set on every exit path, including a panic inside fn or a
// failure applying spec itself. spec is
// either nil (no change), a sequence of bare plugin names ("only these
// enabled"), or a sequence of +name/-name deltas; mixing the two forms is
// a ScopeSyntax error.
func (k *Kernel) Scoped(spec []string, fn func() error) error {
	if spec == nil {
		return k.registry.Scoped(nil, fn)
	}

	parsed, err := scopelang.Parse(spec)
	if err != nil {
		return err
	}

	rs := &registry.ScopeSpec{Delta: parsed.IsDelta()}
	if rs.Delta {
		rs.Adds, rs.Removes = parsed.Adds(), parsed.Removes()
	} else {
		rs.Only = parsed.OnlyNames()
	}

	err = k.registry.Scoped(rs, fn)
	var notFound *registry.NoSuchPluginError
	if errors.As(err, &notFound) {
		return ErrNoSuchPlugin(notFound.Name)
	}
	return err
}

// Dispatch resolves hookName's spec, runs its eligible impls in canonical
// order, and returns the strategy's reduced value.
func (k *Kernel) Dispatch(ctx context.Context, hookName string, args any, opts ...CallOption) (any, error) {
	return k.dispatcher.Dispatch(ctx, hookName, args, opts...)
}
