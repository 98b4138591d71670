package cabsl

import "log"

// OptionDispatcher resolves option names to their registered descriptors
// and invokes them against a given behavior instance.
type OptionDispatcher struct {
	registry *OptionRegistry
	logger   *log.Logger
}

// NewOptionDispatcher returns a dispatcher backed by registry.
func NewOptionDispatcher(registry *OptionRegistry) *OptionDispatcher {
	return &OptionDispatcher{registry: registry}
}

// WithLogging enables entry/exit logging on the dispatcher: off by default,
// a single functional call turns it on for debugging a misbehaving option
// tree.
func (d *OptionDispatcher) WithLogging(logger *log.Logger) *OptionDispatcher {
	d.logger = logger
	return d
}

// Invoke resolves name in the registry and runs its body against behavior,
// returning false without side effects if name is unknown. Only
// argument-less options — the common case driven by name from Execute or
// SelectOption — can be invoked this way; options that take arguments are
// called directly as Go functions from within an action block instead, via
// BeginOption.
func (d *OptionDispatcher) Invoke(behavior Behavior, engine *Engine, name string, fromSelect bool) bool {
	desc, ok := d.registry.lookup(name)
	if !ok {
		return false
	}
	ctx := behavior.OptionContext(name)

	if d.logger != nil {
		d.logger.Printf("cabsl: enter %q (select=%v)", name, fromSelect)
	}

	if len(desc.States) == 0 {
		ctx.currentStateKind = StateNormal
		if desc.Body != nil {
			desc.Body(newStatelessScope(name, ctx, engine))
		}
		if d.logger != nil {
			d.logger.Printf("cabsl: exit %q (stateless)", name)
		}
		return true
	}

	scope := newExecutionScope(name, ctx, engine, fromSelect, desc.States)
	defer scope.Close()
	if desc.Body != nil {
		desc.Body(scope)
	}

	done := ctx.currentStateKind != StateInitial
	if d.logger != nil {
		d.logger.Printf("cabsl: exit %q state=%s kind=%s", name, ctx.currentStateName, ctx.currentStateKind)
	}
	return done
}

// BeginOption resolves name in the registry and constructs its
// ExecutionScope without invoking any registered Body. It is the exported
// counterpart to Invoke for options that take arguments: the registry still
// owns the option's declared state table (and validates it at Register
// time), but the host calls its parameterized Go function directly,
// passing it the returned scope alongside whatever other arguments it
// needs, and is responsible for releasing the scope itself — normally with
// a deferred Close() right after a successful lookup:
//
//	scope, ok := dispatcher.BeginOption(behavior, engine, "kick")
//	if !ok {
//		return false
//	}
//	defer scope.Close()
//	kickBody(scope, target)
//
// The returned bool reports whether name was found in the registry; a
// false result yields a nil scope that must not be used. Re-entry
// detection, the transition latch, activation-graph emission, and
// parent/child signaling all come from the returned scope exactly as they
// would from one Invoke constructs internally.
func (d *OptionDispatcher) BeginOption(behavior Behavior, engine *Engine, name string) (*ExecutionScope, bool) {
	desc, ok := d.registry.lookup(name)
	if !ok {
		return nil, false
	}
	ctx := behavior.OptionContext(name)

	if d.logger != nil {
		d.logger.Printf("cabsl: enter %q (args)", name)
	}

	if len(desc.States) == 0 {
		ctx.currentStateKind = StateNormal
		return newStatelessScope(name, ctx, engine), true
	}
	return newExecutionScope(name, ctx, engine, false, desc.States), true
}

// SelectOne implements select_option: it invokes each name in order, as a
// probe, until one reports having left its initial state, and returns true
// immediately. Options that stay in their initial state are considered to
// have declined and are absent from the activation graph.
func (d *OptionDispatcher) SelectOne(behavior Behavior, engine *Engine, names []string) bool {
	for _, name := range names {
		if d.Invoke(behavior, engine, name, true) {
			return true
		}
	}
	return false
}
