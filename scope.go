package cabsl

// ExecutionScope represents one in-flight execution of one option during
// one cycle. It is constructed when an option body is entered and must be
// released (via Close, normally deferred) when the body returns; that
// lexically scoped lifetime is what implements re-entry detection, the
// transition latch, and parent/child state-kind signaling.
type ExecutionScope struct {
	name       string
	ctx        *OptionContext
	engine     *Engine
	fromSelect bool
	states     []StateDecl
	byID       map[StateID]StateDecl
	args       []string
	stateless  bool
	closed     bool

	// parentCtx is the context of whichever option's ExecutionScope was on
	// top of the engine's stack when this one was constructed, i.e. the
	// caller, letting Close() relay this option's terminal state kind
	// directly into the parent's lastSubStateKind without a shared,
	// order-dependent slot on Engine.
	parentCtx *OptionContext
}

// newExecutionScope implements an option's re-entry and construction
// contract: reset-to-initial on a cold re-entry, latch-clearing for the
// new cycle, and stack bookkeeping for parent/child signaling.
func newExecutionScope(name string, ctx *OptionContext, engine *Engine, fromSelect bool, states []StateDecl) *ExecutionScope {
	now := engine.currentCycle
	prev := engine.previousCycle

	// ctx.lastActiveCycle == noCycle means this context has never been
	// entered; treat that as "not continuously active" unconditionally so
	// the coincidental noCycle == noCycle match against a just-constructed
	// engine's own previousCycle sentinel can never suppress the very first
	// reset.
	if ctx.lastActiveCycle == noCycle || (ctx.lastActiveCycle != prev && ctx.lastActiveCycle != now) {
		ctx.optionStartCycle = now
		ctx.stateStartCycle = now
		ctx.currentStateID = 0
		ctx.currentStateKind = StateInitial
		ctx.currentStateName = initialStateName(states)
		ctx.resetVarsOnReentry()
	}
	if ctx.lastSelectedCycle == noCycle || (ctx.lastSelectedCycle != prev && ctx.lastSelectedCycle != now) {
		ctx.lastSubStateKind = StateNormal
	}
	ctx.addedToGraph = false
	ctx.transitionFired = false
	ctx.hasCommonTransition = false

	var parent *OptionContext
	if n := len(engine.stack); n > 0 {
		parent = engine.stack[n-1]
	}
	engine.stack = append(engine.stack, ctx)
	engine.depth++

	byID := make(map[StateID]StateDecl, len(states))
	for _, d := range states {
		byID[d.ID] = d
	}

	return &ExecutionScope{
		name:       name,
		ctx:        ctx,
		engine:     engine,
		fromSelect: fromSelect,
		states:     states,
		byID:       byID,
		parentCtx:  parent,
	}
}

// newStatelessScope backs the "zero declared states" boundary case: the
// option behaves as a plain function, never leaves StateNormal, and never
// appears in the activation graph.
func newStatelessScope(name string, ctx *OptionContext, engine *Engine) *ExecutionScope {
	return &ExecutionScope{name: name, ctx: ctx, engine: engine, stateless: true}
}

func initialStateName(states []StateDecl) string {
	for _, d := range states {
		if d.Kind == StateInitial {
			return d.Name
		}
	}
	return ""
}

// Close releases an ExecutionScope: it records the activation-graph node
// (unless this was a declined select_option probe), updates re-entry
// bookkeeping, pops the call stack, and relays the terminal state kind to
// the parent. It is idempotent and safe to call via defer.
func (s *ExecutionScope) Close() {
	if s.closed || s.stateless {
		s.closed = true
		return
	}
	s.closed = true

	now := s.engine.currentCycle
	probeStayedInitial := s.fromSelect && s.ctx.currentStateKind == StateInitial
	if !probeStayedInitial {
		s.EmitGraphNode()
		s.ctx.lastActiveCycle = now
	}
	s.ctx.lastSelectedCycle = now

	// pop this scope's context off the engine's call stack
	if n := len(s.engine.stack); n > 0 {
		s.engine.stack = s.engine.stack[:n-1]
	}
	s.engine.depth--

	if s.parentCtx != nil {
		s.parentCtx.lastSubStateKind = s.ctx.currentStateKind
	}
}

// Context returns the OptionContext backing this scope, for use with the
// generic Defs and Vars accessors.
func (s *ExecutionScope) Context() *OptionContext { return s.ctx }

// Engine returns the Engine driving this scope, for action blocks that
// need to reach OptionDispatcher.BeginOption to invoke a parameterized
// sub-option by hand.
func (s *ExecutionScope) Engine() *Engine { return s.engine }

// CurrentState returns the option's currently selected state ID.
func (s *ExecutionScope) CurrentState() StateID { return s.ctx.CurrentStateID() }

// CurrentStateKind returns the option's currently selected state kind.
func (s *ExecutionScope) CurrentStateKind() StateKind { return s.ctx.CurrentStateKind() }

// OptionTime returns the number of cycles since this option's current
// activation began (current_cycle - option_start_cycle).
func (s *ExecutionScope) OptionTime() int64 {
	return int64(s.engine.currentCycle) - int64(s.ctx.optionStartCycle)
}

// StateTime returns the number of cycles since the currently selected
// state was entered (current_cycle - state_start_cycle).
func (s *ExecutionScope) StateTime() int64 {
	return int64(s.engine.currentCycle) - int64(s.ctx.stateStartCycle)
}

// ActionDone reports whether the last sub-option this option invoked ended
// its most recent run in a target state. This reflects the terminal kind
// observed when that sub-option's ExecutionScope last closed, which —
// because the call happens inside this option's own action block — is
// visible starting with the following cycle's transition evaluation.
func (s *ExecutionScope) ActionDone() bool { return s.ctx.lastSubStateKind == StateTarget }

// ActionAborted reports whether the last sub-option this option invoked
// ended its most recent run in an aborted state. See ActionDone.
func (s *ExecutionScope) ActionAborted() bool { return s.ctx.lastSubStateKind == StateAborted }

// BeginCommonTransition marks that this cycle's execution includes a common
// transition block, evaluated before any per-state transition. Option
// bodies that declare one must call this before evaluating it; per-state
// transitions then implement the "else branch" semantics explicitly with
// `if !s.TransitionFired() { ... }`.
func (s *ExecutionScope) BeginCommonTransition() { s.ctx.hasCommonTransition = true }

// HasCommonTransition reports whether BeginCommonTransition was called this
// cycle.
func (s *ExecutionScope) HasCommonTransition() bool { return s.ctx.hasCommonTransition }

// TransitionFired reports whether UpdateState has already been called this
// cycle. Per-state transition blocks use this to implement the "runs only
// if the common transition did not fire" else-branch semantics.
func (s *ExecutionScope) TransitionFired() bool { return s.ctx.transitionFired }

// UpdateState changes the option's current state. It is the only way an
// option body may change current_state_id; calling it more than once in a
// single cycle is a structural programmer error (a double transition) and
// panics, enforcing at most one transition per option per cycle.
// Self-transitions (new id == current id) still latch transition_fired but
// leave state_start_cycle untouched.
func (s *ExecutionScope) UpdateState(id StateID, kind StateKind) {
	if s.stateless {
		return
	}
	if s.ctx.transitionFired {
		transitionLatchPanic(s.name)
	}
	s.ctx.transitionFired = true
	if id == s.ctx.currentStateID {
		return
	}
	s.ctx.currentStateID = id
	s.ctx.currentStateKind = kind
	if decl, ok := s.byID[id]; ok {
		s.ctx.currentStateName = decl.Name
	}
	s.ctx.stateStartCycle = s.engine.currentCycle
}

// AddArgument appends a human-readable "name = value" rendering of value to
// this scope's pending activation-graph node, unless value's type is not
// textually representable, in which case it is silently skipped.
func (s *ExecutionScope) AddArgument(name string, value any) {
	if s.stateless {
		return
	}
	text, ok := renderArgument(value)
	if !ok {
		return
	}
	s.args = append(s.args, name+" = "+text)
}

// EmitGraphNode appends this option's activation-graph node if it has not
// already been added this cycle. Option bodies that call sub-options must
// call this as the first statement of their action block so the resulting
// graph is in pre-order; Close calls it again as an idempotent safety net
// for bodies that never do.
func (s *ExecutionScope) EmitGraphNode() {
	if s.stateless || s.ctx.addedToGraph {
		return
	}
	if s.engine.Graph == nil {
		return
	}
	s.engine.Graph.append(ActivationGraphNode{
		OptionName: s.name,
		Depth:      s.engine.depth,
		StateName:  s.ctx.currentStateName,
		OptionTime: s.OptionTime(),
		StateTime:  s.StateTime(),
		Arguments:  append([]string(nil), s.args...),
	})
	s.ctx.addedToGraph = true
}
