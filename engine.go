package cabsl

import "sync/atomic"

// Engine is the behavior's outer loop surface. One Engine drives one
// Behavior instance through a sequence of cycles: BeginFrame, zero or more
// Execute calls, EndFrame.
type Engine struct {
	behavior   Behavior
	dispatcher *OptionDispatcher

	currentCycle  Cycle
	previousCycle Cycle
	depth         int
	stack         []*OptionContext

	// Graph is the activation graph for the current cycle, readable by the
	// host after any Execute call and before EndFrame. It is non-nil by
	// default; pass WithoutActivationGraph to disable emission entirely.
	Graph *ActivationGraph

	definitionsInitialized bool
	inFrame                int32
}

// EngineOption configures an Engine at construction time, the standard
// functional-options idiom.
type EngineOption func(*Engine)

// WithoutActivationGraph disables activation-graph recording entirely.
// EmitGraphNode becomes a no-op and Engine.Graph is nil.
func WithoutActivationGraph() EngineOption {
	return func(e *Engine) { e.Graph = nil }
}

// NewEngine returns an Engine that drives behavior using the options
// registered in registry.
func NewEngine(behavior Behavior, registry *OptionRegistry, opts ...EngineOption) *Engine {
	e := &Engine{
		behavior:      behavior,
		dispatcher:    NewOptionDispatcher(registry),
		currentCycle:  noCycle,
		previousCycle: noCycle,
		Graph:         NewActivationGraph(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dispatcher returns the engine's OptionDispatcher, for callers that need
// to invoke options directly (e.g. with arguments) rather than through
// Execute/SelectOption.
func (e *Engine) Dispatcher() *OptionDispatcher { return e.dispatcher }

// Behavior returns the behavior instance this engine drives.
func (e *Engine) Behavior() Behavior { return e.behavior }

// CurrentCycle returns the cycle stamp passed to the most recent BeginFrame.
func (e *Engine) CurrentCycle() uint32 { return uint32(e.currentCycle) }

// Depth returns the number of ExecutionScopes currently open, i.e. the
// current call depth within the option tree.
func (e *Engine) Depth() int { return e.depth }

// BeginFrame starts a new cycle. On its very first call it runs every
// initializer registered on the engine's registry, in registration order;
// a failing initializer's error is fatal and propagates straight out of
// BeginFrame.
//
// The host must guarantee cycle is strictly different from the previous
// frame's stamp; equal stamps are tolerated but will collapse
// OptionTime/StateTime progression for any option active across both
// calls.
func (e *Engine) BeginFrame(cycle uint32) error {
	if !atomic.CompareAndSwapInt32(&e.inFrame, 0, 1) {
		return ErrFrameInProgress
	}
	e.currentCycle = Cycle(cycle)
	if e.Graph != nil {
		e.Graph.clear()
	}
	if !e.definitionsInitialized {
		if err := e.dispatcher.registry.runInitializers(); err != nil {
			atomic.StoreInt32(&e.inFrame, 0)
			return err
		}
		e.definitionsInitialized = true
	}
	return nil
}

// Execute invokes the named root option. It may be called any number of
// times between BeginFrame and EndFrame to run several root options in one
// cycle; an unknown name, or a call outside any BeginFrame/EndFrame
// bracket, is a silent no-op returning false.
func (e *Engine) Execute(rootName string) bool {
	if atomic.LoadInt32(&e.inFrame) == 0 {
		return false
	}
	return e.dispatcher.Invoke(e.behavior, e, rootName, false)
}

// SelectOption implements select_option for use inside an action block: it
// probes names in order and returns true as soon as one leaves its initial
// state.
func (e *Engine) SelectOption(names []string) bool {
	return e.dispatcher.SelectOne(e.behavior, e, names)
}

// EndFrame closes the current cycle. It panics if any ExecutionScope is
// still open (a programmer error: an option body exited without releasing
// its scope).
func (e *Engine) EndFrame() error {
	defer atomic.StoreInt32(&e.inFrame, 0)
	if e.depth != 0 {
		depthImbalancePanic(e.depth)
	}
	e.previousCycle = e.currentCycle
	return nil
}
