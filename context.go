package cabsl

import "sync"

// OptionContext holds the state of one option that must survive across
// cycles: the currently selected state, the per-cycle latches that enforce
// the single-transition invariant, and the lazily-allocated storage for
// the option's file-loaded constants and persistent state variables.
//
// An OptionContext belongs to exactly one option within exactly one
// behavior instance; it is never shared between options or between
// concurrently-driven behaviors. Mutation happens only through
// ExecutionScope.
type OptionContext struct {
	currentStateID   StateID
	currentStateName string
	currentStateKind StateKind

	lastSubStateKind StateKind

	lastActiveCycle   Cycle
	lastSelectedCycle Cycle
	optionStartCycle  Cycle
	stateStartCycle   Cycle

	addedToGraph        bool
	transitionFired     bool
	hasCommonTransition bool

	defs *defsBox
	vars *varsBox
}

// NewOptionContext returns a freshly initialized OptionContext, as it would
// look before ever having been entered: current state is the initial
// state, and the "never run" sentinels make the first ExecutionScope
// construction take the full reset path.
func NewOptionContext() *OptionContext {
	return &OptionContext{
		currentStateID:    0,
		currentStateKind:  StateInitial,
		lastSubStateKind:  StateNormal,
		lastActiveCycle:   noCycle,
		lastSelectedCycle: noCycle,
		optionStartCycle:  0,
		stateStartCycle:   0,
	}
}

// CurrentStateID returns the currently selected state's ID.
func (c *OptionContext) CurrentStateID() StateID { return c.currentStateID }

// CurrentStateName returns the currently selected state's declared name.
func (c *OptionContext) CurrentStateName() string { return c.currentStateName }

// CurrentStateKind returns the currently selected state's kind.
func (c *OptionContext) CurrentStateKind() StateKind { return c.currentStateKind }

type defsBox struct {
	once sync.Once
	val  any
	err  error
}

type varsBox struct {
	val   any
	reset func()
}

// resetVarsOnReentry restores the option's state variables to their
// declared defaults. Called by ExecutionScope construction exactly when an
// option re-enters its initial state at option_time == 0 (i.e. it was not
// continuously active), never on a mid-run transition back to the initial
// state.
func (c *OptionContext) resetVarsOnReentry() {
	if c.vars != nil && c.vars.reset != nil {
		c.vars.reset()
	}
}

// defsBox lazily allocates this context's definitions box. Safe only under
// the same single-writer discipline as the rest of OptionContext: one
// behavior instance driven by one goroutine at a time.
func (c *OptionContext) defsBox() *defsBox {
	if c.defs == nil {
		c.defs = &defsBox{}
	}
	return c.defs
}

// varsBox lazily allocates this context's state-variable box.
func (c *OptionContext) varsBox() *varsBox {
	if c.vars == nil {
		c.vars = &varsBox{}
	}
	return c.vars
}

// Behavior resolves an option's persistent OptionContext by name. A host
// program implements Behavior (or embeds ContextTable, which implements it
// for free) to give the dispatcher a handle to per-option state without
// requiring Go's nonexistent field-offset primitives.
type Behavior interface {
	OptionContext(name string) *OptionContext
}

// ContextTable is a ready-to-embed Behavior implementation backed by a
// name-keyed map, lazily allocating each OptionContext on first access.
type ContextTable struct {
	mu       sync.Mutex
	contexts map[string]*OptionContext
}

// NewContextTable returns an empty ContextTable.
func NewContextTable() *ContextTable {
	return &ContextTable{contexts: make(map[string]*OptionContext)}
}

// OptionContext implements Behavior.
func (t *ContextTable) OptionContext(name string) *OptionContext {
	t.mu.Lock()
	defer t.mu.Unlock()
	ctx, ok := t.contexts[name]
	if !ok {
		ctx = NewOptionContext()
		t.contexts[name] = ctx
	}
	return ctx
}
