package cabsl

// Vars returns the per-option, per-behavior state-variable block owned by
// ctx, allocating and initializing it from defaults on first use. Unlike
// Defs, the returned value is reset to a fresh defaults() result whenever
// ExecutionScope construction detects a cold re-entry into the option's
// initial state: it retains its values across cycles in which the option
// remains continuously active, but not across a gap.
//
// The reset hook is installed by the first Vars call on ctx and stays in
// place afterwards; before that first call there is nothing to reset.
// Typically Vars is the first line of the option body.
func Vars[T any](ctx *OptionContext, defaults func() T) *T {
	box := ctx.varsBox()
	if box.val == nil {
		v := defaults()
		box.val = &v
	}
	box.reset = func() {
		v := defaults()
		box.val = &v
	}
	return box.val.(*T)
}
