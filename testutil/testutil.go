// Package testutil provides shared fixtures for exercising a cabsl engine
// in tests: a cycle driver that advances an Engine through repeated
// begin_frame/execute/end_frame brackets.
package testutil

import "github.com/cabsl-go/cabsl"

// Driver repeatedly runs one root option through an Engine, cycle by
// cycle, returning what each run reported.
type Driver struct {
	Engine *cabsl.Engine
	Root   string
	cycle  uint32
}

// NewDriver returns a Driver for root, starting at cycle 1 (cycle 0 is
// reserved as the "nothing has run yet" sentinel distinct from noCycle).
func NewDriver(engine *cabsl.Engine, root string) *Driver {
	return &Driver{Engine: engine, Root: root, cycle: 0}
}

// Step advances one cycle: begin_frame, execute the root option once,
// end_frame. It returns what Execute returned (true if the root option is
// not in its initial state after this cycle) and any BeginFrame/EndFrame
// error.
func (d *Driver) Step() (bool, error) {
	d.cycle++
	if err := d.Engine.BeginFrame(d.cycle); err != nil {
		return false, err
	}
	done := d.Engine.Execute(d.Root)
	if err := d.Engine.EndFrame(); err != nil {
		return done, err
	}
	return done, nil
}

// Run calls Step n times, stopping early and returning the 1-indexed step
// of this call on which Execute first returned true, or 0 if it never did.
// The step equals the cycle stamp only when Run is the Driver's first use.
func (d *Driver) Run(n int) (int, error) {
	for i := 1; i <= n; i++ {
		done, err := d.Step()
		if err != nil {
			return 0, err
		}
		if done {
			return i, nil
		}
	}
	return 0, nil
}

// Cycle returns the most recent cycle stamp passed to BeginFrame.
func (d *Driver) Cycle() uint32 { return d.cycle }

// RecordingBody wraps a cabsl.OptionBody, counting how many times it ran;
// useful for asserting an option was or was not invoked in a given cycle.
type RecordingBody struct {
	Calls int
	body  cabsl.OptionBody
}

// NewRecordingBody wraps body for call counting.
func NewRecordingBody(body cabsl.OptionBody) *RecordingBody {
	return &RecordingBody{body: body}
}

// Body returns the wrapped OptionBody to register with an OptionRegistry.
func (r *RecordingBody) Body() cabsl.OptionBody {
	return func(s *cabsl.ExecutionScope) {
		r.Calls++
		if r.body != nil {
			r.body(s)
		}
	}
}
