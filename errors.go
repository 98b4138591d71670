package cabsl

import (
	"errors"
	"fmt"
)

// ErrFrameInProgress is returned by BeginFrame when a previous frame on
// this Engine was never closed with EndFrame: at most one frame may be in
// flight on a given Engine at a time.
var ErrFrameInProgress = errors.New("cabsl: begin_frame called while another frame is already in progress")

// transitionLatchPanic reports a double transition: UpdateState called more
// than once for the same option within a single cycle. This is a
// structural programmer error, surfaced as a panic rather than a returned
// error since Go has no separate debug/release assert mode.
func transitionLatchPanic(optionName string) {
	panic(fmt.Sprintf("cabsl: option %q: UpdateState called more than once in one cycle (double transition)", optionName))
}

// depthImbalancePanic reports EndFrame called while ExecutionScopes remain
// open, meaning some option body returned without releasing its scope, or
// Execute was re-entered incorrectly.
func depthImbalancePanic(depth int) {
	panic(fmt.Sprintf("cabsl: end_frame called with %d execution scope(s) still open", depth))
}
