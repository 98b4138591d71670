// Package cabsl implements the CABSL option execution engine: a runtime for
// describing an agent's decision-making as a hierarchy of hierarchical
// finite state machines ("options"), executed once per control cycle.
//
// The engine is organized around five collaborating pieces:
//
//   - OptionContext holds per-option state that persists across cycles.
//   - OptionRegistry is the process-wide catalogue of known options.
//   - ExecutionScope is a scoped value representing one in-flight execution
//     of one option during one cycle; it implements re-entry detection,
//     activation-graph emission, and parent/child signaling.
//   - OptionDispatcher resolves option names to bodies and invokes them.
//   - Engine is the outer per-cycle loop: BeginFrame, Execute, EndFrame.
//
// An option body is an ordinary Go function. Because Go has no
// preprocessor, declarations that the original macro-based design
// generates at compile time instead happen through explicit registration
// (OptionRegistry.Register validates the declared state table) and through
// small helper methods on ExecutionScope that a body calls by hand:
//
//	var kickStates = []cabsl.StateDecl{
//		{ID: 0, Name: "start", Kind: cabsl.StateInitial},
//		{ID: 1, Name: "aim", Kind: cabsl.StateNormal},
//		{ID: 2, Name: "done", Kind: cabsl.StateTarget},
//	}
//
//	func kickBody(s *cabsl.ExecutionScope) {
//		switch s.CurrentState() {
//		case 0:
//			if s.OptionTime() > 0 {
//				s.UpdateState(1, cabsl.StateNormal)
//			}
//		case 1:
//			s.EmitGraphNode()
//			if aimed() {
//				s.UpdateState(2, cabsl.StateTarget)
//			}
//		}
//	}
//
// Options that need arguments are plain Go functions with extra
// parameters; the caller obtains their scope through
// OptionDispatcher.BeginOption instead of going through Execute or
// SelectOption by name:
//
//	func kickTowards(s *cabsl.ExecutionScope, target Point) {
//		// same switch over s.CurrentState() as above, using target
//	}
//
//	scope, ok := s.Engine().Dispatcher().BeginOption(s.Engine().Behavior(), s.Engine(), "kick")
//	if ok {
//		defer scope.Close()
//		kickTowards(scope, ballPosition())
//	}
//
// See DESIGN.md in the module root for how each part of this package is
// put together and why.
package cabsl
