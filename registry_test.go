package cabsl_test

import (
	"testing"

	. "github.com/cabsl-go/cabsl"
)

func TestRegistryHasNoneSentinel(t *testing.T) {
	registry := NewOptionRegistry()
	behavior := NewContextTable()
	engine := NewEngine(behavior, registry)

	if err := engine.BeginFrame(1); err != nil {
		t.Fatal(err)
	}
	if !engine.Execute("none") {
		t.Fatal(`Execute("none") = false, want true`)
	}
	if err := engine.EndFrame(); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterRejectsMissingInitialState(t *testing.T) {
	registry := NewOptionRegistry()
	desc := &OptionDescriptor{
		Name:   "broken",
		States: []StateDecl{{ID: 0, Name: "s0", Kind: StateNormal}},
	}
	if err := registry.Register(desc); err == nil {
		t.Fatal("expected an error for a state table with no initial state")
	}
}

func TestRegisterRejectsMultipleInitialStates(t *testing.T) {
	registry := NewOptionRegistry()
	desc := &OptionDescriptor{
		Name: "broken",
		States: []StateDecl{
			{ID: 0, Name: "s0", Kind: StateInitial},
			{ID: 1, Name: "s1", Kind: StateInitial},
		},
	}
	if err := registry.Register(desc); err == nil {
		t.Fatal("expected an error for two initial states")
	}
}

func TestRegisterRejectsDuplicateIDs(t *testing.T) {
	registry := NewOptionRegistry()
	desc := &OptionDescriptor{
		Name: "broken",
		States: []StateDecl{
			{ID: 0, Name: "s0", Kind: StateInitial},
			{ID: 0, Name: "s1", Kind: StateNormal},
		},
	}
	if err := registry.Register(desc); err == nil {
		t.Fatal("expected an error for a duplicate state id")
	}
}

func TestRegisterRejectsNonInitialUsingReservedID(t *testing.T) {
	registry := NewOptionRegistry()
	desc := &OptionDescriptor{
		Name: "broken",
		States: []StateDecl{
			{ID: 1, Name: "s0", Kind: StateInitial},
			{ID: 0, Name: "s1", Kind: StateNormal},
		},
	}
	if err := registry.Register(desc); err == nil {
		t.Fatal("expected an error: initial state must use id 0")
	}
}

func TestRegisterIsIdempotentForTheSameDescriptor(t *testing.T) {
	registry := NewOptionRegistry()
	desc := &OptionDescriptor{
		Name:   "ok",
		States: []StateDecl{{ID: 0, Name: "s0", Kind: StateInitial}},
	}
	if err := registry.Register(desc); err != nil {
		t.Fatal(err)
	}
	if err := registry.Register(desc); err != nil {
		t.Fatalf("re-registering the same descriptor should be a no-op, got: %v", err)
	}
}

func TestRegisterRejectsConflictingDescriptorForSameName(t *testing.T) {
	registry := NewOptionRegistry()
	first := &OptionDescriptor{
		Name:   "ok",
		States: []StateDecl{{ID: 0, Name: "s0", Kind: StateInitial}},
	}
	second := &OptionDescriptor{
		Name:   "ok",
		States: []StateDecl{{ID: 0, Name: "s0-different", Kind: StateInitial}},
	}
	if err := registry.Register(first); err != nil {
		t.Fatal(err)
	}
	if err := registry.Register(second); err == nil {
		t.Fatal("expected an error when registering a conflicting descriptor under a used name")
	}
}

func TestZeroStateOptionSkipsValidation(t *testing.T) {
	registry := NewOptionRegistry()
	desc := &OptionDescriptor{Name: "plain"}
	if err := registry.Register(desc); err != nil {
		t.Fatalf("zero-state registration should succeed, got: %v", err)
	}
}

func TestRegisterInitializerRunsOnceOnFirstBeginFrame(t *testing.T) {
	registry := NewOptionRegistry()
	calls := 0
	registry.RegisterInitializer(func() error {
		calls++
		return nil
	})

	behavior := NewContextTable()
	engine := NewEngine(behavior, registry)

	for cycle := uint32(1); cycle <= 3; cycle++ {
		if err := engine.BeginFrame(cycle); err != nil {
			t.Fatal(err)
		}
		if err := engine.EndFrame(); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Fatalf("initializer ran %d times, want 1", calls)
	}
}

func TestFailingInitializerFailsBeginFrame(t *testing.T) {
	registry := NewOptionRegistry()
	wantErr := errFixture("definitions file malformed")
	registry.RegisterInitializer(func() error { return wantErr })

	behavior := NewContextTable()
	engine := NewEngine(behavior, registry)

	if err := engine.BeginFrame(1); err == nil {
		t.Fatal("expected BeginFrame to propagate the initializer error")
	}
}

type errFixture string

func (e errFixture) Error() string { return string(e) }
