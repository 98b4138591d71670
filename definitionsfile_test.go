package cabsl_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/cabsl-go/cabsl"
)

type sweepDefs struct {
	A int     `yaml:"a"`
	B float64 `yaml:"b"`
}

// TestDefinitionsLoadScenario backs the "definitions load" seed scenario:
// an option with file-loaded constants whose loader runs exactly once, on
// the option's first activation, and whose value is visible to the body from
// then on.
func TestDefinitionsLoadScenario(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Sweep.cfg"), []byte("a: 7\nb: 2.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := NewOptionRegistry()
	var observedA int
	var observedB float64
	desc := &OptionDescriptor{
		Name:   "Sweep",
		States: []StateDecl{{ID: 0, Name: "s0", Kind: StateInitial}},
		Body: func(s *ExecutionScope) {
			d, err := Defs(s.Context(), func() (sweepDefs, error) {
				return LoadDefsFile[sweepDefs](dir, "Sweep")
			})
			if err != nil {
				t.Fatal(err)
			}
			observedA, observedB = d.A, d.B
		},
	}
	if err := registry.Register(desc); err != nil {
		t.Fatal(err)
	}

	behavior := NewContextTable()
	engine := NewEngine(behavior, registry)

	for cycle := uint32(1); cycle <= 2; cycle++ {
		if err := engine.BeginFrame(cycle); err != nil {
			t.Fatal(err)
		}
		engine.Execute("Sweep")
		if err := engine.EndFrame(); err != nil {
			t.Fatal(err)
		}
	}

	if observedA != 7 || observedB != 2.5 {
		t.Fatalf("observed a=%d b=%v, want a=7 b=2.5", observedA, observedB)
	}
}

func TestDefinitionsLoadScenarioFailsOnMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Sweep.cfg"), []byte("a: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := NewOptionRegistry()
	desc := &OptionDescriptor{
		Name:   "Sweep",
		States: []StateDecl{{ID: 0, Name: "s0", Kind: StateInitial}},
		Body: func(s *ExecutionScope) {
			if _, err := Defs(s.Context(), func() (sweepDefs, error) {
				return LoadDefsFile[sweepDefs](dir, "Sweep")
			}); err != nil {
				panic(err)
			}
		},
	}
	if err := registry.Register(desc); err != nil {
		t.Fatal(err)
	}

	behavior := NewContextTable()
	engine := NewEngine(behavior, registry)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a malformed definitions file to surface as an error/panic")
		}
	}()
	if err := engine.BeginFrame(1); err != nil {
		t.Fatal(err)
	}
	engine.Execute("Sweep")
}
