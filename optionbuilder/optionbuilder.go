// Package optionbuilder provides a fluent alternative to writing out a
// []cabsl.StateDecl literal by hand: a chained Initial/Normal/Target/Aborted
// API that assigns state IDs in declaration order and validates names as it
// goes.
package optionbuilder

import (
	"fmt"

	"github.com/cabsl-go/cabsl"
)

// Builder accumulates state declarations for one option, assigning IDs in
// declaration order starting at 0 (the initial state always claims 0).
type Builder struct {
	optionName string
	nextID     cabsl.StateID
	nameToID   map[string]cabsl.StateID
	states     []cabsl.StateDecl
	err        error
}

// New starts a builder for the named option.
func New(optionName string) *Builder {
	return &Builder{optionName: optionName, nameToID: make(map[string]cabsl.StateID)}
}

// Initial declares the option's initial state. It must be called exactly
// once, and must be the first state declared, so that it claims ID 0.
func (b *Builder) Initial(name string) *Builder {
	return b.add(name, cabsl.StateInitial)
}

// Normal declares an ordinary intermediate state.
func (b *Builder) Normal(name string) *Builder {
	return b.add(name, cabsl.StateNormal)
}

// Target declares a state that reports the option as having completed
// successfully to its parent (ActionDone).
func (b *Builder) Target(name string) *Builder {
	return b.add(name, cabsl.StateTarget)
}

// Aborted declares a state that reports the option as having completed
// unsuccessfully to its parent (ActionAborted).
func (b *Builder) Aborted(name string) *Builder {
	return b.add(name, cabsl.StateAborted)
}

func (b *Builder) add(name string, kind cabsl.StateKind) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = fmt.Errorf("optionbuilder: option %q: state name must not be empty", b.optionName)
		return b
	}
	if _, exists := b.nameToID[name]; exists {
		b.err = fmt.Errorf("optionbuilder: option %q: state %q declared twice", b.optionName, name)
		return b
	}
	id := b.nextID
	b.nextID++
	b.nameToID[name] = id
	b.states = append(b.states, cabsl.StateDecl{ID: id, Name: name, Kind: kind})
	return b
}

// ID returns the StateID assigned to a previously declared state, for use
// in the option body's own UpdateState calls. Panics if name was never
// declared — a construction-time programmer error, not a runtime one.
func (b *Builder) ID(name string) cabsl.StateID {
	id, ok := b.nameToID[name]
	if !ok {
		panic(fmt.Sprintf("optionbuilder: option %q: state %q was never declared", b.optionName, name))
	}
	return id
}

// States returns the accumulated state table, or an error if any
// declaration was invalid.
func (b *Builder) States() ([]cabsl.StateDecl, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make([]cabsl.StateDecl, len(b.states))
	copy(out, b.states)
	return out, nil
}

// Descriptor builds a complete cabsl.OptionDescriptor from the accumulated
// state table plus the caller's body, ready for OptionRegistry.Register.
func (b *Builder) Descriptor(body cabsl.OptionBody) (*cabsl.OptionDescriptor, error) {
	states, err := b.States()
	if err != nil {
		return nil, err
	}
	return &cabsl.OptionDescriptor{Name: b.optionName, States: states, Body: body}, nil
}
