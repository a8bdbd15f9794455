package statemachine

import (
	"fmt"

	"github.com/katalvlaran/lvlgen/symbol"
)

// Builder assembles a Machine state by state. Errors are recorded and
// returned by Build so call sites can chain without checks.
type Builder struct {
	states []State
	start  StateID
	err    error
}

// NewBuilder returns an empty Builder whose start state is the first state
// added.
func NewBuilder() *Builder {
	return &Builder{start: NoState}
}

// AddState appends s and returns its ID. The Branches of s are kept.
func (b *Builder) AddState(s State) StateID {
	id := StateID(len(b.states))
	s.Branches = cloneBranches(s.Branches)
	b.states = append(b.states, s)
	if b.start == NoState {
		b.start = id
	}
	return id
}

// AddBranch appends br to state from.
func (b *Builder) AddBranch(from StateID, br Branch) *Builder {
	if b.err != nil {
		return b
	}
	if from < 0 || int(from) >= len(b.states) {
		b.err = fmt.Errorf("%w: branch source %d", ErrStateNotFound, from)
		return b
	}
	br.Accept = append([]symbol.ID(nil), br.Accept...)
	b.states[from].Branches = append(b.states[from].Branches, br)
	return b
}

// SetStart selects the start state.
func (b *Builder) SetStart(id StateID) *Builder {
	b.start = id
	return b
}

// Build validates the states and returns an immutable Machine.
// Complexity: O(S + B).
func (b *Builder) Build() (*Machine, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.states) == 0 {
		return nil, ErrEmptyMachine
	}
	n := StateID(len(b.states))
	if b.start < 0 || b.start >= n {
		return nil, fmt.Errorf("%w: start state %d", ErrStateNotFound, b.start)
	}
	for i, st := range b.states {
		for j, br := range st.Branches {
			switch {
			case br.Dest == NoState && !br.Reverse:
				return nil, fmt.Errorf("%w: state %d (%s) branch %d", ErrDanglingBranch, i, st.Name, j)
			case br.Dest != NoState && (br.Dest < 0 || br.Dest >= n):
				return nil, fmt.Errorf("%w: state %d (%s) branch %d -> %d", ErrStateNotFound, i, st.Name, j, br.Dest)
			}
		}
	}
	states := make([]State, len(b.states))
	for i, st := range b.states {
		st.Branches = cloneBranches(st.Branches)
		states[i] = st
	}

	return &Machine{states: states, start: b.start}, nil
}

// Start returns the start state.
func (m *Machine) Start() StateID { return m.start }

// Len returns the number of states.
func (m *Machine) Len() int { return len(m.states) }

// State returns a copy of state id.
func (m *Machine) State(id StateID) (State, bool) {
	if id < 0 || int(id) >= len(m.states) {
		return State{}, false
	}
	st := m.states[id]
	st.Branches = cloneBranches(st.Branches)
	return st, true
}

// fires reports whether br reacts to in.
func (br *Branch) fires(in Input, gate bool) bool {
	member := false
	for _, s := range br.Accept {
		if s == in.Symbol {
			member = true
			break
		}
	}
	if br.Reverse {
		member = !member
	}
	if !member {
		return false
	}
	if gate && !br.Coupling.Allows(in.Tight) {
		return false
	}
	return true
}

func cloneBranches(in []Branch) []Branch {
	if in == nil {
		return nil
	}
	out := make([]Branch, len(in))
	for i, br := range in {
		br.Accept = append([]symbol.ID(nil), br.Accept...)
		out[i] = br
	}
	return out
}
