package statemachine

import "github.com/katalvlaran/lvlgen/symbol"

// Single builds the acceptor for a one-symbol window: it accepts exactly
// one input whose symbol is in syms and rejects anything longer.
func Single(syms ...symbol.ID) (*Machine, error) {
	b := NewBuilder()
	start := b.AddState(State{Name: "start", Completion: Rejected})
	done := b.AddState(State{Name: "accept", Completion: Accepted})
	b.AddBranch(start, Branch{Accept: syms, Dest: done})
	b.AddBranch(done, endOfWindow())

	return b.Build()
}

// Pair builds the acceptor for a parent+child window. The second element
// must carry child and, under the coupling gate, the given coupling. A
// mismatching second element is skipped, so the run ends NotAccepted
// rather than Rejected.
func Pair(parent, child symbol.ID, c Coupling) (*Machine, error) {
	b := NewBuilder()
	start := b.AddState(State{Name: "start", Completion: Rejected})
	wait := b.AddState(State{Name: "child", Completion: NotAccepted, LoopByDefault: true})
	done := b.AddState(State{Name: "accept", Completion: Accepted})
	b.AddBranch(start, Branch{Accept: []symbol.ID{parent}, Dest: wait})
	b.AddBranch(wait, Branch{Accept: []symbol.ID{child}, Dest: done, Coupling: c})
	b.AddBranch(done, endOfWindow())

	return b.Build()
}

// endOfWindow rejects any input left after acceptance.
func endOfWindow() Branch {
	return Branch{Dest: NoState, Reverse: true}
}
