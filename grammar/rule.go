package grammar

import (
	"fmt"

	"github.com/katalvlaran/lvlgen/statemachine"
	"github.com/katalvlaran/lvlgen/symbol"
)

// NewRule validates the output subgraph and weight and returns the rule.
// pair tells whether pattern expects a parent+child window.
// Complexity: O(N + E) over the output subgraph.
func NewRule(name string, pattern *statemachine.Machine, out Output, weight float64, pair bool) (*Rule, error) {
	if pattern == nil {
		return nil, fmt.Errorf("%w: rule %q", ErrNilPattern, name)
	}
	if weight < 0 {
		return nil, fmt.Errorf("%w: rule %q has %g", ErrNegativeWeight, name, weight)
	}
	if err := out.validate(); err != nil {
		return nil, fmt.Errorf("%w (rule %q)", err, name)
	}

	return &Rule{Name: name, Pattern: pattern, Output: out.clone(), Weight: weight, Pair: pair}, nil
}

// SingleRule builds a rule matching a lone node carrying sym.
func SingleRule(name string, sym symbol.ID, out Output, weight float64) (*Rule, error) {
	m, err := statemachine.Single(sym)
	if err != nil {
		return nil, err
	}
	return NewRule(name, m, out, weight, false)
}

// PairRule builds a rule matching a parent carrying parent with a child
// carrying child over an edge of coupling c.
func PairRule(name string, parent, child symbol.ID, c statemachine.Coupling, out Output, weight float64) (*Rule, error) {
	m, err := statemachine.Pair(parent, child, c)
	if err != nil {
		return nil, err
	}
	return NewRule(name, m, out, weight, true)
}

// HeadSymbol returns the symbol of the output head.
func (o Output) HeadSymbol() symbol.ID {
	s, _ := o.Symbol(o.Head)
	return s
}

// Symbol returns the symbol stored under local ID.
func (o Output) Symbol(local int) (symbol.ID, bool) {
	for _, n := range o.Nodes {
		if n.Local == local {
			return n.Symbol, true
		}
	}
	return symbol.None, false
}

// Walk visits the output breadth-first from the head. fn receives every
// edge whose parent has been reached, in declaration order per parent.
func (o Output) Walk(fn func(e OutputEdge)) {
	seen := map[int]bool{o.Head: true}
	queue := []int{o.Head}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range o.Edges {
			if e.Parent != cur {
				continue
			}
			fn(e)
			if !seen[e.Child] {
				seen[e.Child] = true
				queue = append(queue, e.Child)
			}
		}
	}
}

func (o Output) validate() error {
	if o.Head == 0 || len(o.Nodes) == 0 {
		return ErrNilOutputHead
	}
	if o.Head != HeadLocal {
		return fmt.Errorf("%w: got %d", ErrHeadNotFirst, o.Head)
	}
	locals := make(map[int]bool, len(o.Nodes))
	for _, n := range o.Nodes {
		if locals[n.Local] {
			return fmt.Errorf("%w: %d", ErrDuplicateLocal, n.Local)
		}
		locals[n.Local] = true
	}
	if !locals[o.Head] {
		return ErrNilOutputHead
	}
	for _, e := range o.Edges {
		if !locals[e.Parent] || !locals[e.Child] {
			return fmt.Errorf("%w: %d -> %d", ErrUnknownLocal, e.Parent, e.Child)
		}
	}
	reached := map[int]bool{o.Head: true}
	o.Walk(func(e OutputEdge) { reached[e.Child] = true })
	for _, n := range o.Nodes {
		if !reached[n.Local] {
			return fmt.Errorf("%w: %d", ErrUnreachableLocal, n.Local)
		}
	}
	return nil
}

func (o Output) clone() Output {
	return Output{
		Nodes: append([]OutputNode(nil), o.Nodes...),
		Edges: append([]OutputEdge(nil), o.Edges...),
		Head:  o.Head,
	}
}
