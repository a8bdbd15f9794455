package mission

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvlgen/symbol"
)

// NewGraph returns a graph holding a single head node carrying head.
func NewGraph(head symbol.ID) *Graph {
	g := &Graph{}
	g.head = g.AddNode(head)
	return g
}

// Head returns the head node.
func (g *Graph) Head() NodeID { return g.head }

// Len returns the number of nodes in the arena, reachable or not.
func (g *Graph) Len() int { return len(g.nodes) }

// Has reports whether id is a node of g.
func (g *Graph) Has(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// AddNode appends a detached node carrying sym.
// Complexity: O(1) amortized.
func (g *Graph) AddNode(sym symbol.ID) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{ID: id, Symbol: sym})
	return id
}

// Node returns a copy of node id; its slices are not shared with g.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if !g.Has(id) {
		return Node{}, false
	}
	n := g.nodes[id]
	n.Parents = append([]NodeID(nil), n.Parents...)
	n.Children = append([]Edge(nil), n.Children...)
	return n, true
}

// Symbol returns the symbol of id, or symbol.None.
func (g *Graph) Symbol(id NodeID) symbol.ID {
	if !g.Has(id) {
		return symbol.None
	}
	return g.nodes[id].Symbol
}

// SymbolID returns the breadth-first number of id (0 when unnumbered).
func (g *Graph) SymbolID(id NodeID) int {
	if !g.Has(id) {
		return 0
	}
	return g.nodes[id].SymbolID
}

// Children returns a copy of the child edges of id.
func (g *Graph) Children(id NodeID) []Edge {
	if !g.Has(id) {
		return nil
	}
	return append([]Edge(nil), g.nodes[id].Children...)
}

// Parents returns a copy of the parents of id.
func (g *Graph) Parents(id NodeID) []NodeID {
	if !g.Has(id) {
		return nil
	}
	return append([]NodeID(nil), g.nodes[id].Parents...)
}

// Relabel replaces the symbol of id.
func (g *Graph) Relabel(id NodeID, sym symbol.ID) error {
	if !g.Has(id) {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	g.nodes[id].Symbol = sym
	return nil
}

// Link adds parent→child or updates the coupling of an existing edge.
// Links that would close a cycle are refused with ErrCycleDetected.
// Complexity: O(V + E) for the cycle check.
func (g *Graph) Link(parent, child NodeID, tight bool) error {
	if !g.Has(parent) || !g.Has(child) {
		return fmt.Errorf("%w: %d -> %d", ErrNodeNotFound, parent, child)
	}
	if parent == child {
		return fmt.Errorf("%w: %d", ErrSelfLoop, parent)
	}
	p := &g.nodes[parent]
	for i := range p.Children {
		if p.Children[i].Child == child {
			p.Children[i].Tight = tight
			g.refreshTight(child)
			return nil
		}
	}
	if g.Reaches(child, parent) {
		return fmt.Errorf("%w: %d -> %d", ErrCycleDetected, parent, child)
	}
	p.Children = append(p.Children, Edge{Child: child, Tight: tight})
	c := &g.nodes[child]
	c.Parents = append(c.Parents, parent)
	g.refreshTight(child)
	return nil
}

// Unlink removes parent→child and reports whether it existed.
func (g *Graph) Unlink(parent, child NodeID) bool {
	if !g.Has(parent) || !g.Has(child) {
		return false
	}
	p := &g.nodes[parent]
	found := false
	for i, e := range p.Children {
		if e.Child == child {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return false
	}
	c := &g.nodes[child]
	for i, id := range c.Parents {
		if id == parent {
			c.Parents = append(c.Parents[:i], c.Parents[i+1:]...)
			break
		}
	}
	g.refreshTight(child)
	return true
}

// Coupling returns the coupling of parent→child and whether it exists.
func (g *Graph) Coupling(parent, child NodeID) (tight, ok bool) {
	if !g.Has(parent) {
		return false, false
	}
	for _, e := range g.nodes[parent].Children {
		if e.Child == child {
			return e.Tight, true
		}
	}
	return false, false
}

// Reaches reports whether to is reachable from from along child edges.
func (g *Graph) Reaches(from, to NodeID) bool {
	if !g.Has(from) || !g.Has(to) {
		return false
	}
	seen := make([]bool, len(g.nodes))
	stack := []NodeID{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == to {
			return true
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		for _, e := range g.nodes[cur].Children {
			stack = append(stack, e.Child)
		}
	}
	return false
}

// refreshTight recomputes TightToParent from the incoming edges of id.
func (g *Graph) refreshTight(id NodeID) {
	n := &g.nodes[id]
	n.TightToParent = false
	for _, p := range n.Parents {
		if tight, _ := g.Coupling(p, id); tight {
			n.TightToParent = true
			return
		}
	}
}

// Edges lists every edge reachable from the head in breadth-first order.
func (g *Graph) Edges() []Link {
	var out []Link
	res, err := g.Walk()
	if err != nil {
		return nil
	}
	for _, id := range res.Order {
		for _, e := range g.nodes[id].Children {
			out = append(out, Link{Parent: id, Child: e.Child, Tight: e.Tight})
		}
	}
	return out
}

// Reachable returns the nodes reachable from the head, breadth first.
func (g *Graph) Reachable() []NodeID {
	res, err := g.Walk()
	if err != nil {
		return nil
	}
	return res.Order
}

// Renumber assigns SymbolID 1..n to reachable nodes in breadth-first order
// from the head and resets unreachable nodes to 0. Returns n.
// Complexity: O(V + E).
func (g *Graph) Renumber() int {
	for i := range g.nodes {
		g.nodes[i].SymbolID = 0
	}
	order := g.Reachable()
	for i, id := range order {
		g.nodes[id].SymbolID = i + 1
	}
	return len(order)
}

// Hooks returns reachable nodes flagged Unresolved, breadth first.
func (g *Graph) Hooks() []NodeID {
	var out []NodeID
	for _, id := range g.Reachable() {
		if g.nodes[id].Unresolved {
			out = append(out, id)
		}
	}
	return out
}

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	c := &Graph{head: g.head, nodes: make([]Node, len(g.nodes))}
	for i, n := range g.nodes {
		n.Parents = append([]NodeID(nil), n.Parents...)
		n.Children = append([]Edge(nil), n.Children...)
		c.nodes[i] = n
	}
	return c
}

// Format renders the reachable graph as an indented tree, one node per
// line, using a for symbol names. Tight edges are marked with '='.
// Nodes with several parents are expanded once, under their first parent.
func (g *Graph) Format(a *symbol.Alphabet) string {
	var sb strings.Builder
	seen := make(map[NodeID]bool, len(g.nodes))
	var rec func(id NodeID, depth int, tight bool)
	rec = func(id NodeID, depth int, tight bool) {
		n := g.nodes[id]
		edge := "-"
		if tight {
			edge = "="
		}
		if depth == 0 {
			edge = "*"
		}
		name := fmt.Sprintf("#%d", n.Symbol)
		if a != nil {
			name = a.Name(n.Symbol)
		}
		fmt.Fprintf(&sb, "%s%s %s [%d]", strings.Repeat("  ", depth), edge, name, n.SymbolID)
		if n.Unresolved {
			sb.WriteString(" (unresolved)")
		}
		sb.WriteByte('\n')
		if seen[id] {
			return
		}
		seen[id] = true
		for _, e := range n.Children {
			rec(e.Child, depth+1, e.Tight)
		}
	}
	rec(g.head, 0, false)
	return sb.String()
}
