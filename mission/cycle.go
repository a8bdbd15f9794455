package mission

// Visitation colors for depth-first traversal.
const (
	white = iota // not visited yet
	gray         // on the current path
	black        // fully explored
)

// topoSorter holds the state of one topological sort.
type topoSorter struct {
	graph *Graph
	state []int
	order []NodeID
}

// TopologicalOrder returns the reachable nodes ordered so that every
// parent precedes its children. A cycle yields ErrCycleDetected.
// Complexity: O(V + E) time, O(V) memory.
func (g *Graph) TopologicalOrder() ([]NodeID, error) {
	t := &topoSorter{
		graph: g,
		state: make([]int, len(g.nodes)),
		order: make([]NodeID, 0, len(g.nodes)),
	}
	if len(g.nodes) == 0 {
		return nil, nil
	}
	if err := t.visit(g.head); err != nil {
		return nil, err
	}
	// reverse post-order
	for i, j := 0, len(t.order)-1; i < j; i, j = i+1, j-1 {
		t.order[i], t.order[j] = t.order[j], t.order[i]
	}
	return t.order, nil
}

// DetectCycle reports ErrCycleDetected when a cycle is reachable from the
// head, nil otherwise.
func (g *Graph) DetectCycle() error {
	_, err := g.TopologicalOrder()
	return err
}

func (t *topoSorter) visit(id NodeID) error {
	switch t.state[id] {
	case gray:
		return ErrCycleDetected
	case black:
		return nil
	}
	t.state[id] = gray
	for _, e := range t.graph.nodes[id].Children {
		if err := t.visit(e.Child); err != nil {
			return err
		}
	}
	t.state[id] = black
	t.order = append(t.order, id)
	return nil
}
