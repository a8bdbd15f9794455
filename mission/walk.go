package mission

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// WalkOption configures Walk.
type WalkOption func(*WalkOptions)

// WalkOptions holds hooks and limits for a breadth-first walk.
type WalkOptions struct {
	// Start is the first node; NoNode means the head.
	Start NodeID

	// OnVisit is called for every visited node with its depth. Returning
	// an error aborts the walk.
	OnVisit func(id NodeID, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// FilterEdge skips an edge when it returns false.
	FilterEdge func(parent NodeID, e Edge) bool

	err error
}

// DefaultWalkOptions walks from the head without limits or filters.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		Start:      NoNode,
		OnVisit:    func(NodeID, int) error { return nil },
		MaxDepth:   0,
		FilterEdge: func(NodeID, Edge) bool { return true },
	}
}

// WalkFrom starts the walk at id instead of the head.
func WalkFrom(id NodeID) WalkOption {
	return func(o *WalkOptions) { o.Start = id }
}

// WithOnVisit registers the visit hook.
func WithOnVisit(fn func(id NodeID, depth int) error) WalkOption {
	return func(o *WalkOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the walk to depth d (d >= 0; 0 means no limit).
func WithMaxDepth(d int) WalkOption {
	return func(o *WalkOptions) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterEdge skips edges for which fn returns false.
func WithFilterEdge(fn func(parent NodeID, e Edge) bool) WalkOption {
	return func(o *WalkOptions) {
		if fn != nil {
			o.FilterEdge = fn
		}
	}
}

// WalkResult holds the outcome of a walk.
//   - Order: nodes in visit sequence.
//   - Depth: distance in edges from the start.
//   - Parent: the node each was first reached from.
type WalkResult struct {
	Order  []NodeID
	Depth  map[NodeID]int
	Parent map[NodeID]NodeID
}

type walkItem struct {
	id    NodeID
	depth int
}

// walker holds mutable walk state.
type walker struct {
	graph   *Graph
	opts    WalkOptions
	queue   *queue.Queue[walkItem]
	visited mapset.Set[NodeID]
	res     *WalkResult
}

// Walk traverses g breadth first, children in edge order.
// Returns ErrNodeNotFound for a bad start, ErrOptionViolation for bad
// options, or the first OnVisit error.
// Complexity: O(V + E).
func (g *Graph) Walk(opts ...WalkOption) (*WalkResult, error) {
	o := DefaultWalkOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	start := o.Start
	if start == NoNode {
		start = g.head
	}
	if !g.Has(start) {
		return nil, fmt.Errorf("%w: walk start %d", ErrNodeNotFound, start)
	}

	n := len(g.nodes)
	w := &walker{
		graph:   g,
		opts:    o,
		queue:   queue.New[walkItem](),
		visited: mapset.New[NodeID](),
		res: &WalkResult{
			Order:  make([]NodeID, 0, n),
			Depth:  make(map[NodeID]int, n),
			Parent: make(map[NodeID]NodeID, n),
		},
	}
	w.enqueue(start, 0, NoNode)

	return w.res, w.loop()
}

func (w *walker) enqueue(id NodeID, depth int, parent NodeID) {
	w.visited.Put(id)
	w.res.Depth[id] = depth
	if parent != NoNode {
		w.res.Parent[id] = parent
	}
	w.queue.Enqueue(walkItem{id: id, depth: depth})
}

func (w *walker) loop() error {
	for !w.queue.Empty() {
		item := w.queue.Dequeue()
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("mission: OnVisit error at %d: %w", item.id, err)
		}
		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		for _, e := range w.graph.nodes[item.id].Children {
			if !w.opts.FilterEdge(item.id, e) || w.visited.Has(e.Child) {
				continue
			}
			w.enqueue(e.Child, next, item.id)
		}
	}
	return nil
}
