package placement

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/katalvlaran/lvlgen/floorgrid"
	"github.com/katalvlaran/lvlgen/mission"
	"github.com/katalvlaran/lvlgen/rng"
	"github.com/katalvlaran/lvlgen/symbol"
)

// status is the outcome of placing one node.
type status int

const (
	placed   status = iota // the node has a cell, now or from earlier
	deferred               // some parent has no cell yet
	skipped                // the symbol has no room types
	failed                 // no candidate cell is left
)

// placer is the mutable state of one Place call.
type placer struct {
	alphabet *symbol.Alphabet
	mission  *mission.Graph
	grid     *floorgrid.Grid
	opts     Options
	rng      *rand.Rand
	total    int

	processedNodes mapset.Set[mission.NodeID]
	processedRooms mapset.Set[floorgrid.Coord]
	open           *frontier
	journal        []placedNode
	cells          map[mission.NodeID]floorgrid.Coord

	retry      *queue.Queue[mission.NodeID]
	queued     mapset.Set[mission.NodeID]
	attempts   map[mission.NodeID]int
	commits    int
	seen       map[mission.NodeID]int
	dropped    []mission.NodeID
	skipped    []mission.NodeID
	backtracks int
}

type placedNode struct {
	node mission.NodeID
	cell floorgrid.Coord
}

// choicePoint is the state to return to when a cell choice fails.
// Retry attempts and the commit counter survive a rollback.
type choicePoint struct {
	processedNodes mapset.Set[mission.NodeID]
	processedRooms mapset.Set[floorgrid.Coord]
	open           *frontier
	placed         int
	retry          []mission.NodeID
	dropped        int
	skipped        int
}

// Place assigns the nodes of m to cells of g.
//
// Behavior:
//  1. The head is placed on the start cell (WithStart, or a random cell).
//  2. Each placed node first places its tight children on free cells next
//     to it, rolling back and trying its next candidate cell when one of
//     them fails.
//  3. If its symbol allows children, the free neighbors of its cell join
//     the open frontier; loose children are then placed from there.
//  4. Nodes waiting for a parent, and loose nodes without a cell, are
//     retried until placed or dropped.
//  5. Neighbor sets are symmetrized.
//
// g should be empty; cells already placed are overwritten when chosen.
// Returns ErrNilAlphabet, ErrNilMission, ErrNilGrid, ErrOptionViolation,
// ErrStartOutOfBounds or ErrCyclicMission; a layout that cannot be built
// is reported through Result.Success.
func Place(a *symbol.Alphabet, m *mission.Graph, g *floorgrid.Grid, opts ...Option) (*Result, error) {
	// Validate inputs
	switch {
	case a == nil:
		return nil, ErrNilAlphabet
	case m == nil:
		return nil, ErrNilMission
	case g == nil:
		return nil, ErrNilGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.HasStart && !g.InBounds(o.Start) {
		return nil, fmt.Errorf("%w: %v", ErrStartOutOfBounds, o.Start)
	}
	if err := m.DetectCycle(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCyclicMission, err)
	}

	// Prepare placer
	reach := m.Reachable()
	p := &placer{
		alphabet:       a,
		mission:        m,
		grid:           g,
		opts:           o,
		rng:            o.Rand,
		total:          len(reach),
		processedNodes: mapset.New[mission.NodeID](),
		processedRooms: mapset.New[floorgrid.Coord](),
		open:           newFrontier(),
		cells:          make(map[mission.NodeID]floorgrid.Coord, len(reach)),
		retry:          queue.New[mission.NodeID](),
		queued:         mapset.New[mission.NodeID](),
		attempts:       make(map[mission.NodeID]int),
		seen:           make(map[mission.NodeID]int),
	}

	// Place the head, then drain the retry queue
	start := o.Start
	if !o.HasStart {
		start = g.Coordinate(rng.Pick(p.rng, g.Len()))
	}
	root := newFrontier()
	root.Put(start, proposal{})
	st := p.place(m.Head(), root)
	for !p.retry.Empty() {
		p.drain()
	}
	g.Symmetrize()

	// Collect result
	res := &Result{
		Success:    st != failed,
		Cells:      p.cells,
		Dropped:    p.dropped,
		Skipped:    p.skipped,
		Backtracks: p.backtracks,
	}
	for _, id := range reach {
		if _, ok := p.cells[id]; !ok {
			res.Unplaced = append(res.Unplaced, id)
		}
	}
	return res, nil
}

// place puts node id on a cell drawn from f, or from the cells next to
// all of its tight parents when it has any. f may be nil for nodes with a
// placed tight parent.
func (p *placer) place(id mission.NodeID, f *frontier) status {
	if p.processedNodes.Has(id) {
		return placed
	}
	if slices.Contains(p.dropped, id) {
		return failed
	}
	// Skip symbols without rooms, wait for parents
	n, _ := p.mission.Node(id)
	sym, ok := p.alphabet.Get(n.Symbol)
	if !ok || !sym.Spawnable() {
		if !slices.Contains(p.skipped, id) {
			p.skipped = append(p.skipped, id)
		}
		return skipped
	}
	for _, parent := range n.Parents {
		if !p.processedNodes.Has(parent) {
			return deferred
		}
	}

	// Tight children go next to every tight parent
	if tf, ok := p.tightFrontier(n); ok {
		f = tf
	}
	if f == nil {
		return failed
	}

	var tight []mission.NodeID
	need := 0
	for _, e := range n.Children {
		if !e.Tight {
			continue
		}
		tight = append(tight, e.Child)
		if !p.processedNodes.Has(e.Child) && p.spawnable(e.Child) {
			need++
		}
	}

	// Choose a cell; roll back when a tight child finds no room
	var cell floorgrid.Coord
	for {
		c, from, ok := p.pick(f, need)
		if !ok {
			return failed
		}
		cp := p.checkpoint()
		p.commit(n, sym, c, from)
		if p.placeTight(tight) {
			cell = c
			break
		}
		p.rollback(cp)
		p.processedRooms.Put(c)
		p.backtracks++
		p.opts.OnBacktrack(id, c)
	}

	// Open the neighborhood and place loose children
	if sym.AllowChildren {
		for _, c := range p.grid.Adjacent(cell) {
			if !p.processedRooms.Has(c) {
				p.open.Put(c, proposal{from: cell, ok: true})
			}
		}
	}
	for _, e := range n.Children {
		if e.Tight {
			continue
		}
		switch p.place(e.Child, p.open) {
		case deferred, failed:
			p.enqueue(e.Child)
		}
	}
	p.drain()

	return placed
}

// placeTight places the tight children of a freshly committed node. It
// reports false as soon as one of them has no cell left.
func (p *placer) placeTight(children []mission.NodeID) bool {
	for _, c := range children {
		switch p.place(c, nil) {
		case failed:
			return false
		case deferred:
			p.enqueue(c)
		}
	}
	return true
}

// pick draws random candidates from f until one is free and has at least
// need free neighbors on its floor. Taken cells leave f; cells rejected
// only for lack of neighbors are put back.
func (p *placer) pick(f *frontier, need int) (floorgrid.Coord, proposal, bool) {
	type held struct {
		c floorgrid.Coord
		p proposal
	}
	var back []held
	defer func() {
		for _, h := range back {
			f.Put(h.c, h.p)
		}
	}()
	for f.Len() > 0 {
		c, from := f.take(p.rng.Intn(f.Len()))
		if p.processedRooms.Has(c) {
			continue
		}
		if p.freeOnFloor(c) < need {
			back = append(back, held{c, from})
			continue
		}
		return c, from, true
	}
	return floorgrid.Coord{}, proposal{}, false
}

// commit writes node n into cell and links it to the proposing cell.
func (p *placer) commit(n mission.Node, sym symbol.Symbol, cell floorgrid.Coord, from proposal) {
	p.processedNodes.Put(n.ID)
	p.processedRooms.Put(cell)
	_ = p.grid.Assign(cell, floorgrid.Assignment{
		Node:       n.ID,
		Symbol:     n.Symbol,
		SymbolID:   n.SymbolID,
		RoomType:   sym.RoomTypes[rng.Pick(p.rng, len(sym.RoomTypes))],
		Difficulty: float64(n.SymbolID) / float64(p.total),
	})
	if from.ok {
		_ = p.grid.SetIncoming(cell, from.from)
		tight := false
		if r := p.grid.Room(from.from); r != nil && r.Placed {
			tight, _ = p.mission.Coupling(r.Node, n.ID)
		}
		_ = p.grid.Link(cell, from.from, tight)
	}
	for _, parent := range n.Parents {
		pc, ok := p.cells[parent]
		if !ok || (from.ok && pc == from.from) {
			continue
		}
		if tight, _ := p.mission.Coupling(parent, n.ID); tight {
			_ = p.grid.Link(cell, pc, true)
		}
	}
	p.commits++
	p.journal = append(p.journal, placedNode{node: n.ID, cell: cell})
	p.cells[n.ID] = cell
	p.opts.OnPlace(n.ID, cell)
}

func (p *placer) checkpoint() choicePoint {
	cp := choicePoint{
		processedNodes: copySet(p.processedNodes),
		processedRooms: copySet(p.processedRooms),
		open:           p.open.Clone(),
		placed:         len(p.journal),
		dropped:        len(p.dropped),
		skipped:        len(p.skipped),
	}
	p.retry.Each(func(id mission.NodeID) { cp.retry = append(cp.retry, id) })
	return cp
}

func (p *placer) rollback(cp choicePoint) {
	for i := len(p.journal) - 1; i >= cp.placed; i-- {
		e := p.journal[i]
		_ = p.grid.Clear(e.cell)
		delete(p.cells, e.node)
	}
	p.journal = p.journal[:cp.placed]
	p.processedNodes = cp.processedNodes
	p.processedRooms = cp.processedRooms
	p.open.assign(cp.open)
	p.dropped = p.dropped[:cp.dropped]
	p.skipped = p.skipped[:cp.skipped]
	p.retry = queue.New[mission.NodeID]()
	p.queued = mapset.New[mission.NodeID]()
	for _, id := range cp.retry {
		p.enqueue(id)
	}
}

func (p *placer) enqueue(id mission.NodeID) {
	if p.queued.Has(id) {
		return
	}
	p.queued.Put(id)
	p.retry.Enqueue(id)
}

// drain retries every queued node once. A node without a cell counts an
// attempt and is dropped at MaxDeferAttempts. A node still waiting for a
// parent counts one only when nothing was committed since its last retry.
func (p *placer) drain() {
	var batch []mission.NodeID
	for !p.retry.Empty() {
		id := p.retry.Dequeue()
		p.queued.Remove(id)
		batch = append(batch, id)
	}
	for _, id := range batch {
		if p.processedNodes.Has(id) || slices.Contains(p.dropped, id) {
			continue
		}
		st := p.place(id, p.open)
		switch st {
		case placed, skipped:
			continue
		case deferred:
			last, ok := p.seen[id]
			p.seen[id] = p.commits
			if !ok || last != p.commits {
				p.enqueue(id)
				continue
			}
		}
		p.attempts[id]++
		if p.attempts[id] >= p.opts.MaxDeferAttempts {
			p.dropped = append(p.dropped, id)
			p.opts.OnDrop(id, p.attempts[id])
			continue
		}
		p.enqueue(id)
	}
}

// tightFrontier returns the free cells of n's floor next to every placed
// tight parent, proposed by the first of them. ok is false when n has no
// placed tight parent.
func (p *placer) tightFrontier(n mission.Node) (*frontier, bool) {
	var parents []floorgrid.Coord
	for _, parent := range n.Parents {
		tight, _ := p.mission.Coupling(parent, n.ID)
		if c, ok := p.cells[parent]; tight && ok {
			parents = append(parents, c)
		}
	}
	if len(parents) == 0 {
		return nil, false
	}
	f := newFrontier()
	for _, c := range p.grid.AdjacentOnFloor(parents[0]) {
		if p.processedRooms.Has(c) || !nextToAll(c, parents[1:]) {
			continue
		}
		f.Put(c, proposal{from: parents[0], ok: true})
	}
	return f, true
}

func nextToAll(c floorgrid.Coord, cells []floorgrid.Coord) bool {
	for _, o := range cells {
		if o.Z != c.Z || o.Manhattan(c) != 1 {
			return false
		}
	}
	return true
}

func (p *placer) freeOnFloor(c floorgrid.Coord) int {
	free := 0
	for _, n := range p.grid.AdjacentOnFloor(c) {
		if !p.processedRooms.Has(n) {
			free++
		}
	}
	return free
}

func (p *placer) spawnable(id mission.NodeID) bool {
	s, ok := p.alphabet.Get(p.mission.Symbol(id))
	return ok && s.Spawnable()
}

func copySet[K comparable](s mapset.Set[K]) mapset.Set[K] {
	c := mapset.New[K]()
	s.Each(func(k K) { c.Put(k) })
	return c
}
