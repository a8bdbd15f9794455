package placement

import "github.com/katalvlaran/lvlgen/floorgrid"

// proposal records the cell that offered a candidate.
type proposal struct {
	from floorgrid.Coord
	ok   bool
}

// frontier is an insertion-ordered set of candidate cells, each mapped to
// the cell that proposed it. Order is what keeps random draws
// reproducible.
type frontier struct {
	keys []floorgrid.Coord
	from map[floorgrid.Coord]proposal
}

func newFrontier() *frontier {
	return &frontier{from: make(map[floorgrid.Coord]proposal)}
}

func (f *frontier) Len() int { return len(f.keys) }

func (f *frontier) Has(c floorgrid.Coord) bool {
	_, ok := f.from[c]
	return ok
}

// Put adds c. The first proposer of a cell is kept.
func (f *frontier) Put(c floorgrid.Coord, p proposal) {
	if f.Has(c) {
		return
	}
	f.keys = append(f.keys, c)
	f.from[c] = p
}

// take removes and returns the i-th candidate.
func (f *frontier) take(i int) (floorgrid.Coord, proposal) {
	c := f.keys[i]
	p := f.from[c]
	f.keys = append(f.keys[:i], f.keys[i+1:]...)
	delete(f.from, c)
	return c, p
}

func (f *frontier) Clone() *frontier {
	c := &frontier{
		keys: append([]floorgrid.Coord(nil), f.keys...),
		from: make(map[floorgrid.Coord]proposal, len(f.from)),
	}
	for k, v := range f.from {
		c.from[k] = v
	}
	return c
}

// assign replaces the content of f with a copy of o, keeping f's identity.
func (f *frontier) assign(o *frontier) {
	cp := o.Clone()
	f.keys, f.from = cp.keys, cp.from
}
