package floorgrid

// ConnectedComponents groups placed rooms reachable from each other through
// their neighbor links. Components are listed in arena order of their
// first cell; cells inside a component in breadth-first order.
//
// Time:   O(F×W×H×d).
// Memory: O(F×W×H) for visited flags and output.
func (g *Grid) ConnectedComponents() [][]Coord {
	seen := make([]bool, len(g.rooms))
	var comps [][]Coord

	for i := range g.rooms {
		if !g.rooms[i].Placed || seen[i] {
			continue
		}
		queue := []int{i}
		seen[i] = true
		var comp []Coord
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			c := g.rooms[u].Coord
			comp = append(comp, c)
			for _, n := range g.SortedNeighbors(c) {
				vi := g.Index(n)
				if vi < 0 || seen[vi] || !g.rooms[vi].Placed {
					continue
				}
				seen[vi] = true
				queue = append(queue, vi)
			}
		}
		comps = append(comps, comp)
	}
	return comps
}
