// Package floorgrid models the 3D grid of room cells a mission graph is
// laid out on.
//
// What:
//
//   - Grid is an arena of Floors × Height × Width Room cells addressed by
//     Coord{X, Y, Z}; Z is the floor.
//   - Each Room records the mission node placed in it, its room type and
//     difficulty, and two neighbor sets (plain and tightly coupled).
//   - Link keeps neighbor sets symmetric; Symmetrize repairs one-sided
//     links added by hand.
//   - ConnectedComponents groups placed rooms reachable through their
//     neighbor links.
//
// Connectivity:
//
//   - Conn4: the four cells on the same floor (N, E, S, W).
//   - Conn6: Conn4 plus the cells directly above and below.
//
// Complexity:
//
//   - New: O(F×W×H) time and memory.
//   - Adjacent, Link, Assign: O(1).
//   - Symmetrize, ConnectedComponents: O(F×W×H×d), d = 4 or 6.
//
// Errors:
//
//   - ErrEmptyGrid: a dimension is not positive.
//   - ErrOutOfBounds: a coordinate lies outside the grid.
//   - ErrNotAdjacent: Link between cells that are not neighbors.
package floorgrid
