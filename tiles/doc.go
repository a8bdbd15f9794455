// Package tiles holds the per-room and per-floor tile grids that pattern
// replacement rewrites.
//
// A Grid is a W×H row-major array of Tile values. Null (0) means unset;
// reads outside the grid return Null as well, which is how patterns
// match against grid edges. Carve produces the initial room layout from
// a placed floorgrid.Room; AssembleFloor and SplitFloor convert between
// per-room grids and one grid spanning a whole floor.
package tiles
