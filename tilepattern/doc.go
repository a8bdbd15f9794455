// Package tilepattern rewrites tile grids with fixed-size input/output
// patterns.
//
// FindAndReplace slides the Input pattern over every offset from
// (-inW, -inH) up to (gridW+inW, gridH+inH), so that patterns can match
// across grid edges: cells outside the grid read as tiles.Null and only
// match Null input cells. Each offset is tested under four orientations:
//
//	1 Identity
//	2 FlipY  (rows reversed, needs height > 1)
//	3 FlipX  (columns reversed, needs width > 1)
//	4 FlipXY (both, needs width > 1 and height > 1)
//
// The first orientation that matches wins. The Output is written under
// the same orientation; cells that fall outside the grid are skipped.
// Without RandomlyPlaced the first matching offset in row-major order is
// replaced; with it one match is drawn uniformly from all matches.
//
// FindAndReplaceFloor does the same over a whole floor, skipping probes
// that are entirely Null.
package tilepattern
