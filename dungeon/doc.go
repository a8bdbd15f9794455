// Package dungeon runs the whole generation pipeline for a catalog.
//
// Generate performs, in order:
//
//  1. mission generation from the catalog head (mission.Generator);
//  2. placement of the mission on a fresh floorgrid.Grid, retried on a
//     new grid up to Settings.PlacementAttempts times;
//  3. carving of one tile grid per placed room (tiles.Carve);
//  4. room-scope tile patterns per room, selected by room type and scaled
//     by room difficulty;
//  5. floor-scope tile patterns over each assembled floor, copied back
//     into the room grids.
//
// Every stage draws from its own stream derived from one seed, so a seed
// and a catalog reproduce the same dungeon.
package dungeon
