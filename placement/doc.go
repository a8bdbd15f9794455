// Package placement lays a mission graph out on a floorgrid.Grid.
//
// Place walks the mission graph from its head and assigns every spawnable
// node a cell:
//
//   - a tightly coupled child lands on a free cell next to every one of
//     its tight parents, on their floor;
//   - a loosely coupled child lands anywhere on the open frontier, the set
//     of free cells next to rooms whose symbol allows children;
//   - a node with unplaced parents is deferred to a retry queue and
//     dropped after MaxDeferAttempts unsuccessful retries. Waiting for a
//     parent only costs a retry when nothing else was placed meanwhile.
//
// Cell choice is random but reproducible for a given seed. Before a cell
// is taken it must have at least as many free same-floor neighbors as the
// node has tight children; this is best-effort pruning only. When a tight
// child cannot be placed the node is rolled back to a choice point and
// retried on another cell, the failed cell staying excluded, so each retry
// strictly shrinks the candidate set.
//
// After placement every one-sided neighbor entry is mirrored, so the
// neighbor sets of the grid are symmetric.
//
// Failure is a value: Result.Success is false when the head could not be
// placed. Callers are expected to retry on a fresh grid.
package placement
