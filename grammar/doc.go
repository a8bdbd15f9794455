// Package grammar implements the rewrite rules that grow a mission graph.
//
// A Rule pairs an input pattern (a statemachine.Machine over a window of
// one or two symbols) with an output subgraph and a selection weight. The
// mission generator builds a Window from a node, or from a node and one of
// its children, and asks each rule whether it matches.
//
// Output subgraphs use small local IDs. Local ID 1 is the designated head
// and is bound to the rewritten node; local ID 2, when present, is bound to
// the matched child (or a fresh node when the rule matched a single node).
// Every other local ID becomes a new mission node.
//
// Matching:
//
//   - Matches runs the pattern as is.
//   - MatchesCoupled also checks each element's tight/loose flag against the
//     branch coupling. A mismatch skips the element instead of rejecting the
//     rule, so the outcome is InProgress, never Accepted.
//
// Errors (rule authoring, reported by NewRule):
//
//   - ErrNilPattern, ErrNilOutputHead, ErrHeadNotFirst, ErrNegativeWeight,
//     ErrUnknownLocal, ErrDuplicateLocal, ErrUnreachableLocal.
package grammar
