// Package mission builds the mission graph of a dungeon: the symbolic tree
// of rooms and their tight/loose couplings, grown from a head symbol by
// repeated grammar rewriting.
//
// What:
//
//   - Graph is an arena of Nodes referenced by NodeID. Every node carries a
//     symbol, an optional 1-based SymbolID (assigned by Renumber), its
//     parents and its ordered child edges with a tight/loose flag.
//   - Generator applies a grammar.Set to a Graph. It walks the graph depth
//     first, collects every rule accepting a node (alone, or together with
//     one of its children), weights them by usage and specificity, picks one
//     at random and splices the rule output in place.
//   - Walk (breadth first) and TopologicalOrder (depth first) are the
//     traversals shared by numbering, placement and validation.
//
// Determinism:
//
//   - All randomness comes from one *rand.Rand passed through options. The
//     same seed, alphabet and rules always yield the same graph.
//
// Termination:
//
//   - Every node visit consumes one step of the budget (WithMaxSteps,
//     default 255). Generation also stops after a pass without rewrites,
//     when every reachable node is terminal, or when the node cap
//     (WithMaxNodes) is reached. Budget exhaustion is not an error.
//
// Dead ends:
//
//   - A nonterminal node no rule accepts is flagged Unresolved and reported
//     in Result.Hooks; generation continues past it.
//
// Errors:
//
//   - ErrNilAlphabet, ErrNilRules, ErrUnknownSymbol, ErrOptionViolation from
//     the generator; ErrNodeNotFound, ErrSelfLoop, ErrCycleDetected from
//     graph mutation and traversal.
package mission
