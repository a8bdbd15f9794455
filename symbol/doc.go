// Package symbol defines the alphabet shared by the grammar and space
// layers of lvlgen.
//
// What:
//
//   - Symbol is immutable rule-definition data: a name, a description,
//     whether it is terminal (never rewritten) and whether a room built
//     from it may have children.
//   - Alphabet is an arena that owns every Symbol of a catalog and hands
//     out stable integer IDs. Mission nodes, state-machine branches and
//     grammar outputs refer to symbols by ID only.
//
// Why:
//
//   - IDs are cheap to compare and copy, and they make the rule data safe
//     to share read-only between concurrent generation runs.
//
// Errors:
//
//   - ErrEmptyName: symbol name is empty.
//   - ErrDuplicateName: symbol name already present in the alphabet.
//   - ErrUnknownSymbol: ID or name not present.
package symbol
