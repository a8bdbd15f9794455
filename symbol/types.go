package symbol

import "errors"

// Sentinel errors for alphabet operations.
var (
	// ErrEmptyName indicates a Symbol without a name.
	ErrEmptyName = errors.New("symbol: name is empty")

	// ErrDuplicateName indicates a second Symbol with an existing name.
	ErrDuplicateName = errors.New("symbol: duplicate name")

	// ErrUnknownSymbol indicates a lookup of an ID or name that is absent.
	ErrUnknownSymbol = errors.New("symbol: unknown symbol")
)

// ID is a stable handle into an Alphabet. The zero value is None.
type ID int

// None is the zero ID; it never refers to a Symbol.
const None ID = 0

// Symbol is a typed terminal or nonterminal of the dungeon grammar.
type Symbol struct {
	// ID is assigned by Alphabet.Add; 1-based.
	ID ID

	// Name uniquely identifies the symbol inside its Alphabet.
	Name string

	// Description is free text for humans.
	Description string

	// Terminal symbols are never rewritten by the mission generator.
	Terminal bool

	// AllowChildren reports whether a room built from this symbol opens
	// its free neighbors to loosely coupled rooms.
	AllowChildren bool

	// RoomTypes lists the room classes a placed node may become. A symbol
	// without room types is skipped by placement.
	RoomTypes []string
}

// Spawnable reports whether the symbol maps to at least one room type.
func (s Symbol) Spawnable() bool { return len(s.RoomTypes) > 0 }

// Alphabet owns the symbols of one catalog.
type Alphabet struct {
	symbols []Symbol
	byName  map[string]ID
}
