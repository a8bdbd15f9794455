package symbol

import (
	"fmt"
	"sort"
)

// NewAlphabet returns an empty Alphabet.
func NewAlphabet() *Alphabet {
	return &Alphabet{byName: make(map[string]ID)}
}

// Add stores s and returns its ID. s.ID is ignored and overwritten.
// RoomTypes is copied so later mutation by the caller has no effect.
// Complexity: O(len(RoomTypes)).
func (a *Alphabet) Add(s Symbol) (ID, error) {
	if s.Name == "" {
		return None, ErrEmptyName
	}
	if _, ok := a.byName[s.Name]; ok {
		return None, fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
	}
	s.ID = ID(len(a.symbols) + 1)
	s.RoomTypes = append([]string(nil), s.RoomTypes...)
	a.symbols = append(a.symbols, s)
	a.byName[s.Name] = s.ID

	return s.ID, nil
}

// MustAdd is Add for static tables; it panics on error.
func (a *Alphabet) MustAdd(s Symbol) ID {
	id, err := a.Add(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Get returns the Symbol for id.
func (a *Alphabet) Get(id ID) (Symbol, bool) {
	if id <= None || int(id) > len(a.symbols) {
		return Symbol{}, false
	}
	return a.symbols[id-1], true
}

// Has reports whether id belongs to the alphabet.
func (a *Alphabet) Has(id ID) bool {
	return id > None && int(id) <= len(a.symbols)
}

// Lookup returns the ID registered under name.
func (a *Alphabet) Lookup(name string) (ID, error) {
	id, ok := a.byName[name]
	if !ok {
		return None, fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
	}
	return id, nil
}

// MustLookup is Lookup that panics on unknown names. Use it for names
// fixed at compile time.
func (a *Alphabet) MustLookup(name string) ID {
	id, err := a.Lookup(name)
	if err != nil {
		panic(err)
	}
	return id
}

// Name returns the name of id, or "?" for unknown IDs.
func (a *Alphabet) Name(id ID) string {
	s, ok := a.Get(id)
	if !ok {
		return "?"
	}
	return s.Name
}

// IsTerminal reports whether id is a terminal symbol. Unknown IDs are
// treated as terminal so they are never rewritten.
func (a *Alphabet) IsTerminal(id ID) bool {
	s, ok := a.Get(id)
	return !ok || s.Terminal
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int { return len(a.symbols) }

// All returns a copy of every Symbol in ID order.
func (a *Alphabet) All() []Symbol {
	out := make([]Symbol, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// Names returns all symbol names sorted lexicographically.
func (a *Alphabet) Names() []string {
	names := make([]string, 0, len(a.byName))
	for n := range a.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
