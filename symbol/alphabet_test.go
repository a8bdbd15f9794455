package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlgen/symbol"
)

func TestAlphabet_AddAndLookup(t *testing.T) {
	a := symbol.NewAlphabet()
	start, err := a.Add(symbol.Symbol{Name: "Start", AllowChildren: true})
	require.NoError(t, err)
	boss, err := a.Add(symbol.Symbol{Name: "Boss", Terminal: true, RoomTypes: []string{"arena"}})
	require.NoError(t, err)

	assert.Equal(t, symbol.ID(1), start)
	assert.Equal(t, symbol.ID(2), boss)
	assert.Equal(t, 2, a.Len())

	id, err := a.Lookup("Boss")
	require.NoError(t, err)
	assert.Equal(t, boss, id)

	s, ok := a.Get(boss)
	require.True(t, ok)
	assert.True(t, s.Terminal)
	assert.True(t, s.Spawnable())
	assert.Equal(t, []string{"Boss", "Start"}, a.Names())
	assert.False(t, a.IsTerminal(start))
	assert.True(t, a.IsTerminal(symbol.ID(99)), "unknown IDs are never rewritten")
}

func TestAlphabet_Errors(t *testing.T) {
	a := symbol.NewAlphabet()
	_, err := a.Add(symbol.Symbol{})
	assert.ErrorIs(t, err, symbol.ErrEmptyName)

	a.MustAdd(symbol.Symbol{Name: "Key"})
	_, err = a.Add(symbol.Symbol{Name: "Key"})
	assert.ErrorIs(t, err, symbol.ErrDuplicateName)

	_, err = a.Lookup("Lock")
	assert.ErrorIs(t, err, symbol.ErrUnknownSymbol)
	assert.Panics(t, func() { a.MustLookup("Lock") })
	assert.Equal(t, symbol.ID(1), a.MustLookup("Key"))

	_, ok := a.Get(symbol.None)
	assert.False(t, ok)
	assert.Equal(t, "?", a.Name(symbol.None))
}

func TestAlphabet_RoomTypesCopied(t *testing.T) {
	a := symbol.NewAlphabet()
	types := []string{"cellar"}
	id := a.MustAdd(symbol.Symbol{Name: "Room", RoomTypes: types})
	types[0] = "changed"

	s, _ := a.Get(id)
	assert.Equal(t, []string{"cellar"}, s.RoomTypes)
}
