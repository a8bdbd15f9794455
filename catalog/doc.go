// Package catalog loads the static rule data of a dungeon from YAML:
// generation settings, the symbol alphabet, mission grammars, the tile
// legend and tile replacement patterns.
//
// References by name (symbols in grammars, tiles in the palette) are
// resolved at load time. An unknown name is reported with the closest
// known one:
//
//	catalog: unknown symbol: "Bos" in grammar "end" (did you mean "Boss"?)
//
// Default returns the catalog embedded in this package.
package catalog
