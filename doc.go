// Package lvlgen generates dungeons from a grammar: a mission graph is
// grown by rewrite rules, laid out on a 3D grid of rooms and turned into
// tiles.
//
// The pipeline is split into small packages that can be used on their own:
//
//	rng/          - seeded, derivable random streams
//	symbol/       - the symbol alphabet (terminals, nonterminals, room types)
//	statemachine/ - the coupling-aware matcher behind every rule pattern
//	grammar/      - rewrite rules and rule sets
//	mission/      - mission graphs and the generator that grows them
//	floorgrid/    - the Floors×Height×Width grid of rooms
//	placement/    - mission-to-space placement with backtracking
//	tiles/        - room tile grids and carving
//	tilepattern/  - oriented tile pattern replacement
//	catalog/      - YAML catalogs of symbols, rules and patterns
//	dungeon/      - the end-to-end pipeline
//
// Quick start:
//
//	cat, _ := catalog.Default()
//	d, err := dungeon.Generate(cat, dungeon.WithSeed(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(d.Format(cat.Legend))
//
// Determinism: every stage takes a *rand.Rand; equal seeds and equal
// catalogs give equal dungeons. Nothing is safe for concurrent use unless
// stated otherwise.
package lvlgen
