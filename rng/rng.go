// Package rng - deterministic random streams shared by every generation stage.
//
// A dungeon run owns exactly one *rand.Rand. Mission rewriting, room
// placement and tile replacement all draw from it in a fixed order, so the
// same seed and the same catalog reproduce the same dungeon.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a stream across
//     goroutines; use Derive to give each concurrent run its own stream.
package rng

import "math/rand"

// DefaultSeed is the fixed seed used when callers pass seed==0.
const DefaultSeed int64 = 1

// FromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func FromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier into a new seed
// with a SplitMix64 finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// Derive creates an independent deterministic stream from base and a
// stream identifier. base.Int63() is consumed once; a nil base uses
// DefaultSeed as the parent.
//
// Complexity: O(1).
func Derive(base *rand.Rand, stream uint64) *rand.Rand {
	parent := DefaultSeed
	if base != nil {
		parent = base.Int63()
	}
	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}

// Fraction draws a uniform value in [0,1). A nil stream uses DefaultSeed.
func Fraction(r *rand.Rand) float64 {
	if r == nil {
		r = FromSeed(0)
	}
	return r.Float64()
}

// Pick draws a uniform index in [0,n). It returns -1 for n <= 0 without
// consuming from the stream.
func Pick(r *rand.Rand, n int) int {
	if n <= 0 {
		return -1
	}
	if r == nil {
		r = FromSeed(0)
	}
	return r.Intn(n)
}
