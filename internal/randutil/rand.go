// Package randutil provides the random sources used for shuffling decks.
//
// A non-empty seed string always produces the same stream, so a lobby
// configured with a seed deals the same hands every time.
package randutil

import (
	rand "math/rand/v2"
	"unicode/utf16"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15

	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619

	// zeroStateFallback replaces a zero xorshift state, which would only ever yield zero.
	zeroStateFallback uint32 = 88675123
)

// Source yields draws in [0,1).
type Source interface {
	Float64() float64
}

// FromSeed returns a deterministic xorshift source for a non-empty seed.
// An empty seed falls back to a generator seeded from entropy.
func FromSeed(seed string) Source {
	if seed == "" {
		return New(rand.Int64())
	}
	return NewXorShift32(HashSeed(seed))
}

// HashSeed folds seed into 32 bits with FNV-1a over its UTF-16 code units.
// Seeds outside the BMP contribute two units each.
func HashSeed(seed string) uint32 {
	h := fnvOffset32
	for _, unit := range utf16.Encode([]rune(seed)) {
		h ^= uint32(unit)
		h *= fnvPrime32
	}
	return h
}

// XorShift32 is Marsaglia's 32-bit xorshift generator.
type XorShift32 struct {
	x uint32
}

// NewXorShift32 creates a generator from state, substituting a fixed
// constant for zero.
func NewXorShift32(state uint32) *XorShift32 {
	if state == 0 {
		state = zeroStateFallback
	}
	return &XorShift32{x: state}
}

// Uint32 advances the generator and returns the new state.
func (g *XorShift32) Uint32() uint32 {
	x := g.x
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	g.x = x
	return x
}

// Float64 maps the next state onto [0,1).
func (g *XorShift32) Float64() float64 {
	return float64(g.Uint32()) / (1 << 32)
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// It backs unseeded shuffles and tests that want a reproducible stream
// without going through a seed string.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
