// Package seedrand provides a deterministic, seedable pseudo-random number
// generator. For a given seed it yields the same raw sequence as the POSIX
// srandom/random pair (glibc flavor), so every value is reproducible by
// setting the seed again.
//
// Three flavors are available:
//   - Generator is unsynchronized and meant to be owned by one goroutine.
//     Sharing one between goroutines without a lock is the legacy "single
//     shared generator" mode: concurrent draws race on the same state.
//   - Locked guards a Generator with a mutex and is safe to share.
//   - The package-level functions use a process-wide Locked instance,
//     created and time-seeded on first use.
//
// None of them is suitable for cryptographic use.
package seedrand

import (
	"errors"
	"fmt"

	"github.com/alaingilbert/seedrand/internal/posix"
	"github.com/alaingilbert/seedrand/internal/utils"
)

// RandMax is the largest value returned by NextInt.
const RandMax = posix.RandMax

// ErrInvalidArgument is returned by NextIntN when bound is not positive.
var ErrInvalidArgument = errors.New("invalid argument")

// Random is the capability shared by every generator flavor.
type Random interface {
	// Seed returns the last seed written.
	Seed() int32
	// SetSeed stores seed and restarts the sequence from it.
	SetSeed(seed int32)
	// NextInt returns a value in [0, RandMax].
	NextInt() int32
	// NextIntN returns a value uniformly distributed in [0, bound).
	NextIntN(bound int32) (int32, error)
	// NextLong returns two draws concatenated, high word first.
	NextLong() int64
}

var (
	_ Random = (*Generator)(nil)
	_ Random = (*Locked)(nil)
)

// Generator is a seeded pseudo-random number generator. It is not safe for
// concurrent use. The zero value has seed 0, which yields the same sequence as
// seed 1.
type Generator struct {
	seed  int32
	state posix.State
}

// New returns a Generator. Without WithSeed, the seed is derived from the
// current time (see TimeSeed).
func New(opts ...Option) *Generator {
	cfg := utils.BuildConfig(opts)
	g := &Generator{}
	g.SetSeed(cfg.initialSeed())
	return g
}

// NewWithSeed is a shortcut for New(WithSeed(seed)).
func NewWithSeed(seed int32) *Generator {
	return New(WithSeed(seed))
}

// Seed returns the last seed written.
func (g *Generator) Seed() int32 { return g.seed }

// SetSeed stores seed and restarts the sequence from it.
func (g *Generator) SetSeed(seed int32) {
	g.seed = seed
	g.reseed(seed)
}

func (g *Generator) reseed(seed int32) {
	g.state.Seed(uint32(seed))
}

func (g *Generator) draw() int32 {
	return g.state.Next()
}

// NextInt returns the next raw draw, in [0, RandMax].
func (g *Generator) NextInt() int32 { return g.draw() }

// NextLong returns two consecutive draws concatenated, high word first.
func (g *Generator) NextLong() int64 {
	hi := int64(g.draw())
	lo := int64(g.draw())
	return hi<<32 + lo
}

// NextIntN returns a value uniformly distributed in [0, bound). Powers of two
// take a single draw; other bounds reject draws from the biased tail.
func (g *Generator) NextIntN(bound int32) (int32, error) {
	if bound <= 0 {
		return 0, fmt.Errorf("%w: bound must be positive, got %d", ErrInvalidArgument, bound)
	}
	if isPowerOfTwo(bound) {
		return int32((int64(bound) * int64(g.draw())) >> 31), nil
	}
	for {
		r := g.draw()
		m := r % bound
		// r - m + (bound - 1) wraps negative when r lies in the incomplete
		// last block of [0, RandMax], which would favor small values.
		if r-m+(bound-1) >= 0 {
			return m, nil
		}
	}
}

// Uint64 returns 64 pseudo-random bits built from three draws. It makes
// Generator a math/rand/v2 Source.
func (g *Generator) Uint64() uint64 {
	a := uint64(g.draw())
	b := uint64(g.draw())
	c := uint64(g.draw())
	return a<<33 | b<<2 | c&3
}

func isPowerOfTwo(n int32) bool {
	return n&-n == n
}
