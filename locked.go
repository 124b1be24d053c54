package seedrand

import (
	"sync"

	"github.com/alaingilbert/seedrand/internal/mtx"
)

// Locked is a Generator guarded by a mutex. Each method is atomic: the two
// draws of NextLong and the retries of NextIntN never interleave with other
// callers. The zero value is ready to use and behaves like a zero Generator.
type Locked struct {
	gen mtx.Mtx[*Generator]
}

// NewLocked returns a Locked generator built with the same options as New.
func NewLocked(opts ...Option) *Locked {
	l := &Locked{}
	l.gen.Set(New(opts...))
	return l
}

// With runs clb with exclusive access to the underlying generator, so a whole
// sequence of draws can be taken without interference.
func (l *Locked) With(clb func(g *Generator)) {
	l.gen.With(func(v **Generator) {
		if *v == nil {
			*v = &Generator{}
		}
		clb(*v)
	})
}

// Seed returns the last seed written.
func (l *Locked) Seed() (out int32) {
	l.With(func(g *Generator) { out = g.Seed() })
	return
}

// SetSeed reseeds the generator. Every caller sharing l observes the new
// sequence from its next draw on.
func (l *Locked) SetSeed(seed int32) {
	l.With(func(g *Generator) { g.SetSeed(seed) })
}

// NextInt returns a value in [0, RandMax].
func (l *Locked) NextInt() (out int32) {
	l.With(func(g *Generator) { out = g.NextInt() })
	return
}

// NextLong returns two consecutive draws concatenated, high word first.
func (l *Locked) NextLong() (out int64) {
	l.With(func(g *Generator) { out = g.NextLong() })
	return
}

// NextIntN returns a value uniformly distributed in [0, bound).
func (l *Locked) NextIntN(bound int32) (out int32, err error) {
	l.With(func(g *Generator) { out, err = g.NextIntN(bound) })
	return
}

// Uint64 makes Locked a math/rand/v2 Source, see Generator.Uint64.
func (l *Locked) Uint64() (out uint64) {
	l.With(func(g *Generator) { out = g.Uint64() })
	return
}

//-----------------------------------------------------------------------------

// Default returns the process-wide generator used by the package-level
// functions. It is created on first use and seeded from the current time.
func Default() *Locked { return defaultGen() }

var defaultGen = sync.OnceValue(func() *Locked { return NewLocked() })

// Seed returns the seed of the default generator.
func Seed() int32 { return Default().Seed() }

// SetSeed reseeds the default generator. Every caller sharing it observes the
// new sequence from its next draw on.
func SetSeed(seed int32) { Default().SetSeed(seed) }

// NextInt draws from the default generator.
func NextInt() int32 { return Default().NextInt() }

// NextIntN draws a bounded value from the default generator.
func NextIntN(bound int32) (int32, error) { return Default().NextIntN(bound) }

// NextLong draws a 64-bit value from the default generator.
func NextLong() int64 { return Default().NextLong() }
