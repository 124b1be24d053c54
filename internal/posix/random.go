// Package posix implements the additive feedback generator behind the POSIX
// srandom/random pair, as found in glibc (TYPE_3: degree 31, separation 3).
//
// For any seed, the words returned by State.Next match glibc's
// srandom(seed) followed by successive random() calls.
package posix

// RandMax is the largest value returned by Next.
const RandMax = 1<<31 - 1

const (
	degree     = 31
	separation = 3
	discard    = degree * 10
)

// State is the generator table. The zero value behaves as if seeded with 1,
// like random() called before any srandom().
type State struct {
	table  [degree]int32
	f, r   int // front and rear indexes into table
	seeded bool
}

// New returns a State seeded with seed.
func New(seed uint32) *State {
	s := &State{}
	s.Seed(seed)
	return s
}

// Seed re-initializes the table from seed, discarding all prior state.
// Seed 0 is treated as 1.
func (s *State) Seed(seed uint32) {
	if seed == 0 {
		seed = 1
	}
	word := int32(seed)
	s.table[0] = word
	for i := 1; i < degree; i++ {
		// 16807 * word % (2^31 - 1), Schrage's method.
		hi := int64(word) / 127773
		lo := int64(word) % 127773
		word = int32(16807*lo - 2836*hi)
		if word < 0 {
			word += RandMax
		}
		s.table[i] = word
	}
	s.f, s.r = separation, 0
	s.seeded = true
	for i := 0; i < discard; i++ {
		s.Next()
	}
}

// Next advances the table and returns a word in [0, RandMax].
func (s *State) Next() int32 {
	if !s.seeded {
		s.Seed(1)
	}
	val := uint32(s.table[s.f]) + uint32(s.table[s.r])
	s.table[s.f] = int32(val)
	s.f = (s.f + 1) % degree
	s.r = (s.r + 1) % degree
	return int32(val >> 1)
}
