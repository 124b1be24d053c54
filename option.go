package seedrand

import (
	"github.com/alaingilbert/seedrand/internal/utils"
	"github.com/jonboulle/clockwork"
)

// Config holds the construction parameters of a generator.
type Config struct {
	Seed  *int32          // Explicit seed, nil to derive one from Clock
	Clock clockwork.Clock // Time source for the default seed
}

// Option represents a modification to the default behavior of a generator.
type Option func(*Config)

// WithSeed sets the initial seed instead of deriving it from the clock.
func WithSeed(seed int32) Option {
	return func(c *Config) {
		c.Seed = utils.Ptr(seed)
	}
}

// WithClock overrides the time source used to derive the default seed.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

func (c *Config) initialSeed() int32 {
	if c.Seed != nil {
		return *c.Seed
	}
	return TimeSeed(utils.Or(c.Clock, clockwork.NewRealClock()))
}

// TimeSeed derives a seed from the low 32 bits of the clock's current time in
// nanoseconds. It is a low-entropy default: two generators created within the
// same clock tick get the same seed.
func TimeSeed(clock clockwork.Clock) int32 {
	return int32(clock.Now().UnixNano())
}
