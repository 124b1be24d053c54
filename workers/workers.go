// Package workers runs a function on several goroutines, each holding its own
// seeded generator, and collects the results in worker order.
//
// With WithShared, every worker instead reseeds and draws from one shared
// generator. That mode exists to observe how concurrent users of a single
// generator interfere with each other; its results are not reproducible.
package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"slices"
	"sync"

	"github.com/alaingilbert/seedrand"
	"github.com/alaingilbert/seedrand/internal/mtx"
	isync "github.com/alaingilbert/seedrand/internal/sync"
	"github.com/alaingilbert/seedrand/internal/utils"
	"github.com/google/uuid"
)

// ErrWorkerPanic is reported for a worker whose function panicked.
var ErrWorkerPanic = errors.New("worker panicked")

// ErrInvalidWorkerCount is returned when Run is asked for fewer than one worker.
var ErrInvalidWorkerCount = errors.New("worker count must be positive")

// WorkerID ...
type WorkerID string

// Worker is handed to the function run by each goroutine.
type Worker struct {
	ID    WorkerID
	Index int
	Seed  int32
	// Rand is owned by this worker unless the pool was built WithShared.
	Rand seedrand.Random
}

// Result is the outcome of one worker.
type Result[T any] struct {
	WorkerID WorkerID
	Index    int
	Seed     int32
	Value    T
	Err      error
}

// SeedFunc returns the seed of the worker at index.
type SeedFunc func(index int) int32

// DefaultSeedFunc seeds worker i with i*12345.
func DefaultSeedFunc(index int) int32 {
	return int32(index) * 12345
}

// Config ...
type Config struct {
	Logger   *log.Logger
	SeedFunc SeedFunc
	Shared   seedrand.Random
}

// Option ...
type Option func(*Config)

// WithLogger overrides the logger used to report failing workers.
func WithLogger(logger *log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithSeedFunc overrides how worker seeds are chosen.
func WithSeedFunc(fn SeedFunc) Option {
	return func(c *Config) {
		c.SeedFunc = fn
	}
}

// WithShared makes every worker use r instead of a generator of its own.
// Each worker calls r.SetSeed with its seed before running.
func WithShared(r seedrand.Random) Option {
	return func(c *Config) {
		c.Shared = r
	}
}

// Pool spawns workers. A Pool may run several batches, also concurrently.
type Pool struct {
	logger   *log.Logger
	seedFunc SeedFunc
	shared   seedrand.Random
	live     isync.Map[WorkerID, *Worker]
}

// New returns a Pool.
func New(opts ...Option) *Pool {
	cfg := utils.BuildConfig(opts)
	seedFunc := cfg.SeedFunc
	if seedFunc == nil {
		seedFunc = DefaultSeedFunc
	}
	return &Pool{
		logger:   utils.Or(cfg.Logger, log.New(os.Stderr, "workers ", log.LstdFlags)),
		seedFunc: seedFunc,
		shared:   cfg.Shared,
	}
}

// Worker returns a currently running worker.
func (p *Pool) Worker(id WorkerID) (*Worker, bool) {
	return p.live.Load(id)
}

// Running returns the workers currently running, in no particular order.
func (p *Pool) Running() []*Worker {
	return p.live.Values()
}

// Run starts n workers executing fn and waits for all of them. Results are
// ordered by worker index. The returned error joins every worker error.
func Run[T any](ctx context.Context, p *Pool, n int, fn func(context.Context, *Worker) (T, error)) ([]Result[T], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidWorkerCount, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var results mtx.RWMtxSlice[Result[T]]
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		w := p.newWorker(i)
		go func() {
			defer wg.Done()
			results.Append(runWorker(ctx, p, w, fn))
		}()
	}
	wg.Wait()

	out := results.Clone()
	slices.SortFunc(out, func(a, b Result[T]) int { return a.Index - b.Index })
	var errs []error
	for _, r := range out {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return out, errors.Join(errs...)
}

func (p *Pool) newWorker(index int) *Worker {
	seed := p.seedFunc(index)
	w := &Worker{
		ID:    WorkerID(uuid.New().String()),
		Index: index,
		Seed:  seed,
	}
	if p.shared != nil {
		w.Rand = p.shared
	} else {
		w.Rand = seedrand.NewWithSeed(seed)
	}
	return w
}

func runWorker[T any](ctx context.Context, p *Pool, w *Worker, fn func(context.Context, *Worker) (T, error)) (res Result[T]) {
	res = Result[T]{WorkerID: w.ID, Index: w.Index, Seed: w.Seed}
	p.live.Store(w.ID, w)
	defer p.live.Delete(w.ID)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Printf("worker %d (%s) panicked: %v\n%s", w.Index, w.ID, r, debug.Stack())
			res.Err = fmt.Errorf("%w: worker %d: %v", ErrWorkerPanic, w.Index, r)
		}
	}()
	if p.shared != nil {
		w.Rand.SetSeed(w.Seed)
	}
	res.Value, res.Err = fn(ctx, w)
	if res.Err != nil {
		p.logger.Printf("worker %d (%s) failed: %v", w.Index, w.ID, res.Err)
		res.Err = fmt.Errorf("worker %d: %w", w.Index, res.Err)
	}
	return res
}

// Draw returns a worker function taking count values from the worker's
// generator with next.
func Draw[T any](count int, next func(seedrand.Random) T) func(context.Context, *Worker) ([]T, error) {
	return func(ctx context.Context, w *Worker) ([]T, error) {
		out := make([]T, 0, count)
		for i := 0; i < count; i++ {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			out = append(out, next(w.Rand))
		}
		return out, nil
	}
}
