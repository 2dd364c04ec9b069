// Package scene owns the live particle set and rebuilds it when the canvas
// size or the entity list changes.
package scene

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/crowdmorph/internal/interact"
	"github.com/san-kum/crowdmorph/internal/roster"
	"github.com/san-kum/crowdmorph/internal/shape"
	"github.com/san-kum/crowdmorph/internal/swarm"
)

// ErrStale is returned by Rebuild when a newer rebuild was requested before
// it finished; its result is discarded.
var ErrStale = errors.New("scene: rebuild superseded")

type Options struct {
	// Sources holds one shape per mode, in mode order.
	Sources  []shape.Source
	Entities []roster.Entity
	Stride   int
	Traits   swarm.Traits
	Seed     int64
	Logger   *log.Logger
}

type Scene struct {
	sources []shape.Source
	stride  int
	traits  swarm.Traits
	seed    int64
	log     *log.Logger

	cur atomic.Pointer[swarm.Swarm]
	gen atomic.Uint64

	// pub serializes the staleness check with the store, so a set can only
	// be published while its generation is the latest one.
	pub       sync.Mutex
	onPublish func(gen uint64)

	mu       sync.Mutex
	entities []roster.Entity
	w, h     int

	wg sync.WaitGroup
}

func New(opts Options) *Scene {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	stride := opts.Stride
	if stride <= 0 {
		stride = shape.DefaultStride
	}
	if len(opts.Sources) != interact.ModeCount {
		logger.Warn("unexpected shape count", "want", interact.ModeCount, "got", len(opts.Sources))
	}
	return &Scene{
		sources:  opts.Sources,
		stride:   stride,
		traits:   opts.Traits,
		seed:     opts.Seed,
		log:      logger,
		entities: opts.Entities,
	}
}

// Current returns the published particle set, or nil before the first
// rebuild completes. Callers load it once per frame.
func (s *Scene) Current() *swarm.Swarm {
	return s.cur.Load()
}

func (s *Scene) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

func (s *Scene) Entities() []roster.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entities
}

// Resize rebuilds in the background for a new canvas size. A size equal to
// the current one, or an empty canvas, is ignored.
func (s *Scene) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.mu.Lock()
	same := w == s.w && h == s.h && s.cur.Load() != nil
	s.mu.Unlock()
	if same {
		return
	}
	s.RebuildAsync(w, h)
}

// SetEntities replaces the entity list and rebuilds in the background at the
// current size.
func (s *Scene) SetEntities(entities []roster.Entity) {
	s.mu.Lock()
	s.entities = entities
	w, h := s.w, s.h
	s.mu.Unlock()
	s.RebuildAsync(w, h)
}

func (s *Scene) RebuildAsync(w, h int) {
	gen := s.request(w, h)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.build(context.Background(), gen, w, h); err != nil && !errors.Is(err, ErrStale) {
			s.log.Error("rebuild failed", "gen", gen, "err", err)
		}
	}()
}

// Rebuild samples every shape for a w×h canvas and publishes a fresh
// particle set, replacing the previous one wholesale.
func (s *Scene) Rebuild(ctx context.Context, w, h int) (*swarm.Swarm, error) {
	return s.build(ctx, s.request(w, h), w, h)
}

// Wait blocks until background rebuilds have finished.
func (s *Scene) Wait() {
	s.wg.Wait()
}

func (s *Scene) request(w, h int) uint64 {
	s.mu.Lock()
	s.w, s.h = w, h
	s.mu.Unlock()
	return s.gen.Add(1)
}

func (s *Scene) build(ctx context.Context, gen uint64, w, h int) (*swarm.Swarm, error) {
	start := time.Now()
	entities := s.Entities()

	shapes, err := s.sample(ctx, gen, w, h, len(entities))
	if err != nil {
		return nil, err
	}
	sw := swarm.New(entities, shapes, w, h, s.traits, s.rand(gen, -1))

	s.pub.Lock()
	if gen != s.gen.Load() {
		s.pub.Unlock()
		s.log.Debug("dropping stale rebuild", "gen", gen)
		return nil, ErrStale
	}
	if s.onPublish != nil {
		s.onPublish(gen)
	}
	s.cur.Store(sw)
	s.pub.Unlock()
	s.log.Debug("rebuilt", "gen", gen, "size", [2]int{w, h}, "particles", sw.Len(), "took", time.Since(start))
	return sw, nil
}

// sample renders all sources concurrently. A source that fails to rasterize
// still yields its center fallback; the failure is only logged.
func (s *Scene) sample(ctx context.Context, gen uint64, w, h, count int) ([]shape.Shape, error) {
	shapes := make([]shape.Shape, len(s.sources))
	g, ctx := errgroup.WithContext(ctx)
	for m, src := range s.sources {
		m, src := m, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sp := &shape.Sampler{Stride: s.stride, Rand: s.rand(gen, m)}
			pts, err := sp.Sample(src, w, h, count)
			if err != nil {
				s.log.Warn("shape fell back to center", "mode", interact.Mode(m), "err", err)
			}
			shapes[m] = pts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return shapes, nil
}

// rand derives a per-generation, per-stream source from the scene seed so a
// seeded run is reproducible.
func (s *Scene) rand(gen uint64, stream int) *rand.Rand {
	return rand.New(rand.NewSource(s.seed ^ int64(gen)<<8 ^ int64(stream+1)))
}
