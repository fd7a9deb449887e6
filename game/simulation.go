package game

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-torus/model"
	"github.com/sheikhrachel/go-gol-torus/utils"
)

// Simulation owns the live grid and advances it one generation per tick,
// handing every new generation to its sinks
type Simulation struct {
	grid       *model.Grid
	generation int
	pool       *model.GridPool
	parallel   bool

	interval            time.Duration
	maxGenerations      int
	stagnationThreshold int

	sinks   []Sink
	stats   *utils.Stats
	history history

	status        Status
	stagnantCount int
	started       bool
	lastTick      time.Time
}

// New creates a simulation starting from grid. The simulation takes
// ownership of grid.
func New(config utils.Config, grid *model.Grid, sinks ...Sink) *Simulation {
	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}

	return &Simulation{
		grid:                grid,
		pool:                pool,
		parallel:            config.UseParallel,
		interval:            config.TickInterval(),
		maxGenerations:      config.MaxGenerations,
		stagnationThreshold: config.StagnationThreshold,
		sinks:               sinks,
		stats:               utils.NewStats(),
		status:              StatusActive,
	}
}

// AddSink registers another consumer; it receives generations from the next publish on
func (s *Simulation) AddSink(sink Sink) {
	s.sinks = append(s.sinks, sink)
}

// Grid returns the current generation. It stays valid until the next Tick.
func (s *Simulation) Grid() *model.Grid {
	return s.grid
}

// Generation returns how many ticks have been applied
func (s *Simulation) Generation() int {
	return s.generation
}

// Status returns the population status of the current generation
func (s *Simulation) Status() Status {
	return s.status
}

// Stats returns the running performance statistics
func (s *Simulation) Stats() *utils.Stats {
	return s.stats
}

// Interval returns the configured delay between ticks
func (s *Simulation) Interval() time.Duration {
	return s.interval
}

// Start publishes the initial generation. Calling it again is a no-op.
func (s *Simulation) Start() error {
	if s.started {
		return nil
	}
	s.started = true
	s.lastTick = time.Now()
	s.observe()
	return s.publish()
}

// Tick computes the next generation, replaces the live grid with it and
// publishes it
func (s *Simulation) Tick() error {
	if !s.started {
		if err := s.Start(); err != nil {
			return err
		}
	}

	var next *model.Grid
	if s.parallel {
		next = model.StepParallel(s.grid, s.pool)
	} else {
		next = model.Step(s.grid)
	}

	model.GridToPool(s.grid, s.pool)
	s.grid = next
	s.generation++

	now := time.Now()
	s.stats.Update(s.generation, s.grid.CountLivingCells(), now.Sub(s.lastTick))
	s.lastTick = now

	s.observe()
	return s.publish()
}

// Done reports whether the run limits have been reached
func (s *Simulation) Done() bool {
	if s.maxGenerations > 0 && s.generation >= s.maxGenerations {
		return true
	}
	return s.stagnationThreshold > 0 && s.stagnantCount >= s.stagnationThreshold
}

// Run publishes the initial generation, then ticks once per interval until
// ctx is cancelled or Done reports true. Cancellation is not an error.
func (s *Simulation) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for !s.Done() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Tick(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink that holds resources
func (s *Simulation) Close() error {
	var first error
	for _, sink := range s.sinks {
		c, ok := sink.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = errors.Wrap(err, "[Simulation.Close] failed to close sink")
		}
	}
	return first
}

// observe updates the status from the current grid
func (s *Simulation) observe() {
	stagnant := s.history.observe(s.grid)
	if stagnant {
		s.stagnantCount++
	} else {
		s.stagnantCount = 0
	}

	switch {
	case s.grid.CountLivingCells() == 0:
		s.status = StatusExtinct
	case stagnant:
		s.status = StatusStagnant
	default:
		s.status = StatusActive
	}
}

func (s *Simulation) publish() error {
	for _, sink := range s.sinks {
		if err := sink.Consume(s.generation, s.grid); err != nil {
			return errors.Wrapf(err, "[Simulation.publish] sink failed at generation %d", s.generation)
		}
	}
	return nil
}
