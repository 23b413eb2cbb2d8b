package engine

import (
	"context"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// State is the scheduler's current phase.
type State int32

const (
	StateSampling State = iota
	StateWaiting
)

func (s State) String() string {
	switch s {
	case StateSampling:
		return "sampling"
	case StateWaiting:
		return "waiting"
	default:
		return "unknown"
	}
}

// CycleSampler runs one polling cycle with rates taken over window.
type CycleSampler interface {
	Sample(ctx context.Context, window time.Duration) Cycle
}

// SchedulerConfig holds the loop parameters.
type SchedulerConfig struct {
	Interval   time.Duration
	RowsToShow int
	Clock      Clock // defaults to SystemClock
}

// Scheduler drives Sampling -> present -> Waiting -> Sampling until its
// context is cancelled. Cycles never overlap.
//
// Timer-driven cycles take rates over the configured interval. A cycle
// started by Refresh takes them over the time elapsed since the previous
// cycle started.
type Scheduler struct {
	sampler CycleSampler
	sink    Sink
	cfg     SchedulerConfig
	log     log.FieldLogger
	state   atomic.Int32
	refresh chan struct{}

	// Owned by the Run goroutine.
	lastStart time.Time
	manual    bool
}

// NewScheduler returns a Scheduler in the Sampling state.
func NewScheduler(sampler CycleSampler, sink Sink, cfg SchedulerConfig, logger log.FieldLogger) *Scheduler {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.RowsToShow <= 0 {
		cfg.RowsToShow = DefaultRowsToShow
	}
	return &Scheduler{
		sampler: sampler,
		sink:    sink,
		cfg:     cfg,
		log:     logger,
		refresh: make(chan struct{}, 1),
	}
}

// State returns the current phase.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Refresh ends the current wait early. Requests made while sampling are
// dropped; repeated requests while waiting collapse into one.
func (s *Scheduler) Refresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Run loops until ctx is done and returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	s.setState(StateSampling)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch s.State() {
		case StateSampling:
			s.runCycle(ctx, s.nextWindow())
			// Requests made while sampling are dropped.
			s.drainRefresh()
			s.setState(StateWaiting)

		case StateWaiting:
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.cfg.Clock.After(s.cfg.Interval):
			case <-s.refresh:
				s.log.Debug("manual refresh")
				s.manual = true
			}
			s.setState(StateSampling)
		}
	}
}

// nextWindow records the start of a cycle and returns its rate window.
func (s *Scheduler) nextWindow() time.Duration {
	now := s.cfg.Clock.Now()
	window := s.cfg.Interval
	if s.manual {
		window = now.Sub(s.lastStart)
	}
	s.lastStart = now
	s.manual = false
	return window
}

func (s *Scheduler) runCycle(ctx context.Context, window time.Duration) {
	cycle := s.sampler.Sample(ctx, window)
	ranked := Rank(cycle.Rows, s.cfg.RowsToShow)

	if err := Present(s.sink, ranked, cycle, s.cfg.Clock.Now(), s.cfg.Interval); err != nil {
		s.log.WithField("cycle", cycle.Number).WithError(err).Warn("render failed")
	}
}

func (s *Scheduler) drainRefresh() {
	select {
	case <-s.refresh:
	default:
	}
}

func (s *Scheduler) setState(st State) {
	s.state.Store(int32(st))
}
