// Package schedule runs one independent, cadence-driven refresh unit per
// widget and fans the results into a single channel consumed by the UI
// loop. Refresh work never touches UI state: a unit only produces
// immutable Result values.
//
// Concurrency contract:
//   - At most one refresh is in flight per widget. A timer firing while
//     the previous refresh is still running is a no-op, not a queued
//     retry; the timer simply keeps ticking.
//   - Every fetch runs under a per-refresh timeout so a hung source
//     cannot permanently stall its widget's cadence.
//   - On Stop, in-flight refreshes are abandoned rather than awaited;
//     their results are dropped, never delivered.
package schedule

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/tinyland/lab/feedtui/pkg/feeds"
)

// Result carries the outcome of a single refresh from a unit goroutine
// to the UI loop. Err non-nil marks a failed refresh; Payload is only
// valid when Err is nil. Seq increases monotonically per widget.
type Result struct {
	WidgetID  string
	Seq       uint64
	Payload   any
	Err       error
	Timestamp time.Time
}

// Failed reports whether this refresh produced an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Source describes one schedulable refresh unit.
type Source struct {
	ID       string
	Fetcher  feeds.Fetcher
	Interval time.Duration
}

// Status tracks the runtime state of a single unit. Updated after every
// completed refresh.
type Status struct {
	ID          string
	LastRun     time.Time
	LastError   error
	RunCount    int64
	ErrorCount  int64
	LastLatency time.Duration
}

// Config holds scheduler-wide settings.
type Config struct {
	// FetchTimeout bounds each individual refresh. Default 15s.
	FetchTimeout time.Duration

	// MinInterval is the floor on effective refresh cadence, so a large
	// speed factor cannot turn a widget into a busy loop. Default 1s.
	MinInterval time.Duration

	// SpeedFactor, when non-nil, scales refresh cadence: a factor of
	// 1.25 shortens every interval by 20%. Re-evaluated on each timer
	// reset so newly purchased companion skills take effect without a
	// restart. Factors <= 0 are treated as 1.
	SpeedFactor func() float64

	Logger *slog.Logger
}

// Scheduler owns the refresh units. Create with New, add sources, then
// Start exactly once.
type Scheduler struct {
	cfg     Config
	results chan Result

	mu      sync.Mutex
	units   map[string]*unit
	status  map[string]*Status
	started bool
	cancel  context.CancelFunc
}

type unit struct {
	id       string
	fetcher  feeds.Fetcher
	interval time.Duration
	seq      atomic.Uint64
	inFlight atomic.Bool
	kick     chan struct{}
}

// New creates a Scheduler with the given sources. Sources with a nil
// Fetcher or non-positive Interval are skipped (tick-only widgets have
// nothing to schedule).
func New(cfg Config, sources ...Source) *Scheduler {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Scheduler{
		cfg:     cfg,
		results: make(chan Result, 64),
		units:   make(map[string]*unit),
		status:  make(map[string]*Status),
	}
	for _, src := range sources {
		if src.Fetcher == nil || src.Interval <= 0 {
			continue
		}
		s.units[src.ID] = &unit{
			id:       src.ID,
			fetcher:  src.Fetcher,
			interval: src.Interval,
			kick:     make(chan struct{}, 1),
		}
		s.status[src.ID] = &Status{ID: src.ID}
	}
	return s
}

// Results returns the channel refresh outcomes are delivered on. The
// channel is never closed; after Stop it simply goes quiet.
func (s *Scheduler) Results() <-chan Result {
	return s.results
}

// Start launches one goroutine per unit. Each unit refreshes once
// immediately, then on its own ticker. Start is a no-op if called twice.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	for _, u := range s.units {
		go s.run(ctx, u)
	}
}

// Stop halts scheduling of new refreshes. In-flight fetches are not
// awaited; any result they produce after Stop is discarded.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// RefreshNow requests an immediate out-of-band refresh for the given
// widget. Returns false if the widget has no refresh unit. A request
// while a refresh is already in flight is dropped by the in-flight
// guard, same as a timer firing.
func (s *Scheduler) RefreshNow(id string) bool {
	s.mu.Lock()
	u, ok := s.units[id]
	s.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case u.kick <- struct{}{}:
	default: // a kick is already pending
	}
	return true
}

// Status returns a copy of the runtime status for the given widget.
func (s *Scheduler) Status(id string) (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.status[id]
	if !ok {
		return Status{}, false
	}
	return *st, true
}

// HasUnit reports whether the widget has a scheduled refresh unit.
func (s *Scheduler) HasUnit(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.units[id]
	return ok
}

// run is the per-unit timer loop.
func (s *Scheduler) run(ctx context.Context, u *unit) {
	s.tryRefresh(ctx, u)

	timer := time.NewTimer(s.effectiveInterval(u))
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.tryRefresh(ctx, u)
			timer.Reset(s.effectiveInterval(u))
		case <-u.kick:
			s.tryRefresh(ctx, u)
		}
	}
}

// tryRefresh starts a fetch for u unless one is already in flight.
// Returns whether a fetch was started.
func (s *Scheduler) tryRefresh(ctx context.Context, u *unit) bool {
	if !u.inFlight.CompareAndSwap(false, true) {
		s.cfg.Logger.Debug("refresh skipped, previous still in flight", "widget", u.id)
		return false
	}

	go func() {
		defer u.inFlight.Store(false)

		fctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()

		start := time.Now()
		payload, err := u.fetcher.Fetch(fctx)
		latency := time.Since(start)

		res := Result{
			WidgetID:  u.id,
			Seq:       u.seq.Add(1),
			Payload:   payload,
			Err:       err,
			Timestamp: time.Now(),
		}
		if err != nil {
			s.cfg.Logger.Debug("refresh failed", "widget", u.id, "error", err, "latency", latency)
		}
		s.recordStatus(u.id, err, latency)

		if ctx.Err() != nil {
			// Shut down while fetching: drop the result entirely.
			return
		}
		select {
		case s.results <- res:
		case <-ctx.Done():
			// Loop has exited; abandon the result so nothing can mutate
			// state post-shutdown.
		}
	}()
	return true
}

func (s *Scheduler) recordStatus(id string, err error, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.status[id]
	if !ok {
		return
	}
	st.LastRun = time.Now()
	st.LastLatency = latency
	st.RunCount++
	st.LastError = err
	if err != nil {
		st.ErrorCount++
	}
}

// effectiveInterval applies the speed factor to u's base interval,
// clamped to MinInterval.
func (s *Scheduler) effectiveInterval(u *unit) time.Duration {
	d := u.interval
	if s.cfg.SpeedFactor != nil {
		if f := s.cfg.SpeedFactor(); f > 0 {
			d = time.Duration(float64(d) / f)
		}
	}
	if d < s.cfg.MinInterval {
		d = s.cfg.MinInterval
	}
	return d
}
