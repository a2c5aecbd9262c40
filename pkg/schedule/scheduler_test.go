package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/feedtui/pkg/feeds"
)

// testConfig returns a Config suitable for fast tests.
func testConfig() Config {
	return Config{
		FetchTimeout: time.Second,
		MinInterval:  time.Millisecond,
	}
}

// countingFetcher counts invocations and tracks the maximum number of
// concurrent Fetch calls observed.
type countingFetcher struct {
	calls   atomic.Int64
	active  atomic.Int64
	maxSeen atomic.Int64
	block   chan struct{} // if non-nil, Fetch blocks until closed
	err     error
}

func (f *countingFetcher) Fetch(ctx context.Context) (any, error) {
	f.calls.Add(1)
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		prev := f.maxSeen.Load()
		if n <= prev || f.maxSeen.CompareAndSwap(prev, n) {
			break
		}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return "payload", nil
}

func TestSchedulerDeliversResults(t *testing.T) {
	f := &countingFetcher{}
	s := New(testConfig(), Source{ID: "hn", Fetcher: f, Interval: 10 * time.Millisecond})
	s.Start(context.Background())
	defer s.Stop()

	select {
	case res := <-s.Results():
		if res.WidgetID != "hn" {
			t.Errorf("WidgetID = %q, want hn", res.WidgetID)
		}
		if res.Failed() {
			t.Errorf("unexpected failure: %v", res.Err)
		}
		if res.Payload != "payload" {
			t.Errorf("Payload = %v", res.Payload)
		}
		if res.Seq != 1 {
			t.Errorf("first Seq = %d, want 1", res.Seq)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
}

func TestSchedulerSequenceMonotonic(t *testing.T) {
	f := &countingFetcher{}
	s := New(testConfig(), Source{ID: "w", Fetcher: f, Interval: 5 * time.Millisecond})
	s.Start(context.Background())
	defer s.Stop()

	var last uint64
	for i := 0; i < 5; i++ {
		select {
		case res := <-s.Results():
			if res.Seq <= last {
				t.Fatalf("Seq %d not greater than previous %d", res.Seq, last)
			}
			last = res.Seq
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for results")
		}
	}
}

func TestSchedulerAtMostOneInFlight(t *testing.T) {
	block := make(chan struct{})
	f := &countingFetcher{block: block}
	s := New(testConfig(), Source{ID: "slow", Fetcher: f, Interval: 2 * time.Millisecond})
	s.Start(context.Background())
	defer s.Stop()

	// Let many timer firings elapse while the first fetch is blocked.
	time.Sleep(50 * time.Millisecond)
	if got := f.calls.Load(); got != 1 {
		t.Errorf("calls while blocked = %d, want 1 (timer firings must be no-ops)", got)
	}
	close(block)

	// After unblocking, the cadence resumes.
	select {
	case <-s.Results():
	case <-time.After(2 * time.Second):
		t.Fatal("no result after unblock")
	}
	if f.maxSeen.Load() > 1 {
		t.Errorf("max concurrent fetches = %d, want 1", f.maxSeen.Load())
	}
}

func TestSchedulerFailureIsResultNotCrash(t *testing.T) {
	bad := &countingFetcher{err: errors.New("api down")}
	good := &countingFetcher{}
	s := New(testConfig(),
		Source{ID: "bad", Fetcher: bad, Interval: 5 * time.Millisecond},
		Source{ID: "good", Fetcher: good, Interval: 5 * time.Millisecond},
	)
	s.Start(context.Background())
	defer s.Stop()

	seenBadFailure := false
	seenGoodSuccess := false
	deadline := time.After(2 * time.Second)
	for !seenBadFailure || !seenGoodSuccess {
		select {
		case res := <-s.Results():
			switch res.WidgetID {
			case "bad":
				if !res.Failed() {
					t.Error("expected failure result for bad fetcher")
				}
				seenBadFailure = true
			case "good":
				if res.Failed() {
					t.Errorf("good fetcher failed: %v", res.Err)
				}
				seenGoodSuccess = true
			}
		case <-deadline:
			t.Fatal("did not observe both widgets' results")
		}
	}

	st, ok := s.Status("bad")
	if !ok {
		t.Fatal("missing status for bad")
	}
	if st.ErrorCount == 0 || st.LastError == nil {
		t.Errorf("status = %+v, want recorded errors", st)
	}
}

func TestSchedulerRefreshNow(t *testing.T) {
	f := &countingFetcher{}
	// Long interval: only the initial refresh and explicit kicks fire.
	s := New(testConfig(), Source{ID: "w", Fetcher: f, Interval: time.Hour})
	s.Start(context.Background())
	defer s.Stop()

	<-s.Results() // initial refresh

	if !s.RefreshNow("w") {
		t.Fatal("RefreshNow returned false for known widget")
	}
	select {
	case res := <-s.Results():
		if res.Seq != 2 {
			t.Errorf("Seq = %d, want 2", res.Seq)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("manual refresh never completed")
	}

	if s.RefreshNow("unknown") {
		t.Error("RefreshNow should return false for unknown widget")
	}
}

func TestSchedulerRefreshNowWhileInFlightIsNoOp(t *testing.T) {
	block := make(chan struct{})
	f := &countingFetcher{block: block}
	s := New(testConfig(), Source{ID: "w", Fetcher: f, Interval: time.Hour})
	s.Start(context.Background())
	defer s.Stop()

	time.Sleep(20 * time.Millisecond) // initial fetch is now blocked
	s.RefreshNow("w")
	s.RefreshNow("w")
	time.Sleep(20 * time.Millisecond)
	close(block)

	// The blocked initial fetch completes; at most one queued kick runs
	// after it. Never more than that.
	time.Sleep(50 * time.Millisecond)
	if got := f.calls.Load(); got > 2 {
		t.Errorf("calls = %d, want at most 2 (kicks during flight must not queue up)", got)
	}
}

func TestSchedulerStopAbandonsInFlight(t *testing.T) {
	block := make(chan struct{})
	f := &countingFetcher{block: block}
	s := New(testConfig(), Source{ID: "w", Fetcher: f, Interval: time.Hour})
	s.Start(context.Background())

	time.Sleep(20 * time.Millisecond)
	s.Stop()
	close(block)

	// The in-flight fetch was cancelled or its result dropped; nothing
	// arrives post-stop once the channel drains.
	deadline := time.After(200 * time.Millisecond)
	for {
		select {
		case res := <-s.Results():
			// A result racing Stop may legitimately already be buffered;
			// it must carry the cancellation, not fresh work.
			if res.Err == nil {
				t.Errorf("post-stop result delivered with no error: %+v", res)
			}
		case <-deadline:
			return
		}
	}
}

func TestSchedulerSpeedFactorShortensInterval(t *testing.T) {
	cfg := testConfig()
	cfg.SpeedFactor = func() float64 { return 2.0 }
	s := New(cfg, Source{ID: "w", Fetcher: &countingFetcher{}, Interval: 80 * time.Millisecond})

	u := s.units["w"]
	if got := s.effectiveInterval(u); got != 40*time.Millisecond {
		t.Errorf("effectiveInterval = %v, want 40ms", got)
	}
}

func TestSchedulerSpeedFactorClampedToMin(t *testing.T) {
	cfg := testConfig()
	cfg.MinInterval = 50 * time.Millisecond
	cfg.SpeedFactor = func() float64 { return 1000 }
	s := New(cfg, Source{ID: "w", Fetcher: &countingFetcher{}, Interval: time.Minute})

	if got := s.effectiveInterval(s.units["w"]); got != 50*time.Millisecond {
		t.Errorf("effectiveInterval = %v, want MinInterval clamp", got)
	}
}

func TestSchedulerSkipsNilFetcherSources(t *testing.T) {
	s := New(testConfig(),
		Source{ID: "tickonly", Fetcher: nil, Interval: time.Second},
		Source{ID: "nointerval", Fetcher: &countingFetcher{}, Interval: 0},
	)
	if s.HasUnit("tickonly") || s.HasUnit("nointerval") {
		t.Error("sources without fetcher or interval should have no unit")
	}
}

func TestSchedulerFetchTimeoutCancelsHungFetch(t *testing.T) {
	cfg := testConfig()
	cfg.FetchTimeout = 20 * time.Millisecond
	hang := &countingFetcher{block: make(chan struct{})} // never closed
	s := New(cfg, Source{ID: "hung", Fetcher: hang, Interval: time.Hour})
	s.Start(context.Background())
	defer s.Stop()

	select {
	case res := <-s.Results():
		if !res.Failed() {
			t.Error("hung fetch should fail with timeout")
		}
		if !errors.Is(res.Err, context.DeadlineExceeded) {
			t.Errorf("err = %v, want deadline exceeded", res.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout did not fire; hung fetch stalls the widget forever")
	}

	// The cadence recovers: a manual kick starts a fresh fetch.
	if !s.RefreshNow("hung") {
		t.Fatal("RefreshNow failed")
	}
	select {
	case <-s.Results():
	case <-time.After(2 * time.Second):
		t.Fatal("widget cadence did not recover after timeout")
	}
}

var _ feeds.Fetcher = (*countingFetcher)(nil)
