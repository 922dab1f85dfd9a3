package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock for tests. Advance moves the fake time
// forward and fires any tickers/timers whose deadlines have passed, in
// deadline order.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	waiters []*fakeWaiter
}

// NewFake creates a fake clock starting at the given time.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the current fake time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fake time forward by d, firing due waiters.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)

	for {
		next := f.nextDueLocked(target)
		if next == nil {
			break
		}
		f.now = next.deadline
		next.fireLocked(f.now)
	}

	f.now = target
	f.mu.Unlock()
}

func (f *Fake) nextDueLocked(limit time.Time) *fakeWaiter {
	live := f.waiters[:0]
	for _, w := range f.waiters {
		if !w.stopped {
			live = append(live, w)
		}
	}
	f.waiters = live

	sort.SliceStable(f.waiters, func(i, j int) bool {
		return f.waiters[i].deadline.Before(f.waiters[j].deadline)
	})

	for _, w := range f.waiters {
		if !w.deadline.After(limit) {
			return w
		}
	}
	return nil
}

// NewTicker returns a ticker driven by Advance.
func (f *Fake) NewTicker(d time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := &fakeWaiter{
		clock:    f,
		ch:       make(chan time.Time, 1),
		deadline: f.now.Add(d),
		period:   d,
	}
	f.waiters = append(f.waiters, w)
	return fakeTicker{w}
}

// NewTimer returns a one-shot timer driven by Advance.
func (f *Fake) NewTimer(d time.Duration) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := &fakeWaiter{
		clock:    f,
		ch:       make(chan time.Time, 1),
		deadline: f.now.Add(d),
	}
	f.waiters = append(f.waiters, w)
	return w
}

type fakeWaiter struct {
	clock    *Fake
	ch       chan time.Time
	deadline time.Time
	period   time.Duration // zero for one-shot timers
	stopped  bool
}

func (w *fakeWaiter) fireLocked(now time.Time) {
	select {
	case w.ch <- now:
	default:
	}
	if w.period > 0 {
		w.deadline = now.Add(w.period)
	} else {
		w.stopped = true
	}
}

func (w *fakeWaiter) C() <-chan time.Time { return w.ch }

// fakeTicker adapts fakeWaiter's Stop() bool to the Ticker interface's Stop().
type fakeTicker struct {
	*fakeWaiter
}

func (t fakeTicker) Stop() { t.fakeWaiter.Stop() }

func (w *fakeWaiter) Stop() bool {
	w.clock.mu.Lock()
	defer w.clock.mu.Unlock()
	wasActive := !w.stopped
	w.stopped = true
	return wasActive
}
