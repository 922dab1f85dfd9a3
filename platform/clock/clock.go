// Package clock abstracts time sources so scheduled work can be tested with
// virtual time instead of wall-clock delays.
// This is part of the platform layer and contains no business logic.
package clock

import "time"

// Clock provides the current time and timer construction.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
	NewTimer(d time.Duration) Timer
}

// Ticker delivers ticks on C until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Timer delivers a single tick on C unless stopped first.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// Real is the wall-clock implementation.
type Real struct{}

// New returns the wall-clock Clock.
func New() Clock {
	return Real{}
}

func (Real) Now() time.Time { return time.Now() }

func (Real) NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

func (Real) NewTimer(d time.Duration) Timer {
	return realTimer{t: time.NewTimer(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

type realTimer struct {
	t *time.Timer
}

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }
