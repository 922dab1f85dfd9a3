package clock

import (
	"testing"
	"time"
)

func TestFake_TimerFiresAtDeadline(t *testing.T) {
	f := NewFake(time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC))
	timer := f.NewTimer(5 * time.Second)

	f.Advance(4 * time.Second)
	select {
	case <-timer.C():
		t.Fatal("timer fired before its deadline")
	default:
	}

	f.Advance(time.Second)
	select {
	case at := <-timer.C():
		if !at.Equal(time.Date(2026, time.September, 1, 9, 0, 5, 0, time.UTC)) {
			t.Fatalf("unexpected fire time %v", at)
		}
	default:
		t.Fatal("timer did not fire at its deadline")
	}
}

func TestFake_StoppedTimerNeverFires(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	timer := f.NewTimer(time.Second)

	if !timer.Stop() {
		t.Fatal("stopping an active timer must report true")
	}
	f.Advance(time.Minute)

	select {
	case <-timer.C():
		t.Fatal("stopped timer must not fire")
	default:
	}
}

func TestFake_TickerFiresPerPeriod(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	ticker := f.NewTicker(30 * time.Second)

	f.Advance(30 * time.Second)
	select {
	case <-ticker.C():
	default:
		t.Fatal("ticker did not deliver the first tick")
	}

	f.Advance(30 * time.Second)
	select {
	case <-ticker.C():
	default:
		t.Fatal("ticker did not deliver the second tick")
	}

	ticker.Stop()
	f.Advance(time.Minute)
	select {
	case <-ticker.C():
		t.Fatal("stopped ticker must not tick")
	default:
	}
}

func TestFake_AdvanceMovesNow(t *testing.T) {
	start := time.Unix(1000, 0)
	f := NewFake(start)

	f.Advance(90 * time.Second)
	if !f.Now().Equal(start.Add(90 * time.Second)) {
		t.Fatalf("expected now to advance by 90s, got %v", f.Now())
	}
}
