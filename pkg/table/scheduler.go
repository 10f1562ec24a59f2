package table

import (
	"holdem-server/pkg/playable/poker/texasholdem"
	"sort"
	"time"
)

// ClockScheduler runs timers with time.AfterFunc
// Callbacks run on their own goroutine, so the caller must serialize them
// with the rest of the table's work
type ClockScheduler struct{}

// AfterFunc calls f after d
func (ClockScheduler) AfterFunc(d time.Duration, f func()) texasholdem.Timer {
	return time.AfterFunc(d, f)
}

type manualTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (m *manualTimer) Stop() bool {
	if m.stopped || m.fired {
		return false
	}

	m.stopped = true
	return true
}

// ManualScheduler only fires timers when it is advanced
// It is used by tests and simulations to control time
type ManualScheduler struct {
	now    time.Duration
	timers []*manualTimer
}

// AfterFunc schedules f to run once the scheduler has advanced by d
func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) texasholdem.Timer {
	t := &manualTimer{at: m.now + d, fn: f}
	m.timers = append(m.timers, t)
	return t
}

// Pending returns how many timers have not fired or been stopped
func (m *ManualScheduler) Pending() int {
	return len(m.pending())
}

func (m *ManualScheduler) pending() []*manualTimer {
	pending := make([]*manualTimer, 0, len(m.timers))
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			pending = append(pending, t)
			live = append(live, t)
		}
	}

	m.timers = live
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].at < pending[j].at
	})

	return pending
}

// Advance moves time forward by d and fires every timer that comes due
// It returns the number of timers fired
func (m *ManualScheduler) Advance(d time.Duration) int {
	until := m.now + d
	fired := 0
	for {
		pending := m.pending()
		if len(pending) == 0 || pending[0].at > until {
			break
		}

		m.fire(pending[0])
		fired++
	}

	m.now = until
	return fired
}

// RunNext fires the earliest pending timer regardless of when it is due
func (m *ManualScheduler) RunNext() bool {
	pending := m.pending()
	if len(pending) == 0 {
		return false
	}

	m.fire(pending[0])
	return true
}

func (m *ManualScheduler) fire(t *manualTimer) {
	if t.at > m.now {
		m.now = t.at
	}

	t.fired = true
	t.fn()
}
