package texasholdem

import (
	"holdem-server/pkg/playable/poker/action"
	"time"
)

// Timer is a scheduled callback that can be cancelled
type Timer interface {
	// Stop prevents the timer from firing
	// It returns false if the timer already fired or was stopped
	Stop() bool
}

// Scheduler schedules callbacks for a hand
// The callback must run on the same goroutine that drives the hand
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// schedule replaces the hand's pending timer
// A callback that fires after it was replaced or the hand completed is ignored
func (h *Hand) schedule(d time.Duration, fn func()) {
	h.cancelTimer()
	if h.options.Scheduler == nil {
		return
	}

	h.timerSeq++
	seq := h.timerSeq
	h.timer = h.options.Scheduler.AfterFunc(d, func() {
		if seq != h.timerSeq || h.state == StateComplete {
			return
		}

		h.timer = nil
		fn()
	})
}

func (h *Hand) cancelTimer() {
	h.timerSeq++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

// StopTimers cancels any pending timer without changing the hand
func (h *Hand) StopTimers() {
	h.cancelTimer()
}

// HasPendingTimer returns true if a timer is waiting to fire
func (h *Hand) HasPendingTimer() bool {
	return h.timer != nil
}

func (h *Hand) scheduleTurnTimeout() {
	if h.options.TurnTimeout <= 0 {
		h.cancelTimer()
		return
	}

	seat := h.seats[h.turn]
	h.schedule(h.options.TurnTimeout, func() {
		h.turnTimedOut(seat)
	})
}

// turnTimedOut checks for the seat if it can, otherwise it folds
func (h *Hand) turnTimedOut(seat *Seat) {
	if h.turn < 0 || h.seats[h.turn] != seat {
		return
	}

	kind := action.Fold
	if h.owes(seat) == 0 {
		kind = action.Check
	}

	h.log(seat.PlayerID, "%s ran out of time", seat.Name)
	h.forceAction(seat, kind)
}

// scheduleRunout deals the next street after the street delay
func (h *Hand) scheduleRunout() {
	if h.options.Scheduler == nil {
		h.cancelTimer()
		h.completeStreet()
		return
	}

	h.schedule(h.options.StreetDelay, func() {
		h.completeStreet()
		h.listener.HandUpdated(h)
	})
}
