package table

import (
	"holdem-server/pkg/playable/poker/texasholdem"

	"github.com/sirupsen/logrus"
)

// HandRecorder keeps the history of completed hands
type HandRecorder interface {
	RecordHand(tableID string, summary *texasholdem.Summary)
}

// LogRecorder writes each completed hand to the log
type LogRecorder struct {
	Logger logrus.FieldLogger
}

// RecordHand logs the summary
func (l *LogRecorder) RecordHand(tableID string, summary *texasholdem.Summary) {
	log := l.Logger.WithFields(logrus.Fields{
		"table":   tableID,
		"hand":    summary.ID,
		"pot":     summary.Pot,
		"board":   summary.Community.String(),
		"aborted": summary.Aborted,
	})

	for _, s := range summary.Seats {
		log = log.WithField(s.Name, s.End-s.Start)
	}

	log.Info("hand complete")
}

// handComplete records the hand and schedules the next one
func (t *Table) handComplete(h *texasholdem.Hand) {
	t.lastSummary = h.Summary()
	t.recorder.RecordHand(t.ID, t.lastSummary)
	t.deck.Shuffle()

	for _, s := range t.seats {
		if s.Stack() == 0 && h.HasSeat(s.ClientID) {
			t.log(s.PlayerID, "%s is out of chips", s.Name)
		}
	}

	if t.closed {
		return
	}

	t.scheduleNextHand()
}

// scheduleNextHand leaves the finished hand on display for NextHandDelay
// and then deals again if there are still enough players
func (t *Table) scheduleNextHand() {
	t.cancelNextHand()

	t.nextHandSeq++
	seq := t.nextHandSeq
	t.nextHand = t.options.Scheduler.AfterFunc(t.options.NextHandDelay, func() {
		if seq != t.nextHandSeq || t.closed {
			return
		}

		t.nextHand = nil
		t.clearHand()

		if t.begun && t.eligibleCount() >= 2 {
			if err := t.StartHand(); err != nil {
				t.logger.WithError(err).Error("could not start hand")
			}
		} else if t.begun {
			t.log(0, "Waiting for more players")
		}

		t.listener.TableUpdated(t)
	})
}

func (t *Table) cancelNextHand() {
	t.nextHandSeq++
	if t.nextHand != nil {
		t.nextHand.Stop()
		t.nextHand = nil
	}
}

// clearHand removes the finished hand and its cards from the seats
func (t *Table) clearHand() {
	if t.hand == nil || !t.hand.IsComplete() {
		return
	}

	t.hand.StopTimers()
	t.hand = nil
	for _, s := range t.seats {
		s.ResetForHand()
	}
}
