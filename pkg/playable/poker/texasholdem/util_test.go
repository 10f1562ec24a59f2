package texasholdem

import (
	"fmt"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/action"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *testTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}

	t.stopped = true
	return true
}

// testScheduler only fires timers when told to
type testScheduler struct {
	now    time.Duration
	timers []*testTimer
}

func (s *testScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &testTimer{at: s.now + d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *testScheduler) pending() []*testTimer {
	pending := make([]*testTimer, 0)
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			pending = append(pending, t)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].at < pending[j].at
	})

	return pending
}

// advance fires every timer due within d
func (s *testScheduler) advance(d time.Duration) {
	until := s.now + d
	for {
		pending := s.pending()
		if len(pending) == 0 || pending[0].at > until {
			break
		}

		t := pending[0]
		s.now = t.at
		t.fired = true
		t.fn()
	}

	s.now = until
}

type testListener struct {
	updates   int
	completes int
	logs      []string
	onUpdate  func(h *Hand)
}

func (t *testListener) HandUpdated(h *Hand) {
	t.updates++
	if t.onUpdate != nil {
		t.onUpdate(h)
	}
}

func (t *testListener) HandLog(messages ...*playable.LogMessage) {
	for _, m := range messages {
		t.logs = append(t.logs, m.Message)
	}
}

func (t *testListener) HandComplete(*Hand) {
	t.completes++
}

func newTestSeats(stacks ...int) []*Seat {
	seats := make([]*Seat, len(stacks))
	for i, stack := range stacks {
		seats[i] = NewSeat(fmt.Sprintf("p%d", i+1), fmt.Sprintf("c%d", i+1), int64(i+1), stack)
	}

	return seats
}

// dealOrder returns the cards in the order a hand deals them when each seat
// is dealt in
func dealOrder(dealer int, holes []string, board string) []deck.Card {
	n := len(holes)
	cards := make([]deck.Card, 0, n*2+5)
	for round := 0; round < 2; round++ {
		for j := 1; j <= n; j++ {
			cards = append(cards, deck.CardsFromString(holes[(dealer+j)%n])[round])
		}
	}

	return append(cards, deck.CardsFromString(board)...)
}

type handFixture struct {
	hand      *Hand
	seats     []*Seat
	listener  *testListener
	scheduler *testScheduler
}

func (f *handFixture) chips() int {
	total := f.hand.Pot()
	for _, s := range f.seats {
		total += s.Stack()
	}

	return total
}

func (f *handFixture) act(t *testing.T, clientID string, kind string, amount ...int) {
	t.Helper()

	amt := 0
	if len(amount) == 1 {
		amt = amount[0]
	}

	require.NoError(t, f.hand.Act(clientID, actionFromString(t, kind), amt))
}

func (f *handFixture) turn() string {
	if turn := f.hand.Turn(); turn != nil {
		return turn.ClientID
	}

	return ""
}

func setupHand(t *testing.T, opts Options, rotation int, holes []string, board string, stacks ...int) *handFixture {
	t.Helper()

	seats := newTestSeats(stacks...)
	d := deck.New()
	if holes != nil {
		d.Stack(dealOrder(rotation%len(holes), holes, board)...)
	}

	listener := &testListener{}
	opts.Listener = listener

	h, err := NewHand(seats, rotation, d, opts)
	require.NoError(t, err)

	f := &handFixture{
		hand:     h,
		seats:    seats,
		listener: listener,
	}

	if s, ok := opts.Scheduler.(*testScheduler); ok {
		f.scheduler = s
	}

	start := f.chips()
	listener.onUpdate = func(h *Hand) {
		assert.Equal(t, start, f.chips(), "chips must be conserved")
		if turn := h.Turn(); turn != nil {
			assert.True(t, turn.canAct(), "turn is on %s with status %s", turn.Name, turn.Status())
		}
	}

	require.NoError(t, h.Start())
	return f
}

func noTimerOptions() Options {
	opts := DefaultOptions()
	opts.TurnTimeout = 0
	return opts
}

func actionFromString(t *testing.T, s string) action.Action {
	t.Helper()

	a, err := action.FromString(s)
	require.NoError(t, err)
	return a
}
