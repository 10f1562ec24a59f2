package table

import (
	"fmt"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/texasholdem"
	"testing"

	"github.com/stretchr/testify/require"
)

// identityGenerator leaves the deck in the order it is in
type identityGenerator struct{}

func (identityGenerator) Intn(n int) int {
	return n - 1
}

type testListener struct {
	updates int
	logs    []string
}

func (t *testListener) TableUpdated(*Table) {
	t.updates++
}

func (t *testListener) TableLog(messages ...*playable.LogMessage) {
	for _, m := range messages {
		t.logs = append(t.logs, m.Message)
	}
}

func (t *testListener) logged(message string) bool {
	for _, l := range t.logs {
		if l == message {
			return true
		}
	}

	return false
}

type testRecorder struct {
	summaries []*texasholdem.Summary
}

func (t *testRecorder) RecordHand(_ string, summary *texasholdem.Summary) {
	t.summaries = append(t.summaries, summary)
}

type tableFixture struct {
	table     *Table
	scheduler *ManualScheduler
	listener  *testListener
	recorder  *testRecorder
}

func newTestTable(t *testing.T, stacks ...int) *tableFixture {
	t.Helper()

	f := &tableFixture{
		scheduler: &ManualScheduler{},
		listener:  &testListener{},
		recorder:  &testRecorder{},
	}

	opts := DefaultOptions()
	opts.Generator = identityGenerator{}
	opts.Scheduler = f.scheduler
	opts.Listener = f.listener
	opts.Recorder = f.recorder

	tbl, err := New("table-1", opts)
	require.NoError(t, err)
	f.table = tbl

	for i, stack := range stacks {
		_, err := tbl.Join(fmt.Sprintf("p%d", i+1), fmt.Sprintf("c%d", i+1), int64(i+1), stack)
		require.NoError(t, err)
	}

	return f
}

// stack puts the cards on top of the table's deck
func (f *tableFixture) stack(cards string) {
	f.table.deck.Stack(deck.CardsFromString(cards)...)
}

func (f *tableFixture) turn() string {
	if f.table.hand == nil {
		return ""
	}

	if turn := f.table.hand.Turn(); turn != nil {
		return turn.ClientID
	}

	return ""
}
