package table

import (
	"errors"
	"fmt"
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/texasholdem"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synacor/argon2id"
)

func TestNew(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.SmallBlind = 0
	_, err := New("t", opts)
	a.EqualError(err, "small blind must be > 0")

	opts = DefaultOptions()
	opts.BigBlind = 5
	_, err = New("t", opts)
	a.EqualError(err, "big blind must be >= the small blind")

	opts = DefaultOptions()
	opts.MaxSeats = 1
	_, err = New("t", opts)
	a.EqualError(err, "a table needs at least two seats")

	opts = DefaultOptions()
	opts.NextHandDelay = -1
	_, err = New("t", opts)
	a.EqualError(err, "timeouts cannot be negative")

	tbl, err := New("t", DefaultOptions())
	a.NoError(err)
	a.Equal(52, tbl.deck.CardsLeft())
	a.IsType(ClockScheduler{}, tbl.options.Scheduler)
}

func TestTable_Start(t *testing.T) {
	a := assert.New(t)

	f := newTestTable(t, 1000)
	a.Equal(texasholdem.ErrNotEnoughPlayers, f.table.Start("c1"))
	a.False(f.table.Begun())

	_, err := f.table.Join("p2", "c2", 2, 0)
	a.NoError(err)

	err = f.table.Start("c2")
	a.EqualError(err, "only the host can start the game")
	a.True(IsUserError(err))

	a.NoError(f.table.Start("c1"))
	a.True(f.table.Begun())
	a.True(f.listener.logged("The game has started"))

	hand := f.table.Hand()
	if a.NotNil(hand) {
		a.Equal(texasholdem.StatePreFlop, hand.State())
		a.Equal("c1", hand.Dealer().ClientID)
		a.Equal("c2", f.turn())
	}

	a.EqualError(f.table.Start("c1"), "the game has already started")
	a.Equal(ErrHandInProgress, f.table.StartHand())
}

func TestTable_Action(t *testing.T) {
	a := assert.New(t)

	f := newTestTable(t, 1000, 1000)
	a.Equal(ErrNoHand, f.table.Action("c1", action.Check, 0))
	a.True(IsUserError(ErrNoHand))

	require.NoError(t, f.table.Start("c1"))
	a.Equal(texasholdem.ErrNotYourTurn, f.table.Action("c1", action.Check, 0))
	a.False(IsUserError(texasholdem.ErrNotYourTurn))

	err := f.table.Action("c2", action.Check, 0)
	a.EqualError(err, "you cannot check, it is $10 to call")
	a.True(IsUserError(err))

	a.Equal([]action.Action{action.Call, action.Raise, action.AllIn, action.Fold}, f.table.LegalActions("c2"))
	a.Nil(f.table.LegalActions("c1"))
}

func TestTable_handLifecycle(t *testing.T) {
	a := assert.New(t)

	f := newTestTable(t, 1000, 1000)
	require.NoError(t, f.table.Start("c1"))

	first := f.table.Hand()
	a.NoError(f.table.Action("c2", action.Fold, 0))
	a.True(first.IsComplete())

	// the finished hand stays up until the next deal
	a.Equal(first, f.table.Hand())
	a.Equal(1010, f.table.Seat("c1").Stack())
	a.Equal(990, f.table.Seat("c2").Stack())
	a.Len(f.table.Seat("c1").Hole(), 2)

	if a.Len(f.recorder.summaries, 1) {
		summary := f.recorder.summaries[0]
		a.Equal(first.ID, summary.ID)
		a.Equal(30, summary.Pot)
		a.Equal(30, summary.Seats[0].Won)
	}

	a.Equal(f.recorder.summaries[0], f.table.LastSummary())
	a.Equal(52, f.table.deck.CardsLeft())
	a.True(f.table.HasPendingTimer())
	a.Equal(1, f.scheduler.Pending())

	f.scheduler.Advance(5*time.Second - time.Nanosecond)
	a.Equal(first, f.table.Hand())

	f.scheduler.Advance(time.Nanosecond)
	second := f.table.Hand()
	if a.NotNil(second) {
		a.NotEqual(first.ID, second.ID)
		a.Equal("c2", second.Dealer().ClientID)
		a.Equal("c1", f.turn())
	}
}

func TestTable_turnTimeout(t *testing.T) {
	a := assert.New(t)

	f := newTestTable(t, 1000, 1000, 1000)
	require.NoError(t, f.table.Start("c1"))
	a.Equal("c1", f.turn())

	f.scheduler.Advance(10 * time.Second)
	a.Equal(texasholdem.StatusFolded, f.table.Seat("c1").Status())
	a.Equal("c2", f.turn())
	a.True(f.listener.logged("p1 ran out of time"))
}

func TestTable_bustAndWait(t *testing.T) {
	a := assert.New(t)

	f := newTestTable(t, 20, 100)
	f.stack("14s,2c,14h,3d,14d,9c,5s,7h,11c")
	require.NoError(t, f.table.Start("c1"))

	// p1 is all in from the big blind
	a.Equal(texasholdem.StatusAllIn, f.table.Seat("c1").Status())
	a.NoError(f.table.Action("c2", action.Call, 0))
	a.Equal(texasholdem.StateFlop, f.table.Hand().State())

	f.scheduler.Advance(time.Minute)
	a.Nil(f.table.Hand())
	a.Equal(0, f.table.Seat("c1").Stack())
	a.Equal(120, f.table.Seat("c2").Stack())
	a.True(f.listener.logged("p1 is out of chips"))
	a.True(f.listener.logged("Waiting for more players"))
	a.False(f.table.HasPendingTimer())
	a.Empty(f.table.Seat("c1").Hole())

	_, err := f.table.Join("p3", "c3", 3, 500)
	a.NoError(err)
	if hand := f.table.Hand(); a.NotNil(hand) {
		a.False(hand.HasSeat("c1"))
		a.True(hand.HasSeat("c3"))
	}
}

func TestTable_Chat(t *testing.T) {
	a := assert.New(t)

	f := newTestTable(t, 1000)
	msg, err := f.table.Chat("c1", "  hello  ")
	a.NoError(err)
	a.Equal("p1: hello", msg.Message)
	a.Equal([]int64{1}, msg.PlayerIDs)
	a.True(f.listener.logged("p1: hello"))

	_, err = f.table.Chat("c1", "   ")
	a.EqualError(err, "a message is required")

	_, err = f.table.Chat("c9", "hi")
	a.Equal(ErrSeatNotFound, err)

	msg, err = f.table.Chat("c1", strings.Repeat("x", 300))
	a.NoError(err)
	a.Equal("p1: "+strings.Repeat("x", 256), msg.Message)
}

func TestTable_CheckPassword(t *testing.T) {
	a := assert.New(t)

	open, err := New("t", DefaultOptions())
	require.NoError(t, err)
	a.False(open.HasPassword())
	a.True(open.CheckPassword(""))
	a.True(open.CheckPassword("anything"))

	hash, err := argon2id.DefaultHashPassword("secret")
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.PasswordHash = hash
	locked, err := New("t", opts)
	require.NoError(t, err)
	a.True(locked.HasPassword())
	a.True(locked.CheckPassword("secret"))
	a.False(locked.CheckPassword("Secret"))
	a.False(locked.CheckPassword(""))
}

func TestTable_Close(t *testing.T) {
	a := assert.New(t)

	f := newTestTable(t, 1000, 1000)
	require.NoError(t, f.table.Start("c1"))
	a.True(f.table.HasPendingTimer())

	a.True(f.table.Close())
	a.False(f.table.Close())
	a.True(f.table.IsClosed())
	a.Equal(0, f.scheduler.Pending())
	a.False(f.table.HasPendingTimer())

	a.Equal(ErrTableClosed, f.table.Action("c2", action.Call, 0))
	_, err := f.table.Join("p3", "c3", 3, 0)
	a.Equal(ErrTableClosed, err)
	a.True(errors.Is(f.table.StartHand(), ErrTableClosed))
}

func TestTable_closeAfterHand(t *testing.T) {
	a := assert.New(t)

	f := newTestTable(t, 1000, 1000)
	require.NoError(t, f.table.Start("c1"))
	a.NoError(f.table.Action("c2", action.Fold, 0))
	a.Equal(1, f.scheduler.Pending())

	f.table.Close()
	a.Equal(0, f.scheduler.Pending())
	f.scheduler.Advance(time.Hour)
	a.True(f.table.Hand().IsComplete())
}

func TestTable_View(t *testing.T) {
	a := assert.New(t)

	f := newTestTable(t, 1000, 1000)
	f.stack("14s,2c,14h,3d")

	view := f.table.View("c1")
	a.Equal("p1", view.Host)
	a.False(view.Begun)
	a.Nil(view.State)
	a.Empty(view.Actions)
	a.Equal([2]int{10, 20}, view.Blinds)

	require.NoError(t, f.table.Start("c1"))

	view = f.table.View("c1")
	a.True(view.Begun)
	if a.NotNil(view.State) {
		a.Equal(texasholdem.StatePreFlop, *view.State)
	}
	a.Equal(30, view.Betting.Pot)
	a.Empty(view.Actions)
	a.Equal("2C.png", view.Seats[0].Card1)
	a.Equal("3D.png", view.Seats[0].Card2)
	a.Equal("blue_back.png", view.Seats[1].Card1)
	a.True(view.Seats[0].IsDealer)
	a.True(view.Seats[1].IsTurn)

	view = f.table.View("c2")
	a.Equal("14S.png", view.Seats[1].Card1)
	a.Equal("blue_back.png", view.Seats[0].Card1)
	a.Equal([]action.Action{action.Call, action.Raise, action.AllIn, action.Fold}, view.Actions)

	// spectators only see backs
	view = f.table.View("")
	a.Equal("blue_back.png", view.Seats[0].Card1)
	a.Equal("blue_back.png", view.Seats[1].Card1)
}

func TestTable_CanJoin(t *testing.T) {
	a := assert.New(t)

	f := newTestTable(t, 1000)
	a.NoError(f.table.CanJoin("p2", "c2"))
	a.EqualError(f.table.CanJoin(" ", "c2"), "a name is required")
	a.EqualError(f.table.CanJoin("P1", "c2"), "the name P1 is taken")
	a.EqualError(f.table.CanJoin("p2", "c1"), "you are already seated at this table")
	a.EqualError(f.table.CanJoin(strings.Repeat("x", 33), "c2"), "names cannot be longer than 32 characters")

	for i := 2; i <= 10; i++ {
		_, err := f.table.Join(fmt.Sprintf("p%d", i), fmt.Sprintf("c%d", i), int64(i), 0)
		require.NoError(t, err)
	}

	a.EqualError(f.table.CanJoin("p11", "c11"), "the table is full")
	_, err := f.table.Join("p11", "c11", 11, 0)
	a.EqualError(err, "the table is full")
}
