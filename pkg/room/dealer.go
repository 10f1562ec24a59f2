package room

import (
	"errors"
	"fmt"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/texasholdem"
	"holdem-server/pkg/table"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrTableBusy is returned when a table's queue is full
var ErrTableBusy = errors.New("the table is busy, try again")

// Dealer runs a single table
// Every call into the table happens on the dealer's run loop, including the
// callbacks of the table's timers.
type Dealer struct {
	ID string

	table   *table.Table
	clients map[string]*Client
	logger  logrus.FieldLogger

	logMessages []*playable.LogMessage

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a dealer and its table
// The dealer becomes the table's scheduler and listener.
func NewDealer(id string, opts table.Options, logger logrus.FieldLogger) (*Dealer, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	d := &Dealer{
		ID:            id,
		clients:       make(map[string]*Client),
		logger:        logger.WithField("table", id),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}

	opts.Scheduler = d
	opts.Listener = d
	opts.Logger = logger
	t, err := table.New(id, opts)
	if err != nil {
		return nil, err
	}

	d.table = t
	return d, nil
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.table.Close()
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift stops the run loop and closes the table
// It is safe to call more than once.
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// post queues fn on the run loop, it returns false once the shift has ended
func (d *Dealer) post(fn func()) bool {
	select {
	case <-d.close:
		return false
	default:
	}

	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// offer queues fn without waiting
// The pit boss hands work to dealers through offer so a stalled table never
// holds up the other tables.
func (d *Dealer) offer(fn func()) error {
	select {
	case <-d.close:
		return table.ErrTableClosed
	default:
	}

	select {
	case d.execInRunLoop <- fn:
		return nil
	default:
		return ErrTableBusy
	}
}

// AfterFunc runs fn on the run loop after the delay
func (d *Dealer) AfterFunc(delay time.Duration, fn func()) texasholdem.Timer {
	return time.AfterFunc(delay, func() {
		d.post(fn)
	})
}

// TableUpdated sends the new state to every client at the table
func (d *Dealer) TableUpdated(*table.Table) {
	state := d.publicState()
	for _, c := range d.clients {
		d.sendState(c, state)
	}
}

// TableLog sends log lines to every client at the table
func (d *Dealer) TableLog(messages ...*playable.LogMessage) {
	d.addLogMessages(messages)
	d.broadcast(playable.NewResponse("message", messages))
}

// publicState holds the responses every client receives unchanged
type publicState struct {
	roster  *playable.Response
	board   *playable.Response
	potSize *playable.Response
}

func (d *Dealer) publicState() publicState {
	board := make([]deck.Card, 0, 5)
	pot := 0
	if hand := d.table.Hand(); hand != nil {
		board = append(board, hand.Community()...)
		pot = hand.Pot()
	}

	return publicState{
		roster: playable.NewResponse("roomUsers", d.table.Roster()),
		board:  playable.NewResponse("boardCards", board),
		potSize: &playable.Response{
			Key:   "potSize",
			Value: fmt.Sprintf("$%d", pot),
			Data:  pot,
		},
	}
}

func (d *Dealer) sendState(c *Client, state publicState) {
	view := d.table.View(c.ID)
	d.send(c,
		state.roster,
		playable.NewResponse("tableSeats", view),
		state.board,
		state.potSize,
		playable.NewResponse("actions", view.Actions),
	)
}

func (d *Dealer) broadcast(responses ...interface{}) {
	for _, c := range d.clients {
		d.send(c, responses...)
	}
}

func (d *Dealer) send(c *Client, responses ...interface{}) {
	for _, res := range responses {
		if !c.Send(res) {
			d.logger.WithField("client", c.String()).Warn("client buffer is full, dropping message")
			return
		}
	}
}

func (d *Dealer) joinProblem(c *Client, name, password string, stack int) error {
	if !d.table.CheckPassword(password) {
		return table.UserError("incorrect password")
	}

	if stack < 0 {
		return table.UserError("a positive starting stack is required")
	}

	return d.table.CanJoin(name, c.ID)
}

// joinAttempt tells the client whether it could join
func (d *Dealer) joinAttempt(c *Client, name, password string, stack int, ctx string) error {
	return d.offer(func() {
		ref := tableRef{TableID: d.ID, Name: name}
		reason := ""
		if err := d.joinProblem(c, name, password, stack); err != nil {
			reason = err.Error()
		}

		c.Send(joinVerdict(ctx, ref, reason))
	})
}

// join seats the client, a stack of zero takes the table's starting stack
// done is called from the run loop with the outcome, before the client hears
// about it.
func (d *Dealer) join(c *Client, name, password string, stack int, ctx string, done func(err error)) error {
	return d.offer(func() {
		ref := tableRef{TableID: d.ID, Name: name}
		err := d.joinProblem(c, name, password, stack)
		if err == nil {
			_, err = d.table.Join(name, c.ID, c.PlayerID, stack)
		}

		done(err)
		if err != nil {
			c.Send(joinVerdict(ctx, ref, err.Error()))
			return
		}

		d.clients[c.ID] = c
		history := make([]*playable.LogMessage, len(d.logMessages))
		copy(history, d.logMessages)
		d.send(c, joinVerdict(ctx, ref, ""), playable.NewResponse("message", history))
		d.sendState(c, d.publicState())
	})
}

// leave removes the client's seat
// A full queue does not drop the leave, it is queued once there is room.
func (d *Dealer) leave(c *Client) {
	fn := func() {
		delete(d.clients, c.ID)
		if err := d.table.Leave(c.ID); err != nil {
			d.logger.WithError(err).WithField("client", c.String()).Warn("could not leave table")
		}
	}

	if err := d.offer(fn); errors.Is(err, ErrTableBusy) {
		go d.post(fn)
	}
}

// received handles a message from a seated client
func (d *Dealer) received(c *Client, msg *playable.PayloadIn) error {
	return d.offer(func() {
		if err := d.handle(c, msg); err != nil {
			d.logger.WithError(err).WithFields(logrus.Fields{
				"client": c.String(),
				"action": msg.Action,
			}).Debug("rejected message")

			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(playable.OK(msg.Context))
	})
}

func (d *Dealer) handle(c *Client, msg *playable.PayloadIn) error {
	switch msg.Action {
	case "startTable":
		if err := d.table.Start(c.ID); err != nil {
			return err
		}

		d.broadcast(playable.NewResponse("gameBegun", tableRef{TableID: d.ID}))
		return nil
	case "playerAction":
		kind, err := action.FromString(msg.Subject)
		if err != nil {
			return err
		}

		amount, _ := msg.AdditionalData.GetInt("amount")
		return d.table.Action(c.ID, kind, amount)
	case "chatMessage":
		text, _ := msg.AdditionalData.GetString("text")
		_, err := d.table.Chat(c.ID, text)
		return err
	}

	return fmt.Errorf("unknown action: %s", msg.Action)
}
