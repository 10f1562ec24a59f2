package room

import (
	"context"
	"errors"
	"fmt"
	"holdem-server/internal/util"
	"holdem-server/pkg/db"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/table"
	"holdem-server/pkg/token"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/synacor/argon2id"
)

const (
	storeTimeout  = 5 * time.Second
	tableIDLength = 8
)

var tableIDRx = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}\z`)

// ErrNotSeated is returned when a client acts without a seat
var ErrNotSeated = errors.New("you are not seated at a table")

// ErrAlreadySeated is returned when a client tries to sit at a second table
var ErrAlreadySeated = errors.New("you are already seated at a table")

// Options configures the pit boss
type Options struct {
	// Table is the template for new tables
	Table table.Options
	// IdleTimeout is how long a table without players stays open
	IdleTimeout time.Duration
	Store       db.Store
	Logger      logrus.FieldLogger
}

// loading is a table being created or read from the store off the run loop
type loading struct {
	waiters []func(d *Dealer, err error)
}

type idleTimer struct {
	timer *time.Timer
	seq   uint64
}

// PitBoss is responsible for dispatching players to tables
// The registries are only touched from the run loop. Store reads and writes
// and password hashing run on their own goroutines and post the result back.
type PitBoss struct {
	options Options
	store   db.Store
	logger  logrus.FieldLogger

	tables  map[string]*Dealer
	clients map[string]*Dealer
	joining map[string]*Dealer
	// pending maps a client to the table it waits on while the store is busy
	pending map[string]string
	loading map[string]*loading
	idle    map[*Dealer]*idleTimer
	idleSeq uint64
	closed  bool

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(opts Options) *PitBoss {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	store := opts.Store
	if store == nil {
		store = db.NewMemoryStore()
	}

	return &PitBoss{
		options:       opts,
		store:         store,
		logger:        logger,
		tables:        make(map[string]*Dealer),
		clients:       make(map[string]*Dealer),
		joining:       make(map[string]*Dealer),
		pending:       make(map[string]string),
		loading:       make(map[string]*loading),
		idle:          make(map[*Dealer]*idleTimer),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case fn := <-p.execInRunLoop:
			fn()
		case <-p.close:
			p.logger.Debug("terminating pit boss run loop")
			return
		}
	}
}

func (p *PitBoss) post(fn func()) bool {
	select {
	case <-p.close:
		return false
	default:
	}

	select {
	case p.execInRunLoop <- fn:
		return true
	case <-p.close:
		return false
	}
}

// Shutdown closes every table and stops the run loop
// It must be called after StartShift.
func (p *PitBoss) Shutdown() {
	p.closeOnce.Do(func() {
		done := make(chan bool)
		if p.post(func() {
			p.closed = true
			for id, d := range p.tables {
				p.cancelIdle(d)
				d.EndShift()
				delete(p.tables, id)
			}

			close(done)
		}) {
			<-done
		}

		close(p.close)
	})
}

// TableCount returns the number of open tables
func (p *PitBoss) TableCount() int {
	count := make(chan int, 1)
	if !p.post(func() { count <- len(p.tables) }) {
		return 0
	}

	select {
	case n := <-count:
		return n
	case <-p.close:
		return 0
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.post(func() {
		p.logger.WithField("client", client.String()).Debug("client connected")
	})
}

// ClientDisconnected is called when a client disconnects from the server
// A seated client leaves its table.
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.post(func() {
		p.logger.WithField("client", client.String()).Debug("client disconnected")
		delete(p.pending, client.ID)
		if d, ok := p.joining[client.ID]; ok {
			delete(p.joining, client.ID)
			d.leave(client)
			return
		}

		if d, ok := p.clients[client.ID]; ok {
			p.leave(client, d)
		}
	})
}

// ReceivedMessage is called when the server receives a message from a connected client
func (p *PitBoss) ReceivedMessage(client *Client, msg *playable.PayloadIn) {
	p.post(func() {
		p.handle(client, msg)
	})
}

func (p *PitBoss) handle(c *Client, msg *playable.PayloadIn) {
	switch msg.Action {
	case "joinAttempt":
		p.joinAttempt(c, msg)
	case "createAttempt":
		p.createAttempt(c, msg)
	case "createTable":
		p.createTable(c, msg)
	case "joinTable":
		p.joinTable(c, msg)
	case "leaveTable":
		d, ok := p.clients[c.ID]
		if !ok {
			c.Send(newErrorResponse(msg.Context, ErrNotSeated))
			return
		}

		p.leave(c, d)
		c.Send(playable.OK(msg.Context))
	case "startTable", "playerAction", "chatMessage":
		d, ok := p.clients[c.ID]
		if !ok {
			c.Send(newErrorResponse(msg.Context, ErrNotSeated))
			return
		}

		if err := d.received(c, msg); err != nil {
			c.Send(newErrorResponse(msg.Context, err))
		}
	default:
		p.logger.WithField("action", msg.Action).Warn("unknown message")
		c.Send(newErrorResponse(msg.Context, fmt.Errorf("unknown action: %s", msg.Action)))
	}
}

func (p *PitBoss) isBusy(c *Client) bool {
	_, seated := p.clients[c.ID]
	_, joining := p.joining[c.ID]
	_, pending := p.pending[c.ID]
	return seated || joining || pending
}

func (p *PitBoss) joinAttempt(c *Client, msg *playable.PayloadIn) {
	id, _ := msg.AdditionalData.GetString("tableId")
	ref := tableRef{TableID: id, Name: playerName(msg.AdditionalData)}
	if p.isBusy(c) {
		c.Send(joinVerdict(msg.Context, ref, ErrAlreadySeated.Error()))
		return
	}

	password, _ := msg.AdditionalData.GetString("password")
	stack, _ := msg.AdditionalData.GetInt("stack")
	p.withDealer(id, func(d *Dealer, err error) {
		if err == nil {
			err = d.joinAttempt(c, ref.Name, password, stack, msg.Context)
		}

		if err != nil {
			c.Send(joinVerdict(msg.Context, ref, err.Error()))
		}
	})
}

func (p *PitBoss) joinTable(c *Client, msg *playable.PayloadIn) {
	id, _ := msg.AdditionalData.GetString("tableId")
	ref := tableRef{TableID: id, Name: playerName(msg.AdditionalData)}
	if p.isBusy(c) {
		c.Send(joinVerdict(msg.Context, ref, ErrAlreadySeated.Error()))
		return
	}

	password, _ := msg.AdditionalData.GetString("password")
	stack, _ := msg.AdditionalData.GetInt("stack")
	p.pending[c.ID] = id
	p.withDealer(id, func(d *Dealer, err error) {
		if p.pending[c.ID] != id {
			return
		}

		delete(p.pending, c.ID)
		if err != nil {
			c.Send(joinVerdict(msg.Context, ref, err.Error()))
			return
		}

		p.seat(c, d, ref.Name, password, stack, msg.Context)
	})
}

func (p *PitBoss) createAttempt(c *Client, msg *playable.PayloadIn) {
	id, _ := msg.AdditionalData.GetString("tableId")
	ref := tableRef{TableID: id}
	if reason := p.createProblem(id); reason != "" {
		c.Send(createVerdict(msg.Context, ref, reason))
		return
	}

	go func() {
		c.Send(createVerdict(msg.Context, ref, p.storedProblem(id)))
	}()
}

func (p *PitBoss) createTable(c *Client, msg *playable.PayloadIn) {
	id, _ := msg.AdditionalData.GetString("tableId")
	if id == "" {
		var err error
		if id, err = token.Generate(tableIDLength); err != nil {
			p.logger.WithError(err).Error("could not generate a table id")
			c.Send(createVerdict(msg.Context, tableRef{}, "could not create the table"))
			return
		}
	}

	ref := tableRef{TableID: id}
	if p.isBusy(c) {
		c.Send(createVerdict(msg.Context, ref, ErrAlreadySeated.Error()))
		return
	}

	if reason := p.createProblem(id); reason != "" {
		c.Send(createVerdict(msg.Context, ref, reason))
		return
	}

	// joins for the id wait until the table exists
	p.loading[id] = &loading{}
	p.pending[c.ID] = id

	tournamentID, _ := msg.AdditionalData.GetString("tournamentId")
	opts := p.tableOptions(msg.AdditionalData)
	password, _ := msg.AdditionalData.GetString("password")
	go func() {
		d, reason := p.build(id, tournamentID, password, opts)
		p.post(func() {
			p.created(c, msg, id, d, reason)
		})
	}()
}

// build hashes the password, creates the dealer and saves the table
// It runs off the run loop.
func (p *PitBoss) build(id, tournamentID, password string, opts table.Options) (*Dealer, string) {
	if password != "" {
		hash, err := argon2id.DefaultHashPassword(password)
		if err != nil {
			p.logger.WithError(err).WithField("table", id).Error("could not hash password")
			return nil, "could not create the table"
		}

		opts.PasswordHash = hash
	}

	d, err := NewDealer(id, opts, p.logger)
	if err != nil {
		return nil, err.Error()
	}

	if reason := p.storedProblem(id); reason != "" {
		return nil, reason
	}

	cfg := &db.TableConfig{
		TableID:       id,
		TournamentID:  tournamentID,
		SmallBlind:    opts.SmallBlind,
		BigBlind:      opts.BigBlind,
		StartingStack: opts.StartingStack,
		PasswordHash:  opts.PasswordHash,
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := p.store.SaveTableConfig(ctx, cfg); err != nil {
		p.logger.WithError(err).WithField("table", id).Error("could not save table")
		return nil, "could not save the table"
	}

	return d, ""
}

func (p *PitBoss) created(c *Client, msg *playable.PayloadIn, id string, d *Dealer, reason string) {
	ref := tableRef{TableID: id}
	present := p.pending[c.ID] == id
	if present {
		delete(p.pending, c.ID)
	}

	l := p.loading[id]
	delete(p.loading, id)

	if reason != "" {
		c.Send(createVerdict(msg.Context, ref, reason))
		l.fail(fmt.Errorf("table %s does not exist", id))
		return
	}

	p.open(d)
	p.logger.WithField("table", id).WithField("client", c.String()).Info("table created")

	// the creator sits first and becomes the host
	if present {
		c.Send(createVerdict(msg.Context, ref, ""))
		password, _ := msg.AdditionalData.GetString("password")
		stack, _ := msg.AdditionalData.GetInt("stack")
		p.seat(c, d, playerName(msg.AdditionalData), password, stack, msg.Context)
	}

	l.done(d)
}

// createProblem returns why a table with the id cannot be created, without
// asking the store
func (p *PitBoss) createProblem(id string) string {
	if !tableIDRx.MatchString(id) {
		return "invalid table id"
	}

	if _, ok := p.tables[id]; ok {
		return fmt.Sprintf("table %s already exists", id)
	}

	if _, ok := p.loading[id]; ok {
		return fmt.Sprintf("table %s already exists", id)
	}

	return ""
}

// storedProblem asks the store whether the id is taken
func (p *PitBoss) storedProblem(id string) string {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	_, err := p.store.LoadTableConfig(ctx, id)
	if err == nil {
		return fmt.Sprintf("table %s already exists", id)
	}

	if !errors.Is(err, db.ErrNotFound) {
		p.logger.WithError(err).WithField("table", id).Error("could not load table")
		return "could not check the table"
	}

	return ""
}

// tableOptions applies the client's settings, the password is hashed later
func (p *PitBoss) tableOptions(data playable.AdditionalData) table.Options {
	opts := p.options.Table
	if v, ok := data.GetInt("smallBlind"); ok {
		opts.SmallBlind = v
	}

	if v, ok := data.GetInt("bigBlind"); ok {
		opts.BigBlind = v
	}

	if v, ok := data.GetInt("startingStack"); ok {
		opts.StartingStack = v
	}

	opts.PasswordHash = ""
	return opts
}

// withDealer calls fn on the run loop with the open table, reopening it from
// the store first if needed
func (p *PitBoss) withDealer(id string, fn func(d *Dealer, err error)) {
	if d, ok := p.tables[id]; ok {
		fn(d, nil)
		return
	}

	if !tableIDRx.MatchString(id) {
		fn(nil, fmt.Errorf("table %s does not exist", id))
		return
	}

	if l, ok := p.loading[id]; ok {
		l.waiters = append(l.waiters, fn)
		return
	}

	l := &loading{waiters: []func(*Dealer, error){fn}}
	p.loading[id] = l
	go func() {
		d, err := p.reopen(id)
		p.post(func() {
			delete(p.loading, id)
			if err != nil {
				l.fail(err)
				return
			}

			p.open(d)
			p.logger.WithField("table", id).Info("table reopened")
			l.done(d)
		})
	}()
}

// reopen builds a dealer from the stored config
// It runs off the run loop.
func (p *PitBoss) reopen(id string) (*Dealer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	cfg, err := p.store.LoadTableConfig(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("table %s does not exist", id)
		}

		p.logger.WithError(err).WithField("table", id).Error("could not load table")
		return nil, errors.New("could not load the table")
	}

	opts := p.options.Table
	opts.SmallBlind = cfg.SmallBlind
	opts.BigBlind = cfg.BigBlind
	opts.StartingStack = cfg.StartingStack
	opts.PasswordHash = cfg.PasswordHash
	return NewDealer(id, opts, p.logger)
}

func (l *loading) done(d *Dealer) {
	if l == nil {
		return
	}

	for _, fn := range l.waiters {
		fn(d, nil)
	}
}

func (l *loading) fail(err error) {
	if l == nil {
		return
	}

	for _, fn := range l.waiters {
		fn(nil, err)
	}
}

// open registers the dealer, it closes again if nobody joins
func (p *PitBoss) open(d *Dealer) {
	d.StartShift()
	if p.closed {
		d.EndShift()
		return
	}

	p.tables[d.ID] = d
	p.scheduleIdle(d)
}

func (p *PitBoss) seat(c *Client, d *Dealer, name, password string, stack int, ctx string) {
	p.joining[c.ID] = d
	err := d.join(c, name, password, stack, ctx, func(err error) {
		p.post(func() {
			p.joined(c, d, err)
		})
	})

	if err != nil {
		delete(p.joining, c.ID)
		c.Send(joinVerdict(ctx, tableRef{TableID: d.ID, Name: name}, err.Error()))
	}
}

func (p *PitBoss) joined(c *Client, d *Dealer, err error) {
	// the client disconnected while the join was in flight
	if p.joining[c.ID] != d {
		if p.memberCount(d) == 0 {
			p.scheduleIdle(d)
		}

		return
	}

	delete(p.joining, c.ID)
	if err != nil {
		if p.memberCount(d) == 0 {
			p.scheduleIdle(d)
		}

		return
	}

	p.clients[c.ID] = d
	p.cancelIdle(d)
	p.logger.WithField("table", d.ID).WithField("client", c.String()).Info("client seated")
}

func (p *PitBoss) leave(c *Client, d *Dealer) {
	delete(p.clients, c.ID)
	d.leave(c)
	if p.memberCount(d) == 0 {
		p.scheduleIdle(d)
	}
}

func (p *PitBoss) memberCount(d *Dealer) int {
	n := 0
	for _, other := range p.clients {
		if other == d {
			n++
		}
	}

	for _, other := range p.joining {
		if other == d {
			n++
		}
	}

	return n
}

func (p *PitBoss) scheduleIdle(d *Dealer) {
	p.cancelIdle(d)
	p.idleSeq++
	seq := p.idleSeq
	p.idle[d] = &idleTimer{
		seq: seq,
		timer: time.AfterFunc(p.options.IdleTimeout, func() {
			p.post(func() {
				p.idleTimeout(d, seq)
			})
		}),
	}
}

func (p *PitBoss) cancelIdle(d *Dealer) {
	if it, ok := p.idle[d]; ok {
		it.timer.Stop()
		delete(p.idle, d)
	}
}

func (p *PitBoss) idleTimeout(d *Dealer, seq uint64) {
	it, ok := p.idle[d]
	if !ok || it.seq != seq {
		return
	}

	delete(p.idle, d)
	if p.memberCount(d) > 0 || p.tables[d.ID] != d {
		return
	}

	delete(p.tables, d.ID)
	d.EndShift()
	p.logger.WithField("table", d.ID).Info("closed idle table")
}

// playerName returns the requested name, or a random one
func playerName(data playable.AdditionalData) string {
	name, _ := data.GetString("name")
	if name = strings.TrimSpace(name); name != "" {
		return name
	}

	return util.GetRandomName()
}
