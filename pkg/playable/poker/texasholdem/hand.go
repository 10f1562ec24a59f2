package texasholdem

import (
	"errors"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/potmanager"
	"holdem-server/pkg/poker"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Hand is a single hand of no-limit Texas Hold'em
type Hand struct {
	ID string

	options  Options
	logger   logrus.FieldLogger
	listener Listener

	// seats dealt in, in table order
	seats      []*Seat
	dealer     int
	smallBlind int
	bigBlind   int

	deck      *deck.Deck
	community deck.Hand
	state     State

	pot        int
	currentBet int
	// minRaise is the size of the last full bet or raise this street
	minRaise int
	// turn is the index of the seat to act, or -1
	turn int

	startingStacks map[string]int
	lastAction     *LastAction

	pots      potmanager.Pots
	payouts   potmanager.Payouts
	strengths map[string]poker.Strength
	revealed  bool
	aborted   bool

	timer    Timer
	timerSeq uint64
}

// LastAction is the most recent action taken
type LastAction struct {
	Name   string `json:"name"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

// NewHand prepares a hand for the seats with chips
// rotation picks the dealer among those seats. The deck must already be
// shuffled.
func NewHand(seats []*Seat, rotation int, d *deck.Deck, opts Options) (*Hand, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if d == nil {
		return nil, errors.New("a deck is required")
	}

	eligible := make([]*Seat, 0, len(seats))
	for _, s := range seats {
		if s.stack > 0 {
			eligible = append(eligible, s)
		}
	}

	n := len(eligible)
	if n < 2 {
		return nil, ErrNotEnoughPlayers
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	var listener Listener = nopListener{}
	if opts.Listener != nil {
		listener = opts.Listener
	}

	dealer := ((rotation % n) + n) % n
	id := uuid.New().String()

	return &Hand{
		ID:             id,
		options:        opts,
		logger:         logger.WithField("hand", id),
		listener:       listener,
		seats:          eligible,
		dealer:         dealer,
		smallBlind:     (dealer + 1) % n,
		bigBlind:       (dealer + 2) % n,
		deck:           d,
		community:      make(deck.Hand, 0, 5),
		state:          StatePostingBlinds,
		turn:           -1,
		startingStacks: make(map[string]int),
	}, nil
}

// Start posts the blinds, deals the hole cards and gives the first seat the turn
func (h *Hand) Start() error {
	if h.state != StatePostingBlinds {
		return ErrHandStarted
	}

	for _, s := range h.seats {
		s.ResetForHand()
		h.startingStacks[s.ClientID] = s.stack
	}

	h.log(0, "New hand, %s has the button", h.seats[h.dealer].Name)

	sb := h.seats[h.smallBlind]
	bb := h.seats[h.bigBlind]
	h.post(sb, h.options.SmallBlind, "small blind")
	h.post(bb, h.options.BigBlind, "big blind")
	h.currentBet = max(sb.streetIn, bb.streetIn)
	h.minRaise = h.options.BigBlind

	n := len(h.seats)
	for i := 0; i < 2; i++ {
		for j := 1; j <= n; j++ {
			card, err := h.deck.Deal()
			if err != nil {
				h.abort(err)
				return nil
			}

			h.seats[(h.dealer+j)%n].hole.AddCard(card)
		}
	}

	h.state = StatePreFlop
	h.advance(h.bigBlind)
	h.listener.HandUpdated(h)
	return nil
}

func (h *Hand) post(s *Seat, blind int, name string) {
	paid := h.commit(s, blind)
	if s.stack == 0 {
		h.log(s.PlayerID, "%s posted the %s of $%d and is all in", s.Name, name, paid)
		return
	}

	h.log(s.PlayerID, "%s posted the %s of $%d", s.Name, name, paid)
}

func (h *Hand) commit(s *Seat, amount int) int {
	paid := s.commit(amount)
	h.pot += paid
	return paid
}

// advance moves the hand forward after the seat at index from acted
func (h *Hand) advance(from int) {
	if h.state == StateComplete {
		return
	}

	if h.unfoldedCount() == 1 {
		h.endEarly()
		return
	}

	if h.streetComplete() {
		h.completeStreet()
		return
	}

	h.giveTurn(h.nextToAct(from))
}

// giveTurn puts the seat on the clock
// A disconnected seat folds as soon as the turn reaches it
func (h *Hand) giveTurn(index int) {
	h.turn = index
	seat := h.seats[index]
	if seat.disconnected {
		h.log(seat.PlayerID, "%s is disconnected", seat.Name)
		h.forceAction(seat, action.Fold)
		return
	}

	h.scheduleTurnTimeout()
}

// forceAction acts on behalf of the seat on the clock
func (h *Hand) forceAction(seat *Seat, kind action.Action) {
	if err := h.apply(seat, kind, 0); err != nil {
		h.logger.WithError(err).Error("could not apply a forced action")
		return
	}

	h.advance(h.turn)
	h.listener.HandUpdated(h)
}

// streetComplete returns true if nobody has to act on this street
func (h *Hand) streetComplete() bool {
	actors := 0
	var actor *Seat
	for _, s := range h.seats {
		if !s.canAct() {
			continue
		}

		actors++
		actor = s
	}

	if actors == 0 {
		return true
	}

	if actors == 1 && h.owes(actor) == 0 {
		return true
	}

	for _, s := range h.seats {
		if h.needsToAct(s) {
			return false
		}
	}

	return true
}

func (h *Hand) needsToAct(s *Seat) bool {
	if !s.canAct() {
		return false
	}

	return s.status == StatusUndecided || h.owes(s) > 0
}

// nextToAct returns the first seat after from that needs to act, or -1
func (h *Hand) nextToAct(from int) int {
	n := len(h.seats)
	for i := 1; i <= n; i++ {
		index := (from + i) % n
		if h.needsToAct(h.seats[index]) {
			return index
		}
	}

	return -1
}

func (h *Hand) owes(s *Seat) int {
	if owed := h.currentBet - s.streetIn; owed > 0 {
		return owed
	}

	return 0
}

func (h *Hand) unfoldedCount() int {
	count := 0
	for _, s := range h.seats {
		if !s.Folded() {
			count++
		}
	}

	return count
}

func (h *Hand) actorCount() int {
	count := 0
	for _, s := range h.seats {
		if s.canAct() {
			count++
		}
	}

	return count
}

// completeStreet deals the next street, or goes to showdown after the river
func (h *Hand) completeStreet() {
	h.turn = -1
	h.cancelTimer()
	for _, s := range h.seats {
		s.newStreet()
	}

	h.currentBet = 0
	h.minRaise = h.options.BigBlind

	if h.state == StateRiver {
		h.showdown()
		return
	}

	next := h.state + 1
	for i := 0; i < next.communityCards(); i++ {
		card, err := h.deck.Deal()
		if err != nil {
			h.abort(err)
			return
		}

		h.community.AddCard(card)
	}

	h.state = next
	h.logWithCards(h.community.Clone(), "%s: %s", next.title(), h.community.String())

	if h.actorCount() < 2 {
		h.scheduleRunout()
		return
	}

	h.giveTurn(h.nextToAct(h.dealer))
}

// endEarly awards the whole pot to the only seat that did not fold
func (h *Hand) endEarly() {
	h.turn = -1
	h.cancelTimer()

	var winner *Seat
	for _, s := range h.seats {
		if !s.Folded() {
			winner = s
			break
		}
	}

	h.pots = potmanager.Pots{{
		Amount:   h.pot,
		Eligible: []potmanager.Participant{winner},
	}}

	h.pay(potmanager.Payouts{{
		Participant: winner,
		Amount:      h.pot,
	}})
}

// abort ends the hand and returns every contribution
func (h *Hand) abort(err error) {
	h.logger.WithError(err).Error("aborting hand")

	for _, s := range h.seats {
		h.pot -= s.refund()
	}

	h.aborted = true
	h.log(0, "The hand was cancelled and all bets were returned")
	h.finish()
}

func (h *Hand) finish() {
	h.state = StateComplete
	h.turn = -1
	h.cancelTimer()
	h.listener.HandComplete(h)
}

func (h *Hand) seat(clientID string) *Seat {
	for _, s := range h.seats {
		if s.ClientID == clientID {
			return s
		}
	}

	return nil
}

func (h *Hand) log(playerID int64, format string, a ...interface{}) {
	h.sendLog(playable.SimpleLogMessage(playerID, format, a...))
}

func (h *Hand) logWithCards(cards []deck.Card, format string, a ...interface{}) {
	msg := playable.SimpleLogMessage(0, format, a...)
	msg.Cards = cards
	h.sendLog(msg)
}

func (h *Hand) sendLog(msg *playable.LogMessage) {
	h.logger.Debug(msg.Message)
	h.listener.HandLog(msg)
}
