package main

import (
	"flag"
	"fmt"
	"holdem-server/internal/rng"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/texasholdem"
	"holdem-server/pkg/table"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

var (
	players = flag.Int("players", 6, "the number of bots at the table")
	hands   = flag.Int("hands", 100, "the number of hands to play")
	stack   = flag.Int("stack", 1000, "the starting stack of each bot")
	seed    = flag.Int64("seed", 0, "the shuffle seed, zero picks one")
	verbose = flag.Bool("v", false, "print the table log")
)

// maxSteps bounds the simulation in case a hand never finishes
const maxSteps = 1_000_000

func main() {
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	logrus.SetLevel(logrus.WarnLevel)
	if *verbose {
		logrus.SetLevel(logrus.InfoLevel)
	}

	sim, err := newSimulation(*players, *stack, *seed)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	pterm.Info.Printfln("Playing %d hands with %d bots, seed %d", *hands, *players, *seed)
	played, err := sim.run(*hands)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	pterm.Success.Printfln("Played %d hands, %d chips accounted for", played, sim.total)
	if err := sim.printStandings(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

type simulation struct {
	table     *table.Table
	scheduler *table.ManualScheduler
	decisions rng.Generator
	total     int
}

func newSimulation(players, stack int, seed int64) (*simulation, error) {
	sim := &simulation{
		scheduler: &table.ManualScheduler{},
		decisions: rng.NewSeeded(seed + 1),
	}

	opts := table.DefaultOptions()
	opts.StartingStack = stack
	opts.MaxSeats = players
	opts.Generator = rng.NewSeeded(seed)
	opts.Scheduler = sim.scheduler
	opts.Listener = sim

	t, err := table.New("handsim", opts)
	if err != nil {
		return nil, err
	}

	sim.table = t
	for i := 1; i <= players; i++ {
		if _, err := t.Join(fmt.Sprintf("bot%d", i), clientID(i), int64(i), 0); err != nil {
			return nil, err
		}

		sim.total += stack
	}

	return sim, nil
}

func clientID(i int) string {
	return "bot-" + strconv.Itoa(i)
}

func (s *simulation) TableUpdated(*table.Table) {}

func (s *simulation) TableLog(messages ...*playable.LogMessage) {
	if !*verbose {
		return
	}

	for _, m := range messages {
		pterm.Println(m.Message)
	}
}

// run plays until the hand count is reached or one bot has every chip
func (s *simulation) run(hands int) (int, error) {
	if err := s.table.Start(clientID(1)); err != nil {
		return 0, err
	}

	played := 0
	lastHand := ""
	for step := 0; step < maxSteps; step++ {
		h := s.table.Hand()
		if h == nil {
			return played, nil
		}

		if err := s.checkChips(h); err != nil {
			return played, err
		}

		if h.IsComplete() {
			if h.ID != lastHand {
				lastHand = h.ID
				played++
			}

			if played >= hands {
				return played, nil
			}

			if !s.scheduler.RunNext() {
				return played, nil
			}

			continue
		}

		seat := h.Turn()
		if seat == nil {
			if !s.scheduler.RunNext() {
				return played, fmt.Errorf("hand %s is stuck in %s", h.ID, h.State())
			}

			continue
		}

		kind, amount := s.decide(h, seat)
		if err := s.table.Action(seat.ClientID, kind, amount); err != nil {
			return played, fmt.Errorf("%s could not %s %d: %w", seat.Name, kind, amount, err)
		}
	}

	return played, fmt.Errorf("gave up after %d steps", maxSteps)
}

// decide picks one of the seat's legal actions, folding rarely
func (s *simulation) decide(h *texasholdem.Hand, seat *texasholdem.Seat) (action.Action, int) {
	legal := h.LegalActions(seat.ClientID)
	kind := legal[s.decisions.Intn(len(legal))]
	if kind == action.Fold && s.decisions.Intn(4) != 0 {
		kind = legal[0]
	}

	amount := 0
	if kind == action.Bet || kind == action.Raise {
		lo := h.MinRaiseTo()
		hi := seat.StreetIn() + seat.Stack()
		amount = hi
		if hi > lo {
			amount = lo + s.decisions.Intn(hi-lo)
		}
	}

	return kind, amount
}

func (s *simulation) checkChips(h *texasholdem.Hand) error {
	chips := h.Pot()
	for _, entry := range s.table.Roster() {
		chips += entry.Stack
	}

	if chips != s.total {
		return fmt.Errorf("hand %s has %d chips, expected %d", h.ID, chips, s.total)
	}

	return nil
}

func (s *simulation) printStandings() error {
	roster := s.table.Roster()
	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].Stack > roster[j].Stack
	})

	data := pterm.TableData{{"Bot", "Stack", "Net"}}
	for _, entry := range roster {
		data = append(data, []string{
			entry.Name,
			strconv.Itoa(entry.Stack),
			fmt.Sprintf("%+d", entry.Stack-*stack),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
