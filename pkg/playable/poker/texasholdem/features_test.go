package texasholdem

import (
	"context"
	"errors"
	"fmt"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/action"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

type featureContext struct {
	opts  Options
	seats []*Seat
	holes []string
	board string
	hand  *Hand
	logs  []string
}

func (f *featureContext) reset() {
	f.opts = noTimerOptions()
	f.seats = nil
	f.holes = nil
	f.board = ""
	f.hand = nil
	f.logs = nil
}

func (f *featureContext) HandUpdated(*Hand) {}

func (f *featureContext) HandLog(messages ...*playable.LogMessage) {
	for _, m := range messages {
		f.logs = append(f.logs, m.Message)
	}
}

func (f *featureContext) HandComplete(*Hand) {}

func (f *featureContext) blindsOf(small, big int) error {
	f.opts.SmallBlind = small
	f.opts.BigBlind = big
	return nil
}

func (f *featureContext) theSeats(table *godog.Table) error {
	for i, row := range table.Rows[1:] {
		name := row.Cells[0].Value
		stack, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return fmt.Errorf("bad stack for %s: %w", name, err)
		}

		f.seats = append(f.seats, NewSeat(name, name, int64(i+1), stack))
		f.holes = append(f.holes, row.Cells[2].Value)
	}

	return nil
}

func (f *featureContext) theBoardIs(board string) error {
	f.board = board
	return nil
}

func (f *featureContext) theHandIsDealtWithTheButtonOn(name string) error {
	dealer := -1
	for i, s := range f.seats {
		if s.Name == name {
			dealer = i
		}
	}

	if dealer < 0 {
		return fmt.Errorf("no seat named %s", name)
	}

	d := deck.New()
	d.Stack(dealOrder(dealer, f.holes, f.board)...)

	f.opts.Listener = f
	h, err := NewHand(f.seats, dealer, d, f.opts)
	if err != nil {
		return err
	}

	f.hand = h
	return h.Start()
}

func (f *featureContext) act(name string, kind action.Action, amount int) error {
	if f.hand == nil {
		return errors.New("no hand has been dealt")
	}

	return f.hand.Act(name, kind, amount)
}

func (f *featureContext) playerActs(name, verb string) error {
	kinds := map[string]action.Action{
		"folds":       action.Fold,
		"checks":      action.Check,
		"calls":       action.Call,
		"goes all in": action.AllIn,
	}

	return f.act(name, kinds[verb], 0)
}

func (f *featureContext) playerBets(name, verb string, amount int) error {
	if verb == "bets" {
		return f.act(name, action.Bet, amount)
	}

	return f.act(name, action.Raise, amount)
}

func (f *featureContext) cannotCheck(name, reason string) error {
	return f.expectError(f.act(name, action.Check, 0), reason)
}

func (f *featureContext) cannotRaise(name string, amount int, reason string) error {
	return f.expectError(f.act(name, action.Raise, amount), reason)
}

func (f *featureContext) expectError(err error, reason string) error {
	if err == nil {
		return fmt.Errorf("expected %q, the action was accepted", reason)
	}

	if err.Error() != reason {
		return fmt.Errorf("expected %q, got %q", reason, err.Error())
	}

	return nil
}

func (f *featureContext) theHandIsComplete() error {
	if !f.hand.IsComplete() {
		return fmt.Errorf("hand is still in %s", f.hand.State())
	}

	return nil
}

func (f *featureContext) playerHasChips(name string, chips int) error {
	for _, s := range f.seats {
		if s.Name == name {
			if s.Stack() != chips {
				return fmt.Errorf("%s has %d chips, expected %d", name, s.Stack(), chips)
			}

			return nil
		}
	}

	return fmt.Errorf("no seat named %s", name)
}

func (f *featureContext) thePotIs(amount int) error {
	if f.hand.Pot() != amount {
		return fmt.Errorf("pot is %d, expected %d", f.hand.Pot(), amount)
	}

	return nil
}

func (f *featureContext) thePotsAre(table *godog.Table) error {
	pots := f.hand.BettingState().Pots
	rows := table.Rows[1:]
	if len(pots) != len(rows) {
		return fmt.Errorf("there are %d pots, expected %d", len(pots), len(rows))
	}

	for i, row := range rows {
		amount, err := strconv.Atoi(row.Cells[0].Value)
		if err != nil {
			return err
		}

		if pots[i].Amount != amount {
			return fmt.Errorf("pot %d is %d, expected %d", i, pots[i].Amount, amount)
		}

		eligible := make([]string, len(pots[i].Eligible))
		for j, p := range pots[i].Eligible {
			eligible[j] = p.ID()
		}

		if got := strings.Join(eligible, ","); got != row.Cells[1].Value {
			return fmt.Errorf("pot %d is contested by %s, expected %s", i, got, row.Cells[1].Value)
		}
	}

	return nil
}

func (f *featureContext) theLogContains(message string) error {
	for _, l := range f.logs {
		if l == message {
			return nil
		}
	}

	return fmt.Errorf("%q was not logged, got %v", message, f.logs)
}

func initializeScenario(ctx *godog.ScenarioContext) {
	fc := &featureContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.reset()
		return ctx, nil
	})

	ctx.Step(`^blinds of (\d+) and (\d+)$`, fc.blindsOf)
	ctx.Step(`^the seats:$`, fc.theSeats)
	ctx.Step(`^the board is "([^"]*)"$`, fc.theBoardIs)

	ctx.Step(`^the hand is dealt with the button on "([^"]*)"$`, fc.theHandIsDealtWithTheButtonOn)
	ctx.Step(`^"([^"]*)" (folds|checks|calls|goes all in)$`, fc.playerActs)
	ctx.Step(`^"([^"]*)" (bets|raises to) (\d+)$`, fc.playerBets)

	ctx.Step(`^"([^"]*)" cannot check because "([^"]*)"$`, fc.cannotCheck)
	ctx.Step(`^"([^"]*)" cannot raise to (\d+) because "([^"]*)"$`, fc.cannotRaise)
	ctx.Step(`^the hand is complete$`, fc.theHandIsComplete)
	ctx.Step(`^"([^"]*)" has (\d+) chips$`, fc.playerHasChips)
	ctx.Step(`^the pot is (\d+)$`, fc.thePotIs)
	ctx.Step(`^the pots are:$`, fc.thePotsAre)
	ctx.Step(`^the log contains "([^"]*)"$`, fc.theLogContains)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
