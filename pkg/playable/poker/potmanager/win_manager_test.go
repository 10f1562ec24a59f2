package potmanager

import (
	"holdem-server/pkg/poker"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testParticipant struct {
	id          string
	contributed int
	folded      bool
}

func (t *testParticipant) ID() string {
	return t.id
}

func (t *testParticipant) Contributed() int {
	return t.contributed
}

func (t *testParticipant) Folded() bool {
	return t.folded
}

func newTestParticipant(id string, contributed int) *testParticipant {
	return &testParticipant{
		id:          id,
		contributed: contributed,
	}
}

func TestNewWinManager(t *testing.T) {
	a := assert.New(t)

	wm := NewWinManager()
	wm.AddParticipant(newTestParticipant("1", 100), poker.Strength(10))
	wm.AddParticipant(newTestParticipant("2", 100), poker.Strength(20))
	wm.AddParticipant(newTestParticipant("3", 100), poker.Strength(30))
	wm.AddParticipant(newTestParticipant("4", 100), poker.Strength(20))
	wm.AddParticipant(newTestParticipant("5", 100), poker.Strength(30))

	tiers := wm.GetSortedTiers()
	a.Equal("3-5|2-4|1", tiersToString(tiers))
}

func tiersToString(tiers [][]Participant) string {
	s := make([]string, len(tiers))
	for i, participants := range tiers {
		ids := make([]string, len(participants))
		for j, p := range participants {
			ids[j] = p.ID()
		}

		s[i] = strings.Join(ids, "-")
	}

	return strings.Join(s, "|")
}
