package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	a := assert.New(t)

	act, err := FromString("raise")
	a.NoError(err)
	a.Equal(Raise, act)

	act, err = FromString("allIn")
	a.NoError(err)
	a.Equal(AllIn, act)

	act, err = FromString("discard")
	a.EqualError(err, "unknown action for identifier: discard")
	a.Equal(Action(""), act)
}

func TestAction_MarshalJSON(t *testing.T) {
	b, err := json.Marshal([]Action{Check, AllIn})
	assert.NoError(t, err)
	assert.JSONEq(t, `[{"id":"check","name":"Check"},{"id":"allIn","name":"All In"}]`, string(b))
}

func TestAction_LogMessage(t *testing.T) {
	a := assert.New(t)
	a.Equal("folded", Fold.LogMessage(0))
	a.Equal("called $20", Call.LogMessage(20))
	a.Equal("raised to $40", Raise.LogMessage(40))
	a.Equal("is all in for $75", AllIn.LogMessage(75))
	a.True(Raise.IsAggressive())
	a.False(Call.IsAggressive())
	a.False(Action("nope").IsValid())
	a.Panics(func() {
		_ = Action("nope").String()
	})
}
