package playable

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimpleLogMessage(t *testing.T) {
	before := time.Now()
	lm := SimpleLogMessage(0, "test %d", 5)
	assert.Equal(t, "test 5", lm.Message)
	assert.Nil(t, lm.PlayerIDs)
	assert.False(t, lm.Time.Before(before))
	assert.False(t, lm.Time.After(time.Now()))
	assert.Nil(t, lm.Cards)
	assert.NotEmpty(t, lm.UUID)
}

func TestSimpleLogMessage_withPlayerID(t *testing.T) {
	lm := SimpleLogMessage(1, "test %d", 4)
	assert.Equal(t, "test 4", lm.Message)
	assert.Equal(t, []int64{1}, lm.PlayerIDs)
}

func TestSimpleLogMessageSlice(t *testing.T) {
	lms := SimpleLogMessageSlice(0, "test %d", 38)
	assert.Equal(t, 1, len(lms))
	assert.Equal(t, "test 38", lms[0].Message)
}

func TestOK(t *testing.T) {
	assert.Equal(t, &Response{Key: "status", Value: "OK"}, OK())
	assert.Equal(t, &Response{Key: "status", Value: "OK", Context: "abc"}, OK("abc"))
}

func TestPayloadIn_AdditionalData(t *testing.T) {
	a := assert.New(t)

	var payload PayloadIn
	err := json.Unmarshal([]byte(`{"action":"playerAction","subject":"raise","additionalData":{"amount":40,"text":"hi","ready":true}}`), &payload)
	a.NoError(err)
	a.Equal("playerAction", payload.Action)
	a.Equal("raise", payload.Subject)

	amount, ok := payload.AdditionalData.GetInt("amount")
	a.True(ok)
	a.Equal(40, amount)

	id, ok := payload.AdditionalData.GetInt64("amount")
	a.True(ok)
	a.Equal(int64(40), id)

	text, ok := payload.AdditionalData.GetString("text")
	a.True(ok)
	a.Equal("hi", text)

	ready, ok := payload.AdditionalData.GetBool("ready")
	a.True(ok)
	a.True(ready)

	_, ok = payload.AdditionalData.GetInt("text")
	a.False(ok)
	_, ok = payload.AdditionalData.GetBool("missing")
	a.False(ok)
}
