package playable

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimpleLogMessage(t *testing.T) {
	before := time.Now()
	lm := SimpleLogMessage("", "test %d", 5)
	assert.Equal(t, "test 5", lm.Message)
	assert.Nil(t, lm.Usernames)
	assert.False(t, lm.Time.Before(before))
	assert.False(t, time.Now().Before(lm.Time))
	assert.NotEmpty(t, lm.UUID)
}

func TestSimpleLogMessage_withUsername(t *testing.T) {
	lm := SimpleLogMessage("alice", "%s bet %d", "alice", 4)
	assert.Equal(t, "alice bet 4", lm.Message)
	assert.Equal(t, []string{"alice"}, lm.Usernames)
}

func TestOK(t *testing.T) {
	a := assert.New(t)

	res := OK()
	a.Equal("status", res.Key)
	a.Equal("OK", res.Value)
	a.Equal("", res.Context)

	res = OK("abc")
	a.Equal("abc", res.Context)
	a.NotEqual(OK().ID, OK().ID)
}

func TestNewEvent(t *testing.T) {
	a := assert.New(t)

	ev := NewEvent("roundsSet", map[string]int{"numRounds": 3})
	a.Equal("roundsSet", ev.Key)
	a.NotEmpty(ev.ID)

	withCtx := ev.WithContext("ctx-1")
	a.Equal("ctx-1", withCtx.Context)
	a.Equal("", ev.Context)
	a.Equal(ev.ID, withCtx.ID)

	b, err := json.Marshal(ev)
	a.NoError(err)
	a.JSONEq(`{"id":"`+ev.ID+`","key":"roundsSet","data":{"numRounds":3}}`, string(b))
}

func TestNewError(t *testing.T) {
	res := NewError("bet", errors.New("no rounds left"))
	assert.Equal(t, "error", res.Key)
	assert.Equal(t, "no rounds left", res.Value)
	assert.Equal(t, "bet", res.Context)
	assert.NotEmpty(t, res.ID)
}

func TestAdditionalData(t *testing.T) {
	a := assert.New(t)

	var payload PayloadIn
	a.NoError(json.Unmarshal([]byte(`{
		"action": "bet",
		"additionalData": {"amount": 5, "half": 2.5, "direction": "high"},
		"context": "c1"
	}`), &payload))

	a.Equal("bet", payload.Action)
	a.Equal("c1", payload.Context)

	amount, ok := payload.AdditionalData.GetInt("amount")
	a.True(ok)
	a.Equal(5, amount)

	_, ok = payload.AdditionalData.GetInt("half")
	a.False(ok)

	_, ok = payload.AdditionalData.GetInt("missing")
	a.False(ok)

	_, ok = payload.AdditionalData.GetInt("direction")
	a.False(ok)

	direction, ok := payload.AdditionalData.GetString("direction")
	a.True(ok)
	a.Equal("high", direction)

	_, ok = payload.AdditionalData.GetString("amount")
	a.False(ok)
}
