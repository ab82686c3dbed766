package game

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionConstructorsRejectMissingFields(t *testing.T) {
	t.Parallel()

	_, err := NewBet(0)
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = NewCall(-1)
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = NewRaise(0, 10)
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = NewRaise(10, 0)
	assert.ErrorIs(t, err, ErrInvalidAction)

	raise, err := NewRaise(20, 40)
	require.NoError(t, err)
	assert.Equal(t, Raise, raise.Type())
	assert.Equal(t, 20, raise.AmountNeeded())
	assert.Equal(t, 40, raise.RaiseBy())
	assert.Equal(t, "raise 40 to 60", raise.String())
}

func TestZeroActionIsFold(t *testing.T) {
	t.Parallel()

	var a Action
	assert.Equal(t, Fold, a.Type())
	assert.Equal(t, NewFold(), a)
}

func TestActionJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(MustAction(NewBet(30)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"bet","amount":30}`, string(data))

	var decoded Action
	require.NoError(t, json.Unmarshal([]byte(`{"action":"raise","amount_needed":20,"raise_by":20}`), &decoded))
	assert.Equal(t, MustAction(NewRaise(20, 20)), decoded)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"action":"call"}`), &decoded), ErrInvalidAction)
	assert.Error(t, json.Unmarshal([]byte(`{"action":"shove"}`), &decoded))
}
