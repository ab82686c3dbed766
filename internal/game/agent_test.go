package game

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
)

func TestPassiveAgent(t *testing.T) {
	t.Parallel()

	free := DecisionState{CurrentBet: 10, StreetBet: 10}
	facing := DecisionState{CurrentBet: 20, StreetBet: 10}

	assert.Equal(t, NewCheck(), PassiveAgent{}.MakeDecision(free).Action)
	assert.Equal(t, NewFold(), PassiveAgent{}.MakeDecision(facing).Action)
}

func TestScriptedAgentFallsBackToPassive(t *testing.T) {
	t.Parallel()

	a := NewScriptedAgent(MustAction(NewBet(10)))
	assert.Equal(t, MustAction(NewBet(10)), a.MakeDecision(DecisionState{}).Action)
	assert.Equal(t, NewCheck(), a.MakeDecision(DecisionState{}).Action)
	assert.Len(t, a.Seen(), 2)
	assert.Zero(t, a.Remaining())
}

func TestHumanAgent(t *testing.T) {
	t.Parallel()

	t.Run("returns the prompted action", func(t *testing.T) {
		h := NewHumanAgent(func(s DecisionState) (Action, error) {
			return NewCall(s.CurrentBet)
		})
		assert.Equal(t, MustAction(NewCall(20)), h.MakeDecision(DecisionState{CurrentBet: 20}).Action)
	})

	t.Run("input error folds", func(t *testing.T) {
		h := NewHumanAgent(func(DecisionState) (Action, error) {
			return NewCheck(), errors.New("stdin closed")
		})
		d := h.MakeDecision(DecisionState{})
		assert.Equal(t, NewFold(), d.Action)
		assert.Contains(t, d.Reasoning, "stdin closed")
	})

	t.Run("no prompt folds", func(t *testing.T) {
		assert.Equal(t, NewFold(), NewHumanAgent(nil).MakeDecision(DecisionState{}).Action)
	})
}

func TestTimeoutAgentAnswersInTime(t *testing.T) {
	t.Parallel()

	mClock := quartz.NewMock(t)
	inner := NewScriptedAgent(MustAction(NewBet(30)))
	a := NewTimeoutAgent(inner, time.Minute, mClock, log.New(io.Discard))

	assert.Equal(t, MustAction(NewBet(30)), a.MakeDecision(DecisionState{}).Action)
}

func TestTimeoutAgentFallsBack(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)
	slow := AgentFunc(func(DecisionState) Decision {
		<-release
		return Decision{Action: MustAction(NewBet(30))}
	})

	a := NewTimeoutAgent(slow, 10*time.Millisecond, quartz.NewReal(), log.New(io.Discard))

	d := a.MakeDecision(DecisionState{CurrentBet: 20})
	assert.Equal(t, NewFold(), d.Action)
	assert.Contains(t, d.Reasoning, "timed out")

	d = a.MakeDecision(DecisionState{})
	assert.Equal(t, NewCheck(), d.Action)
}
