package game

import (
	"sync"

	"github.com/lox/holdem/poker"
)

// Decision is an agent's chosen action with an optional explanation
type Decision struct {
	Action    Action
	Reasoning string
}

// DecisionState is the read-only view handed to an agent on its turn
type DecisionState struct {
	HandID string
	Street Street

	// Table-wide inputs
	CurrentBet     int // highest street bet to match
	Pot            int // collected pot plus outstanding street bets
	ActivePlayers  int // participants who have not folded
	CommunityCards []poker.Card
	SmallBlind     int
	BigBlind       int

	// The acting participant
	Seat         int
	Name         string
	Stack        int
	StreetBet    int
	HoleCards    []poker.Card
	ValidActions []ActionType
}

// ToCall is what the acting participant owes this street
func (s DecisionState) ToCall() int {
	if s.CurrentBet <= s.StreetBet {
		return 0
	}
	return s.CurrentBet - s.StreetBet
}

// Agent chooses actions for a participant. Agents see copies of the state
// and never mutate the table.
type Agent interface {
	MakeDecision(state DecisionState) Decision
}

// AgentFunc adapts a function to the Agent interface
type AgentFunc func(state DecisionState) Decision

func (f AgentFunc) MakeDecision(state DecisionState) Decision { return f(state) }

// PassiveAgent checks when it can and folds otherwise. It is the fallback
// for seats with no agent and for agents that keep choosing illegal actions.
type PassiveAgent struct{}

func (PassiveAgent) MakeDecision(state DecisionState) Decision {
	if state.ToCall() == 0 {
		return Decision{Action: NewCheck(), Reasoning: "check when free"}
	}
	return Decision{Action: NewFold(), Reasoning: "fold when facing a bet"}
}

// ScriptedAgent replays a fixed list of actions, then falls back to
// PassiveAgent. It is safe to share between goroutines.
type ScriptedAgent struct {
	mu      sync.Mutex
	actions []Action
	seen    []DecisionState
}

// NewScriptedAgent creates an agent that plays actions in order
func NewScriptedAgent(actions ...Action) *ScriptedAgent {
	return &ScriptedAgent{actions: actions}
}

func (a *ScriptedAgent) MakeDecision(state DecisionState) Decision {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.seen = append(a.seen, state)
	if len(a.actions) == 0 {
		return PassiveAgent{}.MakeDecision(state)
	}
	next := a.actions[0]
	a.actions = a.actions[1:]
	return Decision{Action: next, Reasoning: "scripted"}
}

// Seen returns every state the agent was asked to decide on
func (a *ScriptedAgent) Seen() []DecisionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]DecisionState(nil), a.seen...)
}

// Remaining returns how many scripted actions are left
func (a *ScriptedAgent) Remaining() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.actions)
}
