package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/holdem/poker"
)

const (
	MinAggression = 1
	MaxAggression = 5
)

// PolicyAgent plays a fixed threshold strategy driven by the category of
// its best hand so far. Aggression shifts every threshold: higher values
// fold less, call more and bet sooner.
type PolicyAgent struct {
	Aggression int
}

// NewPolicyAgent clamps aggression into [MinAggression, MaxAggression].
func NewPolicyAgent(aggression int) *PolicyAgent {
	return &PolicyAgent{Aggression: max(MinAggression, min(MaxAggression, aggression))}
}

// NewRandomPolicyAgent draws aggression uniformly from the valid range.
func NewRandomPolicyAgent(rng *rand.Rand) *PolicyAgent {
	return NewPolicyAgent(MinAggression + rng.IntN(MaxAggression-MinAggression+1))
}

func (a *PolicyAgent) foldThreshold() float64 { return 0.3 - 0.05*float64(a.Aggression) }
func (a *PolicyAgent) callThreshold() float64 { return 0.5 + 0.02*float64(a.Aggression) }
func (a *PolicyAgent) betThreshold() float64  { return 0.6 + 0.05*float64(a.Aggression) }

// Strength maps a hand category onto [0, 1]
func Strength(rank poker.HandRank) float64 {
	return float64(rank) / float64(poker.MaxHandRank)
}

func (a *PolicyAgent) MakeDecision(s DecisionState) Decision {
	cards := make([]poker.Card, 0, len(s.HoleCards)+len(s.CommunityCards))
	cards = append(cards, s.HoleCards...)
	cards = append(cards, s.CommunityCards...)
	rank, desc := poker.Evaluate(cards)
	strength := Strength(rank)

	reason := func(what string) string {
		return fmt.Sprintf("%s with %s (strength %.2f, aggression %d)", what, desc, strength, a.Aggression)
	}

	if s.Stack <= 0 {
		return Decision{Action: NewCheck(), Reasoning: "no chips"}
	}

	toCall := s.ToCall()
	minBet := max(s.BigBlind, 1)

	if toCall == 0 {
		if strength <= a.betThreshold() {
			return Decision{Action: NewCheck(), Reasoning: reason("check")}
		}
		if s.Stack <= minBet {
			return Decision{Action: NewAllIn(), Reasoning: reason("shove")}
		}
		if s.CurrentBet == 0 {
			if bet, err := NewBet(minBet); err == nil {
				return Decision{Action: bet, Reasoning: reason("bet")}
			}
		} else if raise, err := NewRaise(s.CurrentBet, minBet); err == nil {
			return Decision{Action: raise, Reasoning: reason("raise the option")}
		}
		return Decision{Action: NewCheck(), Reasoning: reason("check")}
	}

	if s.Stack <= toCall {
		if strength < a.foldThreshold() {
			return Decision{Action: NewFold(), Reasoning: reason("fold short")}
		}
		return Decision{Action: NewAllIn(), Reasoning: reason("call all-in")}
	}

	switch {
	case strength < a.foldThreshold():
		return Decision{Action: NewFold(), Reasoning: reason("fold")}
	case strength < a.callThreshold() || s.Stack-toCall <= minBet:
		call, err := NewCall(s.CurrentBet)
		if err != nil {
			return Decision{Action: NewFold(), Reasoning: err.Error()}
		}
		return Decision{Action: call, Reasoning: reason("call")}
	default:
		raise, err := NewRaise(s.CurrentBet, minBet)
		if err != nil {
			return Decision{Action: NewFold(), Reasoning: err.Error()}
		}
		return Decision{Action: raise, Reasoning: reason("raise")}
	}
}
