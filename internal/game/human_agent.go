package game

import (
	"fmt"
)

// PromptFunc asks a person for an action given the current state
type PromptFunc func(state DecisionState) (Action, error)

// HumanAgent represents a human player that can interact through a user interface
type HumanAgent struct {
	promptFunc PromptFunc
}

// NewHumanAgent creates a new human agent with a prompt function
func NewHumanAgent(promptFunc PromptFunc) *HumanAgent {
	return &HumanAgent{promptFunc: promptFunc}
}

// MakeDecision prompts the human for a decision. A missing prompt or an
// input error folds.
func (h *HumanAgent) MakeDecision(state DecisionState) Decision {
	if h.promptFunc == nil {
		return Decision{Action: NewFold(), Reasoning: "no user interface available"}
	}

	action, err := h.promptFunc(state)
	if err != nil {
		return Decision{Action: NewFold(), Reasoning: fmt.Sprintf("input error: %v", err)}
	}
	return Decision{Action: action}
}
