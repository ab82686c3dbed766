package game

import (
	"fmt"

	"github.com/goccy/go-json"
)

// ActionType tags the variant of an Action
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a ActionType) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case AllIn:
		return "all_in"
	default:
		return "unknown"
	}
}

// Action is a closed union of the six things a player can do. Values are
// built with the constructors below, which reject a variant whose required
// fields are missing. The zero Action is a fold.
type Action struct {
	typ          ActionType
	amount       int // bet: chips to open with
	amountNeeded int // call, raise: the bet being matched
	raiseBy      int // raise: chips on top of the matched bet
}

// NewFold returns a fold
func NewFold() Action { return Action{typ: Fold} }

// NewCheck returns a check
func NewCheck() Action { return Action{typ: Check} }

// NewAllIn returns an all-in for the player's whole stack
func NewAllIn() Action { return Action{typ: AllIn} }

// NewBet opens the betting with amount chips.
func NewBet(amount int) (Action, error) {
	if amount <= 0 {
		return Action{}, fmt.Errorf("%w: bet needs a positive amount, got %d", ErrInvalidAction, amount)
	}
	return Action{typ: Bet, amount: amount}, nil
}

// NewCall matches amountNeeded, the current bet to match.
func NewCall(amountNeeded int) (Action, error) {
	if amountNeeded <= 0 {
		return Action{}, fmt.Errorf("%w: call needs the amount to match, got %d", ErrInvalidAction, amountNeeded)
	}
	return Action{typ: Call, amountNeeded: amountNeeded}, nil
}

// NewRaise matches amountNeeded and adds raiseBy on top.
func NewRaise(amountNeeded, raiseBy int) (Action, error) {
	if amountNeeded <= 0 {
		return Action{}, fmt.Errorf("%w: raise needs the amount to match, got %d", ErrInvalidAction, amountNeeded)
	}
	if raiseBy <= 0 {
		return Action{}, fmt.Errorf("%w: raise needs a positive raise, got %d", ErrInvalidAction, raiseBy)
	}
	return Action{typ: Raise, amountNeeded: amountNeeded, raiseBy: raiseBy}, nil
}

// Type returns the variant
func (a Action) Type() ActionType { return a.typ }

// Amount is the opening amount of a bet
func (a Action) Amount() int { return a.amount }

// AmountNeeded is the bet a call or raise matches
func (a Action) AmountNeeded() int { return a.amountNeeded }

// RaiseBy is the increment of a raise
func (a Action) RaiseBy() int { return a.raiseBy }

func (a Action) String() string {
	switch a.typ {
	case Bet:
		return fmt.Sprintf("bet %d", a.amount)
	case Call:
		return fmt.Sprintf("call %d", a.amountNeeded)
	case Raise:
		return fmt.Sprintf("raise %d to %d", a.raiseBy, a.amountNeeded+a.raiseBy)
	default:
		return a.typ.String()
	}
}

type actionJSON struct {
	Action       string `json:"action"`
	Amount       int    `json:"amount,omitempty"`
	AmountNeeded int    `json:"amount_needed,omitempty"`
	RaiseBy      int    `json:"raise_by,omitempty"`
}

// MarshalJSON encodes the action with its tag, for hand histories.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(actionJSON{
		Action:       a.typ.String(),
		Amount:       a.amount,
		AmountNeeded: a.amountNeeded,
		RaiseBy:      a.raiseBy,
	})
}

// UnmarshalJSON decodes an action written by MarshalJSON, applying the
// same checks as the constructors.
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw actionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	switch raw.Action {
	case "fold":
		*a = NewFold()
	case "check":
		*a = NewCheck()
	case "all_in":
		*a = NewAllIn()
	case "bet":
		*a, err = NewBet(raw.Amount)
	case "call":
		*a, err = NewCall(raw.AmountNeeded)
	case "raise":
		*a, err = NewRaise(raw.AmountNeeded, raw.RaiseBy)
	default:
		err = fmt.Errorf("%w: unknown action %q", ErrInvalidAction, raw.Action)
	}
	return err
}
