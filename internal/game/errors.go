package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is the root of every rejected action. The action is
	// ignored and the turn does not advance.
	ErrIllegalAction = errors.New("illegal action")
	// ErrInvalidAction is returned by action constructors when a required
	// field is missing.
	ErrInvalidAction = errors.New("invalid action")
	// ErrNotEnoughPlayers ends a hand before it starts when fewer than two
	// seats have chips.
	ErrNotEnoughPlayers = errors.New("not enough players with chips")
	// ErrNoEligibleActor reports a betting round that cannot find anyone to act.
	ErrNoEligibleActor = errors.New("no eligible player to act")
	// ErrHandOver is returned when playing a hand that has already ended.
	ErrHandOver = errors.New("hand is over")
	// ErrRoundClosed is returned when acting on a betting round that has ended.
	ErrRoundClosed = errors.New("betting round is closed")
	// ErrChipsNotConserved reports a table whose chip total has changed.
	ErrChipsNotConserved = errors.New("chips not conserved")
)

// IllegalActionError describes why an action was refused.
type IllegalActionError struct {
	Player string
	Action Action
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("%s cannot %s: %s", e.Player, e.Action, e.Reason)
}

func (e *IllegalActionError) Unwrap() error {
	return ErrIllegalAction
}
