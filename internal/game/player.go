package game

import (
	"fmt"

	"github.com/lox/holdem/poker"
)

// PlayerType distinguishes the interactive seat from policy-driven ones
type PlayerType int

const (
	Human PlayerType = iota
	Policy
)

func (pt PlayerType) String() string {
	switch pt {
	case Human:
		return "human"
	case Policy:
		return "policy"
	default:
		return "unknown"
	}
}

// Participant is one seat at the table. Chips move between the stack, the
// street bet and the pot, never created or destroyed.
type Participant struct {
	Seat      int
	Name      string
	Type      PlayerType
	Agent     Agent
	Stack     int
	HoleCards []poker.Card

	StreetBet        int // committed on the current street
	HandContribution int // committed over the whole hand

	Folded          bool
	AllIn           bool
	Dealer          bool
	SmallBlind      bool
	BigBlind        bool
	ActedThisStreet bool
}

// NewParticipant creates a seated participant with a starting stack.
func NewParticipant(seat int, name string, typ PlayerType, stack int, agent Agent) *Participant {
	return &Participant{
		Seat:  seat,
		Name:  name,
		Type:  typ,
		Agent: agent,
		Stack: stack,
	}
}

// Eligible reports whether the participant can still take an action
func (p *Participant) Eligible() bool {
	return !p.Folded && !p.AllIn && p.Stack > 0
}

// InHand reports whether the participant still contests the pot
func (p *Participant) InHand() bool {
	return !p.Folded
}

// ToCall is the number of chips needed to match highestBet
func (p *Participant) ToCall(highestBet int) int {
	if highestBet <= p.StreetBet {
		return 0
	}
	return highestBet - p.StreetBet
}

// CanCheck is true when the street bet already equals toMatch
func (p *Participant) CanCheck(toMatch int) bool {
	return p.StreetBet == toMatch
}

// CanCall is true when toMatch is above the street bet and any chips are
// left. A stack short of the full call still calls, all-in.
func (p *Participant) CanCall(toMatch int) bool {
	return toMatch > p.StreetBet && p.Stack > 0
}

// CanBet is true when nothing has been put in this street and chips remain
func (p *Participant) CanBet() bool {
	return p.Stack > 0 && p.StreetBet == 0
}

// CanRaise is true when minRaise is positive and the stack covers the call
// to toMatch plus minRaise
func (p *Participant) CanRaise(toMatch, minRaise int) bool {
	return minRaise > 0 && p.Stack >= p.ToCall(toMatch)+minRaise
}

// RemoveChips takes up to amount from the stack and returns what was taken.
// Emptying the stack marks the participant all-in.
func (p *Participant) RemoveChips(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	if p.Stack == 0 {
		p.AllIn = true
	}
	return amount
}

// AddChips credits the stack
func (p *Participant) AddChips(amount int) {
	if amount > 0 {
		p.Stack += amount
	}
}

// commit moves chips from the stack into the street bet
func (p *Participant) commit(amount int) int {
	paid := p.RemoveChips(amount)
	p.StreetBet += paid
	p.HandContribution += paid
	return paid
}

// ApplyAction mutates the participant for an action and returns the chips
// committed. A check with chips owed changes nothing and is reported as an
// *IllegalActionError. A short stack on a call, bet or raise commits
// whatever remains.
func (p *Participant) ApplyAction(typ ActionType, amountNeeded, raiseBy int) (int, error) {
	switch typ {
	case Fold:
		p.Folded = true
		return 0, nil
	case Check:
		if p.StreetBet != amountNeeded {
			return 0, &IllegalActionError{
				Player: p.Name,
				Action: NewCheck(),
				Reason: fmt.Sprintf("%d chips owed", p.ToCall(amountNeeded)),
			}
		}
		return 0, nil
	case Call:
		return p.commit(p.ToCall(amountNeeded)), nil
	case Bet:
		return p.commit(amountNeeded), nil
	case Raise:
		return p.commit(p.ToCall(amountNeeded) + raiseBy), nil
	case AllIn:
		return p.commit(p.Stack), nil
	default:
		return 0, &IllegalActionError{Player: p.Name, Action: Action{typ: typ}, Reason: "unknown action"}
	}
}

// ResetForNewHand clears per-hand state. A participant with no chips sits
// the hand out and is treated as folded.
func (p *Participant) ResetForNewHand() {
	p.HoleCards = p.HoleCards[:0]
	p.StreetBet = 0
	p.HandContribution = 0
	p.AllIn = false
	p.Dealer = false
	p.SmallBlind = false
	p.BigBlind = false
	p.ActedThisStreet = false
	p.Folded = p.Stack <= 0
}

// ResetForNewStreet clears the street bet and the acted flag
func (p *Participant) ResetForNewStreet() {
	p.StreetBet = 0
	p.ActedThisStreet = false
}

func (p *Participant) String() string {
	return fmt.Sprintf("%s (seat %d, %d chips)", p.Name, p.Seat, p.Stack)
}
