package game

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Street represents the phase of a hand
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
	HandEnd
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	case HandEnd:
		return "hand_end"
	default:
		return "unknown"
	}
}

// BettingRound runs the betting on a single street. It owns whose turn it
// is, the highest street bet and the last aggressor; participants own
// their chips.
type BettingRound struct {
	players []*Participant
	logger  *log.Logger

	street        Street
	highestBet    int
	actor         int
	firstActor    int
	lastAggressor int
	closed        bool
}

// NewBettingRound creates a controller over the seated participants
func NewBettingRound(players []*Participant, logger *log.Logger) *BettingRound {
	return &BettingRound{
		players:       players,
		logger:        logger,
		actor:         -1,
		firstActor:    -1,
		lastAggressor: -1,
		closed:        true,
	}
}

// Street returns the street being bet
func (br *BettingRound) Street() Street { return br.street }

// HighestBet returns the largest street bet any participant has made
func (br *BettingRound) HighestBet() int { return br.highestBet }

// Actor returns the seat index whose turn it is, or -1 once closed
func (br *BettingRound) Actor() int { return br.actor }

// FirstActor returns the seat that opened the action this street
func (br *BettingRound) FirstActor() int { return br.firstActor }

// LastAggressor returns the seat that last raised the highest bet, or the
// first actor when nobody has. It is -1 before Start or when no seat can act.
func (br *BettingRound) LastAggressor() int { return br.lastAggressor }

// Closed reports whether the street's betting has finished
func (br *BettingRound) Closed() bool { return br.closed }

// openWithBlind records the big blind as the bet to match before preflop
// action starts.
func (br *BettingRound) openWithBlind(bigBlind int) {
	br.highestBet = bigBlind
}

// Start begins betting on street. Preflop keeps the blinds already posted
// as street bets; later streets start from zero. The first actor is the
// first eligible seat after the big blind preflop and after the dealer
// otherwise, and it starts as the last aggressor.
func (br *BettingRound) Start(street Street, dealer int) {
	br.street = street
	br.closed = false

	anchor := dealer
	if street == Preflop {
		for i, p := range br.players {
			if p.BigBlind {
				anchor = i
			}
			p.ActedThisStreet = false
		}
	} else {
		br.highestBet = 0
		for _, p := range br.players {
			p.ResetForNewStreet()
		}
	}

	br.firstActor = br.nextEligible(anchor + 1)
	br.actor = br.firstActor
	br.lastAggressor = br.firstActor
	if br.actor < 0 || br.IsRoundOver() {
		br.close()
		return
	}

	br.logger.Debug("betting round started",
		"street", street,
		"first_actor", br.players[br.actor].Name,
		"highest_bet", br.highestBet)
}

// ValidActions lists the action types the current rules accept from p.
// Raise is offered when the stack covers the call plus at least one chip;
// shorter stacks can still call or move all-in.
func (br *BettingRound) ValidActions(p *Participant) []ActionType {
	valid := []ActionType{Fold}
	switch {
	case p.CanCheck(br.highestBet):
		valid = append(valid, Check)
	case p.CanCall(br.highestBet):
		valid = append(valid, Call)
	}
	switch {
	case br.highestBet == 0 && p.CanBet():
		valid = append(valid, Bet)
	case br.highestBet > 0 && p.CanRaise(br.highestBet, 1):
		valid = append(valid, Raise)
	}
	return append(valid, AllIn)
}

// Act applies an action from the participant whose turn it is and advances
// the turn. The returned count is the chips moved into the street bet. An
// illegal action leaves the state untouched and keeps the same actor.
func (br *BettingRound) Act(a Action) (int, error) {
	if br.closed {
		return 0, ErrRoundClosed
	}
	p := br.players[br.actor]
	if err := br.validate(p, a); err != nil {
		return 0, err
	}

	var committed int
	var err error
	switch a.Type() {
	case Bet:
		committed, err = p.ApplyAction(Bet, a.Amount(), 0)
	case Raise:
		committed, err = p.ApplyAction(Raise, a.AmountNeeded(), a.RaiseBy())
	default:
		committed, err = p.ApplyAction(a.Type(), br.highestBet, 0)
	}
	if err != nil {
		return 0, err
	}
	p.ActedThisStreet = true

	if p.StreetBet > br.highestBet {
		br.highestBet = p.StreetBet
		br.lastAggressor = br.actor
	}

	br.logger.Debug("action applied",
		"player", p.Name,
		"action", a,
		"committed", committed,
		"stack", p.Stack,
		"highest_bet", br.highestBet)

	br.advance()
	return committed, nil
}

func (br *BettingRound) validate(p *Participant, a Action) error {
	illegal := func(format string, args ...any) error {
		return &IllegalActionError{Player: p.Name, Action: a, Reason: fmt.Sprintf(format, args...)}
	}

	switch a.Type() {
	case Fold, AllIn:
		return nil
	case Check:
		if !p.CanCheck(br.highestBet) {
			return illegal("%d to call", p.ToCall(br.highestBet))
		}
	case Call:
		if !p.CanCall(br.highestBet) {
			return illegal("nothing to call")
		}
		if a.AmountNeeded() != br.highestBet {
			return illegal("bet to match is %d", br.highestBet)
		}
	case Bet:
		if br.highestBet > 0 {
			return illegal("betting already opened at %d", br.highestBet)
		}
		if !p.CanBet() {
			return illegal("already committed %d this street", p.StreetBet)
		}
	case Raise:
		if br.highestBet == 0 {
			return illegal("no bet to raise")
		}
		if a.AmountNeeded() != br.highestBet {
			return illegal("bet to match is %d", br.highestBet)
		}
	default:
		return illegal("unknown action")
	}
	return nil
}

func (br *BettingRound) advance() {
	if br.IsRoundOver() {
		br.close()
		return
	}
	next := br.nextEligible(br.actor + 1)
	if next < 0 {
		br.close()
		return
	}
	br.actor = next
}

func (br *BettingRound) close() {
	br.closed = true
	br.actor = -1
}

// IsRoundOver reports whether betting on this street is finished. Matched
// stacks alone do not close the street: every eligible seat must also have
// acted, so the big blind keeps its preflop option after everyone limps. It
// is over once at most one participant remains, or when every participant
// who can still act has matched the highest bet and acted. With every
// stack matched, all eligible seats having acted means action has come
// back round to the last aggressor, or to the first actor when nobody bet.
func (br *BettingRound) IsRoundOver() bool {
	inHand := 0
	for _, p := range br.players {
		if p.InHand() {
			inHand++
		}
	}
	if inHand <= 1 {
		return true
	}

	var eligible []*Participant
	for _, p := range br.players {
		if p.Folded || p.AllIn {
			continue
		}
		if p.StreetBet != br.highestBet {
			return false
		}
		if p.Eligible() {
			eligible = append(eligible, p)
		}
	}

	// nobody left to bet against
	if len(eligible) <= 1 {
		return true
	}

	for _, p := range eligible {
		if !p.ActedThisStreet {
			return false
		}
	}
	return true
}

// CollectBets moves every street bet into the pot
func (br *BettingRound) CollectBets(pot *Pot) int {
	collected := pot.Collect(br.players)
	br.logger.Debug("bets collected", "street", br.street, "collected", collected, "pot", pot.Amount())
	return collected
}

// nextEligible scans cyclically from seat start for someone who can act
func (br *BettingRound) nextEligible(start int) int {
	n := len(br.players)
	if n == 0 {
		return -1
	}
	start = ((start % n) + n) % n
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if br.players[idx].Eligible() {
			return idx
		}
	}
	return -1
}
