package game

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/lox/holdem/poker"
)

// maxDecisionAttempts is how many illegal actions an agent may choose on
// one turn before the table checks or folds for it.
const maxDecisionAttempts = 3

// ShowdownHand is one contender's cards and category at showdown
type ShowdownHand struct {
	Seat        int            `json:"seat"`
	Player      string         `json:"player"`
	HoleCards   []poker.Card   `json:"hole_cards"`
	Rank        poker.HandRank `json:"rank"`
	Description string         `json:"description"`
}

// ShowdownResult names the winners of a hand. A hand won because everyone
// else folded is uncontested and nobody's cards are evaluated.
type ShowdownResult struct {
	Winners     []*Participant `json:"-"`
	Rank        poker.HandRank `json:"rank"`
	Description string         `json:"description"`
	Hands       []ShowdownHand `json:"hands,omitempty"`
	Uncontested bool           `json:"uncontested"`
}

// HandResult summarises a finished hand
type HandResult struct {
	HandID      string         `json:"hand_id"`
	Number      int            `json:"number"`
	Dealer      int            `json:"dealer"`
	Board       []poker.Card   `json:"board"`
	Pot         int            `json:"pot"`
	Awards      []Award        `json:"awards"`
	Rank        poker.HandRank `json:"rank"`
	Description string         `json:"description"`
	Uncontested bool           `json:"uncontested"`
	LastStreet  Street         `json:"-"`
	StartedAt   time.Time      `json:"started_at"`
	EndedAt     time.Time      `json:"ended_at"`
	EndReason   error          `json:"-"`
}

// Winners returns the names of everyone paid from the pot
func (r *HandResult) Winners() []string {
	names := make([]string, len(r.Awards))
	for i, a := range r.Awards {
		names[i] = a.Player
	}
	return names
}

// Hand is a single deal at a table, from blinds to payout
type Hand struct {
	table   *Table
	id      string
	number  int
	started time.Time

	pot     Pot
	betting *BettingRound
	street  Street
	board   []poker.Card
}

func newHand(t *Table, id string, number int) *Hand {
	return &Hand{
		table:   t,
		id:      id,
		number:  number,
		started: t.clock.Now(),
		betting: NewBettingRound(t.players, t.logger.With("hand", number)),
		street:  Preflop,
	}
}

// ID returns the hand's unique identifier
func (h *Hand) ID() string { return h.id }

// Number is the table's hand counter when this hand started
func (h *Hand) Number() int { return h.number }

// Street returns the current phase
func (h *Hand) Street() Street { return h.street }

// Board returns a copy of the community cards
func (h *Hand) Board() []poker.Card { return slices.Clone(h.board) }

// Betting exposes the controller for the street being bet
func (h *Hand) Betting() *BettingRound { return h.betting }

// CollectedPot is the chips swept from finished streets
func (h *Hand) CollectedPot() int { return h.pot.Amount() }

// Pot is the collected pot plus every outstanding street bet
func (h *Hand) Pot() int {
	total := h.pot.Amount()
	for _, p := range h.table.players {
		total += p.StreetBet
	}
	return total
}

// Snapshot copies the visible state of the hand
func (h *Hand) Snapshot() Snapshot {
	t := h.table
	return Snapshot{
		HandID:       h.id,
		HandNumber:   h.number,
		Street:       h.street,
		StreetName:   h.street.String(),
		Dealer:       t.dealer,
		Actor:        h.betting.Actor(),
		Pot:          h.Pot(),
		CollectedPot: h.pot.Amount(),
		HighestBet:   h.betting.HighestBet(),
		SmallBlind:   t.cfg.SmallBlind,
		BigBlind:     t.cfg.BigBlind,
		Board:        slices.Clone(h.board),
		Players:      snapshotPlayers(t.players),
	}
}

func (h *Hand) base() eventBase {
	return eventBase{at: h.table.clock.Now(), snapshot: h.Snapshot()}
}

func (h *Hand) inHand() []*Participant {
	var out []*Participant
	for _, p := range h.table.players {
		if p.InHand() {
			out = append(out, p)
		}
	}
	return out
}

// AssignBlinds posts both blinds as street bets. Heads-up the dealer posts
// the small blind; otherwise the two funded seats after the dealer post.
// A short stack posts what it has and is all-in. The bet to match is the
// full big blind regardless.
func (h *Hand) AssignBlinds() error {
	t := h.table
	if len(h.inHand()) < MinSeats {
		return ErrNotEnoughPlayers
	}

	sb := t.nextFunded(t.dealer + 1)
	if len(h.inHand()) == 2 {
		sb = t.dealer
	}
	bb := t.nextFunded(sb + 1)

	small, big := t.players[sb], t.players[bb]
	small.SmallBlind = true
	big.BigBlind = true
	sbPaid := small.commit(t.cfg.SmallBlind)
	bbPaid := big.commit(t.cfg.BigBlind)
	h.betting.openWithBlind(t.cfg.BigBlind)

	t.logger.Debug("blinds posted",
		"small_blind", small.Name, "sb_paid", sbPaid,
		"big_blind", big.Name, "bb_paid", bbPaid)
	t.bus.Publish(BlindsPostedEvent{
		eventBase:      h.base(),
		SmallBlindSeat: sb,
		SmallBlind:     sbPaid,
		BigBlindSeat:   bb,
		BigBlind:       bbPaid,
	})
	return nil
}

// DealHoleCards gives two cards to everyone in the hand, one per pass,
// starting left of the dealer.
func (h *Hand) DealHoleCards() {
	t := h.table
	defer h.checkReshuffle(t.deck.Reshuffles())
	n := len(t.players)
	for pass := 0; pass < 2; pass++ {
		for i := 1; i <= n; i++ {
			p := t.players[(t.dealer+i)%n]
			if p.InHand() {
				p.HoleCards = append(p.HoleCards, t.deck.DealTop())
			}
		}
	}
	t.bus.Publish(HoleCardsDealtEvent{eventBase: h.base()})
}

// DealCommunity burns one card and turns the flop, turn or river.
func (h *Hand) DealCommunity(street Street) error {
	var count int
	switch street {
	case Flop:
		count = 3
	case Turn, River:
		count = 1
	default:
		return fmt.Errorf("no community cards on the %s", street)
	}
	defer h.checkReshuffle(h.table.deck.Reshuffles())
	h.table.deck.Burn()
	h.board = append(h.board, h.table.deck.Deal(count)...)
	h.street = street
	return nil
}

func (h *Hand) checkReshuffle(before int) {
	if n := h.table.deck.Reshuffles(); n > before {
		h.table.logger.Warn("deck ran out and was reshuffled", "hand_id", h.id, "reshuffles", n)
	}
}

// PlayStreet runs the betting for street to completion and collects the
// bets into the pot.
func (h *Hand) PlayStreet(street Street) error {
	t := h.table
	if h.street == HandEnd {
		return ErrHandOver
	}
	h.street = street
	h.betting.Start(street, t.dealer)
	t.bus.Publish(StreetStartEvent{eventBase: h.base(), Street: street, Board: slices.Clone(h.board)})

	for !h.betting.Closed() {
		if err := h.takeTurn(); err != nil {
			return err
		}
	}

	h.betting.CollectBets(&h.pot)
	t.bus.Publish(StreetCompleteEvent{eventBase: h.base(), Street: street, Pot: h.pot.Amount()})
	return nil
}

func (h *Hand) decisionState(p *Participant) DecisionState {
	t := h.table
	return DecisionState{
		HandID:         h.id,
		Street:         h.street,
		CurrentBet:     h.betting.HighestBet(),
		Pot:            h.Pot(),
		ActivePlayers:  len(h.inHand()),
		CommunityCards: slices.Clone(h.board),
		SmallBlind:     t.cfg.SmallBlind,
		BigBlind:       t.cfg.BigBlind,
		Seat:           p.Seat,
		Name:           p.Name,
		Stack:          p.Stack,
		StreetBet:      p.StreetBet,
		HoleCards:      slices.Clone(p.HoleCards),
		ValidActions:   h.betting.ValidActions(p),
	}
}

// takeTurn asks the actor's agent for an action, re-prompting on illegal
// choices. After maxDecisionAttempts it checks if free and folds otherwise.
func (h *Hand) takeTurn() error {
	t := h.table
	seat := h.betting.Actor()
	if seat < 0 {
		return ErrNoEligibleActor
	}
	p := t.players[seat]

	var agent Agent = PassiveAgent{}
	if p.Agent != nil {
		agent = p.Agent
	}

	for attempt := 1; attempt <= maxDecisionAttempts; attempt++ {
		decision := agent.MakeDecision(h.decisionState(p))
		committed, err := h.betting.Act(decision.Action)
		if err == nil {
			h.publishAction(p, decision, committed)
			return nil
		}

		var illegal *IllegalActionError
		if !errors.As(err, &illegal) {
			return err
		}
		t.logger.Warn("illegal action", "player", p.Name, "action", decision.Action, "reason", illegal.Reason, "attempt", attempt)
		t.bus.Publish(IllegalActionEvent{
			eventBase: h.base(),
			Seat:      seat,
			Player:    p.Name,
			Action:    decision.Action,
			Reason:    illegal.Reason,
			Attempt:   attempt,
		})
	}

	fallback := PassiveAgent{}.MakeDecision(h.decisionState(p))
	fallback.Reasoning = fmt.Sprintf("%s after %d illegal actions", fallback.Action, maxDecisionAttempts)
	committed, err := h.betting.Act(fallback.Action)
	if err != nil {
		return fmt.Errorf("fallback for %s: %w", p.Name, err)
	}
	h.publishAction(p, fallback, committed)
	return nil
}

func (h *Hand) publishAction(p *Participant, d Decision, committed int) {
	t := h.table
	t.logger.Info("player action",
		"player", p.Name,
		"street", h.street,
		"action", d.Action,
		"committed", committed,
		"pot", h.Pot())
	t.bus.Publish(PlayerActionEvent{
		eventBase: h.base(),
		Seat:      p.Seat,
		Player:    p.Name,
		Street:    h.street,
		Action:    d.Action,
		Committed: committed,
		Reasoning: d.Reasoning,
		PotAfter:  h.Pot(),
	})
}

// DetermineWinners picks the best hand among participants still in. A
// lone survivor wins without any evaluation. Ties share the win in seat
// order.
func (h *Hand) DetermineWinners() ShowdownResult {
	contenders := h.inHand()
	switch len(contenders) {
	case 0:
		return ShowdownResult{Description: "no contenders"}
	case 1:
		w := contenders[0]
		return ShowdownResult{
			Winners:     contenders,
			Description: fmt.Sprintf("%s wins uncontested", w.Name),
			Uncontested: true,
		}
	}

	result := ShowdownResult{Rank: poker.NoHand}
	for _, p := range contenders {
		cards := make([]poker.Card, 0, len(p.HoleCards)+len(h.board))
		cards = append(cards, p.HoleCards...)
		cards = append(cards, h.board...)
		rank, desc := h.table.evaluate(cards)
		result.Hands = append(result.Hands, ShowdownHand{
			Seat:        p.Seat,
			Player:      p.Name,
			HoleCards:   slices.Clone(p.HoleCards),
			Rank:        rank,
			Description: desc,
		})

		switch poker.CompareHands(rank, result.Rank) {
		case 1:
			result.Rank = rank
			result.Description = desc
			result.Winners = []*Participant{p}
		case 0:
			result.Winners = append(result.Winners, p)
		}
	}
	return result
}

// DistributePot pays the collected pot to winners and empties it
func (h *Hand) DistributePot(winners []*Participant) []Award {
	awards := h.pot.Distribute(winners)
	if len(awards) > 0 {
		h.table.bus.Publish(PotAwardedEvent{eventBase: h.base(), Awards: awards})
	}
	return awards
}

// Play runs the hand from blinds to payout. Streets stop early once at most
// one participant is left; with everyone all-in the board is still dealt
// out.
func (h *Hand) Play() *HandResult {
	t := h.table
	if h.street == HandEnd {
		return &HandResult{HandID: h.id, Number: h.number, EndReason: ErrHandOver}
	}
	result := &HandResult{
		HandID:    h.id,
		Number:    h.number,
		Dealer:    t.dealer,
		StartedAt: h.started,
	}

	finish := func(err error) *HandResult {
		h.street = HandEnd
		result.EndReason = err
		result.Board = slices.Clone(h.board)
		result.EndedAt = t.clock.Now()
		if err != nil {
			t.logger.Warn("hand ended early", "hand_id", h.id, "error", err)
		}
		t.bus.Publish(HandEndEvent{eventBase: h.base(), Result: result})
		return result
	}

	if err := h.AssignBlinds(); err != nil {
		return finish(err)
	}
	h.DealHoleCards()

	for _, street := range []Street{Preflop, Flop, Turn, River} {
		if street != Preflop {
			if err := h.DealCommunity(street); err != nil {
				return finish(err)
			}
		}
		result.LastStreet = street
		if err := h.PlayStreet(street); err != nil {
			return finish(err)
		}
		if len(h.inHand()) <= 1 {
			break
		}
	}

	h.street = Showdown
	result.Pot = h.pot.Amount()
	showdown := h.DetermineWinners()
	result.Rank = showdown.Rank
	result.Description = showdown.Description
	result.Uncontested = showdown.Uncontested
	t.bus.Publish(ShowdownEvent{eventBase: h.base(), Result: showdown})

	result.Awards = h.DistributePot(showdown.Winners)
	t.logger.Info("hand complete",
		"hand_id", h.id,
		"pot", result.Pot,
		"winners", result.Winners(),
		"hand", result.Description)
	return finish(nil)
}
