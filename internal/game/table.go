package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/poker"
)

const (
	MinSeats = 2
	MaxSeats = 10
)

// EvaluatorFunc classifies a set of cards. Tables use poker.Evaluate
// unless another is supplied.
type EvaluatorFunc func(cards []poker.Card) (poker.HandRank, string)

// TableConfig holds the stakes fixed for the life of a table
type TableConfig struct {
	SmallBlind int
	BigBlind   int
}

// NormalizeBlinds raises the big blind to at least twice the small blind.
func NormalizeBlinds(smallBlind, bigBlind int) (int, int) {
	if bigBlind < 2*smallBlind {
		bigBlind = 2 * smallBlind
	}
	return smallBlind, bigBlind
}

// Validate checks that both blinds are positive
func (c TableConfig) Validate() error {
	if c.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", c.SmallBlind)
	}
	if c.BigBlind <= 0 {
		return fmt.Errorf("big blind must be positive, got %d", c.BigBlind)
	}
	return nil
}

// Table seats participants and plays hands between them. The button and
// the hand counter persist across hands; everything else is per hand.
type Table struct {
	cfg     TableConfig
	players []*Participant

	rng         *rand.Rand
	deck        *poker.Deck
	dealer      int
	buttonSet   bool
	handsPlayed int

	logger   *log.Logger
	bus      EventBus
	clock    quartz.Clock
	evaluate EvaluatorFunc
	newID    func() string

	current       *Hand
	startingChips int
}

// TableOption configures a Table during creation
type TableOption func(*Table)

// WithLogger sets the table logger
func WithLogger(logger *log.Logger) TableOption {
	return func(t *Table) { t.logger = logger }
}

// WithEventBus publishes hand events to bus
func WithEventBus(bus EventBus) TableOption {
	return func(t *Table) { t.bus = bus }
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) TableOption {
	return func(t *Table) { t.clock = clock }
}

// WithRNG sets the generator for shuffling and the opening button
func WithRNG(rng *rand.Rand) TableOption {
	return func(t *Table) { t.rng = rng }
}

// WithDeck replaces the shuffled deck, typically with a stacked one
func WithDeck(deck *poker.Deck) TableOption {
	return func(t *Table) { t.deck = deck }
}

// WithButton places the dealer button for the first hand
func WithButton(seat int) TableOption {
	return func(t *Table) {
		t.dealer = seat
		t.buttonSet = true
	}
}

// WithEvaluator replaces the hand evaluator used at showdown
func WithEvaluator(fn EvaluatorFunc) TableOption {
	return func(t *Table) { t.evaluate = fn }
}

// WithHandIDs sets the hand ID generator
func WithHandIDs(fn func() string) TableOption {
	return func(t *Table) { t.newID = fn }
}

// NewTable seats players in order. Blinds are normalized so the big blind
// is at least twice the small blind.
func NewTable(cfg TableConfig, players []*Participant, opts ...TableOption) (*Table, error) {
	cfg.SmallBlind, cfg.BigBlind = NormalizeBlinds(cfg.SmallBlind, cfg.BigBlind)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(players) < MinSeats || len(players) > MaxSeats {
		return nil, fmt.Errorf("table needs %d-%d players, got %d", MinSeats, MaxSeats, len(players))
	}

	names := make(map[string]bool, len(players))
	for i, p := range players {
		if p == nil {
			return nil, fmt.Errorf("seat %d is empty", i)
		}
		if names[p.Name] {
			return nil, fmt.Errorf("duplicate player name %q", p.Name)
		}
		names[p.Name] = true
		if p.Stack < 0 {
			return nil, fmt.Errorf("player %q has a negative stack", p.Name)
		}
		p.Seat = i
	}

	t := &Table{
		cfg:     cfg,
		players: players,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	if t.bus == nil {
		t.bus = NewEventBus()
	}
	if t.clock == nil {
		t.clock = quartz.NewReal()
	}
	if t.evaluate == nil {
		t.evaluate = poker.Evaluate
	}
	if t.rng == nil {
		t.rng = randutil.New(randutil.Seed(0))
	}
	if t.deck == nil {
		t.deck = poker.NewDeck(t.rng)
	}
	if !t.buttonSet {
		t.dealer = t.rng.IntN(len(players))
	}
	if t.dealer < 0 || t.dealer >= len(players) {
		return nil, fmt.Errorf("button seat %d out of range", t.dealer)
	}

	t.startingChips = t.TotalChips()
	return t, nil
}

// CheckConservation reports ErrChipsNotConserved if chips have been
// created or destroyed since the table was built.
func (t *Table) CheckConservation() error {
	if total := t.TotalChips(); total != t.startingChips {
		return fmt.Errorf("%w: started with %d, now %d", ErrChipsNotConserved, t.startingChips, total)
	}
	return nil
}

// Config returns the table stakes
func (t *Table) Config() TableConfig { return t.cfg }

// Players returns the seated participants in seat order
func (t *Table) Players() []*Participant { return t.players }

// Dealer returns the button seat
func (t *Table) Dealer() int { return t.dealer }

// HandsPlayed counts hands started at this table
func (t *Table) HandsPlayed() int { return t.handsPlayed }

// EventBus returns the bus hand events are published on
func (t *Table) EventBus() EventBus { return t.bus }

// CurrentHand returns the hand in progress or last played, if any
func (t *Table) CurrentHand() *Hand { return t.current }

// TotalChips sums every stack, street bet and the pot of the current hand
func (t *Table) TotalChips() int {
	total := 0
	for _, p := range t.players {
		total += p.Stack + p.StreetBet
	}
	if t.current != nil {
		total += t.current.CollectedPot()
	}
	return total
}

// FundedPlayers counts seats with chips
func (t *Table) FundedPlayers() int {
	n := 0
	for _, p := range t.players {
		if p.Stack > 0 {
			n++
		}
	}
	return n
}

// ResetHand starts a new hand: clears per-hand state, moves the button to
// the next seat with chips and shuffles a fresh deck. The first hand uses
// the opening button if that seat has chips.
func (t *Table) ResetHand() (*Hand, error) {
	for _, p := range t.players {
		p.ResetForNewHand()
	}
	if t.FundedPlayers() < MinSeats {
		return nil, ErrNotEnoughPlayers
	}

	from := t.dealer + 1
	if t.handsPlayed == 0 {
		from = t.dealer
	}
	t.dealer = t.nextFunded(from)
	t.players[t.dealer].Dealer = true

	t.deck.Reset()
	t.handsPlayed++

	h := newHand(t, t.newID(), t.handsPlayed)
	t.current = h

	t.logger.Info("hand started",
		"hand_id", h.id,
		"hand", h.number,
		"dealer", t.players[t.dealer].Name)
	t.bus.Publish(HandStartEvent{eventBase: h.base(), HandID: h.id, Number: h.number, Dealer: t.dealer})
	return h, nil
}

// PlayHand resets and plays one complete hand
func (t *Table) PlayHand() (*HandResult, error) {
	h, err := t.ResetHand()
	if err != nil {
		return nil, err
	}
	return h.Play(), nil
}

// Run plays up to n hands, stopping early when fewer than two players have
// chips or ctx is cancelled. n <= 0 plays until one player is left.
func (t *Table) Run(ctx context.Context, n int) ([]*HandResult, error) {
	var results []*HandResult
	for i := 0; n <= 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := t.PlayHand()
		if errors.Is(err, ErrNotEnoughPlayers) {
			t.logger.Info("table finished", "hands", t.handsPlayed, "reason", err)
			return results, nil
		}
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// nextFunded scans cyclically from start for a seat with chips
func (t *Table) nextFunded(start int) int {
	n := len(t.players)
	start = ((start % n) + n) % n
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if t.players[idx].Stack > 0 {
			return idx
		}
	}
	return -1
}
