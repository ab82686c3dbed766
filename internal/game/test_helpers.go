package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/poker"
)

// TestTableOption configures test table creation
type TestTableOption func(*testTableBuilder)

type testTableBuilder struct {
	seed    int64
	config  TableConfig
	players []string
	stacks  []int
	agents  []Agent
	stacked string
	opts    []TableOption
}

// Test table options
func WithSeed(seed int64) TestTableOption {
	return func(b *testTableBuilder) { b.seed = seed }
}

func WithBlinds(small, big int) TestTableOption {
	return func(b *testTableBuilder) {
		b.config.SmallBlind = small
		b.config.BigBlind = big
	}
}

func WithPlayers(names ...string) TestTableOption {
	return func(b *testTableBuilder) { b.players = names }
}

// WithStacks sets starting stacks by seat; missing seats get the last value
func WithStacks(stacks ...int) TestTableOption {
	return func(b *testTableBuilder) { b.stacks = stacks }
}

// WithAgents sets agents by seat; missing seats play passively
func WithAgents(agents ...Agent) TestTableOption {
	return func(b *testTableBuilder) { b.agents = agents }
}

// WithStackedCards deals the given cards first, in order, e.g. "AsKs QhQd"
func WithStackedCards(cards string) TestTableOption {
	return func(b *testTableBuilder) { b.stacked = cards }
}

// WithTableOptions passes options straight to NewTable
func WithTableOptions(opts ...TableOption) TestTableOption {
	return func(b *testTableBuilder) { b.opts = append(b.opts, opts...) }
}

// NewTestTable creates a table for testing with sensible defaults: two
// players with 100 chips, blinds 5/10 and the button on seat 0.
func NewTestTable(opts ...TestTableOption) *Table {
	builder := &testTableBuilder{
		seed:    42,
		config:  TableConfig{SmallBlind: 5, BigBlind: 10},
		players: []string{"Alice", "Bob"},
		stacks:  []int{100},
	}
	for _, opt := range opts {
		opt(builder)
	}

	players := make([]*Participant, len(builder.players))
	for i, name := range builder.players {
		stack := builder.stacks[len(builder.stacks)-1]
		if i < len(builder.stacks) {
			stack = builder.stacks[i]
		}
		var agent Agent
		if i < len(builder.agents) {
			agent = builder.agents[i]
		}
		players[i] = NewParticipant(i, name, Policy, stack, agent)
	}

	rng := randutil.New(builder.seed)
	deck := poker.NewDeck(rng)
	if builder.stacked != "" {
		deck = poker.NewStackedDeck(rng, poker.MustParseCards(builder.stacked))
	}

	tableOpts := []TableOption{
		WithRNG(rng),
		WithDeck(deck),
		WithButton(0),
		WithLogger(log.New(io.Discard)),
		WithHandIDs(sequentialIDs()),
	}
	tableOpts = append(tableOpts, builder.opts...)

	table, err := NewTable(builder.config, players, tableOpts...)
	if err != nil {
		panic(fmt.Sprintf("NewTestTable: %v", err))
	}
	return table
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("hand-%d", n)
	}
}

// MustAction unwraps an action constructor result (for tests)
func MustAction(a Action, err error) Action {
	if err != nil {
		panic(err)
	}
	return a
}
