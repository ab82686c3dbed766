package game

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/randutil"
)

func seat(names ...string) []*Participant {
	players := make([]*Participant, len(names))
	for i, n := range names {
		players[i] = NewParticipant(i, n, Policy, 100, nil)
	}
	return players
}

func TestNewTableValidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     TableConfig
		players []*Participant
	}{
		{"one player", TableConfig{SmallBlind: 5, BigBlind: 10}, seat("Alice")},
		{"too many players", TableConfig{SmallBlind: 5, BigBlind: 10}, seat("a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k")},
		{"duplicate names", TableConfig{SmallBlind: 5, BigBlind: 10}, seat("Alice", "Alice")},
		{"zero small blind", TableConfig{SmallBlind: 0, BigBlind: 10}, seat("Alice", "Bob")},
		{"negative big blind", TableConfig{SmallBlind: -5, BigBlind: -10}, seat("Alice", "Bob")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.cfg, tt.players)
			assert.Error(t, err)
		})
	}
}

func TestNewTableNormalizesBlinds(t *testing.T) {
	t.Parallel()

	table, err := NewTable(TableConfig{SmallBlind: 10, BigBlind: 15}, seat("Alice", "Bob"))
	require.NoError(t, err)
	assert.Equal(t, TableConfig{SmallBlind: 10, BigBlind: 20}, table.Config())

	table, err = NewTable(TableConfig{SmallBlind: 10, BigBlind: 50}, seat("Alice", "Bob"))
	require.NoError(t, err)
	assert.Equal(t, 50, table.Config().BigBlind, "larger big blinds are kept")
}

func TestNewTableDefaults(t *testing.T) {
	t.Parallel()

	table, err := NewTable(TableConfig{SmallBlind: 5, BigBlind: 10}, seat("Alice", "Bob", "Carol"),
		WithRNG(randutil.New(9)))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, table.Dealer(), 0)
	assert.Less(t, table.Dealer(), 3)
	for i, p := range table.Players() {
		assert.Equal(t, i, p.Seat)
	}

	h, err := table.ResetHand()
	require.NoError(t, err)
	_, err = uuid.Parse(h.ID())
	assert.NoError(t, err, "hand ids are uuids by default")
}

func TestButtonRotatesToFundedSeats(t *testing.T) {
	t.Parallel()

	table := NewTestTable(WithPlayers("Alice", "Bob", "Carol"))

	_, err := table.PlayHand()
	require.NoError(t, err)
	assert.Equal(t, 0, table.Dealer())
	assert.Equal(t, 1, table.HandsPlayed())

	_, err = table.PlayHand()
	require.NoError(t, err)
	assert.Equal(t, 1, table.Dealer())

	table.Players()[2].Stack = 0
	h, err := table.ResetHand()
	require.NoError(t, err)
	assert.Equal(t, 0, table.Dealer(), "busted seat 2 is skipped")
	assert.True(t, table.Players()[0].Dealer)
	assert.Equal(t, 3, h.Number())
}

func TestOpeningButtonSkipsBustedSeat(t *testing.T) {
	t.Parallel()

	table := NewTestTable(WithPlayers("Alice", "Bob", "Carol"), WithStacks(0, 100, 100))
	_, err := table.ResetHand()
	require.NoError(t, err)
	assert.Equal(t, 1, table.Dealer())
}

func TestNotEnoughPlayers(t *testing.T) {
	t.Parallel()

	table := NewTestTable(WithStacks(100, 0))
	_, err := table.ResetHand()
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)

	results, err := table.Run(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunStopsWhenOnePlayerLeft(t *testing.T) {
	t.Parallel()

	table := NewTestTable(
		WithAgents(NewPolicyAgent(5), NewPolicyAgent(5)),
		WithStacks(40),
		WithTableOptions(WithLogger(log.New(io.Discard))),
	)

	results, err := table.Run(context.Background(), 0)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, 1, table.FundedPlayers())
	assert.Equal(t, len(results), table.HandsPlayed())
	assert.NoError(t, table.CheckConservation())
}

func TestRunHonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table := NewTestTable()
	results, err := table.Run(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestCheckConservationDetectsLeak(t *testing.T) {
	t.Parallel()

	table := NewTestTable()
	require.NoError(t, table.CheckConservation())

	table.Players()[0].Stack += 7
	assert.ErrorIs(t, table.CheckConservation(), ErrChipsNotConserved)
}
