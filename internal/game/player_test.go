package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveChips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		stack     int
		remove    int
		wantTaken int
		wantStack int
		wantAllIn bool
	}{
		{"partial", 100, 20, 20, 80, false},
		{"exact", 50, 50, 50, 0, true},
		{"more than stack", 50, 80, 50, 0, true},
		{"nothing", 50, 0, 0, 50, false},
		{"negative", 50, -5, 0, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParticipant(0, "Alice", Policy, tt.stack, nil)
			assert.Equal(t, tt.wantTaken, p.RemoveChips(tt.remove))
			assert.Equal(t, tt.wantStack, p.Stack)
			assert.Equal(t, tt.wantAllIn, p.AllIn)
		})
	}
}

func TestApplyActionCommitsChips(t *testing.T) {
	t.Parallel()

	t.Run("call on a short stack goes all-in", func(t *testing.T) {
		p := NewParticipant(0, "Alice", Policy, 30, nil)
		committed, err := p.ApplyAction(Call, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, 30, committed)
		assert.Equal(t, 30, p.StreetBet)
		assert.Equal(t, 30, p.HandContribution)
		assert.True(t, p.AllIn)
	})

	t.Run("raise matches then adds", func(t *testing.T) {
		p := NewParticipant(0, "Alice", Policy, 100, nil)
		p.StreetBet = 10
		committed, err := p.ApplyAction(Raise, 20, 20)
		require.NoError(t, err)
		assert.Equal(t, 30, committed)
		assert.Equal(t, 40, p.StreetBet)
		assert.Equal(t, 70, p.Stack)
	})

	t.Run("bet commits the amount", func(t *testing.T) {
		p := NewParticipant(0, "Alice", Policy, 100, nil)
		committed, err := p.ApplyAction(Bet, 25, 0)
		require.NoError(t, err)
		assert.Equal(t, 25, committed)
		assert.Equal(t, 75, p.Stack)
	})

	t.Run("all-in commits everything", func(t *testing.T) {
		p := NewParticipant(0, "Alice", Policy, 64, nil)
		committed, err := p.ApplyAction(AllIn, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 64, committed)
		assert.True(t, p.AllIn)
	})

	t.Run("fold", func(t *testing.T) {
		p := NewParticipant(0, "Alice", Policy, 64, nil)
		committed, err := p.ApplyAction(Fold, 10, 0)
		require.NoError(t, err)
		assert.Zero(t, committed)
		assert.True(t, p.Folded)
		assert.Equal(t, 64, p.Stack)
	})
}

func TestApplyActionCheckFacingBetChangesNothing(t *testing.T) {
	t.Parallel()

	p := NewParticipant(0, "Alice", Policy, 100, nil)
	committed, err := p.ApplyAction(Check, 10, 0)

	require.ErrorIs(t, err, ErrIllegalAction)
	var illegal *IllegalActionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, "Alice", illegal.Player)
	assert.Zero(t, committed)
	assert.Equal(t, 100, p.Stack)
	assert.Zero(t, p.StreetBet)
	assert.False(t, p.Folded)
}

func TestParticipantPredicates(t *testing.T) {
	t.Parallel()

	p := NewParticipant(0, "Alice", Policy, 40, nil)
	p.StreetBet = 10

	assert.True(t, p.CanCheck(10))
	assert.False(t, p.CanCheck(20))
	assert.True(t, p.CanCall(50), "a short stack can still call")
	assert.False(t, p.CanCall(10), "nothing owed")
	assert.False(t, p.CanBet(), "chips already in this street")
	assert.True(t, p.CanRaise(20, 30))
	assert.False(t, p.CanRaise(20, 31))
	assert.False(t, p.CanRaise(20, 0), "a raise must add chips")
	assert.Equal(t, 10, p.ToCall(20))
	assert.Zero(t, p.ToCall(5))

	fresh := NewParticipant(1, "Bob", Policy, 10, nil)
	assert.True(t, fresh.CanBet())
	assert.True(t, fresh.CanCall(50))

	broke := NewParticipant(2, "Carol", Policy, 0, nil)
	assert.False(t, broke.CanBet())
	assert.False(t, broke.CanCall(50))
	assert.False(t, broke.CanRaise(0, 1))
}

func TestResetForNewHandSitsOutBustedPlayers(t *testing.T) {
	t.Parallel()

	busted := NewParticipant(0, "Alice", Policy, 0, nil)
	busted.AllIn = true
	busted.ResetForNewHand()
	assert.True(t, busted.Folded)
	assert.False(t, busted.AllIn)
	assert.False(t, busted.Eligible())

	funded := NewParticipant(1, "Bob", Policy, 10, nil)
	funded.Folded = true
	funded.StreetBet = 5
	funded.HandContribution = 15
	funded.ResetForNewHand()
	assert.False(t, funded.Folded)
	assert.Zero(t, funded.StreetBet)
	assert.Zero(t, funded.HandContribution)
	assert.True(t, funded.Eligible())
}
