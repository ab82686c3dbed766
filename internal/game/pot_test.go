package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPotCollect(t *testing.T) {
	t.Parallel()

	players := []*Participant{
		NewParticipant(0, "Alice", Policy, 100, nil),
		NewParticipant(1, "Bob", Policy, 100, nil),
	}
	players[0].commit(20)
	players[1].commit(35)

	var pot Pot
	pot.Add(10)
	assert.Equal(t, 55, pot.Collect(players))
	assert.Equal(t, 65, pot.Amount())
	for _, p := range players {
		assert.Zero(t, p.StreetBet)
	}
	assert.Equal(t, 20, players[0].HandContribution, "contributions survive collection")
}

// 100 chips between three winners: the first in seat order takes the odd chip
func TestPotDistributeRemainderToFirstWinner(t *testing.T) {
	t.Parallel()

	a := NewParticipant(0, "Alice", Policy, 0, nil)
	b := NewParticipant(1, "Bob", Policy, 0, nil)
	c := NewParticipant(2, "Carol", Policy, 0, nil)

	pot := Pot{amount: 100}
	awards := pot.Distribute([]*Participant{c, a, b})

	assert.Equal(t, []Award{
		{Seat: 0, Player: "Alice", Amount: 34},
		{Seat: 1, Player: "Bob", Amount: 33},
		{Seat: 2, Player: "Carol", Amount: 33},
	}, awards)
	assert.Equal(t, 34, a.Stack)
	assert.Equal(t, 33, b.Stack)
	assert.Equal(t, 33, c.Stack)
	assert.Zero(t, pot.Amount())
}

func TestPotDistributeSingleWinner(t *testing.T) {
	t.Parallel()

	w := NewParticipant(3, "Dave", Policy, 10, nil)
	pot := Pot{amount: 45}
	pot.Distribute([]*Participant{w})

	assert.Equal(t, 55, w.Stack)
	assert.Zero(t, pot.Amount())
}

func TestPotDistributeNoWinners(t *testing.T) {
	t.Parallel()

	pot := Pot{amount: 45}
	assert.Nil(t, pot.Distribute(nil))
	assert.Equal(t, 45, pot.Amount())
}
