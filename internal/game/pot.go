package game

import (
	"slices"
)

// Pot holds the chips collected from finished streets. There are no side
// pots: every winner shares the whole amount.
type Pot struct {
	amount int
}

// Amount returns the collected chips
func (p *Pot) Amount() int { return p.amount }

// Add puts chips straight into the pot
func (p *Pot) Add(n int) {
	if n > 0 {
		p.amount += n
	}
}

// Collect sweeps every street bet into the pot and returns the total swept.
// Hand contributions are left alone.
func (p *Pot) Collect(players []*Participant) int {
	total := 0
	for _, pl := range players {
		total += pl.StreetBet
		pl.StreetBet = 0
	}
	p.amount += total
	return total
}

// Award records chips paid to one winner
type Award struct {
	Seat   int    `json:"seat"`
	Player string `json:"player"`
	Amount int    `json:"amount"`
}

// Distribute splits the pot evenly between winners in seat order, the
// indivisible remainder going to the first. The pot is empty afterwards.
// With no winners the pot is left untouched.
func (p *Pot) Distribute(winners []*Participant) []Award {
	if len(winners) == 0 || p.amount == 0 {
		return nil
	}

	ordered := slices.Clone(winners)
	slices.SortStableFunc(ordered, func(a, b *Participant) int { return a.Seat - b.Seat })

	share := p.amount / len(ordered)
	remainder := p.amount % len(ordered)

	awards := make([]Award, 0, len(ordered))
	for i, w := range ordered {
		amount := share
		if i == 0 {
			amount += remainder
		}
		w.AddChips(amount)
		awards = append(awards, Award{Seat: w.Seat, Player: w.Name, Amount: amount})
	}
	p.amount = 0
	return awards
}
