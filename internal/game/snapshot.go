package game

import (
	"slices"

	"github.com/lox/holdem/poker"
)

// PlayerSnapshot is a copy of one participant's visible state
type PlayerSnapshot struct {
	Seat             int          `json:"seat"`
	Name             string       `json:"name"`
	Type             string       `json:"type"`
	Stack            int          `json:"stack"`
	StreetBet        int          `json:"street_bet"`
	HandContribution int          `json:"hand_contribution"`
	HoleCards        []poker.Card `json:"hole_cards,omitempty"`
	Folded           bool         `json:"folded"`
	AllIn            bool         `json:"all_in"`
	Dealer           bool         `json:"dealer,omitempty"`
	SmallBlind       bool         `json:"small_blind,omitempty"`
	BigBlind         bool         `json:"big_blind,omitempty"`
}

// Snapshot is a read-only copy of the table at one moment. Renderers and
// subscribers work from snapshots so they never hold engine pointers.
type Snapshot struct {
	HandID       string           `json:"hand_id"`
	HandNumber   int              `json:"hand_number"`
	Street       Street           `json:"-"`
	StreetName   string           `json:"street"`
	Dealer       int              `json:"dealer"`
	Actor        int              `json:"actor"`
	Pot          int              `json:"pot"`
	CollectedPot int              `json:"collected_pot"`
	HighestBet   int              `json:"highest_bet"`
	SmallBlind   int              `json:"small_blind"`
	BigBlind     int              `json:"big_blind"`
	Board        []poker.Card     `json:"board"`
	Players      []PlayerSnapshot `json:"players"`
}

// Player returns the snapshot for seat, if present
func (s Snapshot) Player(seat int) (PlayerSnapshot, bool) {
	for _, p := range s.Players {
		if p.Seat == seat {
			return p, true
		}
	}
	return PlayerSnapshot{}, false
}

// TotalChips sums stacks, street bets and the collected pot. It stays
// constant for the life of a table.
func (s Snapshot) TotalChips() int {
	total := s.CollectedPot
	for _, p := range s.Players {
		total += p.Stack + p.StreetBet
	}
	return total
}

func snapshotPlayers(players []*Participant) []PlayerSnapshot {
	out := make([]PlayerSnapshot, len(players))
	for i, p := range players {
		out[i] = PlayerSnapshot{
			Seat:             p.Seat,
			Name:             p.Name,
			Type:             p.Type.String(),
			Stack:            p.Stack,
			StreetBet:        p.StreetBet,
			HandContribution: p.HandContribution,
			HoleCards:        slices.Clone(p.HoleCards),
			Folded:           p.Folded,
			AllIn:            p.AllIn,
			Dealer:           p.Dealer,
			SmallBlind:       p.SmallBlind,
			BigBlind:         p.BigBlind,
		}
	}
	return out
}
