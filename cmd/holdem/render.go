package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/poker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	tableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true)
	foldedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	actorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	redSuit     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
)

func renderCards(cards []poker.Card) string {
	if len(cards) == 0 {
		return "--"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Symbol()
		if c.Suit() == poker.Hearts || c.Suit() == poker.Diamonds {
			parts[i] = redSuit.Render(parts[i])
		}
	}
	return strings.Join(parts, " ")
}

func seatMarkers(p game.PlayerSnapshot) string {
	var m []string
	if p.Dealer {
		m = append(m, "D")
	}
	if p.SmallBlind {
		m = append(m, "SB")
	}
	if p.BigBlind {
		m = append(m, "BB")
	}
	return strings.Join(m, "/")
}

// renderTable draws a snapshot. Only perspective's hole cards are shown
// until the hand ends.
func renderTable(s game.Snapshot, perspective string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Hand #%d  %s  pot %d", s.HandNumber, s.StreetName, s.Pot)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Board: %s\n", renderCards(s.Board))

	for _, p := range s.Players {
		cards := "?? ??"
		if p.Name == perspective || (s.Street == game.HandEnd && !p.Folded) {
			cards = renderCards(p.HoleCards)
		}
		if len(p.HoleCards) == 0 {
			cards = "     "
		}

		status := ""
		switch {
		case p.Folded && p.Stack == 0 && len(p.HoleCards) == 0:
			status = "out"
		case p.Folded:
			status = "folded"
		case p.AllIn:
			status = "all-in"
		}

		line := fmt.Sprintf("%-6s %-14s %6d  bet %-5d %s %s",
			seatMarkers(p), p.Name, p.Stack, p.StreetBet, cards, status)
		switch {
		case p.Seat == s.Actor:
			line = actorStyle.Render(line)
		case p.Folded:
			line = foldedStyle.Render(line)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	return tableStyle.Render(b.String())
}

// renderDecision summarises what the player needs to decide
func renderDecision(s game.DecisionState) string {
	valid := make([]string, len(s.ValidActions))
	for i, a := range s.ValidActions {
		valid[i] = a.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, your turn on the %s\n", s.Name, s.Street)
	fmt.Fprintf(&b, "Hole cards: %s  Board: %s\n", renderCards(s.HoleCards), renderCards(s.CommunityCards))
	fmt.Fprintf(&b, "Pot %d  to call %d  stack %d\n", s.Pot, s.ToCall(), s.Stack)
	fmt.Fprintf(&b, "Valid: %s", strings.Join(valid, ", "))
	return tableStyle.Render(b.String())
}

// renderStandings lists final stacks, biggest first
func renderStandings(players []*game.Participant, hands int) string {
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b *game.Participant) int { return b.Stack - a.Stack })

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Final standings after %d hands", hands)))
	for i, p := range sorted {
		fmt.Fprintf(&b, "\n%d. %-14s %6d", i+1, p.Name, p.Stack)
	}
	return tableStyle.Render(b.String())
}
