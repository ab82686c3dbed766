package game

import (
	"fmt"
	"strings"

	"github.com/lox/holdem/poker"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowReasonings bool   // Include policy reasoning
	ShowHoleCards  bool   // Show every seat's hole cards, not just Perspective's
	Perspective    string // Player name whose cards are always shown
}

// EventFormatter turns events into one-line log text
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any event, returning "" for events with nothing to say
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case HandStartEvent:
		name := ""
		if p, ok := e.Snapshot().Player(e.Dealer); ok {
			name = p.Name
		}
		return fmt.Sprintf("*** Hand #%d (%s) *** %s has the button", e.Number, shortID(e.HandID), name)
	case BlindsPostedEvent:
		snap := e.Snapshot()
		sb, _ := snap.Player(e.SmallBlindSeat)
		bb, _ := snap.Player(e.BigBlindSeat)
		return fmt.Sprintf("%s: posts small blind %d\n%s: posts big blind %d", sb.Name, e.SmallBlind, bb.Name, e.BigBlind)
	case HoleCardsDealtEvent:
		return ef.formatHoleCards(e.Snapshot())
	case StreetStartEvent:
		if e.Street == Preflop {
			return ""
		}
		return fmt.Sprintf("*** %s *** [%s]", strings.ToUpper(e.Street.String()), poker.FormatCards(e.Board))
	case PlayerActionEvent:
		return ef.formatPlayerAction(e)
	case IllegalActionEvent:
		return fmt.Sprintf("%s: tried to %s (%s)", e.Player, e.Action, e.Reason)
	case ShowdownEvent:
		return ef.formatShowdown(e.Result)
	case PotAwardedEvent:
		parts := make([]string, len(e.Awards))
		for i, a := range e.Awards {
			parts[i] = fmt.Sprintf("%s collects %d", a.Player, a.Amount)
		}
		return strings.Join(parts, "\n")
	case HandEndEvent:
		if e.Result.EndReason != nil {
			return fmt.Sprintf("*** Hand ended: %v", e.Result.EndReason)
		}
		return ""
	default:
		return ""
	}
}

func (ef *EventFormatter) formatPlayerAction(e PlayerActionEvent) string {
	var text string
	switch e.Action.Type() {
	case Fold:
		text = fmt.Sprintf("%s: folds", e.Player)
	case Check:
		text = fmt.Sprintf("%s: checks", e.Player)
	case Call:
		text = fmt.Sprintf("%s: calls %d (pot now: %d)", e.Player, e.Committed, e.PotAfter)
	case Bet:
		text = fmt.Sprintf("%s: bets %d (pot now: %d)", e.Player, e.Committed, e.PotAfter)
	case Raise:
		text = fmt.Sprintf("%s: raises %d (pot now: %d)", e.Player, e.Committed, e.PotAfter)
	case AllIn:
		text = fmt.Sprintf("%s: goes all-in for %d (pot now: %d)", e.Player, e.Committed, e.PotAfter)
	default:
		text = fmt.Sprintf("%s: %s", e.Player, e.Action)
	}
	if ef.opts.ShowReasonings && e.Reasoning != "" {
		text += fmt.Sprintf(" [%s]", e.Reasoning)
	}
	return text
}

func (ef *EventFormatter) formatHoleCards(snap Snapshot) string {
	var lines []string
	for _, p := range snap.Players {
		if len(p.HoleCards) == 0 {
			continue
		}
		if ef.opts.ShowHoleCards || p.Name == ef.opts.Perspective {
			lines = append(lines, fmt.Sprintf("Dealt to %s [%s]", p.Name, poker.FormatCards(p.HoleCards)))
		}
	}
	return strings.Join(lines, "\n")
}

func (ef *EventFormatter) formatShowdown(r ShowdownResult) string {
	if r.Uncontested {
		return r.Description
	}
	lines := []string{"*** SHOWDOWN ***"}
	for _, h := range r.Hands {
		lines = append(lines, fmt.Sprintf("%s: shows [%s] (%s)", h.Player, poker.FormatCards(h.HoleCards), h.Description))
	}
	return strings.Join(lines, "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
