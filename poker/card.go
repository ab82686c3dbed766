package poker

import (
	"errors"
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in deck order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s <= Spades
}

// Symbol returns the unicode suit symbol
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// String returns the single-letter suit code used in card notation
func (s Suit) String() string {
	if !s.Valid() {
		return "?"
	}
	return "hdcs"[s : s+1]
}

// Rank represents a card rank
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank from lowest to highest.
var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Valid reports whether r is in the 2..A alphabet.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// String returns the single-character rank code
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	i := r - Two
	return "23456789TJQKA"[i : i+1]
}

// Name returns the rank spelled out ("Ace", "Seven").
func (r Rank) Name() string {
	switch r {
	case Two:
		return "Two"
	case Three:
		return "Three"
	case Four:
		return "Four"
	case Five:
		return "Five"
	case Six:
		return "Six"
	case Seven:
		return "Seven"
	case Eight:
		return "Eight"
	case Nine:
		return "Nine"
	case Ten:
		return "Ten"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	default:
		return "Unknown"
	}
}

// Plural returns the plural rank name ("Aces", "Sixes").
func (r Rank) Plural() string {
	if r == Six {
		return "Sixes"
	}
	return r.Name() + "s"
}

var (
	// ErrInvalidRank is returned when a rank falls outside 2..A
	ErrInvalidRank = errors.New("invalid rank")
	// ErrInvalidSuit is returned when a suit is not one of ♥♦♣♠
	ErrInvalidSuit = errors.New("invalid suit")
)

// Card is an immutable playing card. The zero value is not a valid card;
// cards are built with NewCard or ParseCard.
type Card struct {
	rank Rank
	suit Suit
}

// NewCard creates a card, rejecting ranks and suits outside the standard alphabet.
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidRank, rank)
	}
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidSuit, suit)
	}
	return Card{rank: rank, suit: suit}, nil
}

// MustCard is NewCard for constant inputs; it panics on an invalid rank or suit.
func MustCard(rank Rank, suit Suit) Card {
	c, err := NewCard(rank, suit)
	if err != nil {
		panic(err)
	}
	return c
}

// Rank returns the card's rank
func (c Card) Rank() Rank { return c.rank }

// Suit returns the card's suit
func (c Card) Suit() Suit { return c.suit }

// Value maps the rank to 2..14. With acesHigh false an ace counts as 1.
func (c Card) Value(acesHigh bool) int {
	if c.rank == Ace && !acesHigh {
		return 1
	}
	return int(c.rank)
}

// String returns two-character notation, e.g. "As"
func (c Card) String() string {
	return c.rank.String() + c.suit.String()
}

// Symbol returns the display form, e.g. "A♠"
func (c Card) Symbol() string {
	return c.rank.String() + c.suit.Symbol()
}

// MarshalText encodes the card in two-character notation
func (c Card) MarshalText() ([]byte, error) {
	if !c.rank.Valid() || !c.suit.Valid() {
		return nil, fmt.Errorf("marshal card: %w", ErrInvalidRank)
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes any notation ParseCard accepts
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses "As", "td" or "A♠" style notation.
func ParseCard(s string) (Card, error) {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: want rank and suit", s)
	}

	rank, err := parseRank(runes[0])
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	suit, err := parseSuit(runes[1])
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	return NewCard(rank, suit)
}

// ParseCards parses whitespace-separated or concatenated card notation,
// e.g. "As Ks" or "AsKs".
func ParseCards(s string) ([]Card, error) {
	runes := []rune(strings.Join(strings.Fields(s), ""))
	if len(runes)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(runes))
	}

	cards := make([]Card, 0, len(runes)/2)
	for i := 0; i < len(runes); i += 2 {
		c, err := ParseCard(string(runes[i : i+2]))
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i/2, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// FormatCards renders cards with suit symbols separated by spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Symbol()
	}
	return strings.Join(parts, " ")
}

func parseRank(r rune) (Rank, error) {
	switch r {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	case '9':
		return Nine, nil
	case '8':
		return Eight, nil
	case '7':
		return Seven, nil
	case '6':
		return Six, nil
	case '5':
		return Five, nil
	case '4':
		return Four, nil
	case '3':
		return Three, nil
	case '2':
		return Two, nil
	default:
		return 0, fmt.Errorf("%w '%c'", ErrInvalidRank, r)
	}
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case 'h', 'H', '♥':
		return Hearts, nil
	case 'd', 'D', '♦':
		return Diamonds, nil
	case 'c', 'C', '♣':
		return Clubs, nil
	case 's', 'S', '♠':
		return Spades, nil
	default:
		return 0, fmt.Errorf("%w '%c'", ErrInvalidSuit, r)
	}
}
