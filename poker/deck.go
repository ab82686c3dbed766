package poker

// Shuffler is the randomness a deck needs. *rand.Rand from math/rand/v2
// satisfies it, so a seeded generator makes dealing reproducible.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Deck represents a standard 52-card deck. Cards are dealt from the end of
// the slice.
type Deck struct {
	cards      []Card
	rng        Shuffler
	stacked    []Card // fixed deal order restored by Reset, nil for shuffled decks
	reshuffles int
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng Shuffler) *Deck {
	if rng == nil {
		panic("poker: deck requires a shuffler")
	}
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// NewStackedDeck creates a deck that deals the given cards in order, first
// card first. Reset restores the same order, which makes hands repeatable in
// tests. Once the stacked cards run out the deck falls back to a fresh 52
// shuffled with rng.
func NewStackedDeck(rng Shuffler, cards []Card) *Deck {
	if rng == nil {
		panic("poker: deck requires a shuffler")
	}
	stacked := make([]Card, len(cards))
	for i, c := range cards {
		stacked[len(cards)-1-i] = c
	}
	d := &Deck{rng: rng, stacked: stacked}
	d.Reset()
	return d
}

// Reset restores the deck for a new hand: a stacked deck restacks its fixed
// order, any other deck reshuffles a fresh 52.
func (d *Deck) Reset() {
	if d.stacked != nil {
		d.cards = append(d.cards[:0], d.stacked...)
		return
	}
	d.refill()
}

func (d *Deck) refill() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, Card{rank: rank, suit: suit})
		}
	}
	d.Shuffle()
}

// Shuffle shuffles the remaining cards
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// DealTop removes and returns the top card. An empty deck is reinitialised
// with a fresh shuffled 52 first, so DealTop never fails.
func (d *Deck) DealTop() Card {
	if len(d.cards) == 0 {
		d.reshuffles++
		d.refill()
	}
	last := len(d.cards) - 1
	card := d.cards[last]
	d.cards = d.cards[:last]
	return card
}

// Deal deals n cards from the top of the deck
func (d *Deck) Deal(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = d.DealTop()
	}
	return cards
}

// Burn discards the top card
func (d *Deck) Burn() {
	d.DealTop()
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Reshuffles counts how many times an empty deck had to be reinitialised.
func (d *Deck) Reshuffles() int {
	return d.reshuffles
}
