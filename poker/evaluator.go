package poker

import "fmt"

// HandRank is the category of a poker hand. Higher values are stronger.
// Hands are compared by category only; two hands with the same HandRank tie.
type HandRank int

const (
	NoHand HandRank = iota // fewer than two cards
	HighCard
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name.
func (hr HandRank) String() string {
	switch hr {
	case NoHand:
		return "No Hand"
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// MaxHandRank is the strongest category.
const MaxHandRank = StraightFlush

// Evaluate classifies the best five-card hand that can be formed from cards
// (typically two hole cards plus up to five community cards) and returns its
// category with a short description.
//
// Flush detection only asks whether any suit appears five or more times, and
// a straight flush is reported when the cards contain both a straight and a
// flush, even if they do not share cards. Fewer than two cards yields NoHand.
func Evaluate(cards []Card) (HandRank, string) {
	if len(cards) < 2 {
		return NoHand, "insufficient cards"
	}

	var rankCounts [Ace + 1]int
	var suitCounts [Spades + 1]int
	for _, c := range cards {
		rankCounts[c.rank]++
		suitCounts[c.suit]++
	}

	var quads, trips, pairs []Rank // each ordered high to low
	for r := Ace; r >= Two; r-- {
		switch n := rankCounts[r]; {
		case n >= 4:
			quads = append(quads, r)
		case n == 3:
			trips = append(trips, r)
		case n == 2:
			pairs = append(pairs, r)
		}
	}

	flushSuit, isFlush := findFlush(suitCounts)
	straightHigh, isStraight := findStraight(rankCounts)

	switch {
	case isStraight && isFlush:
		return StraightFlush, fmt.Sprintf("Straight Flush, %s high", straightHigh.Name())
	case len(quads) > 0:
		return FourOfAKind, "Four of a Kind, " + quads[0].Plural()
	case len(trips) > 0 && (len(trips) > 1 || len(pairs) > 0):
		over := trips[0]
		// the "pair" part may be a second set of trips
		under := Rank(0)
		if len(trips) > 1 {
			under = trips[1]
		}
		if len(pairs) > 0 && pairs[0] > under {
			under = pairs[0]
		}
		return FullHouse, fmt.Sprintf("Full House, %s over %s", over.Plural(), under.Plural())
	case isFlush:
		return Flush, fmt.Sprintf("Flush, %s high", highestOfSuit(cards, flushSuit).Name())
	case isStraight:
		return Straight, fmt.Sprintf("Straight, %s high", straightHigh.Name())
	case len(trips) > 0:
		return ThreeOfAKind, "Three of a Kind, " + trips[0].Plural()
	case len(pairs) >= 2:
		return TwoPair, fmt.Sprintf("Two Pair, %s and %s", pairs[0].Plural(), pairs[1].Plural())
	case len(pairs) == 1:
		return Pair, "Pair of " + pairs[0].Plural()
	default:
		return HighCard, fmt.Sprintf("High Card (%s)", highestCard(cards).Symbol())
	}
}

// CompareHands returns 1 if a beats b, -1 if b beats a and 0 on a tie.
func CompareHands(a, b HandRank) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func findFlush(suitCounts [Spades + 1]int) (Suit, bool) {
	for _, s := range Suits {
		if suitCounts[s] >= 5 {
			return s, true
		}
	}
	return 0, false
}

// findStraight looks for five consecutive distinct values with the ace high,
// then for the wheel (A-2-3-4-5) with the ace low. It returns the top rank of
// the highest straight.
func findStraight(rankCounts [Ace + 1]int) (Rank, bool) {
	run := 0
	for r := Ace; r >= Two; r-- {
		if rankCounts[r] == 0 {
			run = 0
			continue
		}
		run++
		if run == 5 {
			return r + 4, true
		}
	}
	if rankCounts[Ace] > 0 && rankCounts[Two] > 0 && rankCounts[Three] > 0 &&
		rankCounts[Four] > 0 && rankCounts[Five] > 0 {
		return Five, true
	}
	return 0, false
}

func highestOfSuit(cards []Card, suit Suit) Rank {
	var best Rank
	for _, c := range cards {
		if c.suit == suit && c.rank > best {
			best = c.rank
		}
	}
	return best
}

// highestCard picks the top card by rank, breaking suit ties by suit order so
// the result does not depend on input order.
func highestCard(cards []Card) Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.rank > best.rank || (c.rank == best.rank && c.suit > best.suit) {
			best = c
		}
	}
	return best
}
