package deck

import rand "math/rand/v2"

// Size is the number of cards in a standard deck
const Size = 52

// New returns the 52 cards of a standard deck, face-down, ordered by suit
// (foundation order) and then ascending rank.
func New() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle returns a uniformly random permutation of cards. Each output slot
// is filled by sampling source indices until one that has not been used
// yet comes up, so no card is ever duplicated or dropped. The input slice
// is left untouched.
func Shuffle(rng *rand.Rand, cards []Card) []Card {
	out := make([]Card, 0, len(cards))
	used := make([]bool, len(cards))

	for range cards {
		choice := rng.IntN(len(cards))
		for used[choice] {
			choice = rng.IntN(len(cards))
		}
		used[choice] = true
		out = append(out, cards[choice])
	}
	return out
}

// Shuffled is shorthand for Shuffle(rng, New()).
func Shuffled(rng *rand.Rand) []Card {
	return Shuffle(rng, New())
}

// Index returns a dense 0..51 index for the card's (suit, rank) pair.
func Index(c Card) int {
	return int(c.Suit)*13 + int(c.Rank) - 1
}
