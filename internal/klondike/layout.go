package klondike

import (
	"fmt"
	"slices"

	"github.com/lox/klondike/internal/deck"
)

// Layout is an arbitrary table position. Foundations are given by height
// since their contents follow from their suit.
type Layout struct {
	Piles       [PileCount][]deck.Card
	Foundations [FoundationCount]int
	Stock       []deck.Card
	Hand        []deck.Card
}

// Load replaces the table with l, keeping the session counters. Stock
// cards are turned face-down and hand cards face-up; tableau face flags
// are kept as given. The position must account for all 52 cards exactly
// once and show the top card of every pile, otherwise Load returns an
// error and leaves the table untouched.
func (g *Game) Load(l Layout) error {
	next := *g
	for i := range l.Piles {
		next.piles[i] = slices.Clone(l.Piles[i])
	}
	for i, height := range l.Foundations {
		if height < 0 || height > int(deck.King) {
			return fmt.Errorf("load: foundation %d height %d out of range", i, height)
		}
		next.foundations[i] = make([]deck.Card, 0, deck.King)
		for r := deck.Ace; int(r) <= height; r++ {
			next.foundations[i] = append(next.foundations[i], deck.NewCard(deck.Suits[i], r).Reveal())
		}
	}
	next.stock = make([]deck.Card, 0, len(l.Stock))
	for _, c := range l.Stock {
		c.FaceUp = false
		next.stock = append(next.stock, c)
	}
	next.hand = make([]deck.Card, 0, len(l.Hand))
	for _, c := range l.Hand {
		next.hand = append(next.hand, c.Reveal())
	}
	next.won = false

	if err := next.CheckInvariants(); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	*g = next
	return nil
}
