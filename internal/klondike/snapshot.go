package klondike

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/lox/klondike/internal/deck"
)

// Snapshot is a deep copy of a Game's visible state, safe to hand to
// renderers and statistics collectors.
type Snapshot struct {
	Piles       [PileCount][]deck.Card
	Foundations [FoundationCount][]deck.Card
	Stock       []deck.Card
	Hand        []deck.Card

	Score   int
	Moves   int
	Games   int
	Wins    int
	Started time.Time
	Elapsed time.Duration
}

// Snapshot copies the current table and counters.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Stock:   slices.Clone(g.stock),
		Hand:    slices.Clone(g.hand),
		Score:   g.score,
		Moves:   g.moves,
		Games:   g.games,
		Wins:    g.wins,
		Started: g.started,
		Elapsed: g.Elapsed(),
	}
	for i := range g.piles {
		s.Piles[i] = slices.Clone(g.piles[i])
	}
	for i := range g.foundations {
		s.Foundations[i] = slices.Clone(g.foundations[i])
	}
	return s
}

// Pile returns a copy of tableau pile i, bottom first.
func (g *Game) Pile(i int) []deck.Card { return slices.Clone(g.piles[i]) }

// Foundation returns a copy of foundation i (0-3, not the move address).
func (g *Game) Foundation(i int) []deck.Card { return slices.Clone(g.foundations[i]) }

// Stock returns a copy of the stock; the last card is drawn first.
func (g *Game) Stock() []deck.Card { return slices.Clone(g.stock) }

// Hand returns a copy of the hand; the last card is playable.
func (g *Game) Hand() []deck.Card { return slices.Clone(g.hand) }

// PileTop returns the top card of tableau pile i.
func (g *Game) PileTop(i int) (deck.Card, bool) {
	return top(g.piles[i])
}

// HandTop returns the playable hand card.
func (g *Game) HandTop() (deck.Card, bool) {
	return top(g.hand)
}

// PileLen returns the height of tableau pile i.
func (g *Game) PileLen(i int) int { return len(g.piles[i]) }

// FoundationLen returns how many cards foundation i (0-3) holds, which is
// also its top rank.
func (g *Game) FoundationLen(i int) int { return len(g.foundations[i]) }

// FoundationNeeds returns the rank the suit's foundation accepts next;
// King+1 once it is complete.
func (g *Game) FoundationNeeds(suit deck.Suit) deck.Rank {
	return deck.Rank(len(g.foundations[FoundationFor(suit)-FirstFoundation]) + 1)
}

// FaceUpRun returns the deepest card of the face-up run on top of tableau
// pile i, and the run's length. ok is false for an empty pile.
func (g *Game) FaceUpRun(i int) (base deck.Card, depth int, ok bool) {
	pile := g.piles[i]
	for depth < len(pile) && pile[len(pile)-1-depth].FaceUp {
		depth++
	}
	if depth == 0 {
		return deck.Card{}, 0, false
	}
	return pile[len(pile)-depth], depth, true
}

func top(cards []deck.Card) (deck.Card, bool) {
	if len(cards) == 0 {
		return deck.Card{}, false
	}
	return cards[len(cards)-1], true
}

// CheckInvariants verifies that the table holds each of the 52 cards
// exactly once, that every non-empty pile shows its top card, and that
// every foundation runs Ace upward in its own suit.
func (g *Game) CheckInvariants() error {
	var errs []error
	var seen [deck.Size]int
	count := func(cards []deck.Card) {
		for _, c := range cards {
			idx := deck.Index(c)
			if c.Rank < deck.Ace || c.Rank > deck.King || idx < 0 || idx >= deck.Size {
				errs = append(errs, fmt.Errorf("invalid card %v", c))
				continue
			}
			seen[idx]++
		}
	}

	for i, p := range g.piles {
		count(p)
		if len(p) > 0 && !p[len(p)-1].FaceUp {
			errs = append(errs, fmt.Errorf("pile %d: top card %s is face-down", i, p[len(p)-1]))
		}
	}
	for i, f := range g.foundations {
		count(f)
		suit := deck.Suits[i]
		for j, c := range f {
			if c.Suit != suit || int(c.Rank) != j+1 {
				errs = append(errs, fmt.Errorf("foundation %s: position %d holds %s", suit, j, c))
			}
		}
	}
	count(g.stock)
	count(g.hand)
	for _, c := range g.hand {
		if !c.FaceUp {
			errs = append(errs, fmt.Errorf("hand: %s is face-down", c))
		}
	}

	total := 0
	for idx, n := range seen {
		total += n
		if n != 1 {
			errs = append(errs, fmt.Errorf("card index %d appears %d times", idx, n))
		}
	}
	if total != deck.Size {
		errs = append(errs, fmt.Errorf("table holds %d cards, want %d", total, deck.Size))
	}
	return errors.Join(errs...)
}
