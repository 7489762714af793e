package klondike

import (
	"strings"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/randutil"
	"github.com/stretchr/testify/require"
)

// newTestGame returns an empty game on a mock clock so snapshots compare
// equal across calls.
func newTestGame(t *testing.T) *Game {
	t.Helper()
	return NewGame(randutil.New(1), WithClock(quartz.NewMock(t)))
}

// cards parses a layout string. A leading '-' marks a face-down card; all
// other cards are face-up. "" is an empty pile.
func cards(t *testing.T, layout string) []deck.Card {
	t.Helper()
	var out []deck.Card
	for _, f := range strings.Fields(layout) {
		down := strings.HasPrefix(f, "-")
		c, err := deck.ParseCard(strings.TrimPrefix(f, "-"))
		require.NoError(t, err)
		c.FaceUp = !down
		out = append(out, c)
	}
	return out
}

// table describes a position to load into a game.
type table struct {
	piles       [PileCount]string
	foundations [FoundationCount]int // heights; suits come from foundation order
	stock       string
	hand        string
}

func load(t *testing.T, g *Game, tb table) {
	t.Helper()
	for i, layout := range tb.piles {
		g.piles[i] = cards(t, layout)
	}
	for i, height := range tb.foundations {
		g.foundations[i] = nil
		for r := deck.Ace; int(r) <= height; r++ {
			g.foundations[i] = append(g.foundations[i], deck.NewCard(deck.Suits[i], r).Reveal())
		}
	}
	g.stock = cards(t, tb.stock)
	for i := range g.stock {
		g.stock[i].FaceUp = false
	}
	g.hand = cards(t, tb.hand)
	g.won = false
}

// withoutMoves zeroes the move counter so a snapshot taken after a rejected
// move compares equal to the one before.
func withoutMoves(s Snapshot) Snapshot {
	s.Moves = 0
	return s
}
