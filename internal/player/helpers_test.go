package player

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/klondike"
	"github.com/lox/klondike/internal/randutil"
	"github.com/stretchr/testify/require"
)

// position is a partial table. Cards it does not mention (and that are not
// on a foundation) are filled in face-down: under the stock by default, or
// beneath pile 6 when buryFiller is set so the stock can be controlled
// exactly.
type position struct {
	piles       [klondike.PileCount]string
	foundations [klondike.FoundationCount]int
	stock       string
	hand        string
	buryFiller  bool
}

func parse(t *testing.T, layout string) []deck.Card {
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

func setup(t *testing.T, pos position) (*klondike.Game, *Player) {
	t.Helper()

	var l klondike.Layout
	used := make(map[int]bool)
	mark := func(cards []deck.Card) {
		for _, c := range cards {
			require.False(t, used[deck.Index(c)], "card %s used twice", c)
			used[deck.Index(c)] = true
		}
	}

	for i, height := range pos.foundations {
		l.Foundations[i] = height
		for r := deck.Ace; int(r) <= height; r++ {
			mark([]deck.Card{deck.NewCard(deck.Suits[i], r)})
		}
	}
	for i, layout := range pos.piles {
		l.Piles[i] = parse(t, layout)
		mark(l.Piles[i])
	}
	l.Stock = parse(t, pos.stock)
	mark(l.Stock)
	l.Hand = parse(t, pos.hand)
	mark(l.Hand)

	var filler []deck.Card
	for _, c := range deck.New() {
		if !used[deck.Index(c)] {
			filler = append(filler, c)
		}
	}
	if pos.buryFiller {
		l.Piles[6] = append(filler, l.Piles[6]...)
	} else {
		l.Stock = append(filler, l.Stock...)
	}

	g := klondike.NewGame(randutil.New(3), klondike.WithClock(quartz.NewMock(t)))
	require.NoError(t, g.Load(l))
	return g, New(g, log.New(io.Discard))
}

func top(t *testing.T, g *klondike.Game, pile int) string {
	t.Helper()
	c, ok := g.PileTop(pile)
	require.True(t, ok, "pile %d is empty", pile)
	return c.String()
}
