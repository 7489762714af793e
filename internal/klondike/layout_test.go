package klondike

import (
	"testing"

	"github.com/lox/klondike/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFullPosition(t *testing.T) {
	g := newTestGame(t)
	all := deck.New()

	// hearts and spades on the foundations, the rest spread around
	l := Layout{Foundations: [FoundationCount]int{13, 13}}
	l.Piles[0] = []deck.Card{all[26].Reveal()}
	l.Piles[1] = []deck.Card{all[27], all[28].Reveal()}
	l.Stock = all[29:45]
	l.Hand = all[45:]

	require.NoError(t, g.Load(l))
	assert.NoError(t, g.CheckInvariants())
	assert.Equal(t, 13, g.FoundationLen(0))
	assert.Equal(t, deck.King+1, g.FoundationNeeds(deck.Hearts))
	assert.Equal(t, deck.Ace, g.FoundationNeeds(deck.Diamonds))

	for _, c := range g.Stock() {
		assert.False(t, c.FaceUp)
	}
	for _, c := range g.Hand() {
		assert.True(t, c.FaceUp)
	}
}

func TestLoadRejectsInvalidPositions(t *testing.T) {
	g := newTestGame(t)
	g.Restart()
	before := g.Snapshot()

	// missing cards
	assert.Error(t, g.Load(Layout{Stock: deck.New()[:40]}))

	// face-down top card
	l := Layout{Stock: deck.New()[1:]}
	l.Piles[0] = deck.New()[:1]
	assert.Error(t, g.Load(l))

	// foundation out of range
	assert.Error(t, g.Load(Layout{Foundations: [FoundationCount]int{14}}))

	assert.Equal(t, before, g.Snapshot(), "failed loads must leave the table alone")
}

func TestFaceUpRun(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{piles: [PileCount]string{"-KD -3S 9H 8C 7D", "", "5C"}})

	base, depth, ok := g.FaceUpRun(0)
	require.True(t, ok)
	assert.Equal(t, 3, depth)
	assert.Equal(t, "9H", base.String())

	_, _, ok = g.FaceUpRun(1)
	assert.False(t, ok)

	base, depth, ok = g.FaceUpRun(2)
	require.True(t, ok)
	assert.Equal(t, 1, depth)
	assert.Equal(t, "5C", base.String())
}
