package klondike

import (
	"errors"
	"testing"

	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeMoveRejections(t *testing.T) {
	tests := []struct {
		name  string
		table table
		move  Move
		want  error
	}{
		{
			name:  "non-king to empty pile from hand",
			table: table{hand: "QH"},
			move:  Move{HandPile, 1, 0},
			want:  ErrNonKingToEmptyPile,
		},
		{
			name:  "non-king to empty pile from pile",
			table: table{piles: [PileCount]string{"-3C 9D"}},
			move:  Move{0, 1, 1},
			want:  ErrNonKingToEmptyPile,
		},
		{
			name:  "empty hand",
			table: table{piles: [PileCount]string{"8S"}},
			move:  Move{HandPile, 1, 0},
			want:  ErrEmptyHand,
		},
		{
			name:  "hand depth",
			table: table{hand: "7H 6S"},
			move:  Move{HandPile, 2, 0},
			want:  ErrHandDepth,
		},
		{
			name:  "hand as destination",
			table: table{piles: [PileCount]string{"8S"}},
			move:  Move{0, 1, HandPile},
			want:  ErrInvalidDestination,
		},
		{
			name:  "destination out of range",
			table: table{piles: [PileCount]string{"8S"}},
			move:  Move{0, 1, 12},
			want:  ErrInvalidDestination,
		},
		{
			name:  "foundation as source",
			table: table{foundations: [FoundationCount]int{3}},
			move:  Move{FirstFoundation, 1, 0},
			want:  ErrInvalidSource,
		},
		{
			name:  "negative source",
			table: table{},
			move:  Move{-1, 1, 0},
			want:  ErrInvalidSource,
		},
		{
			name:  "depth exceeds pile",
			table: table{piles: [PileCount]string{"-4C 8S", "9H"}},
			move:  Move{0, 3, 1},
			want:  ErrDepthExceedsPile,
		},
		{
			name:  "zero depth",
			table: table{piles: [PileCount]string{"8S", "9H"}},
			move:  Move{0, 0, 1},
			want:  ErrZeroDepth,
		},
		{
			name:  "same pile",
			table: table{piles: [PileCount]string{"8S"}},
			move:  Move{0, 1, 0},
			want:  ErrSamePile,
		},
		{
			name:  "face-down base",
			table: table{piles: [PileCount]string{"-7D 8S", "9H"}},
			move:  Move{0, 2, 1},
			want:  ErrFaceDownCard,
		},
		{
			name:  "foundation depth",
			table: table{piles: [PileCount]string{"2H AS"}, foundations: [FoundationCount]int{1}},
			move:  Move{0, 2, FoundationFor(deck.Hearts)},
			want:  ErrFoundationDepth,
		},
		{
			name:  "foundation suit",
			table: table{hand: "AS"},
			move:  Move{HandPile, 1, FoundationFor(deck.Hearts)},
			want:  ErrFoundationSuit,
		},
		{
			name:  "foundation rank",
			table: table{hand: "3S"},
			move:  Move{HandPile, 1, FoundationFor(deck.Spades)},
			want:  ErrFoundationRank,
		},
		{
			name:  "same colour",
			table: table{piles: [PileCount]string{"8S", "9C"}},
			move:  Move{0, 1, 1},
			want:  ErrColourMustAlternate,
		},
		{
			name:  "rank not descending",
			table: table{piles: [PileCount]string{"8S", "10H"}},
			move:  Move{0, 1, 1},
			want:  ErrRankMustDescend,
		},
		{
			name:  "king onto occupied pile",
			table: table{hand: "KH", piles: [PileCount]string{"QS"}},
			move:  Move{HandPile, 1, 0},
			want:  ErrRankMustDescend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t)
			load(t, g, tt.table)
			before := g.Snapshot()

			err := g.Apply(tt.move)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var moveErr *MoveError
			require.True(t, errors.As(err, &moveErr))
			assert.Equal(t, tt.move, moveErr.Move)
			assert.Equal(t, tt.want.Error(), moveErr.Reason())

			after := g.Snapshot()
			assert.Equal(t, before.Moves+1, after.Moves, "rejected moves still count")
			assert.Equal(t, withoutMoves(before), withoutMoves(after), "rejected move changed state")
		})
	}
}

func TestRejectedMoveIsIdempotent(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{piles: [PileCount]string{"", "-2C 5D"}})
	before := withoutMoves(g.Snapshot())

	for i := 0; i < 5; i++ {
		err := g.MakeMove(1, 1, 0)
		assert.ErrorIs(t, err, ErrNonKingToEmptyPile)
		assert.Equal(t, "non-king to empty pile", err.(*MoveError).Reason())
		assert.Equal(t, before, withoutMoves(g.Snapshot()))
	}
	assert.Equal(t, 5, g.Moves())
}

func TestHandToFoundation(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{
		hand:        "9C 4S",
		foundations: [FoundationCount]int{0, 3},
	})

	require.NoError(t, g.MakeMove(HandPile, 1, FoundationFor(deck.Spades)))

	assert.Equal(t, 4, g.FoundationLen(int(deck.Spades)))
	top := g.Foundation(int(deck.Spades))[3]
	assert.Equal(t, deck.Four, top.Rank)
	assert.Equal(t, FoundationScore, g.Score())
	assert.Equal(t, cards(t, "9C"), g.Hand())
}

func TestAceToEmptyFoundation(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{piles: [PileCount]string{"-5H AD"}})

	require.NoError(t, g.MakeMove(0, 1, FoundationFor(deck.Diamonds)))
	assert.Equal(t, 1, g.FoundationLen(int(deck.Diamonds)))
	assert.Equal(t, cards(t, "5H"), g.Pile(0), "exposed card must be turned face-up")
	assert.Equal(t, FoundationScore, g.Score())
}

func TestPileToFoundationEmptiesPile(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{piles: [PileCount]string{"2C"}, foundations: [FoundationCount]int{0, 0, 0, 1}})

	require.NoError(t, g.MakeMove(0, 1, FoundationFor(deck.Clubs)))
	assert.Empty(t, g.Pile(0))
}

func TestHandToPile(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{
		piles: [PileCount]string{"-2S 8C"},
		hand:  "4D 7H",
	})

	require.NoError(t, g.MakeMove(HandPile, 1, 0))
	assert.Equal(t, cards(t, "-2S 8C 7H"), g.Pile(0))
	assert.Equal(t, cards(t, "4D"), g.Hand())
	assert.Zero(t, g.Score(), "tableau moves do not score")
}

func TestKingToEmptyPile(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{
		piles: [PileCount]string{"", "-3H KS QD"},
		hand:  "KD",
	})

	require.NoError(t, g.MakeMove(HandPile, 1, 0))
	assert.Equal(t, cards(t, "KD"), g.Pile(0))

	require.NoError(t, g.MakeMove(1, 2, 2))
	assert.Equal(t, cards(t, "KS QD"), g.Pile(2))
	assert.Equal(t, cards(t, "3H"), g.Pile(1))
}

func TestPileToPileMovesRunInOrder(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{piles: [PileCount]string{
		"-AC -4D 9H 8S 7D",
		"-2D 10C",
	}})

	require.NoError(t, g.MakeMove(0, 3, 1))

	assert.Equal(t, cards(t, "-2D 10C 9H 8S 7D"), g.Pile(1))
	assert.Equal(t, cards(t, "-AC 4D"), g.Pile(0), "new top must be face-up")

	// moving the run back must not resurrect stale cards
	g.piles[0] = append(g.piles[0], deck.NewCard(deck.Spades, deck.Ten).Reveal())
	require.NoError(t, g.MakeMove(1, 3, 0))
	assert.Equal(t, cards(t, "-AC 4D 10S 9H 8S 7D"), g.Pile(0))
	assert.Equal(t, cards(t, "-2D 10C"), g.Pile(1))
}

func TestPartialRunMove(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{piles: [PileCount]string{
		"JD 10S 9H 8C",
		"10C",
	}})

	require.NoError(t, g.MakeMove(0, 2, 1))
	assert.Equal(t, cards(t, "10C 9H 8C"), g.Pile(1))
	assert.Equal(t, cards(t, "JD 10S"), g.Pile(0))
}

func TestDrawThree(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{stock: "AH 2H 3H 4H 5H"})

	assert.False(t, g.Draw())
	assert.Equal(t, cards(t, "5H 4H 3H"), g.Hand())
	assert.Len(t, g.Stock(), 2)
}

func TestDrawTakesRemainingCards(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{stock: "9S 10S", hand: "2C"})

	assert.False(t, g.Draw())
	assert.Equal(t, cards(t, "2C 10S 9S"), g.Hand())
	assert.Empty(t, g.Stock())
}

func TestDrawRecyclesReversedHand(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{hand: "AH 2H 3H 4H"})

	assert.True(t, g.Draw())
	assert.Empty(t, g.Hand())

	stock := g.Stock()
	require.Len(t, stock, 4)
	want := cards(t, "-4H -3H -2H -AH")
	assert.Equal(t, want, stock)

	// the first card drawn after recycling is the first card drawn before
	assert.False(t, g.Draw())
	assert.Equal(t, cards(t, "AH 2H 3H"), g.Hand())
}

func TestDrawRecyclesEmptyHand(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{})
	assert.True(t, g.Draw())
	assert.Empty(t, g.Stock())
	assert.Empty(t, g.Hand())
}

func TestMoveTouchesOnlyItsPiles(t *testing.T) {
	g := newTestGame(t)
	load(t, g, table{
		piles: [PileCount]string{"-AS 6D", "7C", "KH", "-2S 3D"},
		stock: "JC QC",
		hand:  "5S",
	})
	before := g.Snapshot()

	require.NoError(t, g.MakeMove(0, 1, 1))
	after := g.Snapshot()

	for i := 2; i < PileCount; i++ {
		assert.Equal(t, before.Piles[i], after.Piles[i], "pile %d", i)
	}
	assert.Equal(t, before.Stock, after.Stock)
	assert.Equal(t, before.Hand, after.Hand)
	assert.Equal(t, before.Foundations, after.Foundations)
}

func TestMoveString(t *testing.T) {
	assert.Equal(t, "hand x1 -> foundation S", Move{HandPile, 1, 8}.String())
	assert.Equal(t, "pile 2 x3 -> pile 5", Move{2, 3, 5}.String())
}

// Random move sequences must never break the table invariants.
func TestInvariantsUnderRandomMoves(t *testing.T) {
	rng := randutil.New(77)
	g := NewGame(randutil.New(78))

	for game := 0; game < 20; game++ {
		g.Restart()
		require.NoError(t, g.CheckInvariants())

		for i := 0; i < 2000; i++ {
			if rng.IntN(6) == 0 {
				g.Draw()
			} else {
				src := rng.IntN(HandPile + 1)
				if IsFoundation(src) {
					src = HandPile
				}
				_ = g.MakeMove(src, 1+rng.IntN(4), rng.IntN(LastFoundation+1))
			}
			require.NoError(t, g.CheckInvariants(), "game %d step %d", game, i)
		}
	}
}
