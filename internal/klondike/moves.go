package klondike

import (
	"fmt"

	"github.com/lox/klondike/internal/deck"
)

// Move names a transfer of Depth cards from the top of Src onto Dest.
type Move struct {
	Src   int
	Depth int
	Dest  int
}

func (m Move) String() string {
	return fmt.Sprintf("%s x%d -> %s", PileName(m.Src), m.Depth, PileName(m.Dest))
}

// PileName returns a short label for a pile address.
func PileName(addr int) string {
	switch {
	case IsTableau(addr):
		return fmt.Sprintf("pile %d", addr)
	case IsFoundation(addr):
		suit, _ := SuitOf(addr)
		return "foundation " + suit.String()
	case addr == HandPile:
		return "hand"
	default:
		return fmt.Sprintf("pile?%d", addr)
	}
}

// MakeMove moves depth cards from src to dest. The move counter is bumped
// whether or not the move is legal. A rejected move returns a *MoveError
// and leaves the table exactly as it was.
func (g *Game) MakeMove(src, depth, dest int) error {
	g.moves++

	m := Move{Src: src, Depth: depth, Dest: dest}
	if err := g.apply(m); err != nil {
		g.logger.Debug("Move rejected", "move", m, "reason", err)
		return &MoveError{Move: m, Err: err}
	}
	g.logger.Debug("Move applied", "move", m, "score", g.score)
	return nil
}

// Apply is MakeMove for a Move value.
func (g *Game) Apply(m Move) error {
	return g.MakeMove(m.Src, m.Depth, m.Dest)
}

func (g *Game) apply(m Move) error {
	if !IsTableau(m.Dest) && !IsFoundation(m.Dest) {
		return ErrInvalidDestination
	}

	switch {
	case m.Src == HandPile:
		return g.moveFromHand(m)
	case IsTableau(m.Src):
		return g.moveFromPile(m)
	default:
		return ErrInvalidSource
	}
}

func (g *Game) moveFromHand(m Move) error {
	if len(g.hand) == 0 {
		return ErrEmptyHand
	}
	if m.Depth != 1 {
		return ErrHandDepth
	}

	card := g.hand[len(g.hand)-1]
	if IsFoundation(m.Dest) {
		if err := g.checkFoundation(card, m.Dest); err != nil {
			return err
		}
		g.hand = g.hand[:len(g.hand)-1]
		g.pushFoundation(card, m.Dest)
		return nil
	}

	if err := g.checkPile(card, m.Dest); err != nil {
		return err
	}
	g.hand = g.hand[:len(g.hand)-1]
	g.piles[m.Dest] = append(g.piles[m.Dest], card.Reveal())
	return nil
}

func (g *Game) moveFromPile(m Move) error {
	if m.Src == m.Dest {
		return ErrSamePile
	}
	if m.Depth < 1 {
		return ErrZeroDepth
	}

	src := g.piles[m.Src]
	if m.Depth > len(src) {
		return ErrDepthExceedsPile
	}
	split := len(src) - m.Depth
	base := src[split]
	if !base.FaceUp {
		return ErrFaceDownCard
	}

	if IsFoundation(m.Dest) {
		if m.Depth != 1 {
			return ErrFoundationDepth
		}
		if err := g.checkFoundation(base, m.Dest); err != nil {
			return err
		}
		g.piles[m.Src] = src[:split]
		g.pushFoundation(base, m.Dest)
		g.exposeTop(m.Src)
		return nil
	}

	if err := g.checkPile(base, m.Dest); err != nil {
		return err
	}
	// append copies the run, so the two piles never share cards
	g.piles[m.Dest] = append(g.piles[m.Dest], src[split:]...)
	clear(src[split:])
	g.piles[m.Src] = src[:split]
	g.exposeTop(m.Src)
	return nil
}

// checkFoundation validates placing card on foundation dest.
func (g *Game) checkFoundation(card deck.Card, dest int) error {
	suit, _ := SuitOf(dest)
	if card.Suit != suit {
		return ErrFoundationSuit
	}
	if int(card.Rank) != len(g.foundations[dest-FirstFoundation])+1 {
		return ErrFoundationRank
	}
	return nil
}

// checkPile validates placing a run whose base card is card on tableau
// pile dest.
func (g *Game) checkPile(card deck.Card, dest int) error {
	pile := g.piles[dest]
	if len(pile) == 0 {
		if card.Rank != deck.King {
			return ErrNonKingToEmptyPile
		}
		return nil
	}

	top := pile[len(pile)-1]
	if !card.OppositeColour(top) {
		return ErrColourMustAlternate
	}
	if !card.OneBelow(top) {
		return ErrRankMustDescend
	}
	return nil
}

func (g *Game) pushFoundation(card deck.Card, dest int) {
	i := dest - FirstFoundation
	g.foundations[i] = append(g.foundations[i], card.Reveal())
	g.score += FoundationScore
}

// exposeTop turns the top card of tableau pile i face-up.
func (g *Game) exposeTop(i int) {
	if n := len(g.piles[i]); n > 0 {
		g.piles[i][n-1].FaceUp = true
	}
}

// Draw turns up to three cards from the stock onto the hand and reports
// false. When the stock is empty it instead turns the hand over to form a
// new stock, so the cards come round again in the same order, and
// reports true.
func (g *Game) Draw() bool {
	if len(g.stock) == 0 {
		stock := make([]deck.Card, len(g.hand))
		for i, c := range g.hand {
			c.FaceUp = false
			stock[len(g.hand)-1-i] = c
		}
		g.stock = stock
		g.hand = nil
		g.logger.Debug("Recycled hand into stock", "stock", len(g.stock))
		return true
	}

	for n := 0; n < DrawCount && len(g.stock) > 0; n++ {
		last := len(g.stock) - 1
		card := g.stock[last]
		g.stock = g.stock[:last]
		g.hand = append(g.hand, card.Reveal())
	}
	return false
}
