// Package klondike implements draw-three Klondike patience as a move
// validating state machine.
//
// The main type is Game, which owns the seven tableau piles, the four
// foundations, the stock and the hand (waste), plus the session counters
// used for statistics.
//
// # Addressing
//
// Moves name their endpoints by index:
//
//	0-6   tableau piles
//	7-10  foundations: 7 hearts, 8 spades, 9 diamonds, 10 clubs
//	11    the hand (source only)
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	g := klondike.NewGame(rng)
//	g.Restart()
//	if err := g.MakeMove(klondike.HandPile, 1, 3); err != nil {
//	    // rejected; state is unchanged apart from the move counter
//	}
//	recycled := g.Draw()
//
// # Deterministic Testing
//
// Deal accepts any arrangement of the 52 cards, so tests can build exact
// positions:
//
//	g.Deal(cards) // pile i gets cards[..] face-down, then one face-up
//
// Rejected moves never panic. They return a *MoveError wrapping one of the
// Err* reasons, which callers inspect with errors.Is.
package klondike
