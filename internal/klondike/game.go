package klondike

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/klondike/internal/deck"
)

// Table geometry and pile addresses
const (
	PileCount       = 7
	FoundationCount = 4
	FirstFoundation = PileCount
	LastFoundation  = FirstFoundation + FoundationCount - 1
	HandPile        = 11
	DrawCount       = 3
	dealtCards      = PileCount * (PileCount + 1) / 2
)

// Scoring
const (
	FoundationScore = 5
	WinBonus        = 5000
	RestartPenalty  = deck.Size
)

// Game is a Klondike table plus the counters of the session it belongs to.
// A Game is not safe for concurrent use.
type Game struct {
	piles       [PileCount][]deck.Card
	foundations [FoundationCount][]deck.Card
	stock       []deck.Card
	hand        []deck.Card

	score int
	moves int
	games int
	wins  int
	won   bool

	started time.Time
	rng     *rand.Rand
	clock   quartz.Clock
	logger  *log.Logger
}

// Option configures a Game during creation.
type Option func(*Game)

// WithLogger sets the logger used for move diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger.WithPrefix("klondike")
		}
	}
}

// WithClock sets the clock used for the session start time.
func WithClock(clock quartz.Clock) Option {
	return func(g *Game) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// NewGame creates an empty table. The RNG drives every Restart shuffle and
// is required so that sessions are reproducible.
func NewGame(rng *rand.Rand, opts ...Option) *Game {
	if rng == nil {
		panic("rng is required for game creation")
	}

	g := &Game{
		rng:    rng,
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.started = g.clock.Now()
	return g
}

// Deal lays out cards on a cleared table. Pile i receives i face-down
// cards followed by one face-up card, taken from the front of cards; the
// remaining 24 cards become the stock in the same order, so the last card
// is the first one drawn. cards must hold each of the 52 cards exactly
// once; otherwise an error is returned and the table is left untouched.
func (g *Game) Deal(cards []deck.Card) error {
	if len(cards) != deck.Size {
		return fmt.Errorf("deal needs %d cards, got %d", deck.Size, len(cards))
	}
	var seen [deck.Size]bool
	for _, c := range cards {
		if c.Rank < deck.Ace || c.Rank > deck.King || c.Suit < deck.Hearts || c.Suit > deck.Clubs {
			return fmt.Errorf("deal: invalid card %v", c)
		}
		idx := deck.Index(c)
		if seen[idx] {
			return fmt.Errorf("deal: duplicate card %s", c)
		}
		seen[idx] = true
	}

	next := 0
	for i := range g.piles {
		pile := make([]deck.Card, 0, i+1)
		for j := 0; j < i; j++ {
			c := cards[next]
			c.FaceUp = false
			pile = append(pile, c)
			next++
		}
		pile = append(pile, cards[next].Reveal())
		next++
		g.piles[i] = pile
	}
	for i := range g.foundations {
		g.foundations[i] = make([]deck.Card, 0, deck.King)
	}

	g.stock = make([]deck.Card, 0, deck.Size-dealtCards)
	for _, c := range cards[next:] {
		c.FaceUp = false
		g.stock = append(g.stock, c)
	}
	g.hand = nil
	g.won = false

	g.logger.Debug("Dealt game", "stock", len(g.stock))
	return nil
}

// Restart shuffles a fresh deck and deals it, charging the restart penalty
// and counting a new game.
func (g *Game) Restart() {
	if err := g.Deal(deck.Shuffled(g.rng)); err != nil {
		panic(fmt.Sprintf("dealing a fresh deck: %v", err))
	}
	g.score -= RestartPenalty
	g.games++
}

// IsWon reports whether every foundation is complete. The first positive
// answer for a deal adds the win bonus and counts the win; later calls
// report true without touching the counters until the next deal.
func (g *Game) IsWon() bool {
	for _, f := range g.foundations {
		if len(f) != int(deck.King) {
			return false
		}
	}
	if !g.won {
		g.won = true
		g.wins++
		g.score += WinBonus
		g.logger.Debug("Game won", "wins", g.wins, "score", g.score)
	}
	return true
}

// Score returns the running session score
func (g *Game) Score() int { return g.score }

// Moves returns the number of MakeMove calls, accepted or not
func (g *Game) Moves() int { return g.moves }

// Games returns the number of restarts
func (g *Game) Games() int { return g.games }

// Wins returns the number of won deals
func (g *Game) Wins() int { return g.wins }

// Started returns when the session began
func (g *Game) Started() time.Time { return g.started }

// Elapsed returns the time since the session began
func (g *Game) Elapsed() time.Duration { return g.clock.Since(g.started) }

// FoundationFor returns the foundation address holding suit.
func FoundationFor(suit deck.Suit) int {
	return FirstFoundation + int(suit)
}

// SuitOf returns the suit of the foundation at address dest. It reports
// false when dest is not a foundation.
func SuitOf(dest int) (deck.Suit, bool) {
	if !IsFoundation(dest) {
		return 0, false
	}
	return deck.Suits[dest-FirstFoundation], true
}

// IsFoundation reports whether addr names a foundation.
func IsFoundation(addr int) bool {
	return addr >= FirstFoundation && addr <= LastFoundation
}

// IsTableau reports whether addr names a tableau pile.
func IsTableau(addr int) bool {
	return addr >= 0 && addr < PileCount
}
