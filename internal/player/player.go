// Package player implements a heuristic agent that plays a klondike.Game
// one move at a time.
//
// Each tick the player walks a fixed list of move families and performs
// the first move it finds:
//
//  1. hand to foundation
//  2. tableau top to foundation
//  3. tableau run to another tableau pile
//  4. hand to tableau
//  5. reveal a buried card a foundation needs next
//  6. draw, or recycle the hand into the stock
//
// While restrained, foundation plays are capped at foundLevel so low cards
// stay on the tableau where they can still receive other cards.
package player

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/klondike"
)

// InitialFoundLevel is the foundation ceiling a fresh game starts with.
const InitialFoundLevel = 2

// Player is the heuristic agent bound to a single game.
type Player struct {
	game   *klondike.Game
	logger *log.Logger

	foundLevel      int
	playedThisRound bool
	restrained      bool

	policies []policy
	counts   Counts
	last     Action
}

// policy pairs a move family with the function that looks for and
// performs a move of that family.
type policy struct {
	family Family
	try    func(*Player) bool
}

// New creates a player for game.
func New(game *klondike.Game, logger *log.Logger) *Player {
	if game == nil {
		panic("game is required for player creation")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	p := &Player{
		game:   game,
		logger: logger.WithPrefix("player"),
		policies: []policy{
			{HandToFoundation, (*Player).playHandFoundation},
			{PileToFoundation, (*Player).playPileFoundation},
			{PileToPile, (*Player).playPilePile},
			{HandToPile, (*Player).playHandPile},
			{Reveal, (*Player).playRevealFoundation},
			{Draw, (*Player).playDraw},
		},
	}
	p.Reset()
	return p
}

// Reset restores the policy state for a freshly dealt game.
func (p *Player) Reset() {
	p.foundLevel = InitialFoundLevel
	p.playedThisRound = false
	p.restrained = true
	p.counts = Counts{}
	p.last = Action{}
}

// Game returns the game being played.
func (p *Player) Game() *klondike.Game { return p.game }

// FoundLevel returns the highest rank the player will currently send to a
// foundation while restrained.
func (p *Player) FoundLevel() int { return p.foundLevel }

// Restrained reports whether the foundation ceiling is in force.
func (p *Player) Restrained() bool { return p.restrained }

// PlayedThisRound reports whether a move has been made since the stock
// was last recycled.
func (p *Player) PlayedThisRound() bool { return p.playedThisRound }

// Counts returns how many moves of each family were made this game.
func (p *Player) Counts() Counts { return p.counts }

// LastAction returns the most recent action taken.
func (p *Player) LastAction() Action { return p.last }

// PlayOneMove performs a single move. It returns false when no family
// applies, meaning the game is stuck and should be restarted.
//
// If a family locates a move the game then refuses, the scan and the
// rules disagree; PlayOneMove panics with an *InvariantError.
func (p *Player) PlayOneMove() bool {
	for _, pol := range p.policies {
		if pol.try(p) {
			p.counts[pol.family]++
			return true
		}
	}
	p.logger.Debug("No move available", "foundLevel", p.foundLevel)
	return false
}

// perform applies a move the player has already proven legal.
func (p *Player) perform(family Family, m klondike.Move) {
	if err := p.game.Apply(m); err != nil {
		panic(&InvariantError{Family: family, Move: m, Err: err})
	}
	p.playedThisRound = true
	p.last = Action{Family: family, Move: m}
	p.logger.Debug("Played", "family", family, "move", m)
}

// allowed reports whether the ceiling permits sending rank to a foundation.
func (p *Player) allowed(rank deck.Rank) bool {
	return !p.restrained || int(rank) <= p.foundLevel
}

// fitsFoundation reports whether card is the next card of its foundation.
func (p *Player) fitsFoundation(card deck.Card) bool {
	return p.game.FoundationNeeds(card.Suit) == card.Rank
}

// fitsPile reports whether a run based on card may land on tableau pile i.
func (p *Player) fitsPile(card deck.Card, i int) bool {
	top, ok := p.game.PileTop(i)
	if !ok {
		return card.Rank == deck.King
	}
	return card.OppositeColour(top) && card.OneBelow(top)
}

// raiseFoundLevel lifts the ceiling once every foundation has caught up
// to it.
func (p *Player) raiseFoundLevel() {
	for _, suit := range deck.Suits {
		if int(p.game.FoundationNeeds(suit)) < p.foundLevel {
			return
		}
	}
	p.foundLevel++
	p.logger.Debug("Raised foundation level", "foundLevel", p.foundLevel)
}

func (p *Player) playHandFoundation() bool {
	card, ok := p.game.HandTop()
	if !ok || !p.allowed(card.Rank) || !p.fitsFoundation(card) {
		return false
	}
	p.perform(HandToFoundation, klondike.Move{Src: klondike.HandPile, Depth: 1, Dest: klondike.FoundationFor(card.Suit)})
	p.raiseFoundLevel()
	return true
}

func (p *Player) playPileFoundation() bool {
	for i := 0; i < klondike.PileCount; i++ {
		card, ok := p.game.PileTop(i)
		if !ok || !p.allowed(card.Rank) || !p.fitsFoundation(card) {
			continue
		}
		p.perform(PileToFoundation, klondike.Move{Src: i, Depth: 1, Dest: klondike.FoundationFor(card.Suit)})
		p.raiseFoundLevel()
		return true
	}
	return false
}

func (p *Player) playPilePile() bool {
	for i := 0; i < klondike.PileCount; i++ {
		base, depth, ok := p.game.FaceUpRun(i)
		if !ok {
			continue
		}
		// a king already at the bottom of its pile gains nothing by moving
		kingAtBottom := base.Rank == deck.King && depth == p.game.PileLen(i)

		for j := 0; j < klondike.PileCount; j++ {
			if j == i || !p.fitsPile(base, j) {
				continue
			}
			if p.game.PileLen(j) == 0 && kingAtBottom {
				continue
			}
			p.perform(PileToPile, klondike.Move{Src: i, Depth: depth, Dest: j})
			return true
		}
	}
	return false
}

func (p *Player) playHandPile() bool {
	card, ok := p.game.HandTop()
	if !ok {
		return false
	}
	for j := 0; j < klondike.PileCount; j++ {
		if !p.fitsPile(card, j) {
			continue
		}
		p.perform(HandToPile, klondike.Move{Src: klondike.HandPile, Depth: 1, Dest: j})
		return true
	}
	return false
}

// playRevealFoundation looks for a face-up card some foundation needs next
// that is buried under other cards, and moves the cards on top of it to
// another pile so it can be played on a later tick.
func (p *Player) playRevealFoundation() bool {
	for f, suit := range deck.Suits {
		if p.game.FoundationLen(f) == 0 {
			continue
		}
		need := p.game.FoundationNeeds(suit)
		if need > deck.King || !p.allowed(need) {
			continue
		}

		for i := 0; i < klondike.PileCount; i++ {
			pile := p.game.Pile(i)
			for idx, card := range pile {
				depth := len(pile) - idx - 1
				if depth == 0 || !card.FaceUp || card.Suit != suit || card.Rank != need {
					continue
				}

				cover := pile[idx+1]
				for j := 0; j < klondike.PileCount; j++ {
					if j == i || p.game.PileLen(j) == 0 || !p.fitsPile(cover, j) {
						continue
					}
					p.perform(Reveal, klondike.Move{Src: i, Depth: depth, Dest: j})
					return true
				}
			}
		}
	}
	return false
}

func (p *Player) playDraw() bool {
	recycled := p.game.Draw()
	p.last = Action{Family: Draw, Recycled: recycled}
	if !recycled {
		return true
	}

	switch {
	case p.restrained:
		// give the whole stock one unrestrained pass before giving up
		p.restrained = false
		p.playedThisRound = false
		p.logger.Debug("Recycled stock, lifting restraint")
		return true
	case !p.playedThisRound:
		p.logger.Debug("Recycled stock with no progress, stuck")
		return false
	default:
		p.playedThisRound = false
		p.restrained = true
		p.logger.Debug("Recycled stock, restraining")
		return true
	}
}

// InvariantError reports a move the player proved legal that the game
// then rejected. It is raised as a panic and indicates a bug.
type InvariantError struct {
	Family Family
	Move   klondike.Move
	Err    error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("player invariant violated: %s chose %s: %v", e.Family, e.Move, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
