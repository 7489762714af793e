package player

import "github.com/lox/klondike/internal/klondike"

// Family is a kind of move, in the order the player tries them.
type Family int

const (
	HandToFoundation Family = iota
	PileToFoundation
	PileToPile
	HandToPile
	Reveal
	Draw
)

// NumFamilies is the number of move families.
const NumFamilies = int(Draw) + 1

func (f Family) String() string {
	switch f {
	case HandToFoundation:
		return "hand-foundation"
	case PileToFoundation:
		return "pile-foundation"
	case PileToPile:
		return "pile-pile"
	case HandToPile:
		return "hand-pile"
	case Reveal:
		return "reveal"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// Counts tallies moves by family.
type Counts [NumFamilies]int

// Add accumulates other into c.
func (c *Counts) Add(other Counts) {
	for i := range c {
		c[i] += other[i]
	}
}

// Total returns the number of moves across all families.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Action records what the player did on its last tick. Move is zero for
// draws.
type Action struct {
	Family   Family
	Move     klondike.Move
	Recycled bool
}

func (a Action) String() string {
	if a.Family == Draw {
		if a.Recycled {
			return "recycle stock"
		}
		return "draw"
	}
	return a.Family.String() + ": " + a.Move.String()
}
