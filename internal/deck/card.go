package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit represents a card suit. The declaration order is the order of the
// four foundations.
type Suit int

const (
	Hearts Suit = iota
	Spades
	Diamonds
	Clubs
)

// Suits lists every suit in foundation order.
var Suits = [4]Suit{Hearts, Spades, Diamonds, Clubs}

// String returns the one-letter code of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "H"
	case Spades:
		return "S"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	default:
		return "?"
	}
}

// Symbol returns the unicode pip for a suit
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank, aces low.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r > Ace && r < Jack {
			return strconv.Itoa(int(r))
		}
		return "?"
	}
}

// Card represents a playing card. Cards are values; moving one between
// piles copies it.
type Card struct {
	Suit   Suit
	Rank   Rank
	FaceUp bool
}

// NewCard creates a new face-down card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "QH", "10S")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Display returns the card as a player would see it on the table.
func (c Card) Display() string {
	if !c.FaceUp {
		return "XX"
	}
	return c.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// OppositeColour reports whether c and other differ in colour.
func (c Card) OppositeColour(other Card) bool {
	return c.IsRed() != other.IsRed()
}

// SameColour reports whether c and other share a colour.
func (c Card) SameColour(other Card) bool {
	return c.IsRed() == other.IsRed()
}

// OneBelow reports whether c ranks exactly one below other.
func (c Card) OneBelow(other Card) bool {
	return c.Rank+1 == other.Rank
}

// Same reports whether two cards are the same (suit, rank) regardless of
// which way up they lie.
func (c Card) Same(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

// Reveal returns a face-up copy of the card.
func (c Card) Reveal() Card {
	c.FaceUp = true
	return c
}

// Reveal returns a face-up copy of card; the argument is unaffected.
func Reveal(card Card) Card {
	return card.Reveal()
}

// ParseCard parses the String form of a card, e.g. "AH" or "10c".
// The result is face-down.
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 || len(s) > 3 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	suit, err := parseSuit(s[len(s)-1])
	if err != nil {
		return Card{}, err
	}
	rank, err := parseRank(s[:len(s)-1])
	if err != nil {
		return Card{}, err
	}
	return NewCard(suit, rank), nil
}

// ParseCards parses a whitespace separated list of cards
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseSuit(b byte) (Suit, error) {
	switch b {
	case 'H':
		return Hearts, nil
	case 'S':
		return Spades, nil
	case 'D':
		return Diamonds, nil
	case 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("invalid suit: %c", b)
	}
}

func parseRank(s string) (Rank, error) {
	switch s {
	case "A":
		return Ace, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(Two) || n > int(Ten) {
		return 0, fmt.Errorf("invalid rank: %s", s)
	}
	return Rank(n), nil
}
