// Package render draws klondike snapshots as coloured terminal text.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/klondike"
	"github.com/muesli/termenv"
)

// cellWidth fits the widest card ("10H") plus a space
const cellWidth = 4

// visibleHand is how many hand cards are shown fanned out
const visibleHand = klondike.DrawCount

// Styles contains styling for board rendering
type Styles struct {
	Header    lipgloss.Style
	Label     lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	FaceDown  lipgloss.Style
	Empty     lipgloss.Style
	Won       lipgloss.Style
	Status    lipgloss.Style
}

// NewStyles creates the board styles bound to renderer r
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Label: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		CardRed: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		FaceDown: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Empty: r.NewStyle().
			Foreground(lipgloss.Color("#3C3C3C")),
		Won: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Status: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")),
	}
}

// Board renders snapshots for a single output
type Board struct {
	renderer *lipgloss.Renderer
	styles   *Styles
}

// New creates a board renderer writing to w. With colour off every style
// renders as plain text.
func New(w io.Writer, colour bool) *Board {
	r := lipgloss.NewRenderer(w)
	if !colour {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Board{renderer: r, styles: NewStyles(r)}
}

// Styles returns the styles in use.
func (b *Board) Styles() *Styles { return b.styles }

// Card renders a single card, masked when face-down.
func (b *Board) Card(c deck.Card) string {
	switch {
	case !c.FaceUp:
		return b.styles.FaceDown.Render(c.Display())
	case c.IsRed():
		return b.styles.CardRed.Render(c.String())
	default:
		return b.styles.CardBlack.Render(c.String())
	}
}

func (b *Board) cell(s string) string {
	return b.renderer.NewStyle().Width(cellWidth).Render(s)
}

func (b *Board) empty() string {
	return b.styles.Empty.Render("--")
}

// Table renders the stock, hand, foundations and the seven tableau piles.
func (b *Board) Table(s klondike.Snapshot) string {
	var top strings.Builder

	top.WriteString(b.styles.Label.Render("Stock "))
	top.WriteString(b.cell(fmt.Sprintf("%d", len(s.Stock))))

	top.WriteString(b.styles.Label.Render(" Hand "))
	fan := s.Hand[max(0, len(s.Hand)-visibleHand):]
	for i := 0; i < visibleHand; i++ {
		if i < len(fan) {
			top.WriteString(b.cell(b.Card(fan[i])))
		} else {
			top.WriteString(b.cell(""))
		}
	}

	top.WriteString(b.styles.Label.Render(" Foundations "))
	for _, f := range s.Foundations {
		if len(f) == 0 {
			top.WriteString(b.cell(b.empty()))
			continue
		}
		top.WriteString(b.cell(b.Card(f[len(f)-1])))
	}

	columns := make([]string, 0, klondike.PileCount)
	for i, pile := range s.Piles {
		rows := []string{b.cell(b.styles.Label.Render(fmt.Sprintf("%d", i+1)))}
		if len(pile) == 0 {
			rows = append(rows, b.cell(b.empty()))
		}
		for _, c := range pile {
			rows = append(rows, b.cell(b.Card(c)))
		}
		columns = append(columns, lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		top.String(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
	)
}

// StatsLine renders the session counters on one line.
func (b *Board) StatsLine(s klondike.Snapshot) string {
	return b.styles.Status.Render(fmt.Sprintf("Game %d  Wins %d  Score %d  Moves %d  Time %s",
		s.Games, s.Wins, s.Score, s.Moves, s.Elapsed.Round(time.Second)))
}

// Header renders a title bar.
func (b *Board) Header(title string) string {
	return b.styles.Header.Render(title)
}

// Outcome renders the result line printed after a single game.
func (b *Board) Outcome(won bool, moves, foundation int) string {
	if won {
		return b.styles.Won.Render(fmt.Sprintf("Won in %d moves", moves))
	}
	return b.styles.Status.Render(fmt.Sprintf("Stuck after %d moves with %d cards on the foundations", moves, foundation))
}
