// Package tui animates a self-playing session with Bubble Tea.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/klondike/internal/render"
	"github.com/lox/klondike/internal/simulator"
)

// Delay bounds for the speed keys
const (
	MinDelay = 10 * time.Millisecond
	MaxDelay = 2 * time.Second
)

const (
	maxEntries = 200
	logHeight  = 8
)

// tickMsg advances the session by one move. Ticks from a superseded chain
// carry an old id and are dropped.
type tickMsg struct {
	id int
}

// Model is the Bubble Tea model for `klondike watch`
type Model struct {
	session *simulator.Session
	board   *render.Board
	logger  *log.Logger

	keys    keyMap
	help    help.Model
	moveLog viewport.Model
	entries []string

	delay    time.Duration
	paused   bool
	tickID   int
	quitting bool
	err      error
}

// New creates a watch model over session, pausing delay between moves
func New(session *simulator.Session, board *render.Board, delay time.Duration, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	vp := viewport.New(60, logHeight)

	return &Model{
		session: session,
		board:   board,
		logger:  logger.WithPrefix("tui"),
		keys:    defaultKeyMap(),
		help:    help.New(),
		moveLog: vp,
		delay:   clampDelay(delay),
	}
}

func clampDelay(d time.Duration) time.Duration {
	return min(max(d, MinDelay), MaxDelay)
}

// Init starts the tick chain
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	m.tickID++
	id := m.tickID
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.id != m.tickID || m.paused || m.quitting {
			return m, nil
		}
		if cmd := m.step(); cmd != nil {
			return m, cmd
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.moveLog.Width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			m.logger.Debug("Toggled pause", "paused", m.paused)
			if !m.paused {
				return m, m.tick()
			}
		case key.Matches(msg, m.keys.Step):
			if m.paused {
				return m, m.step()
			}
		case key.Matches(msg, m.keys.Faster):
			m.delay = clampDelay(m.delay / 2)
		case key.Matches(msg, m.keys.Slower):
			m.delay = clampDelay(m.delay * 2)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// step plays one move and records it; a non-nil command ends the program.
func (m *Model) step() tea.Cmd {
	result, done, err := m.session.Step()
	if err != nil {
		m.logger.Error("Session failed", "error", err)
		m.err = err
		m.quitting = true
		return tea.Quit
	}

	if done {
		m.record(fmt.Sprintf("game %d %s after %d moves (%d on foundations)",
			result.Game, m.session.LastOutcome(), result.Moves, result.Foundation))
	} else {
		m.record(m.session.Player().LastAction().String())
	}
	return nil
}

func (m *Model) record(entry string) {
	m.entries = append(m.entries, entry)
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
	m.moveLog.SetContent(strings.Join(m.entries, "\n"))
	m.moveLog.GotoBottom()
}

// View renders the board, counters, move log and key help
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.session.Game().Snapshot()
	status := m.board.StatsLine(snap)
	if m.paused {
		status += "  " + m.board.Styles().Won.Render("PAUSED")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.board.Header(fmt.Sprintf("klondike  seed %d  delay %s", m.session.Seed(), m.delay)),
		"",
		m.board.Table(snap),
		"",
		status,
		"",
		m.moveLog.View(),
		m.help.View(m.keys),
	)
}

// Paused reports whether the animation is paused
func (m *Model) Paused() bool { return m.paused }

// Delay returns the pause between moves
func (m *Model) Delay() time.Duration { return m.delay }

// Entries returns the move log, oldest first
func (m *Model) Entries() []string { return m.entries }

// Err returns the error that stopped the program, if any
func (m *Model) Err() error { return m.err }

// Run runs the watch program on the terminal until the user quits or the
// program's context is cancelled
func Run(m *Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("watch program: %w", err)
	}
	return m.Err()
}
