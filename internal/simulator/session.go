package simulator

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/klondike/internal/klondike"
	"github.com/lox/klondike/internal/player"
	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/statistics"
)

// Outcome says why a deal ended.
type Outcome int

const (
	Won Outcome = iota
	Stuck
	Capped
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Stuck:
		return "stuck"
	case Capped:
		return "capped"
	default:
		return "unknown"
	}
}

// Session drives one game and its player, dealing a new game after every
// win, stuck position or move cap.
type Session struct {
	game     *klondike.Game
	player   *player.Player
	seed     int64
	maxMoves int
	logger   *log.Logger

	moves      int
	scoreStart int
	played     int
	last       Outcome
	final      klondike.Snapshot
}

// NewSession creates a session seeded with seed and deals its first game.
// maxMoves caps the ticks spent on a single deal; zero means no cap.
func NewSession(seed int64, maxMoves int, clock quartz.Clock, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	opts := []klondike.Option{klondike.WithLogger(logger)}
	if clock != nil {
		opts = append(opts, klondike.WithClock(clock))
	}
	g := klondike.NewGame(randutil.New(seed), opts...)

	s := &Session{
		game:     g,
		player:   player.New(g, logger),
		seed:     seed,
		maxMoves: maxMoves,
		logger:   logger.WithPrefix("session"),
	}
	s.deal()
	return s
}

// Game returns the game being played.
func (s *Session) Game() *klondike.Game { return s.game }

// Player returns the player driving the game.
func (s *Session) Player() *player.Player { return s.player }

// Seed returns the seed the session was created with.
func (s *Session) Seed() int64 { return s.seed }

// Played returns how many deals have finished.
func (s *Session) Played() int { return s.played }

// Moves returns the ticks spent on the current deal.
func (s *Session) Moves() int { return s.moves }

// LastOutcome returns how the most recently finished deal ended.
func (s *Session) LastOutcome() Outcome { return s.last }

// FinalTable returns the table as it stood when the most recently
// finished deal ended.
func (s *Session) FinalTable() klondike.Snapshot { return s.final }

func (s *Session) deal() {
	s.scoreStart = s.game.Score()
	s.game.Restart()
	s.player.Reset()
	s.moves = 0
}

// Step performs a single tick. When the tick ends the current deal it
// returns that deal's result with done set, and a fresh deal is already
// on the table. An *player.InvariantError raised by the player is
// returned as an error.
func (s *Session) Step() (result statistics.GameResult, done bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ierr, ok := r.(*player.InvariantError)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("seed %d game %d move %d: %w", s.seed, s.played+1, s.moves+1, ierr)
		}
	}()

	moved := s.player.PlayOneMove()
	if moved {
		s.moves++
	}

	switch {
	case s.game.IsWon():
		return s.finish(Won), true, nil
	case !moved:
		return s.finish(Stuck), true, nil
	case s.maxMoves > 0 && s.moves >= s.maxMoves:
		return s.finish(Capped), true, nil
	}
	return statistics.GameResult{}, false, nil
}

// PlayGame steps until the current deal ends and returns its result.
func (s *Session) PlayGame() (statistics.GameResult, error) {
	for {
		result, done, err := s.Step()
		if err != nil || done {
			return result, err
		}
	}
}

func (s *Session) finish(outcome Outcome) statistics.GameResult {
	s.played++
	s.last = outcome

	foundation := 0
	for i := 0; i < klondike.FoundationCount; i++ {
		foundation += s.game.FoundationLen(i)
	}

	result := statistics.GameResult{
		Won:        outcome == Won,
		Capped:     outcome == Capped,
		Moves:      s.moves,
		Score:      s.game.Score() - s.scoreStart,
		Foundation: foundation,
		Seed:       s.seed,
		Game:       s.played,
		Counts:     s.player.Counts(),
	}
	s.final = s.game.Snapshot()
	s.logger.Debug("Game finished", "game", s.played, "outcome", outcome, "moves", s.moves, "foundation", foundation)

	s.deal()
	return result
}
