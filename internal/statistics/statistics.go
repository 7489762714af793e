package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/player"
)

// GameResult represents the outcome of a single dealt game
type GameResult struct {
	Won        bool          // All four foundations completed
	Capped     bool          // Stopped by the move cap rather than winning or getting stuck
	Moves      int           // Player ticks taken (draws included)
	Score      int           // Score change over the game, restart penalty included
	Foundation int           // Cards on the foundations when the game ended
	Seed       int64         // Worker seed the game was dealt from (for replay)
	Game       int           // Game number within the worker's session
	Counts     player.Counts // Ticks by move family
}

// Statistics aggregates finished games from one or more sessions
type Statistics struct {
	Games  int
	Wins   int
	Capped int

	TotalMoves int
	SumMoves2  float64   // Sum of squares for variance calculation
	Values     []float64 // Moves per game for median/percentile calculation
	WinMoves   int       // Moves spent in won games

	TotalScore int

	// FoundationCards[n] counts games that ended with n cards played up
	FoundationCards [deck.Size + 1]int

	Families player.Counts
}

// Add incorporates a finished game into the statistics
func (s *Statistics) Add(result GameResult) {
	s.Games++
	if result.Won {
		s.Wins++
		s.WinMoves += result.Moves
	}
	if result.Capped {
		s.Capped++
	}

	moves := float64(result.Moves)
	s.TotalMoves += result.Moves
	s.SumMoves2 += moves * moves
	s.Values = append(s.Values, moves)

	s.TotalScore += result.Score

	f := min(max(result.Foundation, 0), deck.Size)
	s.FoundationCards[f]++

	s.Families.Add(result.Counts)
}

// Merge folds other into s, as if every game added to other had been
// added to s.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Games += other.Games
	s.Wins += other.Wins
	s.Capped += other.Capped
	s.TotalMoves += other.TotalMoves
	s.SumMoves2 += other.SumMoves2
	s.Values = append(s.Values, other.Values...)
	s.WinMoves += other.WinMoves
	s.TotalScore += other.TotalScore
	for i, n := range other.FoundationCards {
		s.FoundationCards[i] += n
	}
	s.Families.Add(other.Families)
}

// WinRate returns the fraction of games won
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// WinRateCI95 returns the 95% confidence interval for the win rate,
// clamped to [0, 1]
func (s *Statistics) WinRateCI95() (float64, float64) {
	if s.Games == 0 {
		return 0, 0
	}
	p := s.WinRate()
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(s.Games))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// Mean returns the mean number of moves per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Games)
}

// Variance returns the sample variance of moves per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumMoves2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
	// rounding can push a zero variance slightly negative
	return math.Max(0, v)
}

// StdDev returns the sample standard deviation of moves per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean moves per game
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// moves per game
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// MeanWinMoves returns the mean number of moves in won games
func (s *Statistics) MeanWinMoves() float64 {
	if s.Wins == 0 {
		return 0
	}
	return float64(s.WinMoves) / float64(s.Wins)
}

// MeanScore returns the mean score change per game
func (s *Statistics) MeanScore() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(s.Games)
}

// MeanFoundation returns the mean number of cards played to the
// foundations per game
func (s *Statistics) MeanFoundation() float64 {
	if s.Games == 0 {
		return 0
	}
	total := 0
	for n, games := range s.FoundationCards {
		total += n * games
	}
	return float64(total) / float64(s.Games)
}

// Median returns the median moves per game
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the moves per game at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks that the per-family tallies account for every
// move counted
func (s *Statistics) IsLedgerBalanced() bool {
	return s.Families.Total() == s.TotalMoves
}

// Validate performs consistency checks over the aggregated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if s.Wins+s.Capped > s.Games {
		return fmt.Errorf("wins (%d) plus capped games (%d) exceed total games (%d)",
			s.Wins, s.Capped, s.Games)
	}

	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: families total %d, moves total %d",
			s.Families.Total(), s.TotalMoves)
	}

	histogram := 0
	for _, n := range s.FoundationCards {
		histogram += n
	}
	if histogram != s.Games {
		return fmt.Errorf("foundation histogram total (%d) does not match games count (%d)",
			histogram, s.Games)
	}

	if s.FoundationCards[deck.Size] != s.Wins {
		return fmt.Errorf("games with all %d cards up (%d) does not match wins (%d)",
			deck.Size, s.FoundationCards[deck.Size], s.Wins)
	}

	return nil
}
