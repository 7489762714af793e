package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/klondike/internal/player"
	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games    int           // Total games across all workers (0 for no limit)
	Duration time.Duration // Wall-clock budget (0 for no limit)
	Workers  int           // Parallel sessions, at least 1
	Seed     int64         // Run seed; worker seeds are derived from it
	MaxMoves int           // Per-game tick cap (0 for no cap)
	Logger   *log.Logger
	Clock    quartz.Clock
}

// ErrUnbounded is returned when a simulation has neither a game count nor a
// duration to stop it.
var ErrUnbounded = errors.New("simulation needs a game count or a duration")

// Simulator runs independent self-playing sessions in parallel
type Simulator struct {
	config Config
	logger *log.Logger
	clock  quartz.Clock
	start  time.Time
}

// New creates a new simulator with the given configuration. The duration
// budget is measured from this call.
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	return &Simulator{
		config: config,
		logger: logger.WithPrefix("simulator"),
		clock:  clock,
		start:  clock.Now(),
	}
}

// Elapsed returns the time since the simulator was created.
func (s *Simulator) Elapsed() time.Duration {
	return s.clock.Since(s.start)
}

// Run plays games until the game count or duration is reached, or ctx is
// cancelled, and returns the aggregated results. Cancellation is not an
// error: the games finished so far are returned.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 && s.config.Duration <= 0 {
		return nil, ErrUnbounded
	}

	g, gctx := errgroup.WithContext(ctx)
	results := make(chan statistics.GameResult, s.config.Workers)
	var claimed atomic.Int64

	s.logger.Debug("Starting simulation",
		"games", s.config.Games,
		"duration", s.config.Duration,
		"workers", s.config.Workers,
		"seed", s.config.Seed)

	for w := 0; w < s.config.Workers; w++ {
		seed := randutil.Derive(s.config.Seed, w)
		g.Go(func() error {
			return s.work(gctx, w, seed, &claimed, results)
		})
	}

	stats := &statistics.Statistics{}
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for r := range results {
			stats.Add(r)
		}
	}()

	err := g.Wait()
	close(results)
	<-collected
	if err != nil {
		return nil, err
	}

	if stats.Games == 0 {
		return stats, nil
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// work runs one session, claiming games from the shared quota until the
// quota, the time budget or the context runs out.
func (s *Simulator) work(ctx context.Context, worker int, seed int64, claimed *atomic.Int64, results chan<- statistics.GameResult) error {
	logger := s.logger.With("worker", worker)
	session := NewSession(seed, s.config.MaxMoves, s.clock, s.config.Logger)

	for {
		if ctx.Err() != nil {
			return nil
		}
		if s.config.Duration > 0 && s.Elapsed() >= s.config.Duration {
			return nil
		}
		if s.config.Games > 0 && claimed.Add(1) > int64(s.config.Games) {
			return nil
		}

		result, err := session.PlayGame()
		if err != nil {
			logger.Error("Player invariant violated", "error", err)
			return fmt.Errorf("worker %d: %w", worker, err)
		}
		results <- result
	}
}

// RunSimulation is a convenience function for a single-worker run of a
// fixed number of games
func RunSimulation(ctx context.Context, games int, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{
		Games:    games,
		Workers:  1,
		Seed:     seed,
		MaxMoves: DefaultMaxMoves,
		Logger:   logger,
	}).Run(ctx)
}

// DefaultMaxMoves bounds a single deal. The player always terminates on
// its own well below this.
const DefaultMaxMoves = 5000

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, elapsed time.Duration) {
	winLow, winHigh := stats.WinRateCI95()
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS ===\n")
	fmt.Fprintf(w, "Games played: %d\n", stats.Games)
	fmt.Fprintf(w, "Games won: %d\n", stats.Wins)
	fmt.Fprintf(w, "Win rate: %.2f%% (95%% CI: [%.2f%%, %.2f%%])\n",
		stats.WinRate()*100, winLow*100, winHigh*100)
	if stats.Capped > 0 {
		fmt.Fprintf(w, "Hit move cap: %d\n", stats.Capped)
	}
	if elapsed > 0 {
		fmt.Fprintf(w, "Elapsed: %s (%.0f games/sec)\n",
			elapsed.Round(time.Millisecond), float64(stats.Games)/elapsed.Seconds())
	}

	fmt.Fprintf(w, "\n=== MOVES PER GAME ===\n")
	fmt.Fprintf(w, "Mean: %.1f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.1f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.1f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.1f, %.1f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	if stats.Wins > 0 {
		fmt.Fprintf(w, "Mean in won games: %.1f\n", stats.MeanWinMoves())
	}

	fmt.Fprintf(w, "\n=== SCORING ===\n")
	fmt.Fprintf(w, "Mean score per game: %.1f\n", stats.MeanScore())
	fmt.Fprintf(w, "Mean foundation cards: %.1f\n", stats.MeanFoundation())

	fmt.Fprintf(w, "\n=== MOVE FAMILIES ===\n")
	total := stats.Families.Total()
	for f := player.Family(0); int(f) < player.NumFamilies; f++ {
		n := stats.Families[f]
		pct := 0.0
		if total > 0 {
			pct = float64(n) / float64(total) * 100
		}
		fmt.Fprintf(w, "%-16s %10d (%.1f%%)\n", f.String()+":", n, pct)
	}
}
