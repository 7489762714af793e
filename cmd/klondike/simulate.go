package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/simulator"
)

type SimulateCmd struct {
	Games    int           `help:"Games to play across all workers (0 uses the config file)"`
	Duration time.Duration `help:"Stop after this long, e.g. 30s (0 uses the config file)"`
	Workers  int           `short:"w" help:"Parallel workers (0 uses the config file, then one per CPU)"`
	Seed     int64         `help:"RNG seed (0 uses the config file, then the clock)"`
	MaxMoves int           `help:"Per-game move cap (0 uses the config file)"`

	WriteStats string `type:"path" help:"Also write a JSON summary to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	s := cfg.Simulation
	duration, err := cfg.SimulationDuration()
	if err != nil {
		return err
	}
	// either bound on the command line replaces both from the file
	if c.Games != 0 || c.Duration != 0 {
		s.Games, duration = c.Games, c.Duration
	}
	if c.Workers != 0 {
		s.Workers = c.Workers
	}
	if s.Workers == 0 {
		s.Workers = runtime.NumCPU()
	}
	if c.Seed != 0 {
		s.Seed = c.Seed
	}
	if c.MaxMoves != 0 {
		s.MaxMoves = c.MaxMoves
	}
	if s.Games < 0 || s.Workers < 0 || s.MaxMoves < 0 || duration < 0 {
		return fmt.Errorf("games, duration, workers and max-moves must not be negative")
	}
	seed := randutil.Seed(s.Seed)

	ctx, stop := signalContext(logger)
	defer stop()

	limit := fmt.Sprintf("%d games", s.Games)
	if s.Games == 0 {
		limit = duration.String()
	} else if duration > 0 {
		limit += " or " + duration.String()
	}
	fmt.Printf("Starting simulation: %s on %d workers (seed: %d)\n", limit, s.Workers, seed)

	sim := simulator.New(simulator.Config{
		Games:    s.Games,
		Duration: duration,
		Workers:  s.Workers,
		Seed:     seed,
		MaxMoves: s.MaxMoves,
		Logger:   logger,
	})
	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	if stats.Games == 0 {
		fmt.Println("No games completed")
		return nil
	}

	simulator.PrintSummary(os.Stdout, stats, sim.Elapsed())
	if c.WriteStats != "" {
		if err := stats.WriteReport(c.WriteStats); err != nil {
			return err
		}
		logger.Info("Wrote statistics", "file", c.WriteStats)
	}
	return nil
}
