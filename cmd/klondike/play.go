package main

import (
	"fmt"
	"os"

	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/render"
	"github.com/lox/klondike/internal/simulator"
)

type PlayCmd struct {
	Seed     int64 `help:"RNG seed (0 for random)"`
	MaxMoves int   `help:"Move cap (0 uses the config file)"`
	Trace    bool  `help:"Print every move as it is played"`
	NoColor  bool  `help:"Disable colour output"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	maxMoves := cfg.Simulation.MaxMoves
	if c.MaxMoves != 0 {
		maxMoves = c.MaxMoves
	}
	seed := randutil.Seed(c.Seed)

	session := simulator.NewSession(seed, maxMoves, nil, logger)
	board := render.New(os.Stdout, !c.NoColor)

	fmt.Println(board.Header(fmt.Sprintf("klondike  seed %d", seed)))
	fmt.Println()
	fmt.Println(board.Table(session.Game().Snapshot()))
	fmt.Println()

	for {
		result, done, err := session.Step()
		if err != nil {
			return err
		}
		if c.Trace && !done {
			fmt.Printf("%4d  %s\n", session.Moves(), session.Player().LastAction())
		}
		if !done {
			continue
		}

		final := session.FinalTable()
		if c.Trace {
			fmt.Println()
		}
		fmt.Println(board.Table(final))
		fmt.Println()
		fmt.Println(board.Outcome(result.Won, result.Moves, result.Foundation))
		fmt.Println(board.StatsLine(final))
		return nil
	}
}
