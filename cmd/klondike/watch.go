package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/render"
	"github.com/lox/klondike/internal/simulator"
	"github.com/lox/klondike/internal/tui"
)

type WatchCmd struct {
	Seed    int64         `help:"RNG seed (0 uses the config file, then the clock)"`
	Delay   time.Duration `help:"Pause between moves (0 uses the config file)"`
	NoColor bool          `help:"Disable colour output"`
	LogFile string        `type:"path" help:"Write logs to this file while the screen is in use"`
}

func (c *WatchCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	// the terminal belongs to the program, so logs go to a file or nowhere
	var out io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger = log.NewWithOptions(out, log.Options{Level: logger.GetLevel(), ReportTimestamp: true})

	delay, err := cfg.WatchDelay()
	if err != nil {
		return err
	}
	if c.Delay != 0 {
		delay = c.Delay
	}
	seed := cfg.Watch.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}
	seed = randutil.Seed(seed)

	ctx, stop := signalContext(logger)
	defer stop()

	session := simulator.NewSession(seed, cfg.Simulation.MaxMoves, nil, logger)
	model := tui.New(session, render.New(os.Stdout, !c.NoColor), delay, logger)
	return tui.Run(model, tea.WithAltScreen(), tea.WithContext(ctx))
}
