package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/klondike/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config  string `default:"klondike.hcl" type:"path" help:"HCL configuration file (ignored if missing)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Play many games in parallel and report statistics"`
	Play     PlayCmd          `cmd:"" help:"Play a single game and print the final table"`
	Watch    WatchCmd         `cmd:"" help:"Watch the player work through games in the terminal"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("klondike"),
		kong.Description("Self-playing draw-three Klondike patience"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads the configuration file and builds the shared logger
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	if g.Verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})
	logger.Debug("Loaded configuration", "file", g.Config)
	return cfg, logger, nil
}

// signalContext returns a context cancelled on interrupt or termination
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		logger.Debug("Shutting down", "reason", context.Cause(ctx))
	}()
	return ctx, stop
}
