package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
)

type PlayCmd struct {
	Hands       int           `help:"Stop after N hands (0 plays until one player is left)"`
	Seed        int64         `help:"Seed for deterministic play (0 for random)"`
	Players     int           `short:"p" help:"Total seats including yours, overrides the config file"`
	Name        string        `help:"Your player name, overrides the config file"`
	Timeout     time.Duration `help:"Decision timeout for your turns, overrides the config file"`
	ShowReasons bool          `help:"Show the reasoning behind policy decisions"`
	HistoryDir  string        `help:"Write a JSON hand history for every hand to this directory" type:"path"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	if c.Players > 0 {
		cfg.Table.PolicySeats = c.Players - 1
	}
	if c.Name != "" {
		cfg.Table.HumanName = c.Name
	}
	if c.Timeout > 0 {
		cfg.Table.DecisionTimeout = c.Timeout.String()
	}
	if c.HistoryDir != "" {
		cfg.Table.HandHistoryDir = c.HistoryDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, closeLog, err := cli.logOutput()
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	// the table output is the interface, so terminal logs default to warnings
	level := cfg.LogLevel
	if cli.LogLevel == "" && cli.LogFile == "" && level == config.DefaultLogLevel {
		level = "warn"
	}
	logger := newLogger(out, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}
	seed = randutil.Seed(seed)
	rng := randutil.New(seed)
	logger.Info("starting game", "seed", seed, "seats", cfg.Table.PolicySeats+1)

	console := NewConsole(os.Stdin, os.Stdout, quit)
	timeout, err := cfg.DecisionTimeout()
	if err != nil {
		return err
	}
	var human game.Agent = game.NewHumanAgent(console.Prompt)
	if timeout > 0 {
		human = game.NewTimeoutAgent(human, timeout, quartz.NewReal(), logger)
	}

	bus := game.NewEventBus()
	bus.Subscribe(newEventPrinter(os.Stdout, cfg.Table.HumanName, c.ShowReasons))
	if dir := cfg.Table.HandHistoryDir; dir != "" {
		bus.Subscribe(game.NewHandHistory(game.NewFileHandHistoryWriter(dir), logger))
	}

	table, err := game.NewTable(cfg.TableConfig(), cfg.Participants(rng, human),
		game.WithRNG(rng),
		game.WithLogger(logger),
		game.WithEventBus(bus),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
	fmt.Fprintln(os.Stdout, helpText)

	results, err := table.Run(ctx, c.Hands)
	if err != nil && ctx.Err() == nil {
		return err
	}
	if err := table.CheckConservation(); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, renderStandings(table.Players(), len(results)))
	return nil
}

func loadConfig(cli *CLI) (*config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	return cfg, nil
}

// eventPrinter writes formatted events and redraws the table at the start
// of each street
type eventPrinter struct {
	w           io.Writer
	formatter   *game.EventFormatter
	perspective string
}

func newEventPrinter(w io.Writer, perspective string, showReasons bool) *eventPrinter {
	return &eventPrinter{
		w: w,
		formatter: game.NewEventFormatter(game.FormattingOptions{
			ShowReasonings: showReasons,
			Perspective:    perspective,
		}),
		perspective: perspective,
	}
}

func (p *eventPrinter) OnEvent(event game.GameEvent) {
	if line := p.formatter.Format(event); line != "" {
		fmt.Fprintln(p.w, line)
	}
	switch event.(type) {
	case game.StreetStartEvent, game.HandEndEvent:
		fmt.Fprintln(p.w, renderTable(event.Snapshot(), p.perspective))
	}
}

var _ game.EventSubscriber = (*eventPrinter)(nil)
