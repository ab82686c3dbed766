package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/simulator"
)

type SimulateCmd struct {
	Tables      int    `short:"t" help:"Number of independent tables" default:"4"`
	Hands       int    `short:"n" help:"Hands per table (0 plays until one player is left)" default:"100"`
	Seed        int64  `help:"Parent seed, each table derives its own (0 for random)"`
	Concurrency int    `short:"j" help:"Tables to run at once (0 runs them all)"`
	Players     int    `short:"p" help:"Seats per table, overrides the config file"`
	HistoryDir  string `help:"Write a JSON hand history for every hand to this directory" type:"path"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	if c.Players > 0 {
		cfg.Table.PolicySeats = c.Players - 1
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
	logger := newLogger(out, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}

	opts := simulator.Options{
		Tables:      c.Tables,
		Hands:       c.Hands,
		Seed:        seed,
		Concurrency: c.Concurrency,
		Config:      cfg,
		Logger:      logger,
	}
	if dir := cfg.Table.HandHistoryDir; dir != "" {
		opts.History = game.NewFileHandHistoryWriter(dir)
	}

	report, err := simulator.Run(ctx, opts)
	if err != nil {
		return err
	}
	simulator.PrintSummary(os.Stdout, report)
	return nil
}
