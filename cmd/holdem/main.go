package main

import (
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" help:"HCL table configuration file" default:"holdem.hcl" type:"path"`
	LogLevel string           `help:"Log level (debug|info|warn|error), overrides the config file"`
	LogFile  string           `help:"Write logs to this file instead of stderr" type:"path"`

	Play     PlayCmd     `cmd:"" default:"withargs" help:"Play against policy seats on the terminal"`
	Simulate SimulateCmd `cmd:"" help:"Run policy-only tables concurrently and report results"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em against simple policy players"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// newLogger builds the process logger. An unknown level falls back to info.
func newLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// logOutput opens the log destination; the returned func closes it
func (c *CLI) logOutput() (io.Writer, func(), error) {
	if c.LogFile == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
