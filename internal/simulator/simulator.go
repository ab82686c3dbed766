// Package simulator plays many independent policy-only tables concurrently.
package simulator

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem/internal/config"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/randutil"
	"github.com/lox/holdem/internal/statistics"
)

// Options holds configuration for running simulations
type Options struct {
	Tables      int   // Independent tables to run
	Hands       int   // Hands per table, 0 plays until one player is left
	Seed        int64 // Parent seed, 0 picks one from the clock
	Concurrency int   // Tables run at once, 0 means all of them
	Config      *config.Config
	Logger      *log.Logger
	History     game.HandHistoryWriter // Optional, receives every hand
}

// PlayerSummary is one seat's result at one table
type PlayerSummary struct {
	Name       string
	Aggression int
	FinalStack int
	Stats      *statistics.Statistics
}

// TableSummary reports what happened at one table
type TableSummary struct {
	Table        int
	Seed         int64
	HandsPlayed  int
	Showdowns    int
	Uncontested  int
	Illegal      int
	Aborted      int
	FinalDealer  int
	TotalChips   int
	Players      []PlayerSummary
	Duration     time.Duration
	LastHandID   string
	LastHandDesc string
}

// Report aggregates every table
type Report struct {
	Seed     int64
	Tables   []TableSummary
	Duration time.Duration
}

// Hands counts hands played across every table
func (r *Report) Hands() int {
	n := 0
	for _, t := range r.Tables {
		n += t.HandsPlayed
	}
	return n
}

// PlayerStats merges each player's statistics across tables
func (r *Report) PlayerStats() map[string]*statistics.Statistics {
	merged := make(map[string]*statistics.Statistics)
	for _, t := range r.Tables {
		for _, p := range t.Players {
			if p.Stats == nil {
				continue
			}
			s, ok := merged[p.Name]
			if !ok {
				s = &statistics.Statistics{}
				merged[p.Name] = s
			}
			s.Merge(p.Stats)
		}
	}
	return merged
}

// Run plays opts.Tables tables and returns their summaries in table order.
// Any chip conservation failure stops the run with an error.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Tables <= 0 {
		opts.Tables = 1
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	opts.Seed = randutil.Seed(opts.Seed)

	report := &Report{Seed: opts.Seed, Tables: make([]TableSummary, opts.Tables)}
	started := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i := 0; i < opts.Tables; i++ {
		g.Go(func() error {
			summary, err := runTable(ctx, opts, i)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			report.Tables[i] = *summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Duration = time.Since(started)
	opts.Logger.Info("simulation complete",
		"tables", opts.Tables,
		"hands", report.Hands(),
		"seed", opts.Seed,
		"duration", report.Duration)
	return report, nil
}

func runTable(ctx context.Context, opts Options, index int) (*TableSummary, error) {
	seed := randutil.Derive(opts.Seed, index)
	rng := randutil.New(seed)
	logger := opts.Logger.With("table", index)

	players := opts.Config.Participants(rng, nil)
	collector := NewCollector()
	bus := game.NewEventBus()
	bus.Subscribe(collector)
	if opts.History != nil {
		bus.Subscribe(game.NewHandHistory(opts.History, logger))
	}

	table, err := game.NewTable(opts.Config.TableConfig(), players,
		game.WithRNG(rng),
		game.WithLogger(logger),
		game.WithEventBus(bus),
	)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	summary := &TableSummary{Table: index, Seed: seed}

	for i := 0; opts.Hands <= 0 || i < opts.Hands; i++ {
		results, err := table.Run(ctx, 1)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			break
		}
		if err := table.CheckConservation(); err != nil {
			return nil, fmt.Errorf("hand %s: %w", results[0].HandID, err)
		}
		last := results[0]
		summary.HandsPlayed++
		switch {
		case last.EndReason != nil:
			summary.Aborted++
			logger.Warn("hand aborted", "hand_id", last.HandID, "reason", last.EndReason)
		case last.Uncontested:
			summary.Uncontested++
		default:
			summary.Showdowns++
		}
		summary.LastHandID = last.HandID
		summary.LastHandDesc = last.Description
	}

	summary.Illegal = collector.Count(game.EventTypeIllegalAction)
	summary.FinalDealer = table.Dealer()
	summary.TotalChips = table.TotalChips()
	summary.Duration = time.Since(started)
	for _, p := range table.Players() {
		ps := PlayerSummary{Name: p.Name, FinalStack: p.Stack, Stats: collector.Stats(p.Name)}
		if agent, ok := p.Agent.(*game.PolicyAgent); ok {
			ps.Aggression = agent.Aggression
		}
		summary.Players = append(summary.Players, ps)
	}

	logger.Debug("table finished", "seed", seed, "hands", summary.HandsPlayed, "duration", summary.Duration)
	return summary, nil
}

// PrintSummary renders a plain text summary of a report
func PrintSummary(w io.Writer, report *Report) {
	fmt.Fprintf(w, "\n=== SIMULATION RESULTS (seed %d) ===\n", report.Seed)
	fmt.Fprintf(w, "Tables: %d, hands played: %d, duration: %v\n",
		len(report.Tables), report.Hands(), report.Duration.Round(time.Millisecond))

	showdowns, uncontested, illegal := 0, 0, 0
	for _, t := range report.Tables {
		showdowns += t.Showdowns
		uncontested += t.Uncontested
		illegal += t.Illegal
	}
	if total := showdowns + uncontested; total > 0 {
		fmt.Fprintf(w, "Showdowns: %d (%.1f%%), uncontested: %d (%.1f%%), illegal actions: %d\n",
			showdowns, float64(showdowns)/float64(total)*100,
			uncontested, float64(uncontested)/float64(total)*100, illegal)
	}

	stats := report.PlayerStats()
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	slices.Sort(names)

	fmt.Fprintf(w, "\n=== PLAYERS ===\n")
	for _, name := range names {
		s := stats[name]
		low, high := s.ConfidenceInterval95()
		fmt.Fprintf(w, "%-14s %6d hands  mean %+.3f bb/hand  95%% CI [%+.3f, %+.3f]  wins %d showdown / %d uncontested\n",
			name, s.Hands, s.Mean(), low, high, s.ShowdownWins, s.UncontestedWins)
	}

	fmt.Fprintf(w, "\n=== TABLES ===\n")
	for _, t := range report.Tables {
		stacks := make([]string, len(t.Players))
		for i, p := range t.Players {
			stacks[i] = fmt.Sprintf("%s=%d", p.Name, p.FinalStack)
		}
		fmt.Fprintf(w, "table %d (seed %d): %d hands, %s\n", t.Table, t.Seed, t.HandsPlayed, strings.Join(stacks, " "))
	}
}
