// Package config loads table settings from HCL files.
package config

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem/internal/game"
)

const (
	DefaultSmallBlind   = 10
	DefaultBigBlind     = 20
	DefaultInitialStack = 200
	DefaultHumanName    = "Player"
	DefaultPolicySeats  = 1
	DefaultLogLevel     = "info"
)

// Config represents the complete configuration
type Config struct {
	LogLevel string           `hcl:"log_level,optional"`
	Table    *TableSettings   `hcl:"table,block"`
	Policies []PolicySettings `hcl:"policy,block"`
}

// TableSettings defines the stakes and seating of the table
type TableSettings struct {
	Name            string `hcl:"name,label"`
	SmallBlind      int    `hcl:"small_blind,optional"`
	BigBlind        int    `hcl:"big_blind,optional"`
	InitialStack    int    `hcl:"initial_stack,optional"`
	HumanName       string `hcl:"human_name,optional"`
	PolicySeats     int    `hcl:"policy_seats,optional"`
	Seed            int64  `hcl:"seed,optional"`
	HandHistoryDir  string `hcl:"hand_history_dir,optional"`
	DecisionTimeout string `hcl:"decision_timeout,optional"`
}

// PolicySettings names a policy seat and optionally fixes its aggression.
// Zero aggression is drawn at random when the table is built.
type PolicySettings struct {
	Name       string `hcl:"name,label"`
	Aggression int    `hcl:"aggression,optional"`
}

// Seat describes one participant before the table is built
type Seat struct {
	Name       string
	Type       game.PlayerType
	Aggression int
}

// Default returns the configuration used when no file is given
func Default() *Config {
	c := &Config{}
	c.Normalize()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, applies defaults and validates the result
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.Normalize()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Normalize fills in defaults and raises the big blind to at least twice
// the small blind. Negative values are left for Validate to reject.
func (c *Config) Normalize() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Table == nil {
		c.Table = &TableSettings{Name: "main"}
	}

	t := c.Table
	if t.SmallBlind == 0 {
		t.SmallBlind = DefaultSmallBlind
	}
	if t.BigBlind == 0 {
		t.BigBlind = DefaultBigBlind
	}
	if t.SmallBlind > 0 {
		t.SmallBlind, t.BigBlind = game.NormalizeBlinds(t.SmallBlind, t.BigBlind)
	}
	if t.InitialStack == 0 {
		t.InitialStack = DefaultInitialStack
	}
	if t.HumanName == "" {
		t.HumanName = DefaultHumanName
	}
	if t.PolicySeats == 0 {
		t.PolicySeats = max(DefaultPolicySeats, len(c.Policies))
	}
	if t.PolicySeats < len(c.Policies) {
		t.PolicySeats = len(c.Policies)
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table == nil {
		return fmt.Errorf("a table block is required")
	}
	t := c.Table
	if t.SmallBlind <= 0 {
		return fmt.Errorf("table %s: small blind must be positive", t.Name)
	}
	if t.BigBlind <= 0 {
		return fmt.Errorf("table %s: big blind must be positive", t.Name)
	}
	if t.InitialStack <= 0 {
		return fmt.Errorf("table %s: initial stack must be positive", t.Name)
	}
	if seats := t.PolicySeats + 1; seats < game.MinSeats || seats > game.MaxSeats {
		return fmt.Errorf("table %s: %d seats, must be between %d and %d", t.Name, seats, game.MinSeats, game.MaxSeats)
	}
	if _, err := c.DecisionTimeout(); err != nil {
		return fmt.Errorf("table %s: %w", t.Name, err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	names := map[string]bool{t.HumanName: true}
	for _, s := range c.Seats() {
		if s.Type == game.Policy && names[s.Name] {
			return fmt.Errorf("table %s: duplicate seat name %q", t.Name, s.Name)
		}
		names[s.Name] = true
	}
	for _, p := range c.Policies {
		if p.Aggression != 0 && (p.Aggression < game.MinAggression || p.Aggression > game.MaxAggression) {
			return fmt.Errorf("policy %s: aggression must be between %d and %d", p.Name, game.MinAggression, game.MaxAggression)
		}
	}
	return nil
}

// DecisionTimeout parses the human decision timeout; empty means none
func (c *Config) DecisionTimeout() (time.Duration, error) {
	if c.Table == nil || c.Table.DecisionTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Table.DecisionTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid decision_timeout: %w", err)
	}
	return d, nil
}

// TableConfig returns the stakes for game.NewTable
func (c *Config) TableConfig() game.TableConfig {
	return game.TableConfig{SmallBlind: c.Table.SmallBlind, BigBlind: c.Table.BigBlind}
}

// Seats lists the human seat followed by every policy seat. Policy seats
// without a block are named "AI Player N".
func (c *Config) Seats() []Seat {
	seats := []Seat{{Name: c.Table.HumanName, Type: game.Human}}
	for i := 0; i < c.Table.PolicySeats; i++ {
		s := Seat{Name: fmt.Sprintf("AI Player %d", i+1), Type: game.Policy}
		if i < len(c.Policies) {
			s.Name = c.Policies[i].Name
			s.Aggression = c.Policies[i].Aggression
		}
		seats = append(seats, s)
	}
	return seats
}

// Participants builds the seated players. The human seat uses human; when
// human is nil it is played by a policy agent like the others.
func (c *Config) Participants(rng *rand.Rand, human game.Agent) []*game.Participant {
	seats := c.Seats()
	players := make([]*game.Participant, len(seats))
	for i, s := range seats {
		typ, agent := s.Type, human
		if s.Type == game.Policy || human == nil {
			typ = game.Policy
			agent = policyAgent(s.Aggression, rng)
		}
		players[i] = game.NewParticipant(i, s.Name, typ, c.Table.InitialStack, agent)
	}
	return players
}

func policyAgent(aggression int, rng *rand.Rand) *game.PolicyAgent {
	if aggression == 0 {
		return game.NewRandomPolicyAgent(rng)
	}
	return game.NewPolicyAgent(aggression)
}
