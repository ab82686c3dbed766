package simulator

import (
	"sync"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/statistics"
)

// Collector turns hand start and end events into per-seat statistics
type Collector struct {
	mu     sync.Mutex
	start  game.Snapshot
	stats  map[string]*statistics.Statistics
	hands  int
	counts map[game.EventType]int
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{
		stats:  make(map[string]*statistics.Statistics),
		counts: make(map[game.EventType]int),
	}
}

func (c *Collector) OnEvent(event game.GameEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[event.EventType()]++

	switch e := event.(type) {
	case game.HandStartEvent:
		c.start = e.Snapshot()
	case game.HandEndEvent:
		c.record(e.Snapshot(), e.Result)
	}
}

func (c *Collector) record(end game.Snapshot, result *game.HandResult) {
	if result == nil || result.EndReason != nil {
		return
	}
	c.hands++

	bb := float64(max(end.BigBlind, 1))
	n := len(c.start.Players)
	for _, before := range c.start.Players {
		if before.Stack == 0 {
			continue
		}
		after, ok := end.Player(before.Seat)
		if !ok {
			continue
		}

		stats, ok := c.stats[before.Name]
		if !ok {
			stats = &statistics.Statistics{}
			c.stats[before.Name] = stats
		}
		stats.Add(statistics.HandResult{
			NetBB:          float64(after.Stack-before.Stack) / bb,
			Position:       (before.Seat - c.start.Dealer + n) % n,
			WentToShowdown: !result.Uncontested,
			PotChips:       result.Pot,
			PotBB:          float64(result.Pot) / bb,
			StreetReached:  result.LastStreet.String(),
		})
	}
}

// Hands counts completed hands
func (c *Collector) Hands() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hands
}

// Count returns how many events of one type were seen
func (c *Collector) Count(t game.EventType) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[t]
}

// Stats returns the statistics for a player, or nil if they never played
func (c *Collector) Stats(name string) *statistics.Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats[name]
}
