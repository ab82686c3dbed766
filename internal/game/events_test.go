package game

import (
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSubscriber struct{ n int }

func (c *countingSubscriber) OnEvent(GameEvent) { c.n++ }

func TestEventBusSubscribeAndUnsubscribe(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()
	a, b := &countingSubscriber{}, &countingSubscriber{}
	var fn int
	bus.Subscribe(a)
	bus.Subscribe(b)
	bus.Subscribe(SubscriberFunc(func(GameEvent) { fn++ }))

	bus.Publish(HoleCardsDealtEvent{})
	bus.Unsubscribe(a)
	bus.Publish(HoleCardsDealtEvent{})

	assert.Equal(t, 1, a.n)
	assert.Equal(t, 2, b.n)
	assert.Equal(t, 2, fn)
}

func TestEventsUseTableClock(t *testing.T) {
	t.Parallel()

	mClock := quartz.NewMock(t)
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mClock.Set(start)

	recorder := &EventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(recorder)
	table := NewTestTable(WithTableOptions(WithClock(mClock), WithEventBus(bus)))

	result, err := table.PlayHand()
	require.NoError(t, err)

	for _, e := range recorder.Events() {
		assert.Equal(t, start, e.Timestamp(), "event %s", e.EventType())
	}
	assert.Equal(t, start, result.StartedAt)
	assert.Equal(t, start, result.EndedAt)
}

func TestEventSnapshotsAreCopies(t *testing.T) {
	t.Parallel()

	recorder := &EventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(recorder)
	table := NewTestTable(WithTableOptions(WithEventBus(bus)))

	h, err := table.ResetHand()
	require.NoError(t, err)
	require.NoError(t, h.AssignBlinds())

	events := recorder.Events()
	require.Len(t, events, 2)
	blinds := events[1].Snapshot()
	assert.Equal(t, 15, blinds.Pot)
	assert.Equal(t, 10, blinds.HighestBet)
	assert.Equal(t, 200, blinds.TotalChips())

	blinds.Players[0].Stack = 1000
	assert.Equal(t, 95, table.Players()[0].Stack)

	start := events[0].Snapshot()
	p, ok := start.Player(0)
	require.True(t, ok)
	assert.Equal(t, 100, p.Stack, "snapshot taken before the blinds")
	_, ok = start.Player(7)
	assert.False(t, ok)
}

func TestEventFormatter(t *testing.T) {
	t.Parallel()

	f := NewEventFormatter(FormattingOptions{ShowReasonings: true, Perspective: "Alice"})

	text := f.Format(PlayerActionEvent{
		Player:    "Bob",
		Action:    MustAction(NewCall(20)),
		Committed: 10,
		PotAfter:  40,
		Reasoning: "pot odds",
	})
	assert.Equal(t, "Bob: calls 10 (pot now: 40) [pot odds]", text)

	assert.Equal(t, "Bob: folds", NewEventFormatter(FormattingOptions{}).Format(PlayerActionEvent{Player: "Bob", Reasoning: "x"}))
	assert.Empty(t, f.Format(StreetStartEvent{Street: Preflop}))
}

func TestEventFormatterHidesOtherHoleCards(t *testing.T) {
	t.Parallel()

	recorder := &EventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(recorder)
	table := NewTestTable(
		WithStackedCards("7c Ah 2d As 8h AdKc9s 8d 4h 8s 3c"),
		WithAgents(NewScriptedAgent(MustAction(NewCall(10)))),
		WithTableOptions(WithEventBus(bus)),
	)
	_, err := table.PlayHand()
	require.NoError(t, err)

	f := NewEventFormatter(FormattingOptions{Perspective: "Alice"})
	var lines []string
	for _, e := range recorder.Events() {
		if s := f.Format(e); s != "" {
			lines = append(lines, s)
		}
	}
	log := strings.Join(lines, "\n")

	assert.Contains(t, log, "Dealt to Alice [A♥ A♠]")
	assert.NotContains(t, log, "Dealt to Bob")
	assert.Contains(t, log, "*** FLOP *** [A♦ K♣ 9♠]")
	assert.Contains(t, log, "Bob: shows [7♣ 2♦] (High Card (A♦))")
	assert.Contains(t, log, "Alice collects 20")
}
