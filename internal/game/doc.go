// Package game implements a simplified Texas Hold'em betting engine.
//
// A Table seats between two and ten Participants and plays hands between
// them. Each Hand posts blinds, deals hole cards in two passes, runs a
// BettingRound on each street and pays a single pot to the best hand.
// There are no side pots, no minimum raise and no rake.
//
// # Basic Usage
//
//	players := []*game.Participant{
//	    game.NewParticipant(0, "You", game.Human, 200, game.NewHumanAgent(prompt)),
//	    game.NewParticipant(1, "Robot", game.Policy, 200, game.NewPolicyAgent(3)),
//	}
//	table, err := game.NewTable(game.TableConfig{SmallBlind: 10, BigBlind: 20}, players)
//	result, err := table.PlayHand()
//
// # Deterministic Testing
//
// Tables draw their shuffle and opening button from an injected generator,
// and a stacked deck fixes the deal completely:
//
//	rng := randutil.New(42)
//	deck := poker.NewStackedDeck(rng, poker.MustParseCards("AsKs QhQd"))
//	table, err := game.NewTable(cfg, players, game.WithRNG(rng), game.WithDeck(deck))
//
// # Architecture
//
//   - Participant: owns its stack and the chips it has committed
//   - BettingRound: whose turn it is, the bet to match and round closure
//   - Pot: collects street bets and splits them between winners
//   - Hand: sequences a deal and asks each Agent for its decision
//   - EventBus: publishes a Snapshot with every step for renderers and history
package game
