package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/lox/holdem/internal/game"
)

const helpText = "Actions: f(old) k (check) c(all) b N (bet N) r N (raise by N) a(ll-in) q(uit)"

var (
	errQuit      = errors.New("player quit")
	errAbandoned = errors.New("prompt abandoned")
)

// Console prompts for actions on a terminal. A single goroutine owns the
// reader so a prompt abandoned by a timeout never races the next one.
type Console struct {
	out    io.Writer
	lines  chan string
	done   chan struct{}
	onQuit func()

	mu      sync.Mutex
	abandon chan struct{}
}

// NewConsole starts reading lines from in. onQuit runs when the player
// asks to leave.
func NewConsole(in io.Reader, out io.Writer, onQuit func()) *Console {
	c := &Console{
		out:    out,
		lines:  make(chan string),
		done:   make(chan struct{}),
		onQuit: onQuit,
	}
	go c.read(in)
	return c
}

func (c *Console) read(in io.Reader) {
	defer close(c.done)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		c.lines <- scanner.Text()
	}
}

// Prompt implements game.PromptFunc. Bad input re-prompts; end of input
// and quitting both return an error so the seat folds.
func (c *Console) Prompt(state game.DecisionState) (game.Action, error) {
	c.mu.Lock()
	if c.abandon != nil {
		close(c.abandon)
	}
	abandon := make(chan struct{})
	c.abandon = abandon
	c.mu.Unlock()

	fmt.Fprintln(c.out, renderDecision(state))
	for {
		fmt.Fprint(c.out, promptStyle.Render("> "))
		select {
		case <-abandon:
			return game.Action{}, errAbandoned
		case <-c.done:
			return game.Action{}, io.EOF
		case line := <-c.lines:
			select {
			case <-abandon:
				// a newer prompt owns this line
				go func() { c.lines <- line }()
				return game.Action{}, errAbandoned
			default:
			}

			action, err := ParseAction(line, state)
			if errors.Is(err, errQuit) {
				if c.onQuit != nil {
					c.onQuit()
				}
				return game.Action{}, err
			}
			if err != nil {
				fmt.Fprintln(c.out, errorStyle.Render(err.Error()))
				continue
			}
			return action, nil
		}
	}
}

// ParseAction reads one line of player input. Calls match the current
// bet; raises are by the given amount on top of it.
func ParseAction(input string, state game.DecisionState) (game.Action, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return game.Action{}, fmt.Errorf("enter an action (%s)", helpText)
	}

	amount := func() (int, error) {
		if len(fields) < 2 {
			return 0, fmt.Errorf("%s needs an amount", fields[0])
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid amount %q", fields[1])
		}
		return n, nil
	}

	switch fields[0] {
	case "f", "fold":
		return game.NewFold(), nil
	case "k", "check":
		return game.NewCheck(), nil
	case "c", "call":
		if state.ToCall() == 0 {
			return game.NewCheck(), nil
		}
		return game.NewCall(state.CurrentBet)
	case "b", "bet":
		n, err := amount()
		if err != nil {
			return game.Action{}, err
		}
		return game.NewBet(n)
	case "r", "raise":
		n, err := amount()
		if err != nil {
			return game.Action{}, err
		}
		return game.NewRaise(state.CurrentBet, n)
	case "a", "all-in", "allin", "shove":
		return game.NewAllIn(), nil
	case "q", "quit", "exit":
		return game.Action{}, errQuit
	case "h", "help", "?":
		return game.Action{}, errors.New(helpText)
	default:
		return game.Action{}, fmt.Errorf("unknown action %q", fields[0])
	}
}
