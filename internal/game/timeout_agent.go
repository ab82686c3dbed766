package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// TimeoutAgent bounds how long an inner agent may take to decide. When the
// timer fires first the seat checks if it can and folds otherwise; the late
// answer is discarded.
type TimeoutAgent struct {
	inner   Agent
	timeout time.Duration
	clock   quartz.Clock
	logger  *log.Logger
}

// NewTimeoutAgent wraps inner with a decision deadline
func NewTimeoutAgent(inner Agent, timeout time.Duration, clock quartz.Clock, logger *log.Logger) *TimeoutAgent {
	return &TimeoutAgent{inner: inner, timeout: timeout, clock: clock, logger: logger}
}

func (a *TimeoutAgent) MakeDecision(state DecisionState) Decision {
	if a.timeout <= 0 {
		return a.inner.MakeDecision(state)
	}

	decided := make(chan Decision, 1)
	go func() {
		decided <- a.inner.MakeDecision(state)
	}()

	timeoutFired := make(chan struct{})
	timer := a.clock.AfterFunc(a.timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	select {
	case d := <-decided:
		return d
	case <-timeoutFired:
		if a.logger != nil {
			a.logger.Warn("decision timeout", "player", state.Name, "timeout", a.timeout)
		}
		d := PassiveAgent{}.MakeDecision(state)
		d.Reasoning = fmt.Sprintf("timed out after %s", a.timeout)
		return d
	}
}
