// Package pulse implements the PulseMachine and PulseEngine: the
// deterministic state machine that owns the pipeline's lifecycle, and the
// long-running driver that ticks it. A fixed seven-state machine with an
// explicit transition table drives the alternation between capturing,
// asking the predictor for a next step, and executing it.
package pulse

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pulseagent/pulseagent/internal/model"
)

// Machine owns the current PulseState and the current Suggestion behind a
// single mutex. No method returns an internal handle; every read returns
// a snapshot.
type Machine struct {
	mu         sync.Mutex
	state      model.PulseState
	suggestion *model.Suggestion
	log        *zap.SugaredLogger
}

// NewMachine builds a Machine starting in Idle, the initial and
// terminal-per-cycle state.
func NewMachine(log *zap.SugaredLogger) *Machine {
	return &Machine{state: model.StateIdle, log: log}
}

// State returns the current state.
func (m *Machine) State() model.PulseState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Transition attempts to move to `to`. Only transitions permitted by
// model.CanTransition succeed; anything else is rejected with a logged
// warning and no state change. Returns (previous, new, accepted).
func (m *Machine) Transition(to model.PulseState) (model.PulseState, model.PulseState, bool) {
	m.mu.Lock()
	from := m.state
	if !model.CanTransition(from, to) {
		m.mu.Unlock()
		if m.log != nil {
			m.log.Warnw("rejected pulse state transition", "from", from, "to", to)
		}
		return from, from, false
	}
	m.state = to
	m.mu.Unlock()
	return from, to, true
}

// Reset forces the machine back to Idle and clears the current
// Suggestion, regardless of the state it was in. Returns the state it was
// in before the reset.
func (m *Machine) Reset() model.PulseState {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.state
	m.state = model.StateIdle
	m.suggestion = nil
	return prev
}

// CurrentSuggestion returns a snapshot of the machine-owned Suggestion, or
// nil if none is live.
func (m *Machine) CurrentSuggestion() *model.Suggestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.suggestion == nil {
		return nil
	}
	cp := *m.suggestion
	return &cp
}

// SetSuggestion installs s as the machine-owned Suggestion, replacing any
// existing one. At most one Suggestion is ever live at a time: the state
// machine's own linearity guarantees this, since a new Suggestion is only
// created while transitioning ProcessingCloud -> AwaitingApproval, and the
// prior one must already have reached a terminal state to have returned
// the machine to Idle.
func (m *Machine) SetSuggestion(s model.Suggestion) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suggestion = &s
}

// UpdateSuggestionState mutates the owned Suggestion's state (and,
// optionally, its replay path) and returns a snapshot of the result. A
// nil return means no Suggestion was live.
func (m *Machine) UpdateSuggestionState(state model.SuggestionState, replayPath string) *model.Suggestion {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.suggestion == nil {
		return nil
	}
	m.suggestion.State = state
	if replayPath != "" {
		m.suggestion.ReplayPath = replayPath
	}
	cp := *m.suggestion
	return &cp
}

// ClearSuggestion drops the machine-owned Suggestion.
func (m *Machine) ClearSuggestion() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suggestion = nil
}
