package pulse_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseagent/pulseagent/internal/model"
	"github.com/pulseagent/pulseagent/internal/pulse"
)

func TestMachine_StartsIdle(t *testing.T) {
	t.Parallel()
	m := pulse.NewMachine(nil)
	assert.Equal(t, model.StateIdle, m.State())
}

func TestMachine_Transition_RejectsIllegalMoves(t *testing.T) {
	t.Parallel()
	m := pulse.NewMachine(nil)

	_, _, ok := m.Transition(model.StateExecuting)
	assert.False(t, ok)
	assert.Equal(t, model.StateIdle, m.State())
}

func TestMachine_Transition_AcceptsLegalMoves(t *testing.T) {
	t.Parallel()
	m := pulse.NewMachine(nil)

	from, to, ok := m.Transition(model.StateCapturing)
	require.True(t, ok)
	assert.Equal(t, model.StateIdle, from)
	assert.Equal(t, model.StateCapturing, to)
	assert.Equal(t, model.StateCapturing, m.State())
}

func TestMachine_SuggestionLifecycle(t *testing.T) {
	t.Parallel()
	m := pulse.NewMachine(nil)
	assert.Nil(t, m.CurrentSuggestion())

	sug := model.NewSuggestion("click the button", 0.9, nil, time.Now())
	m.SetSuggestion(sug)

	got := m.CurrentSuggestion()
	require.NotNil(t, got)
	assert.Equal(t, sug.ID, got.ID)
	assert.Equal(t, model.SuggestionPending, got.State)

	updated := m.UpdateSuggestionState(model.SuggestionExecuted, "/tmp/clip.gif")
	require.NotNil(t, updated)
	assert.Equal(t, model.SuggestionExecuted, updated.State)
	assert.Equal(t, "/tmp/clip.gif", updated.ReplayPath)

	m.ClearSuggestion()
	assert.Nil(t, m.CurrentSuggestion())
}

func TestMachine_CurrentSuggestion_ReturnsSnapshotNotHandle(t *testing.T) {
	t.Parallel()
	m := pulse.NewMachine(nil)
	m.SetSuggestion(model.NewSuggestion("x", 0.9, nil, time.Now()))

	snap := m.CurrentSuggestion()
	snap.Description = "mutated locally"

	fresh := m.CurrentSuggestion()
	assert.Equal(t, "x", fresh.Description)
}

func TestMachine_Reset(t *testing.T) {
	t.Parallel()
	m := pulse.NewMachine(nil)
	m.Transition(model.StateCapturing)
	m.SetSuggestion(model.NewSuggestion("x", 0.9, nil, time.Now()))

	prev := m.Reset()
	assert.Equal(t, model.StateCapturing, prev)
	assert.Equal(t, model.StateIdle, m.State())
	assert.Nil(t, m.CurrentSuggestion())
}
