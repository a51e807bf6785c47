package executor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseagent/pulseagent/internal/executor"
	"github.com/pulseagent/pulseagent/internal/model"
)

type recordingSynth struct {
	calls []string
}

func (s *recordingSynth) MoveMouse(x, y int)         { s.calls = append(s.calls, "move") }
func (s *recordingSynth) Click(x, y int)             { s.calls = append(s.calls, "click") }
func (s *recordingSynth) RightClick(x, y int)        { s.calls = append(s.calls, "right_click") }
func (s *recordingSynth) DoubleClick(x, y int)       { s.calls = append(s.calls, "double_click") }
func (s *recordingSynth) TypeText(text string)       { s.calls = append(s.calls, "type:"+text) }
func (s *recordingSynth) PressKeys(spec string)      { s.calls = append(s.calls, "keys:"+spec) }
func (s *recordingSynth) Drag(sx, sy, ex, ey int)    { s.calls = append(s.calls, "drag") }
func (s *recordingSynth) Scroll(x, y, amount int)    { s.calls = append(s.calls, "scroll") }

type panickingSynth struct{ recordingSynth }

func (s *panickingSynth) Click(x, y int) { panic("input backend crashed") }

func region() *model.Region {
	return &model.Region{X: 10, Y: 10, Width: 20, Height: 20}
}

func TestExecutor_Execute_DispatchesInOrder(t *testing.T) {
	t.Parallel()
	synth := &recordingSynth{}
	e := executor.New(synth, nil, 1, 2, 1)

	plan := model.ActionPlan{
		{Type: model.ActionClick, TargetRegion: region()},
		{Type: model.ActionTypeText, Text: "hi"},
		{Type: model.ActionKeyChord, Keys: "ctrl+s"},
	}

	err := e.Execute(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, []string{"click", "type:hi", "keys:ctrl+s"}, synth.calls)
}

func TestExecutor_Execute_MissingRegionIsNoOp(t *testing.T) {
	t.Parallel()
	synth := &recordingSynth{}
	e := executor.New(synth, nil, 1, 2, 1)

	err := e.Execute(context.Background(), model.ActionPlan{{Type: model.ActionClick}})
	require.NoError(t, err)
	assert.Empty(t, synth.calls)
}

func TestExecutor_Execute_CancelledContextStopsBetweenActions(t *testing.T) {
	t.Parallel()
	synth := &recordingSynth{}
	e := executor.New(synth, nil, 1, 2, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Execute(ctx, model.ActionPlan{{Type: model.ActionClick, TargetRegion: region()}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecutor_Execute_PanicBecomesFatalError(t *testing.T) {
	t.Parallel()
	synth := &panickingSynth{}
	e := executor.New(synth, nil, 1, 2, 1)

	err := e.Execute(context.Background(), model.ActionPlan{{Type: model.ActionClick, TargetRegion: region()}})
	require.Error(t, err)
	assert.False(t, errors.Is(err, context.Canceled))
}

func TestExecutor_UndoLast_ReplaysStoredReverse(t *testing.T) {
	t.Parallel()
	synth := &recordingSynth{}
	e := executor.New(synth, nil, 1, 2, 1)

	plan := model.ActionPlan{{Type: model.ActionTypeText, Text: "abc"}}
	require.NoError(t, e.Execute(context.Background(), plan))

	synth.calls = nil
	require.NoError(t, e.UndoLast(context.Background()))
	require.Len(t, synth.calls, 1)
	assert.Equal(t, "keys:backspace+backspace+backspace", synth.calls[0])
}

func TestExecutor_UndoLast_NoOpWithoutPriorPlan(t *testing.T) {
	t.Parallel()
	synth := &recordingSynth{}
	e := executor.New(synth, nil, 1, 2, 1)

	require.NoError(t, e.UndoLast(context.Background()))
	assert.Empty(t, synth.calls)
}

func TestExecutor_Execute_Paces(t *testing.T) {
	t.Parallel()
	synth := &recordingSynth{}
	e := executor.New(synth, nil, 20, 20, 1)

	start := time.Now()
	plan := model.ActionPlan{
		{Type: model.ActionKeyChord, Keys: "a"},
		{Type: model.ActionKeyChord, Keys: "b"},
	}
	require.NoError(t, e.Execute(context.Background(), plan))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
