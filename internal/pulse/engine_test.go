package pulse_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseagent/pulseagent/internal/cloudbrain"
	"github.com/pulseagent/pulseagent/internal/model"
	"github.com/pulseagent/pulseagent/internal/pulse"
)

type fakeSource struct {
	frame *model.Frame
}

func (f *fakeSource) Start(ctx context.Context) error { return nil }
func (f *fakeSource) Stop() error                     { return nil }
func (f *fakeSource) CaptureOne(ctx context.Context) (*model.Frame, error) {
	return f.frame, nil
}

type fakeIdle struct {
	idle bool
}

func (f *fakeIdle) IdleDuration() time.Duration          { return 0 }
func (f *fakeIdle) CursorPosition() (int, int)           { return 5, 5 }
func (f *fakeIdle) IsIdle(threshold time.Duration) bool  { return f.idle }

type fakePredictor struct {
	pred  *cloudbrain.Prediction
	calls int
}

func (f *fakePredictor) Predict(ctx context.Context, frames []model.Frame, cctx model.CaptureContext) (*cloudbrain.Prediction, error) {
	f.calls++
	return f.pred, nil
}

type fakeExecutor struct {
	executed model.ActionPlan
	fail     bool
}

func (f *fakeExecutor) Execute(ctx context.Context, plan model.ActionPlan) error {
	f.executed = plan
	if f.fail {
		return assertError{}
	}
	return nil
}

type assertError struct{}

func (assertError) Error() string { return "execution failed" }

func newTestEngine(t *testing.T, idleNow bool, pred *cloudbrain.Prediction, execFails bool) (*pulse.Engine, *fakeExecutor) {
	t.Helper()
	machine := pulse.NewMachine(nil)
	exec := &fakeExecutor{fail: execFails}
	frameVal := model.NewFrame([]byte{0xFF}, time.Now(), 100, 100, 1, 1)

	e := pulse.New(pulse.Config{
		FPS:              10,
		BufferSeconds:    1,
		PauseThresholdMs: 1,
		MinConfidence:    0.5,
		CoolingPeriodMs:  1,
	}, nil, machine, &fakeIdle{idle: idleNow}, &fakeSource{frame: &frameVal}, &fakePredictor{pred: pred}, exec, nil, nil)

	return e, exec
}

func TestEngine_FullCycle_ApproveExecutesAndCools(t *testing.T) {
	t.Parallel()
	pred := &cloudbrain.Prediction{
		Confidence:  0.95,
		Description: "click the save button",
		Actions: []cloudbrain.CloudAction{
			{Type: "click", Target: "save", X: intPtr(10), Y: intPtr(10)},
		},
	}
	e, exec := newTestEngine(t, true, pred, false)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go func() { _ = e.Run(ctx) }()

	var ready pulse.Event
	require.Eventually(t, func() bool {
		select {
		case evt := <-e.Events():
			if evt.Kind == pulse.EventSuggestionReady {
				ready = evt
				return true
			}
		default:
		}
		return false
	}, time.Second, 5*time.Millisecond)

	require.NotNil(t, ready.Suggestion)
	e.Approve()

	require.Eventually(t, func() bool {
		return exec.executed != nil
	}, time.Second, 5*time.Millisecond)

	assert.Len(t, exec.executed, 1)
}

func TestEngine_LowConfidencePrediction_ReturnsToIdle(t *testing.T) {
	t.Parallel()
	pred := &cloudbrain.Prediction{Confidence: 0.1, Description: "unsure"}
	e, exec := newTestEngine(t, true, pred, false)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = e.Run(ctx)

	assert.Nil(t, exec.executed)
}

func TestEngine_ContinuouslyNotIdle_OscillatesAndNeverPredicts(t *testing.T) {
	t.Parallel()
	pred := &cloudbrain.Prediction{Confidence: 0.95, Description: "should never be produced"}
	predictor := &fakePredictor{pred: pred}
	machine := pulse.NewMachine(nil)
	exec := &fakeExecutor{}
	frameVal := model.NewFrame([]byte{0xFF}, time.Now(), 100, 100, 1, 1)

	e := pulse.New(pulse.Config{
		FPS:              20,
		BufferSeconds:    1,
		PauseThresholdMs: 1,
		MinConfidence:    0.5,
		CoolingPeriodMs:  1,
	}, nil, machine, &fakeIdle{idle: false}, &fakeSource{frame: &frameVal}, predictor, exec, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	go func() { _ = e.Run(ctx) }()

	var capturingToIdle int
	require.Eventually(t, func() bool {
		for {
			select {
			case evt := <-e.Events():
				if evt.Kind == pulse.EventStateChanged && evt.Previous == model.StateCapturing && evt.Current == model.StateIdle {
					capturingToIdle++
				}
			default:
				return capturingToIdle >= 2
			}
		}
	}, 250*time.Millisecond, 5*time.Millisecond)

	assert.GreaterOrEqual(t, capturingToIdle, 2)
	assert.Nil(t, exec.executed)
	assert.Equal(t, 0, predictor.calls)
}

func intPtr(i int) *int { return &i }
