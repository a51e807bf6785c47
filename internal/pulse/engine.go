package pulse

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pulseagent/pulseagent/internal/cloudbrain"
	"github.com/pulseagent/pulseagent/internal/frame"
	"github.com/pulseagent/pulseagent/internal/model"
	"github.com/pulseagent/pulseagent/internal/plan"
)

// FrameSource is the subset of capture.Source the engine depends on.
type FrameSource interface {
	Start(ctx context.Context) error
	Stop() error
	CaptureOne(ctx context.Context) (*model.Frame, error)
}

// IdleSensor is the subset of idle.Sensor the engine depends on.
type IdleSensor interface {
	IdleDuration() time.Duration
	CursorPosition() (x, y int)
	IsIdle(threshold time.Duration) bool
}

// PlanExecutor is the subset of executor.Executor the engine depends on.
type PlanExecutor interface {
	Execute(ctx context.Context, p model.ActionPlan) error
}

// ReplayRecorder is the subset of replay.Recorder the engine depends on.
// It is optional: a nil ReplayRecorder simply skips clip generation.
type ReplayRecorder interface {
	Record(ctx context.Context, suggestion model.Suggestion, frames []model.Frame) (string, error)
}

// Ledger is the subset of persistence.Store the engine depends on. It is
// optional: a nil Ledger simply skips audit persistence.
type Ledger interface {
	Append(ctx context.Context, s model.Suggestion) error
}

// Config carries the Capture and Execution tunables, plus the monitor
// geometry CaptureContext needs.
type Config struct {
	FPS              int
	BufferSeconds    int
	PauseThresholdMs int
	MinConfidence    float64
	CoolingPeriodMs  int
	MonitorWidth     int
	MonitorHeight    int
}

func (c Config) pauseThreshold() time.Duration {
	return time.Duration(c.PauseThresholdMs) * time.Millisecond
}

func (c Config) coolingPeriod() time.Duration {
	return time.Duration(c.CoolingPeriodMs) * time.Millisecond
}

func (c Config) recentWindow() int {
	return c.FPS * c.BufferSeconds
}

// Engine is the long-running driver tying every pipeline stage together.
type Engine struct {
	cfg Config
	log *zap.SugaredLogger

	machine    *Machine
	idleSensor IdleSensor
	source     FrameSource
	ring       *frame.Ring
	predictor  cloudbrain.Predictor
	translator *plan.Translator
	executor   PlanExecutor
	replay     ReplayRecorder
	ledger     Ledger

	events   *EventBus
	commands chan Command
}

// New builds an Engine. replay and ledger may be nil.
func New(cfg Config, log *zap.SugaredLogger, machine *Machine, idleSensor IdleSensor,
	source FrameSource, predictor cloudbrain.Predictor, executor PlanExecutor,
	replay ReplayRecorder, ledger Ledger) *Engine {

	if cfg.FPS <= 0 {
		cfg.FPS = frame.DefaultFPS
	}
	if cfg.BufferSeconds <= 0 {
		cfg.BufferSeconds = frame.DefaultBufferSeconds
	}
	if cfg.PauseThresholdMs <= 0 {
		cfg.PauseThresholdMs = 1000
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = cloudbrain.DefaultMinConfidence
	}
	if cfg.CoolingPeriodMs <= 0 {
		cfg.CoolingPeriodMs = 500
	}

	return &Engine{
		cfg:        cfg,
		log:        log,
		machine:    machine,
		idleSensor: idleSensor,
		source:     source,
		ring:       frame.NewRing(cfg.recentWindow()),
		predictor:  predictor,
		translator: plan.New(log),
		executor:   executor,
		replay:     replay,
		ledger:     ledger,
		events:     NewEventBus(16),
		commands:   make(chan Command, 4),
	}
}

// Events exposes the engine's outbound notification stream.
func (e *Engine) Events() <-chan Event {
	return e.events.Events()
}

// Approve requests the engine transition AwaitingApproval -> Executing and
// run the current Suggestion's plan. Thread-safe; a no-op outside
// AwaitingApproval or after shutdown.
func (e *Engine) Approve() {
	e.sendCommand(Command{Kind: CommandApprove})
}

// Dismiss requests the engine mark the current Suggestion Dismissed and
// return to Idle. Thread-safe; a no-op outside AwaitingApproval or after
// shutdown.
func (e *Engine) Dismiss() {
	e.sendCommand(Command{Kind: CommandDismiss})
}

func (e *Engine) sendCommand(c Command) {
	select {
	case e.commands <- c:
	default:
		if e.log != nil {
			e.log.Warnw("command channel full, dropping", "kind", c.Kind)
		}
	}
}

// Run drives the pulse cycle until ctx is cancelled. A fatal FrameSource
// start failure propagates and the whole engine shuts down. It uses an
// errgroup so the capture lifecycle and the tick loop tear down together.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.source.Start(ctx); err != nil {
		return fmt.Errorf("pulse: fatal capture start: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return e.source.Stop()
	})
	g.Go(func() error {
		return e.runLoop(gctx)
	})

	return g.Wait()
}

func (e *Engine) runLoop(ctx context.Context) error {
	interval := time.Second / time.Duration(e.cfg.FPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-e.commands:
			e.handleCommand(ctx, cmd)
		case <-ticker.C:
			if err := e.tick(ctx); err != nil {
				if e.log != nil {
					e.log.Errorw("pulse tick failed", "error", err)
				}
				time.Sleep(1 * time.Second)
			}
		}
	}
}

// tick dispatches on the current state. A panic inside a tick is recovered
// and returned as an error, so it gets the same log-and-backoff handling.
func (e *Engine) tick(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pulse: tick panicked: %v", r)
		}
	}()
	switch e.machine.State() {
	case model.StateIdle:
		e.transition(model.StateCapturing)
	case model.StateCapturing:
		return e.doCapture(ctx)
	case model.StateIntentDetected:
		return e.doProcessCloud(ctx)
	case model.StateProcessingCloud, model.StateAwaitingApproval, model.StateExecuting:
		// waiting for an external event; no-op tick.
	case model.StateCooling:
		time.Sleep(e.cfg.coolingPeriod())
		e.transition(model.StateIdle)
	}
	return nil
}

func (e *Engine) doCapture(ctx context.Context) error {
	f, err := e.source.CaptureOne(ctx)
	if err != nil {
		return err
	}
	if f != nil {
		e.ring.Push(*f)
	}
	if e.idleSensor.IsIdle(e.cfg.pauseThreshold()) {
		e.transition(model.StateIntentDetected)
	} else {
		e.transition(model.StateIdle)
	}
	return nil
}

func (e *Engine) doProcessCloud(ctx context.Context) error {
	_, _, ok := e.machine.Transition(model.StateProcessingCloud)
	if !ok {
		return nil
	}
	e.publishState(model.StateIntentDetected, model.StateProcessingCloud)

	frames := e.ring.Recent(e.cfg.recentWindow())
	cctx := e.captureContext(frames)

	pred, err := e.predictor.Predict(ctx, frames, cctx)
	if err != nil && e.log != nil {
		e.log.Debugw("predictor call errored, treating as no prediction", "error", err)
	}
	if pred == nil || pred.Confidence < e.cfg.MinConfidence {
		e.transition(model.StateIdle)
		return nil
	}

	actionPlan := e.translator.Translate(pred)
	if len(actionPlan) == 0 {
		e.transition(model.StateIdle)
		return nil
	}
	suggestion := model.NewSuggestion(pred.Description, pred.Confidence, actionPlan, time.Now().UTC())
	if len(actionPlan) > 0 {
		suggestion.LossyUndo = actionPlan[len(actionPlan)-1].LossyUndo()
	}
	e.machine.SetSuggestion(suggestion)
	e.transition(model.StateAwaitingApproval)
	e.events.Publish(Event{Kind: EventSuggestionReady, Suggestion: &suggestion})
	return nil
}

func (e *Engine) handleCommand(ctx context.Context, cmd Command) {
	switch cmd.Kind {
	case CommandApprove:
		e.approve(ctx)
	case CommandDismiss:
		e.dismiss(ctx)
	}
}

// approve is only valid in AwaitingApproval.
func (e *Engine) approve(ctx context.Context) {
	if e.machine.State() != model.StateAwaitingApproval {
		if e.log != nil {
			e.log.Warnw("approve() called outside AwaitingApproval", "state", e.machine.State())
		}
		return
	}
	suggestion := e.machine.CurrentSuggestion()
	if suggestion == nil {
		return
	}
	e.transition(model.StateExecuting)

	execCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := e.executor.Execute(execCtx, suggestion.Plan); err != nil {
		final := e.machine.UpdateSuggestionState(model.SuggestionFailed, "")
		e.recordAndReplay(ctx, final)
		e.events.Publish(Event{Kind: EventExecutionError, Message: err.Error(), Suggestion: final})
		e.transition(model.StateIdle)
		return
	}

	final := e.machine.UpdateSuggestionState(model.SuggestionExecuted, "")
	e.recordAndReplay(ctx, final)
	e.transition(model.StateCooling)
}

// dismiss is only valid in AwaitingApproval.
func (e *Engine) dismiss(ctx context.Context) {
	if e.machine.State() != model.StateAwaitingApproval {
		if e.log != nil {
			e.log.Warnw("dismiss() called outside AwaitingApproval", "state", e.machine.State())
		}
		return
	}
	final := e.machine.UpdateSuggestionState(model.SuggestionDismissed, "")
	e.recordAndReplay(ctx, final)
	e.transition(model.StateIdle)
	e.machine.ClearSuggestion()
	e.events.Publish(Event{Kind: EventSuggestionDismissed, Suggestion: final})
}

// recordAndReplay persists the terminal suggestion and, best-effort,
// renders its replay clip. Failures here never affect the pulse cycle's
// own outcome, per the replay recorder's contract in SPEC_FULL.md §5.11.
func (e *Engine) recordAndReplay(ctx context.Context, s *model.Suggestion) {
	if s == nil {
		return
	}
	if e.replay != nil {
		if path, err := e.replay.Record(ctx, *s, e.ring.Recent(e.cfg.recentWindow())); err != nil {
			if e.log != nil {
				e.log.Warnw("replay recording failed", "suggestion", s.ID, "error", err)
			}
		} else {
			s.ReplayPath = path
			e.machine.UpdateSuggestionState(s.State, path)
		}
	}
	if e.ledger != nil {
		if err := e.ledger.Append(ctx, *s); err != nil && e.log != nil {
			e.log.Warnw("suggestion ledger append failed", "suggestion", s.ID, "error", err)
		}
	}
}

func (e *Engine) captureContext(frames []model.Frame) model.CaptureContext {
	cctx := model.CaptureContext{
		MonitorWidth:  e.cfg.MonitorWidth,
		MonitorHeight: e.cfg.MonitorHeight,
		Timestamp:     time.Now().UTC(),
	}
	if len(frames) > 0 {
		last := frames[len(frames)-1]
		if cctx.MonitorWidth == 0 {
			cctx.MonitorWidth = last.Width
		}
		if cctx.MonitorHeight == 0 {
			cctx.MonitorHeight = last.Height
		}
	}
	cctx.CursorX, cctx.CursorY = e.idleSensor.CursorPosition()
	return cctx
}

func (e *Engine) transition(to model.PulseState) {
	prev, next, ok := e.machine.Transition(to)
	if !ok {
		return
	}
	e.publishState(prev, next)
}

func (e *Engine) publishState(prev, next model.PulseState) {
	e.events.Publish(Event{Kind: EventStateChanged, Previous: prev, Current: next})
}
