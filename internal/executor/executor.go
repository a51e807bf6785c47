// Package executor implements the ActionExecutor: it sequences an
// ActionPlan through an InputSynthesizer with human-like pacing and
// remembers the most recently executed action's reverse. Its per-action
// delay is a uniform random pace, and the "cursor state" tracked across
// steps becomes the stored undo action.
package executor

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pulseagent/pulseagent/internal/model"
)

// Synthesizer is the subset of input.Synthesizer the executor needs to
// dispatch a plan. Actions never hold their own executor binding; the
// executor injects the synthesizer just-in-time per action instead.
type Synthesizer interface {
	MoveMouse(x, y int)
	Click(x, y int)
	RightClick(x, y int)
	DoubleClick(x, y int)
	TypeText(text string)
	PressKeys(spec string)
	Drag(sx, sy, ex, ey int)
	Scroll(x, y int, amount int)
}

// DefaultMinDelayMs and DefaultMaxDelayMs are the default pacing bounds
// between dispatched actions.
const (
	DefaultMinDelayMs = 100
	DefaultMaxDelayMs = 300
)

// Executor sequences ActionPlans through a Synthesizer.
type Executor struct {
	synth Synthesizer
	log   *zap.SugaredLogger
	rng   *rand.Rand

	minDelay time.Duration
	maxDelay time.Duration

	mu          sync.Mutex
	lastReverse *model.Action
}

// New builds an Executor. seed lets tests pin the pacing RNG; production
// callers pass a process-seeded source.
func New(synth Synthesizer, log *zap.SugaredLogger, minDelayMs, maxDelayMs int, seed int64) *Executor {
	if minDelayMs <= 0 {
		minDelayMs = DefaultMinDelayMs
	}
	if maxDelayMs < minDelayMs {
		maxDelayMs = minDelayMs
	}
	return &Executor{
		synth:    synth,
		log:      log,
		rng:      rand.New(rand.NewSource(seed)),
		minDelay: time.Duration(minDelayMs) * time.Millisecond,
		maxDelay: time.Duration(maxDelayMs) * time.Millisecond,
	}
}

// Execute runs actions in order, interleaving a uniform random delay
// between them. Cancellation between actions stops further dispatch;
// cancellation during a single action lets the synthesizer finish that
// event (the dispatch call itself is not interrupted mid-flight). Any
// panic escaping a dispatch is recovered and surfaced as a fatal plan
// failure.
func (e *Executor) Execute(ctx context.Context, plan model.ActionPlan) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("executor: action panicked: %v", r)
		}
	}()

	for i, action := range plan {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		e.dispatch(action)

		if i < len(plan)-1 {
			e.pace()
		}
	}

	e.storeReverse(plan)
	return nil
}

// storeReverse keeps only the last action's reverse as the current undo,
// which makes multi-step undo partial by design.
func (e *Executor) storeReverse(plan model.ActionPlan) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(plan) == 0 {
		e.lastReverse = nil
		return
	}
	last := plan[len(plan)-1]
	if rev, ok := last.Reverse(); ok {
		e.lastReverse = &rev
	} else {
		e.lastReverse = nil
	}
}

// UndoLast executes the stored reverse action, if any. A no-op with a
// logged warning when no reverse exists.
func (e *Executor) UndoLast(ctx context.Context) error {
	e.mu.Lock()
	rev := e.lastReverse
	e.mu.Unlock()

	if rev == nil {
		if e.log != nil {
			e.log.Warnw("undo_last called with no reverse action recorded")
		}
		return nil
	}
	return e.Execute(ctx, model.ActionPlan{*rev})
}

func (e *Executor) pace() {
	span := e.maxDelay - e.minDelay
	delay := e.minDelay
	if span > 0 {
		delay += time.Duration(e.rng.Int63n(int64(span)))
	}
	time.Sleep(delay)
}

// dispatch binds the synthesizer to action's variant. A missing region on
// an action that requires one is a no-op, never an error.
func (e *Executor) dispatch(action model.Action) {
	switch action.Type {
	case model.ActionClick:
		if action.TargetRegion == nil {
			return
		}
		x, y := action.TargetRegion.Center()
		e.synth.Click(x, y)
	case model.ActionRightClick:
		if action.TargetRegion == nil {
			return
		}
		x, y := action.TargetRegion.Center()
		e.synth.RightClick(x, y)
	case model.ActionDoubleClick:
		if action.TargetRegion == nil {
			return
		}
		x, y := action.TargetRegion.Center()
		e.synth.DoubleClick(x, y)
	case model.ActionTypeText:
		if action.TargetRegion != nil {
			x, y := action.TargetRegion.Center()
			e.synth.MoveMouse(x, y)
		}
		e.synth.TypeText(action.Text)
	case model.ActionKeyChord:
		e.synth.PressKeys(action.Keys)
	case model.ActionDrag:
		sx, sy := action.Source.Center()
		dx, dy := action.Destination.Center()
		e.synth.Drag(sx, sy, dx, dy)
	case model.ActionScroll:
		x, y := 0, 0
		if action.TargetRegion != nil {
			x, y = action.TargetRegion.Center()
		}
		amount := action.Amount
		if action.Direction == model.ScrollUp {
			amount = -amount
		}
		e.synth.Scroll(x, y, amount)
	}
}
