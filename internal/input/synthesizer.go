// Package input implements the InputSynthesizer: low-level OS input event
// dispatch with human-like pacing. Every call goes straight into the
// operating system's own input queue, the same path a physical mouse or
// keyboard feeds, rather than through any intermediate rendering surface.
package input

import (
	"strings"
	"time"
)

// settleDelay is the short pause after moving before a click registers.
const settleDelay = 50 * time.Millisecond

// doubleClickGap separates the two clicks of a double click.
const doubleClickGap = 100 * time.Millisecond

// dragSteps and dragStepDelay implement a 20-step, ~10ms-per-step linear
// interpolation for drags.
const (
	dragSteps     = 20
	dragStepDelay = 10 * time.Millisecond
)

// wheelUnitsPerNotch converts a scroll "amount" into OS wheel delta units,
// matching a typical mouse wheel notch.
const wheelUnitsPerNotch = 120

// Synthesizer dispatches input events directly to the operating system.
// Every method swallows per-call errors; only a panic escaping the
// underlying syscall propagates, and ActionExecutor recovers it around
// the whole Execute call and treats it as fatal for the plan.
type Synthesizer struct{}

// New builds a Synthesizer bound to the local machine's input devices.
func New() *Synthesizer {
	return &Synthesizer{}
}

func (s *Synthesizer) safe(fn func() error) {
	_ = fn()
}

// MoveMouse sets the cursor to absolute screen coordinates.
func (s *Synthesizer) MoveMouse(x, y int) {
	s.safe(func() error { return moveTo(x, y) })
}

func (s *Synthesizer) clickButton(b mouseButton) error {
	if err := mouseDown(b); err != nil {
		return err
	}
	return mouseUp(b)
}

// Click moves to (x, y), settles briefly, then presses and releases the
// primary button.
func (s *Synthesizer) Click(x, y int) {
	s.MoveMouse(x, y)
	time.Sleep(settleDelay)
	s.safe(func() error { return s.clickButton(buttonLeft) })
}

// RightClick is Click with the secondary button.
func (s *Synthesizer) RightClick(x, y int) {
	s.MoveMouse(x, y)
	time.Sleep(settleDelay)
	s.safe(func() error { return s.clickButton(buttonRight) })
}

// DoubleClick performs two clicks separated by doubleClickGap.
func (s *Synthesizer) DoubleClick(x, y int) {
	s.Click(x, y)
	time.Sleep(doubleClickGap)
	s.safe(func() error { return s.clickButton(buttonLeft) })
}

// TypeText synthesizes each rune of text as a key event pair.
func (s *Synthesizer) TypeText(text string) {
	for _, r := range text {
		s.safe(func() error { return typeRune(r) })
	}
}

// PressKeys parses spec as "+"-separated tokens, presses modifier/plain
// tokens down in order, then releases in reverse order. Unknown tokens are
// skipped.
func (s *Synthesizer) PressKeys(spec string) {
	tokens := strings.Split(spec, "+")
	keys := make([]vkey, 0, len(tokens))
	for _, tok := range tokens {
		if k, ok := lookupVK(strings.ToLower(strings.TrimSpace(tok))); ok {
			keys = append(keys, k)
		}
	}
	for _, k := range keys {
		s.safe(func() error { return keyDown(k) })
	}
	for i := len(keys) - 1; i >= 0; i-- {
		k := keys[i]
		s.safe(func() error { return keyUp(k) })
	}
}

// Drag moves to the source point, presses the primary button, moves in
// dragSteps linear interpolated steps, then releases.
func (s *Synthesizer) Drag(sx, sy, ex, ey int) {
	s.MoveMouse(sx, sy)
	time.Sleep(settleDelay)
	s.safe(func() error { return mouseDown(buttonLeft) })

	for i := 1; i <= dragSteps; i++ {
		t := float64(i) / float64(dragSteps)
		x := sx + int(t*float64(ex-sx))
		y := sy + int(t*float64(ey-sy))
		s.safe(func() error { return moveTo(x, y) })
		time.Sleep(dragStepDelay)
	}

	s.safe(func() error { return mouseUp(buttonLeft) })
}

// Scroll moves to (x, y) then emits a wheel event of amount*120 units,
// signed by direction.
func (s *Synthesizer) Scroll(x, y int, amount int) {
	s.MoveMouse(x, y)
	s.safe(func() error { return scrollWheel(amount * wheelUnitsPerNotch) })
}
