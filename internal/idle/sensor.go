// Package idle reports how long it has been since the user last interacted
// with the machine at all, any process or window, and where the cursor
// currently sits, both read straight from the operating system's own
// input-tracking state.
package idle

import "time"

// Sensor implements IdleSensor: queries the operating system's global
// input-tracking state on demand. It never blocks for long and never
// surfaces an error, treating any failure as "the user is active" so a
// flaky sensor cannot cause spurious escalation.
type Sensor struct{}

// New builds a Sensor bound to the local machine's input state.
func New() *Sensor {
	return &Sensor{}
}

// IdleDuration returns time since the last system-wide pointer or keyboard
// event. A failed query is treated as "just active": it returns zero.
func (s *Sensor) IdleDuration() time.Duration {
	d, err := systemIdleDuration()
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// CursorPosition returns the current OS cursor coordinates. A failed
// query returns (0, 0).
func (s *Sensor) CursorPosition() (x, y int) {
	x, y, err := systemCursorPosition()
	if err != nil {
		return 0, 0
	}
	return x, y
}

// IsIdle is a convenience wrapper over IdleDuration() >= threshold.
func (s *Sensor) IsIdle(threshold time.Duration) bool {
	return s.IdleDuration() >= threshold
}
