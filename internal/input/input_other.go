//go:build !windows

// This file backs Synthesizer on non-Windows platforms: pulseagent
// targets a Windows desktop, and there is no portable equivalent of
// SetCursorPos/mouse_event/keybd_event to fall back to. Every call is a
// documented no-op so the package still links and its pacing logic stays
// exercisable in tests on any platform.
package input

func moveTo(x, y int) error         { return nil }
func mouseDown(b mouseButton) error { return nil }
func mouseUp(b mouseButton) error   { return nil }
func scrollWheel(delta int) error   { return nil }
func keyDown(k vkey) error          { return nil }
func keyUp(k vkey) error            { return nil }
func typeRune(r rune) error         { return nil }
