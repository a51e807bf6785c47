// Package uiface declares the contracts a real overlay, hotkey listener,
// and tray implementation would satisfy. None is implemented here — the
// rendering surface is out of scope — but pulse.Engine's Events/Approve/
// Dismiss are exactly what any of these would consume and drive.
package uiface

import "github.com/pulseagent/pulseagent/internal/pulse"

// Overlay renders the currently pending Suggestion (and its replay clip,
// once available) somewhere the user can see it, and forwards approval or
// dismissal back onto the engine's command channel.
type Overlay interface {
	// Show is called once per SuggestionReady event.
	Show(evt pulse.Event)
	// Hide is called once the current suggestion leaves AwaitingApproval.
	Hide()
}

// HotkeyListener watches for the operator's approve/dismiss key bindings
// and turns them into Engine.Approve()/Engine.Dismiss() calls.
type HotkeyListener interface {
	Start() error
	Stop() error
}

// Tray represents a system tray icon reflecting the engine's current
// PulseState as a label. It has no pause/resume control.
type Tray interface {
	SetState(label string)
	Run() error
}
