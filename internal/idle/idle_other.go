//go:build !windows

// This file backs Sensor on non-Windows platforms: pulseagent targets a
// Windows desktop, and there is no portable equivalent of
// GetLastInputInfo to fall back to. Sensor's own failure contract already
// treats an error here as "just active", so this reports "never idle"
// rather than inventing a synthetic activity signal.
package idle

import (
	"fmt"
	"time"
)

func systemIdleDuration() (time.Duration, error) {
	return 0, fmt.Errorf("idle: system idle tracking requires windows")
}

func systemCursorPosition() (int, int, error) {
	return 0, 0, fmt.Errorf("idle: cursor tracking requires windows")
}
