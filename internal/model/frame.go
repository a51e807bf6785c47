// Package model holds the data types shared across the capture, prediction,
// and execution stages of the pulse pipeline.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Frame is an immutable, pixel-accurate capture of the primary render
// surface at a point in time. Frames are append-only once produced; nothing
// in this package mutates a Frame after construction.
type Frame struct {
	ID        string
	Data      []byte // lossy-compressed (JPEG-equivalent) image bytes
	Captured  time.Time
	Width     int
	Height    int
	CursorX   int
	CursorY   int
}

// NewFrame stamps a fresh Frame with a stable identifier.
func NewFrame(data []byte, captured time.Time, width, height, cursorX, cursorY int) Frame {
	return Frame{
		ID:       uuid.NewString(),
		Data:     data,
		Captured: captured,
		Width:    width,
		Height:   height,
		CursorX:  cursorX,
		CursorY:  cursorY,
	}
}

// CaptureContext is built at prediction time from the most recent frame and
// the current idle-sensor reading.
type CaptureContext struct {
	MonitorWidth  int
	MonitorHeight int
	CursorX       int
	CursorY       int
	Timestamp     time.Time
}
