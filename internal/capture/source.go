// Package capture implements the FrameSource: a steady-cadence producer of
// pixel-accurate, JPEG-compressed frames captured directly from the
// primary display, paced by a rate limiter rather than being called
// inline from an animation loop.
package capture

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pulseagent/pulseagent/internal/model"
)

// DefaultJPEGQuality is the screenshot compression quality used absent an
// explicit override.
const DefaultJPEGQuality = 90

// Source produces frames from the operating system's primary display at a
// configured cadence. It is not required to be thread-safe for concurrent
// CaptureOne calls; PulseEngine is its only caller.
type Source struct {
	limiter *rate.Limiter
	quality int

	mu      sync.Mutex
	started bool
}

// New builds a Source pacing captures to fps frames per second.
func New(fps int) *Source {
	if fps <= 0 {
		fps = 1
	}
	return &Source{
		limiter: rate.NewLimiter(rate.Limit(fps), 1),
		quality: DefaultJPEGQuality,
	}
}

// Start verifies the primary display is reachable. A fatal initialization
// failure here propagates and shuts the engine down; callers should treat
// a non-nil error as terminal.
func (s *Source) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	if err := checkDisplay(); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	s.started = true
	return nil
}

// Stop marks the source idle. Idempotent; there is no platform handle held
// between captures to release.
func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	return nil
}

// CaptureOne attempts to fetch the next frame. It returns (nil, nil) on a
// normal timeout or "no new frame" condition; only unrecoverable errors are
// returned. Recoverable capture failures reinitialize lazily on the next
// call and are swallowed here.
func (s *Source) CaptureOne(ctx context.Context) (*model.Frame, error) {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return nil, fmt.Errorf("capture: source not started")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, nil // context done or would-block; treat as a normal miss
	}

	img, cursorX, cursorY, err := captureDisplay()
	if err != nil {
		// Transient/platform miss: swallow, let the next tick retry.
		return nil, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, nil
	}

	bounds := img.Bounds()
	f := model.NewFrame(buf.Bytes(), time.Now().UTC(), bounds.Dx(), bounds.Dy(), cursorX, cursorY)
	return &f, nil
}
