package replay

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pulseagent/pulseagent/internal/model"
)

// DefaultMaxWidth and DefaultFPS are the default replay GIF dimensions
// and playback rate.
const (
	DefaultMaxWidth = uint(800)
	DefaultFPS      = 3
)

// Recorder renders a Suggestion's leading frames into a replay GIF on
// disk, the audit trail a Suggestion's ReplayPath field points at.
type Recorder struct {
	log      *zap.SugaredLogger
	dir      string
	maxWidth uint
	fps      int
	style    cursorStyle
}

// New builds a Recorder writing clips under dir, creating it if needed.
// cursorColor and rippleColor are "RRGGBB" hex strings; an empty or
// malformed value falls back to DefaultCursorColor/DefaultRippleColor.
func New(log *zap.SugaredLogger, dir string, maxWidth uint, fps int, cursorColor string, cursorRadius int, rippleColor string) (*Recorder, error) {
	if maxWidth == 0 {
		maxWidth = DefaultMaxWidth
	}
	if fps <= 0 {
		fps = DefaultFPS
	}
	if cursorRadius <= 0 {
		cursorRadius = DefaultCursorRadius
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("replay: create output dir: %w", err)
	}
	style := cursorStyle{
		radius:      cursorRadius,
		cursorColor: ParseHexColor(cursorColor, DefaultCursorColor),
		rippleColor: ParseHexColor(rippleColor, DefaultRippleColor),
	}
	return &Recorder{log: log, dir: dir, maxWidth: maxWidth, fps: fps, style: style}, nil
}

// Record decodes frames, overlays the cursor, and encodes a GIF clip named
// after the suggestion's ID. It returns the written path. A decode failure
// on an individual frame drops that frame rather than aborting the whole
// clip; a suggestion with no decodable frames yields ("", nil) so the
// caller can treat a missing clip as "nothing to show," not an error.
func (r *Recorder) Record(ctx context.Context, suggestion model.Suggestion, frames []model.Frame) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	images := make([]image.Image, 0, len(frames))
	kept := make([]model.Frame, 0, len(frames))
	for _, f := range frames {
		img, err := jpeg.Decode(bytes.NewReader(f.Data))
		if err != nil {
			if r.log != nil {
				r.log.Debugw("replay: dropping undecodable frame", "frame", f.ID, "error", err)
			}
			continue
		}
		images = append(images, img)
		kept = append(kept, f)
	}
	if len(images) == 0 {
		return "", nil
	}

	clickOnLast := suggestion.State == model.SuggestionExecuted
	overlaid := applyCursor(images, kept, clickOnLast, r.style)

	path := filepath.Join(r.dir, suggestion.ID+".gif")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("replay: create clip: %w", err)
	}
	defer f.Close()

	if err := encodeGIF(f, overlaid, gifOptions{FPS: r.fps, MaxWidth: r.maxWidth}); err != nil {
		return "", fmt.Errorf("replay: encode clip: %w", err)
	}
	return path, nil
}
