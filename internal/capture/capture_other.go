//go:build !windows

// This file backs FrameSource on non-Windows platforms: pulseagent
// targets a Windows desktop, and there is no portable equivalent of
// GetSystemMetrics/BitBlt to fall back to. It synthesizes a fixed-size
// blank frame so the pipeline above capture (ring buffer, predictor,
// executor) stays exercisable in tests and local development on any
// platform.
package capture

import "image"

const stubWidth, stubHeight = 1920, 1080

func checkDisplay() error {
	return nil
}

func captureDisplay() (image.Image, int, int, error) {
	return image.NewRGBA(image.Rect(0, 0, stubWidth, stubHeight)), 0, 0, nil
}
