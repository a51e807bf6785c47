package cloudbrain

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pulseagent/pulseagent/internal/model"
)

// visionSystemPrompt pins the model to the array-form wire contract of the
// actions payload, the same strict-JSON discipline used elsewhere in this
// package for tolerant parsing on the way back.
const visionSystemPrompt = `You are the perception module of a desktop assistant. You will be shown the ` +
	`most recent screenshots of the user's screen, most recent last, plus the current cursor position. ` +
	`Decide whether there is a single, confident, low-risk next action the user is likely trying to take, ` +
	`and describe it.

Respond ONLY with a JSON object of this exact shape, no explanation or markdown:
{
  "confidence": 0.0,
  "description": "short human-readable description of the suggested action",
  "actions": [
    {"type": "click"|"right_click"|"double_click"|"type"|"key"|"drag"|"scroll",
     "target": "human label", "region": {"x":0,"y":0,"width":0,"height":0},
     "text": "...", "keys": "ctrl+s", "sourceRegion": {...}, "targetRegion": {...},
     "direction": "up"|"down", "amount": 3}
  ]
}

If you are not confident, set "confidence" below 0.5 and "actions" to an empty array.`

// ClaudeBackend implements Predictor by sending the frame batch as base64
// JPEG image blocks to a Claude vision model and tolerantly parsing its
// JSON reply, even when wrapped in surrounding prose.
type ClaudeBackend struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
}

// NewClaudeBackend builds a backend authenticated with apiKey. model
// defaults to Claude's current default multimodal model when empty.
func NewClaudeBackend(apiKey, modelName string, timeout time.Duration) *ClaudeBackend {
	if modelName == "" {
		modelName = string(anthropic.ModelClaudeSonnet4_20250514)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ClaudeBackend{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   modelName,
		timeout: timeout,
	}
}

// Predict sends the frames and context to Claude and normalizes its text
// reply into a Prediction. Any failure — network, parse, empty response —
// is folded into (nil, nil) per the predictor contract.
func (b *ClaudeBackend) Predict(ctx context.Context, frames []model.Frame, cctx model.CaptureContext) (*Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(frames)+1)
	for _, f := range frames {
		encoded := base64.StdEncoding.EncodeToString(f.Data)
		blocks = append(blocks, anthropic.NewImageBlockBase64("image/jpeg", encoded))
	}
	blocks = append(blocks, anthropic.NewTextBlock(fmt.Sprintf(
		"Monitor: %dx%d. Cursor: (%d, %d). Timestamp: %s.",
		cctx.MonitorWidth, cctx.MonitorHeight, cctx.CursorX, cctx.CursorY,
		cctx.Timestamp.Format(time.RFC3339),
	)))

	resp, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: visionSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return nil, nil
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, nil
	}

	pred, err := parsePredictionJSON(text)
	if err != nil {
		return nil, nil
	}
	return pred, nil
}

// parsePredictionJSON extracts and parses a JSON object from a response
// that may contain surrounding prose.
func parsePredictionJSON(response string) (*Prediction, error) {
	var pred Prediction
	if err := json.Unmarshal([]byte(response), &pred); err == nil {
		return &pred, nil
	}

	start := strings.Index(response, "{")
	if start == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	depth := 0
	end := -1
	for i := start; i < len(response); i++ {
		switch response[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i + 1
			}
		}
		if end != -1 {
			break
		}
	}
	if end == -1 {
		return nil, fmt.Errorf("no matching closing brace found")
	}
	if err := json.Unmarshal([]byte(response[start:end]), &pred); err != nil {
		return nil, fmt.Errorf("failed to parse extracted JSON: %w", err)
	}
	return &pred, nil
}
