package cloudbrain

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pulseagent/pulseagent/internal/model"
)

// OpenAIBackend implements Predictor against OpenAI's chat completions API
// with image_url content parts carrying the inline frame images.
type OpenAIBackend struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIBackend builds a backend authenticated with apiKey. model
// defaults to "gpt-4o" when empty.
func NewOpenAIBackend(apiKey, modelName string, timeout time.Duration) *OpenAIBackend {
	if modelName == "" {
		modelName = "gpt-4o"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenAIBackend{
		client:  openai.NewClient(apiKey),
		model:   modelName,
		timeout: timeout,
	}
}

// Predict sends the frames and context to the model and normalizes its
// reply into a Prediction. Any failure is folded into (nil, nil).
func (b *OpenAIBackend) Predict(ctx context.Context, frames []model.Frame, cctx model.CaptureContext) (*Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	parts := make([]openai.ChatMessagePart, 0, len(frames)+1)
	for _, f := range frames {
		encoded := base64.StdEncoding.EncodeToString(f.Data)
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: "data:image/jpeg;base64," + encoded,
			},
		})
	}
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: fmt.Sprintf(
			"Monitor: %dx%d. Cursor: (%d, %d). Timestamp: %s.",
			cctx.MonitorWidth, cctx.MonitorHeight, cctx.CursorX, cctx.CursorY,
			cctx.Timestamp.Format(time.RFC3339),
		),
	})

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: visionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
		MaxTokens: 1024,
	})
	if err != nil || len(resp.Choices) == 0 {
		return nil, nil
	}

	pred, err := parsePredictionJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, nil
	}
	return pred, nil
}
