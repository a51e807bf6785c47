package cloudbrain

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pulseagent/pulseagent/internal/model"
)

// requestBody is the request payload the HTTP prediction endpoint
// expects.
type requestBody struct {
	Frames    []string       `json:"frames"`
	Timestamp string         `json:"timestamp"`
	Context   requestContext `json:"context"`
}

type requestContext struct {
	MonitorWidth  int    `json:"monitorWidth"`
	MonitorHeight int    `json:"monitorHeight"`
	CursorX       int    `json:"cursorX"`
	CursorY       int    `json:"cursorY"`
	Timestamp     string `json:"timestamp"`
}

// HTTPBackend implements Predictor against a generic JSON HTTP endpoint:
// POST {endpoint} with an X-API-Key header, a single attempt, no
// retries, bounded by a client-side deadline.
type HTTPBackend struct {
	client   *resty.Client
	endpoint string
	apiKey   string
}

// NewHTTPBackend builds a backend targeting endpoint, authenticated with
// apiKey, with a single-attempt timeout of timeout (falls back to
// DefaultTimeout when zero or negative).
func NewHTTPBackend(endpoint, apiKey string, timeout time.Duration) *HTTPBackend {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0)
	return &HTTPBackend{client: client, endpoint: endpoint, apiKey: apiKey}
}

// Predict issues a single POST and normalizes the outcome to "no
// prediction" for every failure mode the contract lists: timeout,
// transport error, unparseable body, or non-2xx.
func (b *HTTPBackend) Predict(ctx context.Context, frames []model.Frame, cctx model.CaptureContext) (*Prediction, error) {
	body := requestBody{
		Frames:    make([]string, len(frames)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Context: requestContext{
			MonitorWidth:  cctx.MonitorWidth,
			MonitorHeight: cctx.MonitorHeight,
			CursorX:       cctx.CursorX,
			CursorY:       cctx.CursorY,
			Timestamp:     cctx.Timestamp.Format(time.RFC3339),
		},
	}
	for i, f := range frames {
		body.Frames[i] = base64.StdEncoding.EncodeToString(f.Data)
	}

	var pred Prediction
	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("X-API-Key", b.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&pred).
		Post(b.endpoint)

	if err != nil {
		return nil, nil // transport error / timeout: no prediction
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, nil // non-2xx: no prediction
	}
	if resp.StatusCode() == http.StatusNoContent {
		return nil, nil
	}
	return &pred, nil
}
