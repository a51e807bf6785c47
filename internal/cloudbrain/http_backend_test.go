package cloudbrain_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseagent/pulseagent/internal/cloudbrain"
	"github.com/pulseagent/pulseagent/internal/model"
)

func TestHTTPBackend_Predict_SendsContractShapeAndParsesReply(t *testing.T) {
	t.Parallel()

	var gotAPIKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("X-API-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"confidence":0.88,"description":"click login"}`))
	}))
	defer srv.Close()

	backend := cloudbrain.NewHTTPBackend(srv.URL, "secret-key", 2*time.Second)

	frame := model.NewFrame([]byte{1, 2, 3}, time.Now(), 1920, 1080, 1, 1)
	cctx := model.CaptureContext{MonitorWidth: 1920, MonitorHeight: 1080, CursorX: 12, CursorY: 34, Timestamp: time.Now()}

	pred, err := backend.Predict(t.Context(), []model.Frame{frame}, cctx)
	require.NoError(t, err)
	require.NotNil(t, pred)
	assert.Equal(t, 0.88, pred.Confidence)
	assert.Equal(t, "click login", pred.Description)

	assert.Equal(t, "secret-key", gotAPIKey)
	assert.Contains(t, gotBody, "frames")
	assert.Contains(t, gotBody, "context")
}

func TestHTTPBackend_Predict_NonJSONFailsClosed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	backend := cloudbrain.NewHTTPBackend(srv.URL, "", time.Second)
	pred, err := backend.Predict(t.Context(), nil, model.CaptureContext{})
	assert.NoError(t, err)
	assert.Nil(t, pred)
}

func TestHTTPBackend_Predict_NonSuccessStatusFailsClosed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	backend := cloudbrain.NewHTTPBackend(srv.URL, "", time.Second)
	pred, err := backend.Predict(t.Context(), nil, model.CaptureContext{})
	assert.NoError(t, err)
	assert.Nil(t, pred)
}

func TestHTTPBackend_Predict_TransportErrorFailsClosed(t *testing.T) {
	t.Parallel()

	backend := cloudbrain.NewHTTPBackend("http://127.0.0.1:1", "", 200*time.Millisecond)
	pred, err := backend.Predict(t.Context(), nil, model.CaptureContext{})
	assert.NoError(t, err)
	assert.Nil(t, pred)
}
