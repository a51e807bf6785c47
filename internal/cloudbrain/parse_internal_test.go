package cloudbrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePredictionJSON_CleanBody(t *testing.T) {
	t.Parallel()
	pred, err := parsePredictionJSON(`{"confidence":0.9,"description":"click save","actions":[{"type":"click","target":"save"}]}`)
	require.NoError(t, err)
	assert.Equal(t, 0.9, pred.Confidence)
	assert.Equal(t, "click save", pred.Description)
	require.Len(t, pred.Actions, 1)
	assert.Equal(t, "click", pred.Actions[0].Type)
}

func TestParsePredictionJSON_ToleratesSurroundingProse(t *testing.T) {
	t.Parallel()
	body := "Sure, here is my analysis:\n```json\n" +
		`{"confidence":0.6,"description":"type name","actions":[]}` +
		"\n```\nLet me know if that helps."
	pred, err := parsePredictionJSON(body)
	require.NoError(t, err)
	assert.Equal(t, 0.6, pred.Confidence)
	assert.Equal(t, "type name", pred.Description)
}

func TestParsePredictionJSON_NoObjectFound(t *testing.T) {
	t.Parallel()
	_, err := parsePredictionJSON("no json here at all")
	assert.Error(t, err)
}

func TestParsePredictionJSON_UnbalancedBraces(t *testing.T) {
	t.Parallel()
	_, err := parsePredictionJSON(`{"confidence": 0.5`)
	assert.Error(t, err)
}
