package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulseagent/pulseagent/internal/model"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to model.PulseState
		allowed  bool
	}{
		{model.StateIdle, model.StateCapturing, true},
		{model.StateIdle, model.StateExecuting, false},
		{model.StateCapturing, model.StateIntentDetected, true},
		{model.StateCapturing, model.StateIdle, true},
		{model.StateIntentDetected, model.StateProcessingCloud, true},
		{model.StateIntentDetected, model.StateAwaitingApproval, false},
		{model.StateProcessingCloud, model.StateAwaitingApproval, true},
		{model.StateProcessingCloud, model.StateIdle, true},
		{model.StateAwaitingApproval, model.StateExecuting, true},
		{model.StateAwaitingApproval, model.StateIdle, true},
		{model.StateExecuting, model.StateCooling, true},
		{model.StateExecuting, model.StateAwaitingApproval, false},
		{model.StateCooling, model.StateIdle, true},
		{model.StateCooling, model.StateCapturing, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, model.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
