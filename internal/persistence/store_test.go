package persistence_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseagent/pulseagent/internal/model"
	"github.com/pulseagent/pulseagent/internal/persistence"
)

func openTestStore(t *testing.T) *persistence.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	store, err := persistence.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_AppendAndRecent_RoundTrips(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := t.Context()

	region := &model.Region{X: 1, Y: 2, Width: 3, Height: 4}
	plan := model.ActionPlan{{Type: model.ActionClick, TargetRegion: region}}
	sug := model.NewSuggestion("click the save icon", 0.91, plan, time.Now())
	sug.State = model.SuggestionExecuted
	sug.ReplayPath = "/tmp/clip.gif"

	require.NoError(t, store.Append(ctx, sug))

	got, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sug.ID, got[0].ID)
	assert.Equal(t, sug.Description, got[0].Description)
	assert.Equal(t, sug.Confidence, got[0].Confidence)
	assert.Equal(t, model.SuggestionExecuted, got[0].State)
	assert.Equal(t, "/tmp/clip.gif", got[0].ReplayPath)
	require.Len(t, got[0].Plan, 1)
	assert.Equal(t, model.ActionClick, got[0].Plan[0].Type)
	require.NotNil(t, got[0].Plan[0].TargetRegion)
	assert.Equal(t, 1, got[0].Plan[0].TargetRegion.X)
}

func TestStore_Append_RejectsDuplicateID(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := t.Context()

	sug := model.NewSuggestion("x", 0.5, nil, time.Now())
	require.NoError(t, store.Append(ctx, sug))
	err := store.Append(ctx, sug)
	assert.Error(t, err)
}

func TestStore_Recent_OrdersNewestFirstAndRespectsLimit(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := t.Context()

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		sug := model.NewSuggestion("action", 0.6, nil, time.Now())
		require.NoError(t, store.Append(ctx, sug))
		ids = append(ids, sug.ID)
		time.Sleep(10 * time.Millisecond)
	}

	got, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ids[2], got[0].ID)
	assert.Equal(t, ids[1], got[1].ID)
}

func TestStore_Recent_EmptyLedgerReturnsEmptySlice(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)

	got, err := store.Recent(t.Context(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
