package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wurt83ow/trivia-ext/internal/models"
	"github.com/wurt83ow/trivia-ext/internal/store"
	"github.com/wurt83ow/trivia-ext/internal/store/memory"
	"github.com/wurt83ow/trivia-ext/internal/store/storetest"
)

func TestMemoryStore_Contract(t *testing.T) {
	storetest.RunContract(t, memory.NewStore())
}

func TestMemoryStore_ForgetsOldIDs(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore(memory.WithRecent(2))

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.SaveResult(ctx, models.Result{ID: id, Correct: 3, Total: 3}))
	}

	// "a" fell out of the window, "c" is still remembered
	assert.NoError(t, s.SaveResult(ctx, models.Result{ID: "a", Correct: 1, Total: 3}))
	assert.ErrorIs(t, s.SaveResult(ctx, models.Result{ID: "c", Correct: 1, Total: 3}), store.ErrConflict)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, map[int]int{1: 1, 3: 3}, stats.ByScore)
}
