// Package storetest holds the behaviour every store.Store must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wurt83ow/trivia-ext/internal/models"
	"github.com/wurt83ow/trivia-ext/internal/store"
)

// RunContract runs the store contract against an empty store.
func RunContract(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Empty(t, stats.ByScore)

	now := time.Now().UTC()
	for i, correct := range []int{3, 1, 3, 0} {
		err := s.SaveResult(ctx, models.Result{
			ID:        string(rune('a' + i)),
			Sender:    "tester",
			Correct:   correct,
			Total:     3,
			CreatedAt: now,
		})
		require.NoError(t, err)
	}

	err = s.SaveResult(ctx, models.Result{ID: "a", Correct: 2, Total: 3, CreatedAt: now})
	assert.ErrorIs(t, err, store.ErrConflict)

	stats, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, map[int]int{0: 1, 1: 1, 3: 2}, stats.ByScore)
}
