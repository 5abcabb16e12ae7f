package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wurt83ow/trivia-ext/internal/models"
	"github.com/wurt83ow/trivia-ext/internal/store/redis"
	"github.com/wurt83ow/trivia-ext/internal/store/storetest"
)

func TestRedisStore_Contract(t *testing.T) {
	// Setup miniredis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	s := redis.NewFromClient(client)
	defer s.Close()
	storetest.RunContract(t, s)
}

func TestRedisStore_TTLAndPrefix(t *testing.T) {
	mr := miniredis.RunT(t)

	s := redis.New(mr.Addr(), "", 0, redis.WithPrefix("quiz:"), redis.WithTTL(time.Minute))
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.SaveResult(ctx, models.Result{ID: "r1", Correct: 2, Total: 3}))

	assert.True(t, mr.Exists("quiz:result:r1"))
	assert.Equal(t, time.Minute, mr.TTL("quiz:result:r1"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("quiz:result:r1"))

	// counters survive the results
	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ByScore[2])
}
