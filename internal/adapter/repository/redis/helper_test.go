package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// testEnv is an IdempotencyStore on top of a throwaway miniredis.
type testEnv struct {
	store  *IdempotencyStore
	client *redislib.Client
	mr     *miniredis.Miniredis
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return testEnv{
		store:  NewIdempotencyStore(client),
		client: client,
		mr:     mr,
	}
}
