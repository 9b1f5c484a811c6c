package memory

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyStore_ClaimReplayAndExpire(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewIdempotencyStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "k", nil, time.Minute)
	if err != nil || exists {
		t.Fatalf("expected first claim to succeed, got exists=%v err=%v", exists, err)
	}

	exists, resp, _ := store.CheckAndSet(ctx, "k", nil, time.Minute)
	if !exists || string(resp) != processingMarker {
		t.Fatalf("expected placeholder, got exists=%v resp=%s", exists, resp)
	}

	if err := store.Update(ctx, "k", []byte("done"), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	exists, resp, _ = store.CheckAndSet(ctx, "k", nil, time.Minute)
	if !exists || string(resp) != "done" {
		t.Fatalf("expected stored response, got exists=%v resp=%s", exists, resp)
	}

	now = now.Add(2 * time.Minute)
	exists, _, _ = store.CheckAndSet(ctx, "k", nil, time.Minute)
	if exists {
		t.Fatalf("expected expired key to be claimable")
	}
}

func TestIdempotencyStore_Release(t *testing.T) {
	store := NewIdempotencyStore()
	ctx := context.Background()

	_, _, _ = store.CheckAndSet(ctx, "k", nil, time.Minute)
	if err := store.Release(ctx, "k"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	exists, _, _ := store.CheckAndSet(ctx, "k", nil, time.Minute)
	if exists {
		t.Fatalf("expected released key to be claimable")
	}
}

func TestIdempotencyStore_SweepsExpiredEveryNClaims(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewIdempotencyStore()
	store.now = func() time.Time { return now }
	store.sweepEvery = 3
	ctx := context.Background()

	_, _, _ = store.CheckAndSet(ctx, "old", nil, time.Second)
	now = now.Add(time.Minute)
	_, _, _ = store.CheckAndSet(ctx, "new", nil, time.Second)

	if _, ok := store.entries["old"]; !ok {
		t.Fatalf("expected no sweep before the third claim")
	}

	// an expired entry is never served, swept or not
	if exists, _, _ := store.CheckAndSet(ctx, "old", nil, time.Second); exists {
		t.Fatalf("expected expired key to be claimable again")
	}

	now = now.Add(time.Minute)
	for _, k := range []string{"a", "b", "c"} {
		_, _, _ = store.CheckAndSet(ctx, k, nil, time.Hour)
	}

	if len(store.entries) != 3 {
		t.Fatalf("expected only the live keys after the sweep, got %d entries", len(store.entries))
	}
	for _, k := range []string{"old", "new"} {
		if _, ok := store.entries[k]; ok {
			t.Fatalf("expected expired entry %q to be swept", k)
		}
	}
}

func TestIdempotencyStore_DefaultSweepInterval(t *testing.T) {
	store := NewIdempotencyStore()
	if store.sweepEvery != defaultSweepEvery {
		t.Fatalf("expected sweepEvery %d, got %d", defaultSweepEvery, store.sweepEvery)
	}
}
