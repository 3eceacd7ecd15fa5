package service

import (
	"testing"
	"time"
)

func TestTokenBucket_AllowsUpToCapacity(t *testing.T) {
	tb := NewTokenBucket(1, 3)

	for i := 0; i < 3; i++ {
		if !tb.Allow("alice") {
			t.Fatalf("attempt %d should be allowed (bucket not yet empty)", i+1)
		}
	}

	if tb.Allow("alice") {
		t.Fatal("4th attempt should be denied (bucket empty)")
	}
}

func TestTokenBucket_DifferentKeysAreIndependent(t *testing.T) {
	tb := NewTokenBucket(1, 1)

	if !tb.Allow("alice") {
		t.Fatal("alice first attempt should be allowed")
	}
	if tb.Allow("alice") {
		t.Fatal("alice second attempt should be denied")
	}
	if !tb.Allow("bob") {
		t.Fatal("bob first attempt should be allowed (independent bucket)")
	}
}

func TestTokenBucket_ZeroRateNeverRefills(t *testing.T) {
	tb := NewTokenBucket(0, 2)

	tb.Allow("k")
	tb.Allow("k")
	if tb.Allow("k") {
		t.Fatal("third attempt should be denied (no refill)")
	}
}

func TestTokenBucket_RefillsOverTime(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tb := NewAttemptLimiter(1, 10*time.Second)
	tb.now = func() time.Time { return clock }

	if !tb.Allow("k") {
		t.Fatal("first attempt should be allowed")
	}
	if tb.Allow("k") {
		t.Fatal("second attempt should be denied before refill")
	}

	clock = clock.Add(10 * time.Second)
	if !tb.Allow("k") {
		t.Fatal("attempt after refill interval should be allowed")
	}
}

func TestTokenBucket_Reset(t *testing.T) {
	tb := NewTokenBucket(0, 1)

	tb.Allow("k")
	tb.Reset("k")
	if !tb.Allow("k") {
		t.Fatal("attempt after Reset should be allowed")
	}
}

func TestTokenBucket_PrunesStaleKeys(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tb := NewTokenBucket(0, 1)
	tb.now = func() time.Time { return clock }

	tb.Allow("old")
	clock = clock.Add(staleAfter + time.Minute)
	tb.Allow("new")

	if _, ok := tb.buckets["old"]; ok {
		t.Fatal("expected stale bucket to be pruned")
	}
	if _, ok := tb.buckets["new"]; !ok {
		t.Fatal("expected fresh bucket to be kept")
	}
}
