package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(2.0, 2) // 2 RPS, burst of 2

	// Should allow first 2 requests immediately (burst)
	if !limiter.Allow("10.0.0.1") {
		t.Error("First request should be allowed")
	}
	if !limiter.Allow("10.0.0.1") {
		t.Error("Second request should be allowed")
	}

	// Third request should be blocked (no tokens available)
	if limiter.Allow("10.0.0.1") {
		t.Error("Third request should be blocked")
	}
}

func TestLimiter_MultipleClients(t *testing.T) {
	limiter := NewLimiter(1.0, 1) // 1 RPS, burst of 1

	// Each client should have independent rate limiting
	if !limiter.Allow("10.0.0.1") {
		t.Error("First request from client 1 should be allowed")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Error("First request from client 2 should be allowed")
	}

	// Second requests should be blocked for both
	if limiter.Allow("10.0.0.1") {
		t.Error("Second request from client 1 should be blocked")
	}
	if limiter.Allow("10.0.0.2") {
		t.Error("Second request from client 2 should be blocked")
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(10.0, 1) // 10 RPS, burst of 1

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// First request should pass immediately
	start := time.Now()
	if err := limiter.Wait(ctx, "10.0.0.1"); err != nil {
		t.Errorf("Wait should not error on first request: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Errorf("First request should be immediate, took %v", elapsed)
	}

	// Second request should wait approximately 100ms (1/10 second for 10 RPS)
	start = time.Now()
	if err := limiter.Wait(ctx, "10.0.0.1"); err != nil {
		t.Errorf("Wait should not error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Second request should wait ~100ms, took %v", elapsed)
	}
}

func TestLimiter_WaitCancellation(t *testing.T) {
	limiter := NewLimiter(0.1, 1) // 0.1 RPS: 10 second refill

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("First request should drain the bucket")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "10.0.0.1"); err == nil {
		t.Error("Wait should fail when the context expires before a token is available")
	}
}

func TestLimiter_SetRPS(t *testing.T) {
	limiter := NewLimiter(1.0, 1)

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("First request should be allowed")
	}

	limiter.SetRPS(1000.0)

	// After raising the rate, tokens refill almost immediately
	time.Sleep(10 * time.Millisecond)
	if !limiter.Allow("10.0.0.1") {
		t.Error("Request should be allowed after raising RPS")
	}
}

func TestLimiter_Stats(t *testing.T) {
	limiter := NewLimiter(5.0, 10)

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.2")

	stats := limiter.Stats()
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 clients, got %d", len(stats))
	}
	for client, s := range stats {
		if s.Client != client {
			t.Errorf("Stats key %q does not match client %q", client, s.Client)
		}
		if s.RPS != 5.0 || s.Burst != 10 {
			t.Errorf("Unexpected limiter settings: %+v", s)
		}
	}
}

func TestLimiter_Reset(t *testing.T) {
	limiter := NewLimiter(1.0, 1)

	limiter.Allow("10.0.0.1")
	if limiter.Allow("10.0.0.1") {
		t.Fatal("Bucket should be drained")
	}

	limiter.Reset()

	if !limiter.Allow("10.0.0.1") {
		t.Error("Request should be allowed after reset")
	}
}
