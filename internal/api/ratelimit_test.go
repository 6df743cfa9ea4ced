package api

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	rl := newRateLimiter(time.Minute, 3)
	defer rl.stop()

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d denied within budget", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request over budget allowed")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := newRateLimiter(time.Minute, 1)
	defer rl.stop()

	if !rl.allow("10.0.0.1") {
		t.Fatal("first client denied")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("second client denied by first client's budget")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := newRateLimiter(10*time.Millisecond, 1)
	defer rl.stop()

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request denied")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second request in window allowed")
	}

	time.Sleep(20 * time.Millisecond)

	if !rl.allow("10.0.0.1") {
		t.Error("request after window reset denied")
	}
}
