package ratelimit

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMemoryLimiterAllow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		if err != nil || !ok {
			t.Fatalf("request %d: ok=%v err=%v", i, ok, err)
		}
	}

	if ok, _ := l.Allow(ctx, "1.2.3.4"); ok {
		t.Fatal("third request in window should be denied")
	}

	// A different client has its own window.
	if ok, _ := l.Allow(ctx, "5.6.7.8"); !ok {
		t.Fatal("other client should be allowed")
	}

	// The window resets once it elapses.
	now = now.Add(time.Minute + time.Second)
	if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
		t.Fatal("request after window reset should be allowed")
	}
}

func TestMemoryLimiterSweepsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	l := NewMemoryLimiter(5, time.Minute)
	l.now = func() time.Time { return now }

	for _, key := range []string{"1.2.3.4", "5.6.7.8", "9.10.11.12"} {
		if ok, _ := l.Allow(ctx, key); !ok {
			t.Fatalf("request from %s should be allowed", key)
		}
	}
	if len(l.visitors) != 3 {
		t.Fatalf("expected 3 visitors, got %d", len(l.visitors))
	}

	// Once every window has elapsed, the next request sweeps the stale
	// entries instead of letting the map accumulate old clients.
	now = now.Add(2 * time.Minute)
	if ok, _ := l.Allow(ctx, "13.14.15.16"); !ok {
		t.Fatal("request after windows expired should be allowed")
	}
	if len(l.visitors) != 1 {
		t.Fatalf("expected only the active visitor after sweep, got %d", len(l.visitors))
	}
	if _, ok := l.visitors["13.14.15.16"]; !ok {
		t.Fatal("active visitor missing after sweep")
	}
}

func TestMemoryLimiterDefaults(t *testing.T) {
	l := NewMemoryLimiter(0, 0)
	if l.limit != 60 || l.window != time.Minute {
		t.Fatalf("unexpected defaults: limit=%d window=%s", l.limit, l.window)
	}
}

func TestClientKey(t *testing.T) {
	t.Run("prefers the first forwarded hop", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		if got := ClientKey(r); got != "203.0.113.7" {
			t.Fatalf("key = %q", got)
		}
	})

	t.Run("falls back to the remote host", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.9:4455"
		if got := ClientKey(r); got != "192.0.2.9" {
			t.Fatalf("key = %q", got)
		}
	})

	t.Run("uses the raw remote addr when it has no port", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.9"
		if got := ClientKey(r); got != "192.0.2.9" {
			t.Fatalf("key = %q", got)
		}
	})
}
