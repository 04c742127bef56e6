package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestAllow_WindowLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{MaxPerWindow: 3, Window: time.Hour, Clock: clock})
	defer limiter.Close()

	ip := "203.0.113.7"
	for i := 0; i < 3; i++ {
		if result := limiter.Allow(ip); !result.Allowed {
			t.Fatalf("save %d should be allowed, got blocked: %s", i+1, result.Reason)
		}
		clock.Advance(time.Minute)
	}

	result := limiter.Allow(ip)
	if result.Allowed {
		t.Fatal("fourth save should be blocked")
	}
	if result.Reason != "ip_window_limit" {
		t.Errorf("Expected reason 'ip_window_limit', got '%s'", result.Reason)
	}
	if result.RetryAfter != 57*time.Minute {
		t.Errorf("Expected RetryAfter 57m, got %v", result.RetryAfter)
	}

	clock.Advance(57 * time.Minute)
	if result := limiter.Allow(ip); !result.Allowed {
		t.Errorf("save after window should be allowed, got blocked: %s", result.Reason)
	}
}

func TestAllow_SeparateIPs(t *testing.T) {
	limiter := New(&Config{MaxPerWindow: 1, Window: time.Hour, Clock: newMockClock()})
	defer limiter.Close()

	if !limiter.Allow("203.0.113.1").Allowed {
		t.Fatal("first IP should be allowed")
	}
	if !limiter.Allow("203.0.113.2").Allowed {
		t.Fatal("second IP should have its own budget")
	}
	if limiter.Allow("203.0.113.1").Allowed {
		t.Fatal("first IP should be out of budget")
	}
}

func TestAllow_Disabled(t *testing.T) {
	limiter := New(&Config{MaxPerWindow: 0})
	defer limiter.Close()

	for i := 0; i < 100; i++ {
		if !limiter.Allow("203.0.113.1").Allowed {
			t.Fatalf("disabled limiter blocked save %d", i+1)
		}
	}
}

func TestCleanup_RemovesExpiredEntries(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{MaxPerWindow: 5, Window: time.Hour, Clock: clock})
	defer limiter.Close()

	limiter.Allow("203.0.113.1")
	clock.Advance(2 * time.Hour)
	limiter.cleanup()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.byIP) != 0 {
		t.Fatalf("expected expired entries to be removed, got %d", len(limiter.byIP))
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", remoteAddr: "203.0.113.5:1234", want: "203.0.113.5"},
		{
			name:       "ignores forwarded header when untrusted",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.9"},
			want:       "10.0.0.1",
		},
		{
			name:       "rightmost public forwarded ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.9, 203.0.113.8, 10.0.0.2"},
			trustProxy: true,
			want:       "203.0.113.8",
		},
		{
			name:       "real ip header",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4"},
			trustProxy: true,
			want:       "198.51.100.4",
		},
		{name: "no port", remoteAddr: "203.0.113.5", want: "203.0.113.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPost, "/api/themes", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req, tt.trustProxy); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
