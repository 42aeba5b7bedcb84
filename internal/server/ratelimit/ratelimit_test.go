package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(cfg *Config) (*Limiter, *clock) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = c.now
	return l, c
}

func TestBucket_TakeAndRefill(t *testing.T) {
	now := time.Unix(0, 0)
	b := newBucket(3, 1, now)

	for i := 0; i < 3; i++ {
		ok, _, _ := b.take(now)
		require.True(t, ok, "request %d", i+1)
	}
	ok, remaining, full := b.take(now)
	assert.False(t, ok)
	assert.Zero(t, remaining)
	assert.Equal(t, now.Add(3*time.Second), full)
	assert.Equal(t, time.Second, b.nextToken())

	ok, _, _ = b.take(now.Add(1100 * time.Millisecond))
	assert.True(t, ok)
	ok, _, _ = b.take(now.Add(1100 * time.Millisecond))
	assert.False(t, ok)
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l, c := newTestLimiter(&Config{Enabled: true, DefaultLimit: 2, DefaultWindow: time.Minute})
	defer l.Stop()

	ok, info := l.Allow("1.1.1.1", "/api/templates", "GET")
	assert.True(t, ok)
	assert.Equal(t, 2, info.Limit)
	assert.Equal(t, 1, info.Remaining)

	ok, _ = l.Allow("1.1.1.1", "/api/templates", "GET")
	assert.True(t, ok)
	ok, info = l.Allow("1.1.1.1", "/api/templates", "GET")
	assert.False(t, ok)
	assert.InDelta(t, 30, info.RetryAfter.Seconds(), 0.01)

	ok, _ = l.Allow("2.2.2.2", "/api/templates", "GET")
	assert.True(t, ok, "other clients have their own bucket")

	c.advance(31 * time.Second)
	ok, _ = l.Allow("1.1.1.1", "/api/templates", "GET")
	assert.True(t, ok)
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		ok, _ := l.Allow("ip", "/api/generate", "POST")
		require.True(t, ok)
	}
	ok, info := l.Allow("ip", "/api/generate", "POST")
	assert.False(t, ok)
	assert.Equal(t, 60, info.Limit)

	ok, _ = l.Allow("ip", "/studio/export/portfolio.zip", "GET")
	assert.True(t, ok)
	_, info = l.Allow("ip", "/studio/export/resume.doc", "GET")
	assert.Equal(t, 30, info.Limit)
}

func TestLimiter_Lists(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{"good": true},
		Blacklist:     map[string]bool{"bad": true},
	})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("good", "/api/generate", "POST")
		assert.True(t, ok)
	}
	ok, _ := l.Allow("bad", "/health", "GET")
	assert.False(t, ok)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()
	for i := 0; i < 100; i++ {
		ok, info := l.Allow("ip", "/api/generate", "POST")
		require.True(t, ok)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("ip", "/api/ats-score", "POST"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestLimiter_Cleanup(t *testing.T) {
	l, c := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), "/", "POST")
	}
	require.Equal(t, 3, l.size())

	c.advance(2 * time.Hour)
	l.Allow("fresh", "/", "POST")
	l.cleanup(c.now().Add(-staleAfter))
	assert.Equal(t, 1, l.size())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()
	l.Stop()

	ok, info := l.Allow("ip", "/api/templates", "GET")
	assert.True(t, ok)
	assert.Equal(t, 1000, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/studio/export/", Method: "GET", Limit: 5},
		{Path: "/api/generate", Method: "POST", Limit: 7},
	}
	tests := []struct {
		path, method string
		want         int
		found        bool
	}{
		{"/health", "GET", 0, true},
		{"/", "GET", 0, true},
		{"/api/generate", "POST", 7, true},
		{"/api/generate", "GET", 0, false},
		{"/studio/export/resume.doc", "GET", 5, true},
		{"/api/templates", "GET", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if !tt.found {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Limit)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "127.0.0.1, ::1")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.True(t, cfg.Whitelist["::1"])
	assert.NotEmpty(t, cfg.EndpointConfigs)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}

func TestLoadConfigFrom_InvalidValuesKeepDefaults(t *testing.T) {
	env := map[string]string{
		"RATE_LIMIT_DEFAULT_LIMIT":  "lots",
		"RATE_LIMIT_DEFAULT_WINDOW": "10",
		"RATE_LIMIT_BLACKLIST":      " 10.0.0.1 ,, ",
	}
	cfg := LoadConfigFrom(func(k string) string { return env[k] })

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true}, cfg.Blacklist)
	assert.Empty(t, cfg.Whitelist)
}
