package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limitedRouter mounts rl in front of GET /api/ideas and GET /health. pre
// handlers run ahead of the limiter.
func limitedRouter(rl *RateLimiter, pre ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(pre...)
	r.Use(rl.Handler())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/api/ideas", ok)
	r.GET("/health", ok)
	return r
}

func hitFrom(r http.Handler, path, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if remote != "" {
		req.RemoteAddr = remote
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestKeyByClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/ideas", nil)
	c.Request.RemoteAddr = "198.51.100.20:41000"

	if got := KeyByClientIP()(c); got != "ip:198.51.100.20" {
		t.Fatalf("key = %q", got)
	}
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(3, -2, nil)
	if rl.burst != 1 || rl.keyFn == nil || rl.ttl != visitorTTL {
		t.Fatalf("defaults not applied: burst=%d ttl=%v keyFn=%v", rl.burst, rl.ttl, rl.keyFn != nil)
	}
	a := rl.getVisitor("ip:1")
	if a != rl.getVisitor("ip:1") {
		t.Fatal("bucket for the same key must be reused")
	}
	if a == rl.getVisitor("ip:2") {
		t.Fatal("different keys must get separate buckets")
	}
}

func TestRateLimiter_EvictsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(1, 1, nil)
	rl.ttl = time.Minute

	rl.mu.Lock()
	rl.visitors["stale"] = &visitor{limiter: rate.NewLimiter(1, 1), lastSeen: time.Now().Add(-2 * time.Minute)}
	rl.visitors["fresh"] = &visitor{limiter: rate.NewLimiter(1, 1), lastSeen: time.Now()}
	rl.cleanupN = gcEveryCalls - 1
	rl.mu.Unlock()

	rl.getVisitor("caller")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.visitors["stale"]; ok {
		t.Error("stale bucket survived the sweep")
	}
	for _, k := range []string{"fresh", "caller"} {
		if _, ok := rl.visitors[k]; !ok {
			t.Errorf("bucket %q missing after sweep", k)
		}
	}
	if rl.cleanupN != 0 {
		t.Errorf("cleanup counter = %d, want reset", rl.cleanupN)
	}
}

func TestIsRateBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	cases := []struct {
		val  any
		set  bool
		want bool
	}{
		{nil, false, false},
		{true, true, true},
		{false, true, false},
		{"true", true, false},
	}
	for _, tc := range cases {
		c.Keys = nil
		if tc.set {
			c.Set(ctxKeyRateBypass, tc.val)
		}
		if got := IsRateBypass(c); got != tc.want {
			t.Errorf("IsRateBypass(%v) = %v", tc.val, got)
		}
	}
}

func TestRateLimiter_Handler_LimitsPerClient(t *testing.T) {
	rl := NewRateLimiter(1, 2, KeyByClientIP())
	r := limitedRouter(rl, func(c *gin.Context) {
		c.Header(requestIDHeader, "rid-77")
		c.Next()
	})

	const alice, bob = "192.0.2.1:1000", "192.0.2.2:1000"

	for i, wantRemaining := range []string{"1", "0"} {
		w := hitFrom(r, "/api/ideas", alice)
		if w.Code != http.StatusOK {
			t.Fatalf("call %d: status %d", i, w.Code)
		}
		if w.Header().Get(HeaderRateLimit) != "2" || w.Header().Get(HeaderRateRemaining) != wantRemaining {
			t.Fatalf("call %d: limit=%q remaining=%q", i,
				w.Header().Get(HeaderRateLimit), w.Header().Get(HeaderRateRemaining))
		}
	}

	w := hitFrom(r, "/api/ideas", alice)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third call status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") != "1" {
		t.Fatalf("Retry-After = %q", w.Header().Get("Retry-After"))
	}
	var env struct {
		RequestID string `json:"request_id"`
		Code      string `json:"code"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.RequestID != "rid-77" || env.Code != rateLimitedCode || env.Message != "rate limit exceeded" {
		t.Fatalf("envelope = %+v", env)
	}

	if w := hitFrom(r, "/api/ideas", bob); w.Code != http.StatusOK {
		t.Fatalf("other client limited: %d", w.Code)
	}
}

func TestRateLimiter_Handler_SkipsReplaysAndExemptPaths(t *testing.T) {
	rl := NewRateLimiter(1, 1, KeyByClientIP()).Exempt("/health")

	replays := limitedRouter(rl, func(c *gin.Context) {
		c.Set(ctxKeyRateBypass, true)
		c.Next()
	})
	plain := limitedRouter(rl)

	for i := 0; i < 4; i++ {
		if w := hitFrom(replays, "/api/ideas", ""); w.Code != http.StatusOK {
			t.Fatalf("replay %d limited: %d", i, w.Code)
		}
		if w := hitFrom(plain, "/health", ""); w.Code != http.StatusOK {
			t.Fatalf("health %d limited: %d", i, w.Code)
		}
	}
	if w := hitFrom(plain, "/health", ""); w.Header().Get(HeaderRateLimit) != "" {
		t.Fatal("exempt path must not carry rate headers")
	}

	codes := []int{hitFrom(plain, "/api/ideas", "").Code, hitFrom(plain, "/api/ideas", "").Code}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v, want [200 429]", codes)
	}
}

func TestRateLimiter_retryAfter(t *testing.T) {
	for rps, want := range map[float64]int{0: 60, -1: 60, 0.2: 5, 0.3: 4, 1: 1, 50: 1} {
		if got := NewRateLimiter(rps, 1, nil).retryAfter(); got != want {
			t.Errorf("retryAfter(rps=%v) = %d, want %d", rps, got, want)
		}
	}
}
