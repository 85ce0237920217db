package httpapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/tbourn/go-idea-prototyper/docs"
	"github.com/tbourn/go-idea-prototyper/internal/config"
	"github.com/tbourn/go-idea-prototyper/internal/http/middleware"
	"github.com/tbourn/go-idea-prototyper/internal/repo"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:routerdb_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath:         "/api",
		RateRPS:             100,
		RateBurst:           10,
		GenerateMaxAttempts: 3,
		IdempotencyTTL:      time.Hour,
		OTEL:                config.OTELConfig{ServiceName: "test-svc"},
	}
}

func serve(r http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), testConfig())

	w := serve(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	w = serve(r, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	if w = serve(r, http.MethodGet, "/nope", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}
	if w = serve(r, http.MethodPost, "/health", "", nil); w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}

	// Swagger is off unless enabled.
	if w = serve(r, http.MethodGet, "/swagger/index.html", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("swagger should be disabled, got %d", w.Code)
	}
}

func TestRegisterRoutes_SwaggerEnabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	cfg.SwaggerEnabled = true
	RegisterRoutes(r, newTestDB(t), cfg)

	w := serve(r, http.MethodGet, "/swagger/doc.json", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /swagger/doc.json = %d", w.Code)
	}
	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode swagger doc: %v", err)
	}
	if doc.BasePath != "/api" {
		t.Fatalf("basePath = %q", doc.BasePath)
	}
	for _, p := range []string{"/ideas", "/ideas/{id}", "/ideas/{id}/versions", "/validate", "/generate", "/versions/{id}", "/search"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Fatalf("swagger doc missing path %s", p)
		}
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	RegisterRoutes(r, newTestDB(t), cfg)

	w := serve(r, http.MethodGet, "/health", "", map[string]string{"Origin": "http://example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
}

func TestRegisterRoutes_IdeaFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), testConfig())

	w := serve(r, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "SaaS.ai API is running") {
		t.Fatalf("GET / = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPost, "/api/generate", `{"text":"Sell courses online","site_type":"dashboard"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("generate = %d %s", w.Code, w.Body.String())
	}
	var gen struct {
		IdeaID  string `json:"idea_id"`
		Version int    `json:"version"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &gen); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gen.Version != 1 || !strings.Contains(gen.Code, "Dashboard") {
		t.Fatalf("unexpected generate response: %+v", gen)
	}

	w = serve(r, http.MethodGet, "/api/ideas/"+gen.IdeaID+"/versions", "", nil)
	if w.Code != http.StatusOK || w.Header().Get("ETag") == "" {
		t.Fatalf("versions = %d etag=%q", w.Code, w.Header().Get("ETag"))
	}
	if exp := w.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(exp, "ETag") {
		t.Fatalf("ETag should be exposed to browsers, got %q", exp)
	}

	w = serve(r, http.MethodGet, "/api/search?q=courses", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), gen.IdeaID) {
		t.Fatalf("search = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodGet, "/test", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "collections") {
		t.Fatalf("GET /test = %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_NilDB(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, nil, testConfig())

	if w := serve(r, http.MethodPost, "/api/ideas", `{"text":"x"}`, nil); w.Code != http.StatusInternalServerError {
		t.Fatalf("create idea without storage = %d", w.Code)
	}
	if w := serve(r, http.MethodPost, "/api/validate", `{"text":"x"}`, nil); w.Code != http.StatusOK {
		t.Fatalf("validate without storage = %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/test", "", nil); w.Code != http.StatusOK {
		t.Fatalf("diagnostics without storage = %d", w.Code)
	}
	// Idempotency lookup tolerates a missing store.
	w := serve(r, http.MethodPost, "/api/generate", `{"text":"x","site_type":"blog"}`,
		map[string]string{middleware.HeaderIdempotencyKey: "k1"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("generate without storage = %d", w.Code)
	}
}

func TestRegisterRoutes_Gzip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), testConfig())

	w := serve(r, http.MethodPost, "/api/generate", `{"text":"A shop for plants","site_type":"ecommerce"}`,
		map[string]string{"Accept-Encoding": "gzip"})
	if w.Code != http.StatusOK {
		t.Fatalf("generate = %d", w.Code)
	}
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, headers=%v", w.Header())
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("read gzip: %v", err)
	}
	if !bytes.Contains(raw, []byte("version_id")) {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		w := serve(r, http.MethodGet, path, "", nil)
		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, w.Code, w.Body.String())
		}
	}
}

func Test_ideaRepoShim_Proxies(t *testing.T) {
	db := newTestDB(t)
	shim := ideaRepoShim{}
	ctx := context.Background()

	i1, err := shim.CreateIdea(ctx, db, "first")
	if err != nil || i1.ID == "" || i1.Text != "first" {
		t.Fatalf("CreateIdea: %+v %v", i1, err)
	}
	got, err := shim.GetIdea(ctx, db, i1.ID)
	if err != nil || got.ID != i1.ID {
		t.Fatalf("GetIdea: %+v %v", got, err)
	}
	if _, err := shim.CreateIdea(ctx, db, "second"); err != nil {
		t.Fatalf("CreateIdea second: %v", err)
	}

	n, err := shim.CountIdeas(ctx, db)
	if err != nil || n != 2 {
		t.Fatalf("CountIdeas = %d, %v", n, err)
	}
	page, err := shim.ListIdeasPage(ctx, db, 0, 1)
	if err != nil || len(page) != 1 || page[0].Text != "second" {
		t.Fatalf("ListIdeasPage: %+v %v", page, err)
	}
}

func Test_idempotencyLookup(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	if ok, err := idempotencyLookup(nil)(ctx, "POST /api/ideas", "k", now); ok || err != nil {
		t.Fatalf("nil db: ok=%v err=%v", ok, err)
	}

	db := newTestDB(t)
	lookup := idempotencyLookup(db)
	if ok, err := lookup(ctx, "POST /api/ideas", "k", now); ok || err != nil {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}
	if _, err := repo.CreateIdempotency(ctx, db, "POST /api/ideas", "k", "R1", http.StatusOK, time.Hour); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if ok, err := lookup(ctx, "POST /api/ideas", "k", now); !ok || err != nil {
		t.Fatalf("hit: ok=%v err=%v", ok, err)
	}
	if ok, _ := lookup(ctx, "POST /api/generate", "k", now); ok {
		t.Fatalf("key must be scoped to its endpoint")
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	_ = sqlDB.Close()
	if ok, err := lookup(ctx, "POST /api/ideas", "k", now); ok || err == nil {
		t.Fatalf("closed db should surface an error: ok=%v err=%v", ok, err)
	}
}
