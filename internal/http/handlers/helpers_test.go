package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-idea-prototyper/internal/domain"
	"github.com/tbourn/go-idea-prototyper/internal/http/middleware"
	"github.com/tbourn/go-idea-prototyper/internal/repo"
	"github.com/tbourn/go-idea-prototyper/internal/services"
)

// ---------- test DB + repo shim ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testIdeaRepo struct{}

func (testIdeaRepo) CreateIdea(ctx context.Context, db *gorm.DB, text string) (*domain.Idea, error) {
	return repo.CreateIdea(ctx, db, text)
}

func (testIdeaRepo) GetIdea(ctx context.Context, db *gorm.DB, id string) (*domain.Idea, error) {
	return repo.GetIdea(ctx, db, id)
}

func (testIdeaRepo) CountIdeas(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountIdeas(ctx, db)
}

func (testIdeaRepo) ListIdeasPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Idea, error) {
	return repo.ListIdeasPage(ctx, db, offset, limit)
}

type stubDiag struct{ rep services.DiagnosticsReport }

func (s stubDiag) Check(context.Context) services.DiagnosticsReport { return s.rep }

// newTestRouter wires real services over db (which may be nil) the same way
// the production router does, minus rate limiting and CORS.
func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := New(
		services.NewIdeaService(db, testIdeaRepo{}),
		services.NewPrototypeService(db, services.DefaultMaxAttempts),
		stubDiag{rep: services.DiagnosticsReport{Backend: services.StatusBackendRunning}},
	)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	r.GET("/", h.Root)
	r.GET("/test", h.Diagnostics)
	r.GET("/health", h.Health)
	api := r.Group("/api")
	api.POST("/ideas", h.CreateIdea)
	api.GET("/ideas", h.ListIdeas)
	api.GET("/ideas/:id", h.GetIdea)
	api.GET("/ideas/:id/versions", h.ListVersions)
	api.GET("/search", h.SearchIdeas)
	api.GET("/versions/:id", h.GetVersion)
	api.POST("/validate", h.ValidateIdea)
	api.POST("/generate", h.GeneratePrototype)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func mustCreateIdea(t *testing.T, r http.Handler, text string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/ideas", gin.H{"text": text}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("create idea status=%d body=%s", w.Code, w.Body.String())
	}
	return decode[CreateIdeaResponse](t, w).IdeaID
}
