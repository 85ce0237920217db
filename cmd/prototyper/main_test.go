package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-idea-prototyper/internal/config"
	"github.com/tbourn/go-idea-prototyper/internal/scoring"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func testServerConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:                "0",
		ReadTimeout:         time.Second,
		ReadHeaderTimeout:   time.Second,
		WriteTimeout:        time.Second,
		IdleTimeout:         time.Second,
		MaxHeaderBytes:      1 << 20,
		ShutdownTimeout:     time.Second,
		GinMode:             "test",
		APIBasePath:         "/api",
		DBPath:              filepath.Join(t.TempDir(), "proto.db"),
		GenerateMaxAttempts: 3,
		RateRPS:             100,
		RateBurst:           10,
		IdempotencyTTL:      time.Hour,
		OTEL:                config.OTELConfig{ServiceName: "test"},
	}
}

func TestScoreCommand_PrintsAssessment(t *testing.T) {
	text := "An AI assistant for teachers"
	out, err := execute(t, "score", "An AI", "assistant for teachers")
	require.NoError(t, err)

	var got scoring.Assessment
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	want := scoring.Score(text)
	assert.Equal(t, want.Scores, got.Scores)
	assert.Equal(t, want.Risks, got.Risks)
	assert.Equal(t, want.Opportunities, got.Opportunities)
	assert.Equal(t, scoring.Summary, got.Summary)
	assert.Contains(t, out, "\n  \"scores\"")
}

func TestScoreCommand_Compact(t *testing.T) {
	out, err := execute(t, "score", "--compact", "a blog")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestScoreCommand_Errors(t *testing.T) {
	_, err := execute(t, "score")
	require.Error(t, err)

	_, err = execute(t, "score", "   ")
	require.EqualError(t, err, "idea text must not be blank")
}

func TestRenderCommand(t *testing.T) {
	out, err := execute(t, "render", "--site-type", "dashboard", "Team <metrics>")
	require.NoError(t, err)
	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, "Dashboard")
	assert.Contains(t, out, "Team &lt;metrics&gt;")
	assert.NotContains(t, out, "Team <metrics>")
}

func TestRenderCommand_DefaultsToLanding(t *testing.T) {
	out, err := execute(t, "render", "Anything")
	require.NoError(t, err)
	assert.Contains(t, out, "Landing")
}

func TestRenderCommand_OutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	out, err := execute(t, "render", "--site-type", "blog", "-o", path, "Weekly notes")
	require.NoError(t, err)
	assert.Empty(t, out)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Weekly notes")
}

func TestRenderCommand_UnknownSiteType(t *testing.T) {
	_, err := execute(t, "render", "--site-type", "portfolio", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown site type")
}

func TestRootCommand_Version(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestOpenStore(t *testing.T) {
	db := openStore(filepath.Join(t.TempDir(), "ok.db"))
	require.NotNil(t, db)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	assert.True(t, db.Migrator().HasTable("ideas"))

	assert.Nil(t, openStore(filepath.Join(t.TempDir(), "missing", "dir", "x.db")))
}

func TestNewHTTPServer(t *testing.T) {
	cfg := testServerConfig(t)
	srv := newHTTPServer(cfg, nil)
	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, cfg.ReadHeaderTimeout, srv.ReadHeaderTimeout)
	assert.Equal(t, cfg.MaxHeaderBytes, srv.MaxHeaderBytes)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Without storage, persistence endpoints report it.
	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ideas", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "storage_unavailable")
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	cfg := testServerConfig(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- runServer(ctx, cfg) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runServer did not return after cancel")
	}
}
