package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad should not panic on valid defaults, got: %v", r)
		}
	}()
	cfg := MustLoad()
	if cfg.APIBasePath == "" {
		t.Fatalf("unexpected empty config from MustLoad")
	}
}

// --- Load success + normalization + parsing ---

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8080" || cfg.APIBasePath != "/api" || cfg.DBPath != "prototyper.db" || cfg.DBPathSet {
		t.Fatalf("defaults unexpected: %+v", cfg)
	}
	if cfg.GenerateMaxAttempts != 3 || cfg.RateRPS != 5 || cfg.RateBurst != 10 {
		t.Fatalf("generation/rate defaults unexpected: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 10*time.Second || cfg.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("duration defaults unexpected: %+v", cfg)
	}
	if cfg.Security.HSTSMaxAge != 180*24*time.Hour {
		t.Fatalf("hsts default unexpected: %v", cfg.Security.HSTSMaxAge)
	}
	if cfg.CORS.AllowedOrigins != nil {
		t.Fatalf("expected no CORS origins by default, got %#v", cfg.CORS.AllowedOrigins)
	}
	if cfg.LogFile != "" || cfg.DatabaseName != "" {
		t.Fatalf("optional fields should be empty: %+v", cfg)
	}
	if cfg.OTEL.ServiceName != "idea-prototyper" || !cfg.OTEL.Insecure || cfg.OTEL.Enabled {
		t.Fatalf("otel defaults unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_Success_Overrides(t *testing.T) {
	// Server
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "WARNING") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("LOG_FILE", " logs/app.log ")
	t.Setenv("SWAGGER_ENABLED", "1")
	t.Setenv("API_BASE_PATH", "api/v2/") // -> "/api/v2"

	// Storage / generation
	t.Setenv("DB_PATH", "db.sqlite")
	t.Setenv("DATABASE_NAME", "prototypes")
	t.Setenv("GENERATE_MAX_ATTEMPTS", "5")

	// Rate limiting
	t.Setenv("RATE_RPS", "2.5")
	t.Setenv("RATE_BURST", "4")

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	t.Setenv("IDEMPOTENCY_TTL", "48h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.ShutdownTimeout != 5*time.Second ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.Addr() != ":8088" {
		t.Fatalf("Addr() = %q", cfg.Addr())
	}

	if cfg.LogLevel != "warn" || !cfg.LogPretty || cfg.LogFile != "logs/app.log" || !cfg.SwaggerEnabled || cfg.APIBasePath != "/api/v2" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}

	if cfg.DBPath != "db.sqlite" || !cfg.DBPathSet || cfg.DatabaseName != "prototypes" || cfg.GenerateMaxAttempts != 5 {
		t.Fatalf("storage fields unexpected: %+v", cfg)
	}

	if cfg.RateRPS != 2.5 || cfg.RateBurst != 4 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}

	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}

	if cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("idempotency ttl unexpected: %v", cfg.IdempotencyTTL)
	}

	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_ParseErrors(t *testing.T) {
	t.Run("bad float", func(t *testing.T) {
		t.Setenv("RATE_RPS", "x")
		if _, err := Load(); err == nil || !containsErr(err, "parse env config") {
			t.Fatalf("expected parse error, got: %v", err)
		}
	})
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("IDEMPOTENCY_TTL", "zzz")
		if _, err := Load(); err == nil {
			t.Fatalf("expected parse error")
		}
	})
	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("ENABLE_HSTS", "maybe")
		if _, err := Load(); err == nil {
			t.Fatalf("expected parse error")
		}
	})
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name, key, val, want string
	}{
		{"invalid LOG_LEVEL", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"empty PORT via spaces", "PORT", "   ", "PORT must not be empty"},
		{"non-positive timeouts", "READ_TIMEOUT", "0s", "timeouts must be positive"},
		{"non-positive shutdown", "SHUTDOWN_TIMEOUT", "0s", "SHUTDOWN_TIMEOUT"},
		{"max header bytes <= 0", "MAX_HEADER_BYTES", "0", "MAX_HEADER_BYTES"},
		{"empty DB_PATH", "DB_PATH", "   ", "DB_PATH must not be empty"},
		{"generate attempts < 1", "GENERATE_MAX_ATTEMPTS", "0", "GENERATE_MAX_ATTEMPTS"},
		{"rate rps negative", "RATE_RPS", "-1", "RATE_RPS"},
		{"rate burst < 1", "RATE_BURST", "0", "RATE_BURST"},
		{"hsts max age negative", "HSTS_MAX_AGE", "-1s", "HSTS_MAX_AGE"},
		{"idempotency ttl non-positive", "IDEMPOTENCY_TTL", "0s", "IDEMPOTENCY_TTL"},
		{"otel sample ratio out of range", "OTEL_TRACES_SAMPLER_ARG", "1.5", "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil || !containsErr(err, tc.want) {
				t.Fatalf("expected %s validation error, got: %v", tc.want, err)
			}
		})
	}
}

// --- helpers ---

func TestHelpers_cleanList_and_normalizeBasePath(t *testing.T) {
	if out := cleanList(nil); out != nil {
		t.Fatalf("cleanList nil should return nil")
	}
	if out := cleanList([]string{" ", ""}); out != nil {
		t.Fatalf("cleanList of blanks should return nil, got %#v", out)
	}
	want := []string{"a", "b", "c"}
	if got := cleanList([]string{" a", " ", "b ", "  c  ", ""}); !reflect.DeepEqual(got, want) {
		t.Fatalf("cleanList mismatch: got %#v want %#v", got, want)
	}

	if normalizeBasePath("") != "/" {
		t.Fatalf("normalizeBasePath empty -> '/' failed")
	}
	if normalizeBasePath("api") != "/api" {
		t.Fatalf("normalizeBasePath missing leading slash failed")
	}
	if normalizeBasePath("/api/") != "/api" {
		t.Fatalf("normalizeBasePath trailing slash trim failed")
	}
	if normalizeBasePath(" / ") != "/" {
		t.Fatalf("normalizeBasePath whitespace failed")
	}
}

// Ensure tests don't leak env to others.
func TestMain(m *testing.M) {
	for _, k := range []string{"PORT", "API_BASE_PATH", "DB_PATH", "LOG_LEVEL", "GIN_MODE", "LOG_FILE", "DATABASE_NAME"} {
		os.Unsetenv(k)
	}
	os.Exit(m.Run())
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}
