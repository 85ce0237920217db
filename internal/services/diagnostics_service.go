// Package services – DiagnosticsService
//
// DiagnosticsService backs the /test probe. It reports whether the process is
// up and whether the database answers, and never returns an error: every
// failure is folded into the report's status strings.
package services

import (
	"context"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/go-idea-prototyper/internal/repo"
)

// Status strings reported by Check.
const (
	StatusBackendRunning   = "✅ Running"
	StatusDBNotAvailable   = "❌ Not Available"
	StatusDBWorking        = "✅ Connected & Working"
	StatusDBNotInitialized = "⚠️  Available but not initialized"
	StatusFlagSet          = "✅ Set"
	StatusFlagNotSet       = "❌ Not Set"
	StatusConnected        = "Connected"
	StatusNotConnected     = "Not Connected"

	maxReportedTables = 10
	maxErrorRunes     = 50
)

// DiagnosticsReport is the body of the /test probe.
type DiagnosticsReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Tables           []string `json:"collections"`
}

// DiagnosticsService inspects the storage handle.
type DiagnosticsService struct {
	DB *gorm.DB

	// DatabaseURLSet / DatabaseNameSet report whether the storage location
	// and database name were configured explicitly.
	DatabaseURLSet  bool
	DatabaseNameSet bool

	// Timeout bounds the storage probe; zero means 2s.
	Timeout time.Duration
}

// Check builds a report. It always succeeds.
func (s *DiagnosticsService) Check(ctx context.Context) DiagnosticsReport {
	rep := DiagnosticsReport{
		Backend:          StatusBackendRunning,
		Database:         StatusDBNotAvailable,
		ConnectionStatus: StatusNotConnected,
		Tables:           []string{},
		DatabaseURL:      flag(s.DatabaseURLSet),
		DatabaseName:     flag(s.DatabaseNameSet),
	}
	if s.DB == nil {
		return rep
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := repo.Ping(ctx, s.DB); err != nil {
		rep.Database = "❌ Error: " + clipRunes(err.Error(), maxErrorRunes)
		return rep
	}
	rep.ConnectionStatus = StatusConnected

	tables, err := repo.ListTables(ctx, s.DB)
	if err != nil {
		rep.Database = "⚠️  Connected but Error: " + clipRunes(err.Error(), maxErrorRunes)
		return rep
	}
	if len(tables) == 0 {
		rep.Database = StatusDBNotInitialized
		return rep
	}
	if len(tables) > maxReportedTables {
		tables = tables[:maxReportedTables]
	}
	rep.Tables = tables
	rep.Database = StatusDBWorking
	return rep
}

func flag(set bool) string {
	if set {
		return StatusFlagSet
	}
	return StatusFlagNotSet
}

func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
