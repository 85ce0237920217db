package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestDomainCounters_Increment(t *testing.T) {
	before := testutil.ToFloat64(PrototypesGenerated.WithLabelValues("blog"))
	PrototypesGenerated.WithLabelValues("blog").Inc()
	if got := testutil.ToFloat64(PrototypesGenerated.WithLabelValues("blog")); got != before+1 {
		t.Fatalf("prototypes_generated_total{blog} = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(VersionConflicts)
	VersionConflicts.Inc()
	if got := testutil.ToFloat64(VersionConflicts); got != before+1 {
		t.Fatalf("version_conflicts_total = %v, want %v", got, before+1)
	}
}
