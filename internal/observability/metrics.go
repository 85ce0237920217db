package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain metrics. HTTP traffic is instrumented separately by middleware.Metrics.
var (
	IdeasCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prototyper",
			Name:      "ideas_created_total",
			Help:      "Ideas stored, by origin (api or generate).",
		},
		[]string{"origin"},
	)

	AssessmentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "prototyper",
			Name:      "assessments_total",
			Help:      "Viability assessments computed.",
		},
	)

	PrototypesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prototyper",
			Name:      "prototypes_generated_total",
			Help:      "Prototype versions stored, by site type.",
		},
		[]string{"site_type"},
	)

	// VersionConflicts counts (idea_id, version) clashes that forced a retry.
	VersionConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "prototyper",
			Name:      "version_conflicts_total",
			Help:      "Version number collisions detected during generation.",
		},
	)
)
