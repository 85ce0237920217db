package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-idea-prototyper/internal/observability"
	"github.com/tbourn/go-idea-prototyper/internal/scoring"
)

// Assess scores idea text. It needs no storage and cannot fail.
func Assess(ctx context.Context, text string) scoring.Assessment {
	_, span := observability.Tracer("Assess").Start(ctx, "Assess",
		trace.WithAttributes(attribute.Int("idea.length", len(text))),
	)
	defer span.End()

	a := scoring.Score(text)
	observability.AssessmentsTotal.Inc()
	return a
}
