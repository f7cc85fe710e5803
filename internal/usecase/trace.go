package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("nhlpredictor/internal/usecase")

// startUsecaseSpan opens a span for one service operation. Without a parent
// span in ctx this starts a root span, so the pipeline binaries get traced
// end to end whenever a tracer provider is installed.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, name)
}
