package usecase

import (
	"context"
	"sync"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
)

// spanRecorder is a minimal tracer provider that remembers the names of the
// spans started through it.
type spanRecorder struct {
	embedded.TracerProvider
	mu    sync.Mutex
	names []string
}

func (r *spanRecorder) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return &recorderTracer{rec: r}
}

func (r *spanRecorder) started() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

type recorderTracer struct {
	embedded.Tracer
	rec *spanRecorder
}

func (t *recorderTracer) Start(ctx context.Context, name string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	t.rec.mu.Lock()
	t.rec.names = append(t.rec.names, name)
	t.rec.mu.Unlock()
	return ctx, trace.SpanFromContext(ctx)
}

func TestStartUsecaseSpan_StartsRootSpanWithoutParent(t *testing.T) {
	rec := &spanRecorder{}
	otel.SetTracerProvider(rec)

	// The binaries call the services with a bare signal context, so the
	// operation span must come up even when no parent span exists.
	_, span := startUsecaseSpan(context.Background(), "BuilderService.BuildSeasons")
	span.End()

	for _, name := range rec.started() {
		if name == "BuilderService.BuildSeasons" {
			return
		}
	}
	t.Fatalf("operation span never started, recorded %v", rec.started())
}
