package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// StartSpan starts a new span and increments the "operations" metric.
//
// The caller is responsible for ending the returned span.
func (r *Recorder) StartSpan(
	ctx context.Context,
	name string,
	attrs ...Attr,
) (context.Context, trace.Span) {
	ctx, span := r.tracer.Start(
		ctx,
		name,
		trace.WithAttributes(asAttrKeyValues(attrs)...),
	)

	r.operationCount(ctx, 1)

	return ctx, span
}
