package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// Instrument records values against a metric instrument.
type Instrument[T int64 | float64] func(ctx context.Context, value T, attrs ...Attr)

// Counter returns an [Instrument] that records values to a monotonic counter.
func (r *Recorder) Counter(name, unit, desc string) Instrument[int64] {
	c, err := r.meter.Int64Counter(
		name,
		metric.WithUnit(unit),
		metric.WithDescription(desc),
	)
	if err != nil {
		panic(err)
	}

	return func(ctx context.Context, value int64, attrs ...Attr) {
		c.Add(
			ctx,
			value,
			metric.WithAttributes(asAttrKeyValues(attrs)...),
		)
	}
}

// UpDownCounter returns an [Instrument] that records values to a
// non-monotonic counter.
func (r *Recorder) UpDownCounter(name, unit, desc string) Instrument[int64] {
	c, err := r.meter.Int64UpDownCounter(
		name,
		metric.WithUnit(unit),
		metric.WithDescription(desc),
	)
	if err != nil {
		panic(err)
	}

	return func(ctx context.Context, value int64, attrs ...Attr) {
		c.Add(
			ctx,
			value,
			metric.WithAttributes(asAttrKeyValues(attrs)...),
		)
	}
}
