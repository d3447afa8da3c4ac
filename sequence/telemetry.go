package sequence

import (
	"context"

	"github.com/dogmatiq/sequencekit/internal/telemetry"
	"github.com/dogmatiq/sequencekit/internal/x/xtelemetry"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// WithTelemetry returns a [Store] that adds telemetry to s.
func WithTelemetry(
	s Store,
	p trace.TracerProvider,
	m metric.MeterProvider,
	l log.LoggerProvider,
) Store {
	return &instrumentedStore{
		Next: s,
		Telemetry: telemetry.Provider{
			TracerProvider: p,
			MeterProvider:  m,
			LoggerProvider: l,
		},
	}
}

// instrumentedStore is a decorator that adds instrumentation to a [Store].
type instrumentedStore struct {
	Next      Store
	Telemetry telemetry.Provider
}

// Open returns the sequence with the given name.
func (s *instrumentedStore) Open(ctx context.Context, name string, options ...Option) (Sequence, error) {
	opts := ResolveOptions(options...)

	telem := s.Telemetry.Recorder(
		"github.com/dogmatiq/sequencekit/sequence",
		telemetry.Type("sequence.store", s.Next),
		telemetry.String("sequence.name", name),
		telemetry.String("sequence.handle", xtelemetry.HandleID()),
		telemetry.Int("sequence.start", opts.Start),
		telemetry.Int("sequence.step", opts.Step),
	)

	seq := &instrumentedSequence{
		telemetry:     telem,
		openSequences: telem.UpDownCounter("open_sequences", "{sequence}", "The number of sequences that are currently open."),
		allocations:   telem.Counter("allocations", "{value}", "The number of values that have been allocated."),
		resets:        telem.Counter("resets", "{operation}", "The number of times the sequence has been rewound to its start value."),
	}

	ctx, span := telem.StartSpan(ctx, "sequence.open")
	defer span.End()

	next, err := s.Next.Open(ctx, name, options...)
	if err != nil {
		telem.Error(ctx, "sequence.open.error", err)
		return nil, err
	}

	seq.next = next

	seq.openSequences(ctx, 1)
	telem.Info(ctx, "sequence.open.ok", "opened sequence")

	return seq, nil
}

type instrumentedSequence struct {
	next      Sequence
	telemetry *telemetry.Recorder

	openSequences telemetry.Instrument[int64]
	allocations   telemetry.Instrument[int64]
	resets        telemetry.Instrument[int64]
}

func (s *instrumentedSequence) Name() string {
	return s.next.Name()
}

func (s *instrumentedSequence) Next(ctx context.Context) (int64, error) {
	ctx, span := s.telemetry.StartSpan(ctx, "sequence.next")
	defer span.End()

	v, err := s.next.Next(ctx)
	if err != nil {
		s.telemetry.Error(ctx, "sequence.next.error", err)
		return 0, err
	}

	s.allocations(ctx, 1)
	s.telemetry.Info(
		ctx,
		"sequence.next.ok",
		"allocated value",
		telemetry.Int("value", v),
	)

	return v, nil
}

func (s *instrumentedSequence) Peek(ctx context.Context) (int64, error) {
	ctx, span := s.telemetry.StartSpan(ctx, "sequence.peek")
	defer span.End()

	v, err := s.next.Peek(ctx)
	if err != nil {
		s.telemetry.Error(ctx, "sequence.peek.error", err)
		return 0, err
	}

	s.telemetry.Info(
		ctx,
		"sequence.peek.ok",
		"previewed next value",
		telemetry.Int("value", v),
	)

	return v, nil
}

func (s *instrumentedSequence) Reset(ctx context.Context) (int64, error) {
	ctx, span := s.telemetry.StartSpan(ctx, "sequence.reset")
	defer span.End()

	v, err := s.next.Reset(ctx)
	if err != nil {
		s.telemetry.Error(ctx, "sequence.reset.error", err)
		return 0, err
	}

	s.resets(ctx, 1)
	s.telemetry.Info(
		ctx,
		"sequence.reset.ok",
		"rewound sequence",
		telemetry.Int("value", v),
	)

	return v, nil
}

func (s *instrumentedSequence) Close() error {
	ctx := context.Background()
	ctx, span := s.telemetry.StartSpan(ctx, "sequence.close")
	defer span.End()

	if err := s.next.Close(); err != nil {
		s.telemetry.Error(ctx, "sequence.close.error", err)
		return err
	}

	s.openSequences(ctx, -1)
	s.telemetry.Info(ctx, "sequence.close.ok", "closed sequence")

	return nil
}
