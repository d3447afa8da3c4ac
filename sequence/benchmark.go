package sequence

import (
	"context"
	"testing"

	"github.com/dogmatiq/sequencekit/internal/x/xtesting"
)

// RunBenchmarks runs benchmarks against a [Store] implementation.
func RunBenchmarks(
	b *testing.B,
	store Store,
) {
	b.Run("Store", func(b *testing.B) {
		b.Run("Open", func(b *testing.B) {
			var (
				name string
				seq  Sequence
			)

			xtesting.Benchmark(
				b,
				// SETUP
				func(ctx context.Context) error {
					name = xtesting.SequentialName("sequence")

					// pre-create the sequence
					seq, err := store.Open(ctx, name)
					if err != nil {
						return err
					}
					if _, err := seq.Next(ctx); err != nil {
						return err
					}
					return seq.Close()
				},
				// BEFORE EACH
				nil,
				// BENCHMARKED CODE
				func(ctx context.Context) (err error) {
					seq, err = store.Open(ctx, name)
					return err
				},
				// AFTER EACH
				func(context.Context) error {
					return seq.Close()
				},
			)
		})
	})

	b.Run("Sequence", func(b *testing.B) {
		b.Run("Next", func(b *testing.B) {
			benchmarkSequence(
				b,
				store,
				nil,
				func(ctx context.Context, seq Sequence) error {
					_, err := seq.Next(ctx)
					return err
				},
				nil,
			)
		})

		b.Run("Peek", func(b *testing.B) {
			benchmarkSequence(
				b,
				store,
				func(ctx context.Context, seq Sequence) error {
					_, err := seq.Next(ctx)
					return err
				},
				func(ctx context.Context, seq Sequence) error {
					_, err := seq.Peek(ctx)
					return err
				},
				nil,
			)
		})

		b.Run("Reset", func(b *testing.B) {
			benchmarkSequence(
				b,
				store,
				nil,
				func(ctx context.Context, seq Sequence) error {
					_, err := seq.Reset(ctx)
					return err
				},
				nil,
			)
		})
	})
}

func benchmarkSequence(
	b *testing.B,
	store Store,
	setup func(context.Context, Sequence) error,
	fn func(context.Context, Sequence) error,
	after func(context.Context, Sequence) error,
) {
	b.Helper()

	var seq Sequence

	xtesting.Benchmark(
		b,
		// SETUP
		func(ctx context.Context) (err error) {
			seq, err = store.Open(ctx, xtesting.SequentialName("sequence"))
			if err != nil {
				return err
			}

			if setup != nil {
				return setup(ctx, seq)
			}

			return nil
		},
		// BEFORE EACH
		nil,
		// BENCHMARKED CODE
		func(ctx context.Context) error {
			return fn(ctx, seq)
		},
		// AFTER EACH
		func(ctx context.Context) error {
			if after != nil {
				return after(ctx, seq)
			}
			return nil
		},
	)
}
