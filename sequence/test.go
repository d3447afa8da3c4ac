package sequence

import (
	"slices"
	"sync"
	"testing"

	"github.com/dogmatiq/sequencekit/internal/x/xtesting"
	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

// RunTests runs tests that confirm a [Store] implementation behaves
// correctly.
func RunTests(
	t *testing.T,
	store Store,
) {
	setup := func(t *testing.T, options ...Option) Sequence {
		name := xtesting.UniqueName("sequence")

		seq, err := store.Open(t.Context(), name, options...)
		if err != nil {
			t.Fatal(err)
		}

		t.Cleanup(func() {
			if err := seq.Close(); err != nil {
				t.Error(err)
			}
		})

		if seq.Name() != name {
			t.Fatalf("unexpected sequence name: got %q, want %q", seq.Name(), name)
		}

		return seq
	}

	next := func(t *testing.T, seq Sequence) int64 {
		t.Helper()

		v, err := seq.Next(t.Context())
		if err != nil {
			t.Fatal(err)
		}

		return v
	}

	expectValues := func(t *testing.T, seq Sequence, want ...int64) {
		t.Helper()

		for _, expect := range want {
			if actual := next(t, seq); actual != expect {
				t.Fatalf("unexpected value: got %d, want %d", actual, expect)
			}
		}
	}

	t.Run("Store", func(t *testing.T) {
		t.Parallel()

		t.Run("Open", func(t *testing.T) {
			t.Parallel()

			t.Run("allows sequences to be opened multiple times", func(t *testing.T) {
				t.Parallel()

				name := xtesting.UniqueName("sequence")

				seq1, err := store.Open(t.Context(), name)
				if err != nil {
					t.Fatal(err)
				}
				defer seq1.Close()

				seq2, err := store.Open(t.Context(), name)
				if err != nil {
					t.Fatal(err)
				}
				defer seq2.Close()

				// Both handles must observe the same durable state.
				expectValues(t, seq1, 0)
				expectValues(t, seq2, 1)
				expectValues(t, seq1, 2)
			})

			t.Run("retains state after a sequence is closed and reopened", func(t *testing.T) {
				t.Parallel()

				name := xtesting.UniqueName("sequence")

				seq, err := store.Open(t.Context(), name)
				if err != nil {
					t.Fatal(err)
				}

				expectValues(t, seq, 0, 1, 2)

				if err := seq.Close(); err != nil {
					t.Fatal(err)
				}

				seq, err = store.Open(t.Context(), name)
				if err != nil {
					t.Fatal(err)
				}
				defer seq.Close()

				expectValues(t, seq, 3)
			})
		})
	})

	t.Run("Sequence", func(t *testing.T) {
		t.Parallel()

		t.Run("Next", func(t *testing.T) {
			t.Parallel()

			t.Run("it allocates sequential values from zero by default", func(t *testing.T) {
				t.Parallel()

				seq := setup(t)
				expectValues(t, seq, 0, 1, 2)
			})

			t.Run("it allocates the configured start value first", func(t *testing.T) {
				t.Parallel()

				seq := setup(t, WithStart(3))
				expectValues(t, seq, 3, 4)
			})

			t.Run("it advances by the configured step", func(t *testing.T) {
				t.Parallel()

				seq := setup(t, WithStep(5))
				expectValues(t, seq, 0, 5, 10)
			})

			t.Run("it combines the start and step options", func(t *testing.T) {
				t.Parallel()

				seq := setup(t, WithStart(100), WithStep(25))
				expectValues(t, seq, 100, 125, 150)
			})

			t.Run("it never allocates the same value to concurrent callers", func(t *testing.T) {
				t.Parallel()

				const (
					start       = 10
					step        = 3
					allocations = 50
				)

				seq := setup(t, WithStart(start), WithStep(step))

				var (
					g      sync.WaitGroup
					m      sync.Mutex
					actual []int64
					fail   error
				)

				for range allocations {
					g.Add(1)
					go func() {
						defer g.Done()

						v, err := seq.Next(t.Context())

						m.Lock()
						defer m.Unlock()

						if err != nil {
							fail = err
							return
						}

						actual = append(actual, v)
					}()
				}

				g.Wait()

				if fail != nil {
					t.Fatal(fail)
				}

				var expect []int64
				for i := range int64(allocations) {
					expect = append(expect, start+i*step)
				}

				slices.Sort(actual)

				if diff := cmp.Diff(expect, actual); diff != "" {
					t.Fatalf("allocated values contain a duplicate or a gap (-want +got):\n%s", diff)
				}
			})
		})

		t.Run("Peek", func(t *testing.T) {
			t.Parallel()

			t.Run("it returns the start value before any allocation", func(t *testing.T) {
				t.Parallel()

				seq := setup(t, WithStart(7))

				v, err := seq.Peek(t.Context())
				if err != nil {
					t.Fatal(err)
				}
				if v != 7 {
					t.Fatalf("unexpected value: got %d, want 7", v)
				}
			})

			t.Run("it returns the value the next allocation will return", func(t *testing.T) {
				t.Parallel()

				seq := setup(t, WithStart(2), WithStep(10))
				expectValues(t, seq, 2)

				v, err := seq.Peek(t.Context())
				if err != nil {
					t.Fatal(err)
				}
				if v != 12 {
					t.Fatalf("unexpected value: got %d, want 12", v)
				}

				expectValues(t, seq, 12)
			})

			t.Run("it does not allocate the value", func(t *testing.T) {
				t.Parallel()

				seq := setup(t)

				for range 3 {
					v, err := seq.Peek(t.Context())
					if err != nil {
						t.Fatal(err)
					}
					if v != 0 {
						t.Fatalf("unexpected value: got %d, want 0", v)
					}
				}

				expectValues(t, seq, 0)
			})
		})

		t.Run("Reset", func(t *testing.T) {
			t.Parallel()

			t.Run("it rewinds the sequence to its start value", func(t *testing.T) {
				t.Parallel()

				seq := setup(t, WithStart(3))
				expectValues(t, seq, 3, 4, 5)

				v, err := seq.Reset(t.Context())
				if err != nil {
					t.Fatal(err)
				}
				if v != 3 {
					t.Fatalf("unexpected value: got %d, want 3", v)
				}

				expectValues(t, seq, 3, 4)
			})

			t.Run("it is idempotent", func(t *testing.T) {
				t.Parallel()

				seq := setup(t)
				expectValues(t, seq, 0, 1)

				for range 2 {
					if _, err := seq.Reset(t.Context()); err != nil {
						t.Fatal(err)
					}
				}

				expectValues(t, seq, 0)
			})

			t.Run("it creates the sequence if it does not exist", func(t *testing.T) {
				t.Parallel()

				seq := setup(t, WithStart(9))

				v, err := seq.Reset(t.Context())
				if err != nil {
					t.Fatal(err)
				}
				if v != 9 {
					t.Fatalf("unexpected value: got %d, want 9", v)
				}

				expectValues(t, seq, 9, 10)
			})
		})
	})

	t.Run("property-based", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()

		rapid.Check(t, func(rt *rapid.T) {
			start := rapid.Int64Range(-1000, 1000).Draw(rt, "start")
			step := rapid.Int64Range(1, 100).Draw(rt, "step")

			seq, err := store.Open(
				ctx,
				xtesting.UniqueName("sequence"),
				WithStart(start),
				WithStep(step),
			)
			if err != nil {
				rt.Fatal(err)
			}
			defer seq.Close()

			// The model tracks the value the next allocation must return.
			expect := start

			rt.Repeat(
				map[string]func(*rapid.T){
					"Next": func(rt *rapid.T) {
						v, err := seq.Next(ctx)
						if err != nil {
							rt.Fatal(err)
						}
						if v != expect {
							rt.Fatalf("unexpected value: got %d, want %d", v, expect)
						}
						expect += step
					},
					"Peek": func(rt *rapid.T) {
						v, err := seq.Peek(ctx)
						if err != nil {
							rt.Fatal(err)
						}
						if v != expect {
							rt.Fatalf("unexpected value: got %d, want %d", v, expect)
						}
					},
					"Reset": func(rt *rapid.T) {
						v, err := seq.Reset(ctx)
						if err != nil {
							rt.Fatal(err)
						}
						if v != start {
							rt.Fatalf("unexpected value: got %d, want %d", v, start)
						}
						expect = start
					},
				},
			)
		})
	})
}
