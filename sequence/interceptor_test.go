package sequence_test

import (
	"errors"
	"testing"

	"github.com/dogmatiq/sequencekit/driver/memory/memoryseq"
	. "github.com/dogmatiq/sequencekit/sequence"
)

func TestWithInterceptor(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*Interceptor, Sequence) {
		t.Helper()

		in := &Interceptor{}
		store := WithInterceptor(&memoryseq.Store{}, in)

		seq, err := store.Open(t.Context(), "test")
		if err != nil {
			t.Fatal(err)
		}

		t.Cleanup(func() {
			if err := seq.Close(); err != nil {
				t.Error(err)
			}
		})

		return in, seq
	}

	t.Run("BeforeOpen", func(t *testing.T) {
		t.Parallel()

		in := &Interceptor{}
		expect := errors.New("<error>")

		in.BeforeOpen(func(name string) error {
			if name != "test" {
				t.Fatalf("unexpected name: got %q, want %q", name, "test")
			}
			return expect
		})

		store := WithInterceptor(&memoryseq.Store{}, in)

		if _, err := store.Open(t.Context(), "test"); err != expect {
			t.Fatalf("unexpected error: got %v, want %v", err, expect)
		}
	})

	t.Run("BeforeNext", func(t *testing.T) {
		t.Parallel()

		in, seq := setup(t)
		expect := errors.New("<error>")

		in.BeforeNext(func(string) error {
			return expect
		})

		if _, err := seq.Next(t.Context()); err != expect {
			t.Fatalf("unexpected error: got %v, want %v", err, expect)
		}

		// The failed call must not have allocated a value.
		in.BeforeNext(nil)

		v, err := seq.Next(t.Context())
		if err != nil {
			t.Fatal(err)
		}
		if v != 0 {
			t.Fatalf("unexpected value: got %d, want 0", v)
		}
	})

	t.Run("AfterNext", func(t *testing.T) {
		t.Parallel()

		in, seq := setup(t)

		var values []int64
		in.AfterNext(func(_ string, v int64) error {
			values = append(values, v)
			return nil
		})

		for range 3 {
			if _, err := seq.Next(t.Context()); err != nil {
				t.Fatal(err)
			}
		}

		if len(values) != 3 {
			t.Fatalf("unexpected number of calls: got %d, want 3", len(values))
		}
	})

	t.Run("BeforeReset", func(t *testing.T) {
		t.Parallel()

		in, seq := setup(t)
		expect := errors.New("<error>")

		in.BeforeReset(func(string) error {
			return expect
		})

		if _, err := seq.Reset(t.Context()); err != expect {
			t.Fatalf("unexpected error: got %v, want %v", err, expect)
		}
	})

	t.Run("it passes the store through unchanged when the interceptor is nil", func(t *testing.T) {
		t.Parallel()

		store := &memoryseq.Store{}

		if got := WithInterceptor(store, nil); got != Store(store) {
			t.Fatal("expected the store to be returned unchanged")
		}
	})
}
