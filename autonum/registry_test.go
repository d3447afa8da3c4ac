package autonum_test

import (
	"errors"
	"slices"
	"sync"
	"testing"

	. "github.com/dogmatiq/sequencekit/autonum"
	"github.com/dogmatiq/sequencekit/driver/memory/memoryseq"
	"github.com/dogmatiq/sequencekit/sequence"
	"github.com/google/go-cmp/cmp"
)

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("it rejects an empty entity name", func(t *testing.T) {
		t.Parallel()

		reg := &Registry{Store: &memoryseq.Store{}}

		err := reg.Register("")
		if !IsInvalidConfig(err) {
			t.Fatalf("unexpected error: got %v, want InvalidConfigError", err)
		}
	})

	t.Run("it rejects an empty field name", func(t *testing.T) {
		t.Parallel()

		reg := &Registry{Store: &memoryseq.Store{}}

		err := reg.Register("user", WithField(""))
		if !IsInvalidConfig(err) {
			t.Fatalf("unexpected error: got %v, want InvalidConfigError", err)
		}
	})

	t.Run("it rejects a zero increment step", func(t *testing.T) {
		t.Parallel()

		reg := &Registry{Store: &memoryseq.Store{}}

		err := reg.Register("user", WithStep(0))
		if !IsInvalidConfig(err) {
			t.Fatalf("unexpected error: got %v, want InvalidConfigError", err)
		}
	})

	t.Run("it treats identical re-registration as a no-op", func(t *testing.T) {
		t.Parallel()

		reg := &Registry{Store: &memoryseq.Store{}}

		for range 2 {
			if err := reg.Register("user", WithStart(3)); err != nil {
				t.Fatal(err)
			}
		}

		v, err := reg.Allocate(t.Context(), "user", "")
		if err != nil {
			t.Fatal(err)
		}
		if v != 3 {
			t.Fatalf("unexpected value: got %d, want 3", v)
		}
	})

	t.Run("it rejects re-registration with a different configuration", func(t *testing.T) {
		t.Parallel()

		reg := &Registry{Store: &memoryseq.Store{}}

		if err := reg.Register("user"); err != nil {
			t.Fatal(err)
		}

		err := reg.Register("user", WithStart(100))
		if !IsDuplicateBinding(err) {
			t.Fatalf("unexpected error: got %v, want DuplicateBindingError", err)
		}
	})
}

func TestRegistry_Allocate(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T, options ...BindingOption) *Registry {
		t.Helper()

		reg := &Registry{Store: &memoryseq.Store{}}

		t.Cleanup(func() {
			if err := reg.Close(); err != nil {
				t.Error(err)
			}
		})

		if err := reg.Register("user", options...); err != nil {
			t.Fatal(err)
		}

		return reg
	}

	expectValues := func(t *testing.T, reg *Registry, field string, want ...int64) {
		t.Helper()

		for _, expect := range want {
			actual, err := reg.Allocate(t.Context(), "user", field)
			if err != nil {
				t.Fatal(err)
			}
			if actual != expect {
				t.Fatalf("unexpected value: got %d, want %d", actual, expect)
			}
		}
	}

	t.Run("it allocates sequential values from zero by default", func(t *testing.T) {
		t.Parallel()

		reg := setup(t)
		expectValues(t, reg, "", 0, 1, 2)
	})

	t.Run("it targets the default identifier field", func(t *testing.T) {
		t.Parallel()

		reg := setup(t)
		expectValues(t, reg, "", 0)
		expectValues(t, reg, DefaultField, 1)
	})

	t.Run("it allocates the configured start value first", func(t *testing.T) {
		t.Parallel()

		reg := setup(t, WithStart(3))
		expectValues(t, reg, "", 3, 4)
	})

	t.Run("it advances by the configured step", func(t *testing.T) {
		t.Parallel()

		reg := setup(t, WithStep(5))
		expectValues(t, reg, "", 0, 5, 10)
	})

	t.Run("it fails if no binding is registered", func(t *testing.T) {
		t.Parallel()

		reg := setup(t)

		if _, err := reg.Allocate(t.Context(), "order", ""); !IsUnknownBinding(err) {
			t.Fatalf("unexpected error: got %v, want UnknownBindingError", err)
		}

		if _, err := reg.Allocate(t.Context(), "user", "orderNo"); !IsUnknownBinding(err) {
			t.Fatalf("unexpected error: got %v, want UnknownBindingError", err)
		}
	})

	t.Run("it keeps counters for different fields of the same entity independent", func(t *testing.T) {
		t.Parallel()

		reg := setup(t)

		if err := reg.Register("user", WithField("userId"), WithStart(1000)); err != nil {
			t.Fatal(err)
		}

		expectValues(t, reg, "", 0, 1, 2)
		expectValues(t, reg, "userId", 1000, 1001)
		expectValues(t, reg, "", 3)
	})

	t.Run("it resumes from durable state", func(t *testing.T) {
		t.Parallel()

		// Two registries sharing a store model a process restart: the second
		// must continue where the first left off.
		store := &memoryseq.Store{}

		reg1 := &Registry{Store: store}
		if err := reg1.Register("user"); err != nil {
			t.Fatal(err)
		}

		for expect := range int64(3) {
			v, err := reg1.Allocate(t.Context(), "user", "")
			if err != nil {
				t.Fatal(err)
			}
			if v != expect {
				t.Fatalf("unexpected value: got %d, want %d", v, expect)
			}
		}

		reg2 := &Registry{Store: store}
		if err := reg2.Register("user"); err != nil {
			t.Fatal(err)
		}

		v, err := reg2.Allocate(t.Context(), "user", "")
		if err != nil {
			t.Fatal(err)
		}
		if v != 3 {
			t.Fatalf("unexpected value: got %d, want 3", v)
		}
	})

	t.Run("it never allocates the same value to concurrent callers", func(t *testing.T) {
		t.Parallel()

		const allocations = 50

		reg := setup(t)

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

				v, err := reg.Allocate(t.Context(), "user", "")

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
			expect = append(expect, i)
		}

		slices.Sort(actual)

		if diff := cmp.Diff(expect, actual); diff != "" {
			t.Fatalf("allocated values contain a duplicate or a gap (-want +got):\n%s", diff)
		}
	})

	t.Run("it propagates store unavailability without substituting a value", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("<error>")

		// The interceptor's hooks take effect on the registry's cached
		// sequence handle even when they are changed after it is opened.
		in := &sequence.Interceptor{}
		in.BeforeNext(func(name string) error {
			return sequence.UnavailableError{
				Sequence: name,
				Cause:    cause,
			}
		})

		reg := &Registry{
			Store: sequence.WithInterceptor(&memoryseq.Store{}, in),
		}
		if err := reg.Register("user"); err != nil {
			t.Fatal(err)
		}

		v, err := reg.Allocate(t.Context(), "user", "")
		if !sequence.IsUnavailable(err) {
			t.Fatalf("unexpected error: got %v, want UnavailableError", err)
		}
		if !errors.Is(err, cause) {
			t.Fatalf("expected error to wrap the underlying cause, got %v", err)
		}
		if v != 0 {
			t.Fatalf("expected no value to be returned, got %d", v)
		}

		// The failure must not have consumed a value.
		in.BeforeNext(nil)

		v, err = reg.Allocate(t.Context(), "user", "")
		if err != nil {
			t.Fatal(err)
		}
		if v != 0 {
			t.Fatalf("unexpected value: got %d, want 0", v)
		}
	})
}

func TestRegistry_NextCount(t *testing.T) {
	t.Parallel()

	reg := &Registry{Store: &memoryseq.Store{}}
	if err := reg.Register("user", WithStart(5), WithStep(2)); err != nil {
		t.Fatal(err)
	}

	t.Run("it returns the start value before any allocation", func(t *testing.T) {
		v, err := reg.NextCount(t.Context(), "user", "")
		if err != nil {
			t.Fatal(err)
		}
		if v != 5 {
			t.Fatalf("unexpected value: got %d, want 5", v)
		}
	})

	t.Run("it does not consume the value", func(t *testing.T) {
		v, err := reg.Allocate(t.Context(), "user", "")
		if err != nil {
			t.Fatal(err)
		}
		if v != 5 {
			t.Fatalf("unexpected value: got %d, want 5", v)
		}
	})

	t.Run("it previews the value after an allocation", func(t *testing.T) {
		v, err := reg.NextCount(t.Context(), "user", "")
		if err != nil {
			t.Fatal(err)
		}
		if v != 7 {
			t.Fatalf("unexpected value: got %d, want 7", v)
		}
	})

	t.Run("it fails if no binding is registered", func(t *testing.T) {
		if _, err := reg.NextCount(t.Context(), "order", ""); !IsUnknownBinding(err) {
			t.Fatalf("unexpected error: got %v, want UnknownBindingError", err)
		}
	})
}

func TestRegistry_ResetCount(t *testing.T) {
	t.Parallel()

	reg := &Registry{Store: &memoryseq.Store{}}
	if err := reg.Register("user", WithStart(3)); err != nil {
		t.Fatal(err)
	}

	for _, expect := range []int64{3, 4, 5} {
		v, err := reg.Allocate(t.Context(), "user", "")
		if err != nil {
			t.Fatal(err)
		}
		if v != expect {
			t.Fatalf("unexpected value: got %d, want %d", v, expect)
		}
	}

	t.Run("it rewinds the counter to its start value", func(t *testing.T) {
		v, err := reg.ResetCount(t.Context(), "user", "")
		if err != nil {
			t.Fatal(err)
		}
		if v != 3 {
			t.Fatalf("unexpected value: got %d, want 3", v)
		}
	})

	t.Run("it is idempotent", func(t *testing.T) {
		v, err := reg.ResetCount(t.Context(), "user", "")
		if err != nil {
			t.Fatal(err)
		}
		if v != 3 {
			t.Fatalf("unexpected value: got %d, want 3", v)
		}
	})

	t.Run("the next allocation returns the start value again", func(t *testing.T) {
		v, err := reg.Allocate(t.Context(), "user", "")
		if err != nil {
			t.Fatal(err)
		}
		if v != 3 {
			t.Fatalf("unexpected value: got %d, want 3", v)
		}
	})

	t.Run("it fails if no binding is registered", func(t *testing.T) {
		if _, err := reg.ResetCount(t.Context(), "order", ""); !IsUnknownBinding(err) {
			t.Fatalf("unexpected error: got %v, want UnknownBindingError", err)
		}
	})
}
