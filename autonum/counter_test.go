package autonum_test

import (
	"testing"

	. "github.com/dogmatiq/sequencekit/autonum"
	"github.com/dogmatiq/sequencekit/driver/memory/memoryseq"
)

func TestCounter(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) *Registry {
		t.Helper()

		reg := &Registry{Store: &memoryseq.Store{}}

		if err := reg.Register("ticket", WithField("number"), WithStart(1)); err != nil {
			t.Fatal(err)
		}

		return reg
	}

	t.Run("it fails if no binding is registered", func(t *testing.T) {
		t.Parallel()

		reg := setup(t)

		if _, err := reg.Counter("ticket", "priority"); !IsUnknownBinding(err) {
			t.Fatalf("unexpected error: got %v, want UnknownBindingError", err)
		}
	})

	t.Run("it resolves an empty field to the default identifier field", func(t *testing.T) {
		t.Parallel()

		reg := setup(t)

		if err := reg.Register("ticket"); err != nil {
			t.Fatal(err)
		}

		c, err := reg.Counter("ticket", "")
		if err != nil {
			t.Fatal(err)
		}

		if c.Field() != DefaultField {
			t.Fatalf("unexpected field: got %q, want %q", c.Field(), DefaultField)
		}
	})

	t.Run("it exposes the per-record operations", func(t *testing.T) {
		t.Parallel()

		reg := setup(t)

		c, err := reg.Counter("ticket", "number")
		if err != nil {
			t.Fatal(err)
		}

		if c.Entity() != "ticket" {
			t.Fatalf("unexpected entity: got %q, want %q", c.Entity(), "ticket")
		}

		if v, err := c.NextCount(t.Context()); err != nil {
			t.Fatal(err)
		} else if v != 1 {
			t.Fatalf("unexpected value: got %d, want 1", v)
		}

		for _, expect := range []int64{1, 2, 3} {
			v, err := c.Allocate(t.Context())
			if err != nil {
				t.Fatal(err)
			}
			if v != expect {
				t.Fatalf("unexpected value: got %d, want %d", v, expect)
			}
		}

		if v, err := c.ResetCount(t.Context()); err != nil {
			t.Fatal(err)
		} else if v != 1 {
			t.Fatalf("unexpected value: got %d, want 1", v)
		}

		if v, err := c.Allocate(t.Context()); err != nil {
			t.Fatal(err)
		} else if v != 1 {
			t.Fatalf("unexpected value: got %d, want 1", v)
		}
	})
}
