package sequence_test

import (
	"strings"
	"testing"

	"github.com/dogmatiq/sequencekit/driver/memory/memoryseq"
	. "github.com/dogmatiq/sequencekit/sequence"
)

func TestWithNameTransform(t *testing.T) {
	var underlying memoryseq.Store

	store := WithNameTransform(&underlying, strings.ToUpper)

	seq, err := store.Open(t.Context(), "test")
	if err != nil {
		t.Fatal(err)
	}
	defer seq.Close()

	t.Run("it transforms the name", func(t *testing.T) {
		if _, err := seq.Next(t.Context()); err != nil {
			t.Fatal(err)
		}

		u, err := underlying.Open(t.Context(), "TEST")
		if err != nil {
			t.Fatal(err)
		}
		defer u.Close()

		got, err := u.Peek(t.Context())
		if err != nil {
			t.Fatal(err)
		}

		if want := int64(1); got != want {
			t.Errorf("unexpected value: got %d, want %d", got, want)
		}
	})

	t.Run("it reports the untransformed name", func(t *testing.T) {
		if got, want := seq.Name(), "test"; got != want {
			t.Errorf("unexpected name: got %q, want %q", got, want)
		}
	})
}
