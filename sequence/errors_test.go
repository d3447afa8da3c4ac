package sequence_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/dogmatiq/sequencekit/sequence"
)

func TestIsUnavailable(t *testing.T) {
	t.Parallel()

	cause := errors.New("<cause>")
	err := UnavailableError{
		Sequence: "test",
		Cause:    cause,
	}

	if !IsUnavailable(err) {
		t.Fatal("expected error to be recognized as an unavailability error")
	}

	if !IsUnavailable(fmt.Errorf("wrapped: %w", err)) {
		t.Fatal("expected wrapped error to be recognized as an unavailability error")
	}

	if !errors.Is(err, cause) {
		t.Fatal("expected error to wrap its cause")
	}

	if IsUnavailable(cause) {
		t.Fatal("did not expect an arbitrary error to be recognized as an unavailability error")
	}
}
