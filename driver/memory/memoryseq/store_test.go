package memoryseq_test

import (
	"testing"

	. "github.com/dogmatiq/sequencekit/driver/memory/memoryseq"
	"github.com/dogmatiq/sequencekit/sequence"
)

func TestStore(t *testing.T) {
	sequence.RunTests(
		t,
		&Store{},
	)
}

func BenchmarkStore(b *testing.B) {
	sequence.RunBenchmarks(
		b,
		&Store{},
	)
}
