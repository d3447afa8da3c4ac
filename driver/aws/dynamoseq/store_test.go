package dynamoseq_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	. "github.com/dogmatiq/sequencekit/driver/aws/dynamoseq"
	"github.com/dogmatiq/sequencekit/driver/aws/internal/dynamox"
	"github.com/dogmatiq/sequencekit/internal/x/xtesting"
	"github.com/dogmatiq/sequencekit/sequence"
)

func TestStore(t *testing.T) {
	client, table := setup(t)

	sequence.RunTests(
		t,
		NewStore(client, table),
	)
}

func BenchmarkStore(b *testing.B) {
	client, table := setup(b)

	sequence.RunBenchmarks(
		b,
		NewStore(client, table),
	)
}

func setup(t testing.TB) (*dynamodb.Client, string) {
	client := dynamox.NewTestClient(t)
	table := "sequences"

	t.Cleanup(func() {
		ctx := xtesting.ContextForCleanup(t)

		if err := dynamox.DeleteTableIfExists(ctx, client, table); err != nil {
			t.Error(err)
		}
	})

	return client, table
}
