package pgseq_test

import (
	"context"
	"database/sql"
	"testing"

	. "github.com/dogmatiq/sequencekit/driver/sql/postgres/pgseq"
	"github.com/dogmatiq/sequencekit/sequence"
	"github.com/dogmatiq/sqltest"
)

func TestStore(t *testing.T) {
	db := setup(t)

	sequence.RunTests(
		t,
		&Store{
			DB: db,
		},
	)
}

func BenchmarkStore(b *testing.B) {
	db := setup(b)

	sequence.RunBenchmarks(
		b,
		&Store{
			DB: db,
		},
	)
}

func setup(t testing.TB) *sql.DB {
	ctx := context.Background()

	database, err := sqltest.NewDatabase(ctx, sqltest.PGXDriver, sqltest.PostgreSQL)
	if err != nil {
		t.Fatal(err)
	}

	db, err := database.Open()
	if err != nil {
		t.Fatal(err)
	}

	if err := CreateSchema(ctx, db); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatal(err)
		}

		if err := database.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return db
}
