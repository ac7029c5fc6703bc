package markerindex_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/henderiw/markeridx/pkg/difftest"
)

// TestRandomizedAgainstOracle runs seeded random insert/splice/delete
// sequences and compares ranges, tree structure and intersection queries
// with the plain-list model after every step.
func TestRandomizedAgainstOracle(t *testing.T) {
	runs := 2000
	if testing.Short() {
		runs = 200
	}
	runner := difftest.New(difftest.WithOps(50), difftest.WithQueries(10))
	for seed := int64(1); seed <= int64(runs); seed++ {
		if err := runner.Run(seed); err != nil {
			var mismatch *difftest.MismatchError
			if errors.As(err, &mismatch) {
				t.Logf("ops:\n%s", pretty.Sprint(mismatch.Ops))
			}
			require.NoError(t, err)
		}
	}
}

func TestRandomizedLongRuns(t *testing.T) {
	if testing.Short() {
		t.Skip("long randomized runs")
	}
	runner := difftest.New(difftest.WithOps(500), difftest.WithQueries(50))
	for seed := int64(10000); seed < 10050; seed++ {
		require.NoError(t, runner.Run(seed))
	}
}
