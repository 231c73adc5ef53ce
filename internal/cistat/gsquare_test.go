package cistat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jndunlap/csl/internal/counter"
	"github.com/jndunlap/csl/internal/varset"
)

// buildRows repeats each assignment in freqs (indexed by variable) count
// times, producing an exact finite sample with no noise -- so the
// resulting G²/p-value is fully determined by the designed joint
// distribution, not by sampling variance.
func buildRows(nvars int, freqs [][]int, counts []int) [][]byte {
	rows := make([][]byte, nvars)
	total := 0
	for _, c := range counts {
		total += c
	}
	for v := 0; v < nvars; v++ {
		rows[v] = make([]byte, 0, total)
	}
	for i, assignment := range freqs {
		for k := 0; k < counts[i]; k++ {
			for v := 0; v < nvars; v++ {
				rows[v] = append(rows[v], byte(assignment[v]))
			}
		}
	}
	return rows
}

func TestGSquareExactIndependence(t *testing.T) {
	// X, Y binary, independent and uniform: P(X,Y) = P(X)P(Y) exactly,
	// realized with exact proportional counts (25 each of the 4 cells).
	freqs := [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	counts := []int{25, 25, 25, 25}
	rows := buildRows(2, freqs, counts)
	c := counter.NewCTCounter(rows)

	res := GSquare(c, 0, 1, varset.New(2))
	assert.InDelta(t, 0.0, res.G2, 1e-9, "exact-independent sample must give G²=0")
	assert.Equal(t, 1, res.DF)
	assert.Equal(t, 1.0, PValue(res))
}

func TestGSquareStrongDependence(t *testing.T) {
	// X == Y exactly (perfect dependence), large sample.
	freqs := [][]int{{0, 0}, {1, 1}}
	counts := []int{100, 100}
	rows := buildRows(2, freqs, counts)
	c := counter.NewCTCounter(rows)

	res := GSquare(c, 0, 1, varset.New(2))
	require.Greater(t, res.G2, 0.0)
	p := PValue(res)
	assert.Less(t, p, 0.01, "perfect dependence must be overwhelmingly significant")
}

func TestGSquareSymmetric(t *testing.T) {
	freqs := [][]int{{0, 0, 0}, {0, 1, 0}, {1, 0, 1}, {1, 1, 1}, {0, 0, 1}, {1, 1, 0}}
	counts := []int{10, 7, 4, 9, 3, 5}
	rows := buildRows(3, freqs, counts)
	c := counter.NewCTCounter(rows)

	z := varset.FromSlice(3, []varset.Var{2})
	r1 := GSquare(c, 0, 1, z)
	r2 := GSquare(c, 1, 0, z)
	assert.Equal(t, r1.DF, r2.DF)
	assert.InDelta(t, r1.G2, r2.G2, 1e-9)
	assert.Equal(t, PValue(r1), PValue(r2))
}

func TestGSquareZeroStratumExcludedFromDF(t *testing.T) {
	// z is never observed to take value 1 anywhere in this sample, so
	// only one effective stratum exists regardless of arity.
	freqs := [][]int{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 1, 0}}
	counts := []int{10, 10, 10, 10}
	rows := buildRows(3, freqs, counts)
	c := counter.NewCTCounter(rows)
	z := varset.FromSlice(3, []varset.Var{2})
	res := GSquare(c, 0, 1, z)
	assert.Equal(t, 1, res.DF, "only one z value was ever observed")

	empty := counter.NewCTCounter([][]byte{{}, {}, {}})
	res2 := GSquare(empty, 0, 1, z)
	assert.Equal(t, 0, res2.DF)
	assert.Equal(t, 1.0, PValue(res2), "under-determined df treated as independence")
}
