package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jndunlap/csl/internal/counter"
	"github.com/jndunlap/csl/internal/data"
	"github.com/jndunlap/csl/internal/varset"
)

// chainNetworkRows builds a deterministic 4-variable set A, B, C, D
// where A = B exactly, and C, D are independent bits uncorrelated with
// A, B, or each other (every one of the 8 (A,C,D) combinations occurs
// exactly as often as every other). MB(A) is therefore exactly {B}:
// B fully determines A, so conditioning on B makes A constant and
// trivially independent of everything else; C and D never carry any
// association with A at all, conditionally or not.
func chainNetworkRows() [][]byte {
	var a, b, c, e []byte
	for p := 0; p < 2; p++ {
		for r := 0; r < 2; r++ {
			for s := 0; s < 2; s++ {
				for k := 0; k < 50; k++ {
					a = append(a, byte(p))
					b = append(b, byte(p))
					c = append(c, byte(r))
					e = append(e, byte(s))
				}
			}
		}
	}
	return [][]byte{a, b, c, e}
}

func newChainData(t *testing.T) *data.Data {
	t.Helper()
	c := counter.NewCTCounter(chainNetworkRows())
	d, err := data.New(c, []string{"A", "B", "C", "D"}, 0.05)
	require.NoError(t, err)
	return d
}

func TestRunDirectMBFindsExactBlanket(t *testing.T) {
	d := newChainData(t)
	A := varset.Var(0)

	for _, algo := range []Algorithm{GS, IAMB, InterIAMB} {
		mb := RunDirectMB(d, A, algo, 3, nil)
		want := varset.FromSlice(4, []varset.Var{1})
		assert.Truef(t, mb.Equal(want), "%s: MB(A) should be exactly {B}, got %v", algo, mb.Slice())
	}
}

func TestRunDirectMBFixedPoint(t *testing.T) {
	d := newChainData(t)
	A := varset.Var(0)
	mb := RunDirectMB(d, A, GS, 3, nil)

	for _, v := range mb.Slice() {
		rest := mb.WithoutElement(v)
		assert.False(t, d.IsIndependent(A, v, rest), "member %d should remain dependent given the rest of MB", v)
	}
	universe := d.Universe()
	for _, v := range universe.Difference(mb).WithoutElement(A).Slice() {
		assert.True(t, d.IsIndependent(A, v, mb), "non-member %d should be independent of t given MB", v)
	}
}

func TestRunDirectMBAgreesAcrossAlgorithms(t *testing.T) {
	d := newChainData(t)
	A := varset.Var(0)

	gs := RunDirectMB(d, A, GS, 3, nil)
	iamb := RunDirectMB(d, A, IAMB, 3, nil)
	inter := RunDirectMB(d, A, InterIAMB, 3, nil)

	assert.True(t, gs.Equal(iamb))
	assert.True(t, gs.Equal(inter))
}

func TestClampConditioningTruncatesDeterministically(t *testing.T) {
	s := varset.FromSlice(8, []varset.Var{5, 1, 3, 7})
	clamped := clampConditioning(s, 2)
	assert.Equal(t, 2, clamped.Len())
	assert.True(t, clamped.Contains(1))
	assert.True(t, clamped.Contains(3))
	assert.False(t, clamped.Contains(5))

	assert.True(t, clampConditioning(s, 10).Equal(s))
}
