package network

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jndunlap/csl/internal/counter"
	"github.com/jndunlap/csl/internal/data"
	"github.com/jndunlap/csl/internal/discovery"
	"github.com/jndunlap/csl/internal/rank"
	"github.com/jndunlap/csl/internal/varset"
)

// starRows builds a 4-variable collider star: L1, L2, L3 are mutually
// independent uniform bits, and H = majority(L1, L2, L3). Every leaf
// is marginally associated with H but marginally independent of the
// other leaves, so PC(Li) = {H} for each leaf, and no single pair of
// leaves determines H (the "tie" sub-strata always leave the third
// leaf's value pinned to H), so PC(H) = {L1, L2, L3}.
func starRows() [][]byte {
	var h, l1, l2, l3 []byte
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			for c := 0; c < 2; c++ {
				ones := a + b + c
				maj := byte(0)
				if ones >= 2 {
					maj = 1
				}
				for k := 0; k < 100; k++ {
					h = append(h, maj)
					l1 = append(l1, byte(a))
					l2 = append(l2, byte(b))
					l3 = append(l3, byte(c))
				}
			}
		}
	}
	return [][]byte{h, l1, l2, l3}
}

func newStarData(t *testing.T) *data.Data {
	t.Helper()
	c := counter.NewCTCounter(starRows())
	d, err := data.New(c, []string{"H", "L1", "L2", "L3"}, 0.05)
	require.NoError(t, err)
	return d
}

func TestAssembleNetworkAgreesAcrossRankCounts(t *testing.T) {
	d := newStarData(t)

	for _, n := range []int{1, 2, 3, 4} {
		var results map[varset.Var]TargetResult
		err := rank.Run(context.Background(), n, func(ctx context.Context, c *rank.Communicator) error {
			r := AssembleNetwork(c, d, discovery.MMPC, 3, false, 2.0)
			if c.Rank() == 0 {
				results = r
			}
			return nil
		})
		require.NoError(t, err)
		require.Len(t, results, 4)

		g := SymmetryCorrect(results)
		for leaf := varset.Var(1); leaf <= 3; leaf++ {
			assert.Truef(t, g.HasEdge(0, leaf), "n=%d: hub must be adjacent to leaf %d", n, leaf)
		}
		assert.False(t, g.HasEdge(1, 2))
		assert.False(t, g.HasEdge(1, 3))
		assert.False(t, g.HasEdge(2, 3))
	}
}

func TestWorkQueueStaticRoundRobin(t *testing.T) {
	targets := []varset.Var{0, 1, 2, 3, 4, 5}
	q := newWorkQueue(2, targets)

	var rank0, rank1 []varset.Var
	for {
		v, ok := q.nextFor(0)
		if !ok {
			break
		}
		rank0 = append(rank0, v)
	}
	for {
		v, ok := q.nextFor(1)
		if !ok {
			break
		}
		rank1 = append(rank1, v)
	}
	assert.Equal(t, []varset.Var{0, 2, 4}, rank0)
	assert.Equal(t, []varset.Var{1, 3, 5}, rank1)
}

func TestWorkQueueStealRespectsThreshold(t *testing.T) {
	targets := make([]varset.Var, 20)
	for i := range targets {
		targets[i] = varset.Var(i)
	}
	q := newWorkQueue(2, targets)
	// Drain rank 0 entirely; rank 1 still has 10 pending.
	for {
		if _, ok := q.nextFor(0); !ok {
			break
		}
	}
	// Ratio 10/1 = 10, above a threshold of 2: steal should succeed.
	_, ok := q.steal(2.0, 0)
	assert.True(t, ok)

	// With a very high threshold, stealing never triggers.
	q2 := newWorkQueue(2, targets)
	for {
		if _, ok := q2.nextFor(0); !ok {
			break
		}
	}
	_, ok = q2.steal(1000.0, 0)
	assert.False(t, ok)
}
