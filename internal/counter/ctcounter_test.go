package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jndunlap/csl/internal/varset"
)

func TestCTCounterArity(t *testing.T) {
	rows := [][]byte{
		{0, 1, 2, 0}, // variable 0: arity 3
		{0, 0, 1, 1}, // variable 1: arity 2
	}
	c := NewCTCounter(rows)
	assert.Equal(t, 2, c.N())
	assert.Equal(t, 4, c.M())
	assert.Equal(t, 3, c.Arity(0))
	assert.Equal(t, 2, c.Arity(1))
}

func TestCTCounterJointCounts(t *testing.T) {
	rows := [][]byte{
		{0, 0, 1, 1, 0},
		{0, 1, 0, 1, 0},
	}
	c := NewCTCounter(rows)
	table := c.Counts([]varset.Var{0, 1})
	require.Equal(t, []int{2, 2}, table.Dims)

	assert.Equal(t, uint32(2), table.At([]int{0, 0})) // (0,0) appears at obs 0 and 4
	assert.Equal(t, uint32(1), table.At([]int{0, 1})) // obs 1
	assert.Equal(t, uint32(1), table.At([]int{1, 0})) // obs 2
	assert.Equal(t, uint32(1), table.At([]int{1, 1})) // obs 3
}

func TestCTCounterEmptyVarsIsGrandTotal(t *testing.T) {
	rows := [][]byte{{0, 1, 0}}
	c := NewCTCounter(rows)
	table := c.Counts(nil)
	assert.Equal(t, uint32(3), table.data[0])
}

func TestCTCounterAtFlatMatchesAt(t *testing.T) {
	rows := [][]byte{
		{0, 0, 1, 1},
		{0, 1, 0, 1},
		{0, 0, 0, 1},
	}
	c := NewCTCounter(rows)
	table := c.Counts([]varset.Var{0, 1, 2})
	zSize := table.TailSize()
	require.Equal(t, 2, zSize)
	for xi := 0; xi < 2; xi++ {
		for yi := 0; yi < 2; yi++ {
			for zi := 0; zi < zSize; zi++ {
				assert.Equal(t, table.At([]int{xi, yi, zi}), table.AtFlat(xi, yi, zi))
			}
		}
	}
}
