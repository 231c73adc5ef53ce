package counter

import "github.com/jndunlap/csl/internal/varset"

// Counter answers joint-count queries over small variable sets. It is
// conceptually read-only: it must never mutate state between the
// collective calls of the rank communicator.
type Counter interface {
	// N returns the number of variables in the dataset.
	N() int
	// M returns the number of observations.
	M() int
	// Arity returns the size of v's dimension in a Table: one more than
	// the largest category code v takes.
	Arity(v varset.Var) int
	// Counts materializes the contingency table over vars, in the given
	// order. Joint counts are only ever requested over sets of size
	// <= maxConditioning+2.
	Counts(vars []varset.Var) *Table
}

// Table is a materialized contingency table: a dense count for every
// joint assignment of the queried variables, in row-major order with
// Vars[0] the most significant dimension.
type Table struct {
	Vars []varset.Var
	Dims []int
	data []uint32
}

// NewTable allocates a zeroed Table over the given variables and arities.
func NewTable(vars []varset.Var, dims []int) *Table {
	size := 1
	for _, d := range dims {
		size *= d
	}
	return &Table{Vars: vars, Dims: dims, data: make([]uint32, size)}
}

// Incr increments the cell for the given per-variable category indices
// (same order as Vars/Dims).
func (t *Table) Incr(indices []int) {
	t.data[t.flatIndex(indices)] += 1
}

func (t *Table) flatIndex(indices []int) int {
	idx := 0
	for i, v := range indices {
		idx = idx*t.Dims[i] + v
	}
	return idx
}

// At returns the count for the given per-variable category indices.
func (t *Table) At(indices []int) uint32 {
	return t.data[t.flatIndex(indices)]
}

// AtFlat returns the count for dimension-0 index xi, dimension-1 index
// yi, and a pre-flattened index over the remaining (trailing) dimensions
// -- the access pattern the G² computation in internal/cistat needs when
// the table was built as [X, Y, Z...].
func (t *Table) AtFlat(xi, yi, zFlat int) uint32 {
	dimsY := 1
	if len(t.Dims) > 1 {
		dimsY = t.Dims[1]
	}
	zSize := 1
	for _, d := range t.Dims[2:] {
		zSize *= d
	}
	return t.data[(xi*dimsY+yi)*zSize+zFlat]
}

// TailSize returns the product of the arities of every dimension after
// the first two (the flattened size of the conditioning-set strata).
func (t *Table) TailSize() int {
	size := 1
	for _, d := range t.Dims[2:] {
		size *= d
	}
	return size
}
