package counter

import "github.com/jndunlap/csl/internal/varset"

// CTCounter is a dense contingency-table counter over a variable-major
// observation table: one contiguous []byte row per variable, so joint
// counts over a set of variables access contiguous columns. Arities are
// derived from the data: the largest observed category code for a
// variable, plus one.
type CTCounter struct {
	rows  [][]byte
	m     int
	arity []int
}

// NewCTCounter builds a CTCounter from n variable-major rows, each of
// length m. Category codes must be <= 255.
func NewCTCounter(rows [][]byte) *CTCounter {
	n := len(rows)
	m := 0
	if n > 0 {
		m = len(rows[0])
	}
	arity := make([]int, n)
	for v, row := range rows {
		var max byte
		for _, b := range row {
			if b > max {
				max = b
			}
		}
		arity[v] = int(max) + 1
	}
	return &CTCounter{rows: rows, m: m, arity: arity}
}

func (c *CTCounter) N() int { return len(c.rows) }
func (c *CTCounter) M() int { return c.m }

func (c *CTCounter) Arity(v varset.Var) int { return c.arity[v] }

// Counts scans every observation once per call, accumulating a joint
// count for the requested variables. Materialize-on-demand, no
// persistent cache, since the discovery algorithms only ever request
// small, short-lived conditioning sets.
func (c *CTCounter) Counts(vars []varset.Var) *Table {
	dims := make([]int, len(vars))
	for i, v := range vars {
		dims[i] = c.arity[v]
	}
	t := NewTable(vars, dims)
	if len(vars) == 0 {
		if c.m > 0 {
			t.data[0] = uint32(c.m)
		}
		return t
	}
	rows := make([][]byte, len(vars))
	for i, v := range vars {
		rows[i] = c.rows[v]
	}
	indices := make([]int, len(vars))
	for obs := 0; obs < c.m; obs++ {
		for i, row := range rows {
			indices[i] = int(row[obs])
		}
		t.Incr(indices)
	}
	return t
}
