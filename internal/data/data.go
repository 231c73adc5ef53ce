package data

import (
	"math"

	"github.com/jndunlap/csl/internal/cistat"
	"github.com/jndunlap/csl/internal/clierr"
	"github.com/jndunlap/csl/internal/counter"
	"github.com/jndunlap/csl/internal/varset"
)

// Data is the immutable facade over a counter, variable names, and the
// significance threshold alpha. Every discovery algorithm is written
// against this type, never against counter.Counter directly.
type Data struct {
	counter counter.Counter
	names   []string
	index   map[string]varset.Var
	alpha   float64
}

// New builds a Data facade. names must have exactly counter.N() entries
// and be unique; alpha must lie in (0, 1).
func New(c counter.Counter, names []string, alpha float64) (*Data, error) {
	if len(names) != c.N() {
		return nil, clierr.Input("data: got %d variable names for %d variables", len(names), c.N())
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, clierr.Configuration("data: alpha must lie in (0,1), got %v", alpha)
	}
	index := make(map[string]varset.Var, len(names))
	for i, name := range names {
		if _, dup := index[name]; dup {
			return nil, clierr.Input("data: duplicate variable name %q", name)
		}
		index[name] = varset.Var(i)
	}
	return &Data{counter: c, names: names, index: index, alpha: alpha}, nil
}

// N returns the number of variables.
func (d *Data) N() int { return d.counter.N() }

// Alpha returns the configured significance level.
func (d *Data) Alpha() float64 { return d.alpha }

// VarName returns the symbolic name of v.
func (d *Data) VarName(v varset.Var) string { return d.names[v] }

// VarIndex returns the variable identifier for name, or false if unknown.
func (d *Data) VarIndex(name string) (varset.Var, bool) {
	v, ok := d.index[name]
	return v, ok
}

// Universe returns the full variable set [0, N), excluding none.
func (d *Data) Universe() varset.Set {
	s := varset.New(d.N())
	for v := 0; v < d.N(); v++ {
		s.Insert(varset.Var(v))
	}
	return s
}

// PValue computes I(x;y|z) via the G² oracle (internal/cistat).
func (d *Data) PValue(x, y varset.Var, z varset.Set) float64 {
	return cistat.PValue(cistat.GSquare(d.counter, x, y, z))
}

// AssocScore is 1 - p-value: larger means more associated.
func (d *Data) AssocScore(x, y varset.Var, z varset.Set) float64 {
	return 1.0 - d.PValue(x, y, z)
}

// IsIndependent applies the oracle's boundary rule exactly: p = alpha is
// dependent, so independence requires strict p > alpha.
func (d *Data) IsIndependent(x, y varset.Var, z varset.Set) bool {
	return d.PValue(x, y, z) > d.alpha
}

// IsIndependentScore reports whether an association score corresponds to
// independence under the same strict boundary rule as IsIndependent:
// score < 1-alpha iff p > alpha.
func (d *Data) IsIndependentScore(score float64) bool {
	return score < 1.0-d.alpha
}

// ClampToSize bounds a conditioning-set radius to the size of the ground
// set it ranges over: min(kmax, |candidate set|).
func ClampToSize(kmax int, groundSize int) int {
	if kmax < 0 {
		return 0
	}
	if kmax > groundSize {
		return groundSize
	}
	return kmax
}

// MinAssocScore returns a* = min over subsets C of given with |C| <= kmax
// of AssocScore(x, y, C), aborting as soon as independence is
// established.
func (d *Data) MinAssocScore(x, y varset.Var, given varset.Set, kmax int) float64 {
	score, _ := d.minAssocScore(x, y, given, varset.Set{}, kmax)
	return score
}

// MinAssocScoreSeeded is MinAssocScore, but every enumerated subset is
// unioned with seed before testing; enumeration size is still measured
// over given, not given+seed.
func (d *Data) MinAssocScoreSeeded(x, y varset.Var, given, seed varset.Set, kmax int) float64 {
	score, _ := d.minAssocScore(x, y, given, seed, kmax)
	return score
}

// MinAssocScoreSubset additionally returns an argmin subset of given.
// Ties are broken by combinadic enumeration order.
func (d *Data) MinAssocScoreSubset(x, y varset.Var, given varset.Set, kmax int) (float64, varset.Set) {
	return d.minAssocScore(x, y, given, varset.Set{}, kmax)
}

func (d *Data) minAssocScore(x, y varset.Var, given, seed varset.Set, kmax int) (float64, varset.Set) {
	maxR := ClampToSize(kmax, given.Len())
	minScore := math.MaxFloat64
	var argmin varset.Set
	for r := 0; r <= maxR; r++ {
		it := varset.NewIter(given, r)
		for {
			s, ok := it.Next()
			if !ok {
				break
			}
			tested := s
			if !seed.IsEmpty() {
				tested = s.Union(seed)
			}
			score := d.AssocScore(x, y, tested)
			if score < minScore {
				minScore = score
				argmin = s
			}
			if d.IsIndependentScore(minScore) {
				return minScore, argmin
			}
		}
	}
	return minScore, argmin
}

// IsIndependentAnySubset reports whether any subset C of given with
// |C| <= kmax renders x, y independent: minAssocScore < 1-alpha (the
// strict rule of IsIndependentScore).
func (d *Data) IsIndependentAnySubset(x, y varset.Var, given varset.Set, kmax int) bool {
	return d.IsIndependentScore(d.MinAssocScore(x, y, given, kmax))
}

// IsIndependentAnySubsetSeeded is IsIndependentAnySubset with every
// enumerated subset unioned with seed before testing.
func (d *Data) IsIndependentAnySubsetSeeded(x, y varset.Var, given, seed varset.Set, kmax int) bool {
	return d.IsIndependentScore(d.MinAssocScoreSeeded(x, y, given, seed, kmax))
}
