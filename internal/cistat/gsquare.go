package cistat

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jndunlap/csl/internal/counter"
	"github.com/jndunlap/csl/internal/varset"
)

// Result carries the G² statistic and its degrees of freedom for a
// single I(x;y|z) test.
type Result struct {
	G2 float64
	DF int
}

// GSquare computes the G² likelihood-ratio statistic and degrees of
// freedom for the independence test I(x;y|z):
//
//	G² = 2 * Σ N(x,y,z) * ln( N(x,y,z)*N(z) / (N(x,z)*N(y,z)) )
//
// summed only over cells with N(x,y,z) > 0. Strata with N(z) = 0
// contribute to neither G² nor df. df = (|X|-1)(|Y|-1) times the number
// of strata actually observed (N(z) > 0), not the nominal product of
// conditioning-variable arities.
func GSquare(c counter.Counter, x, y varset.Var, z varset.Set) Result {
	vars := make([]varset.Var, 0, z.Len()+2)
	vars = append(vars, x, y)
	vars = append(vars, z.Slice()...)

	table := c.Counts(vars)
	dimsX := c.Arity(x)
	dimsY := c.Arity(y)
	zSize := table.TailSize()

	var g2 float64
	effectiveStrata := 0
	nxz := make([]uint64, dimsX)
	nyz := make([]uint64, dimsY)
	cell := make([]uint64, dimsX*dimsY)

	for zi := 0; zi < zSize; zi++ {
		for i := range nxz {
			nxz[i] = 0
		}
		for i := range nyz {
			nyz[i] = 0
		}
		var nz uint64
		for xi := 0; xi < dimsX; xi++ {
			for yi := 0; yi < dimsY; yi++ {
				n := uint64(table.AtFlat(xi, yi, zi))
				cell[xi*dimsY+yi] = n
				nz += n
				nxz[xi] += n
				nyz[yi] += n
			}
		}
		if nz == 0 {
			continue
		}
		effectiveStrata++
		nzf := float64(nz)
		for xi := 0; xi < dimsX; xi++ {
			if nxz[xi] == 0 {
				continue
			}
			for yi := 0; yi < dimsY; yi++ {
				n := cell[xi*dimsY+yi]
				if n == 0 {
					continue
				}
				if nyz[yi] == 0 {
					continue
				}
				num := float64(n) * nzf
				den := float64(nxz[xi]) * float64(nyz[yi])
				g2 += 2.0 * float64(n) * math.Log(num/den)
			}
		}
	}

	return Result{G2: g2, DF: (dimsX - 1) * (dimsY - 1) * effectiveStrata}
}

// PValue converts a G² result to a p-value via the chi-squared survival
// function. Exact-zero G² and zero degrees of freedom both map to p=1.0:
// an under-determined test (no strata observed) is treated as
// independence rather than a division-by-zero error.
func PValue(r Result) float64 {
	if r.DF <= 0 {
		return 1.0
	}
	if r.G2 == 0 {
		return 1.0
	}
	dist := distuv.ChiSquared{K: float64(r.DF)}
	return 1.0 - dist.CDF(r.G2)
}
