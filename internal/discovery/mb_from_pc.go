package discovery

import (
	"github.com/jndunlap/csl/internal/data"
	"github.com/jndunlap/csl/internal/varset"
)

// ExpandToMB derives MB(t) from a PC-family result, for the --discover-mb
// flag applied to a topological algorithm. MB(t) is PC(t) plus any
// spouse y: a variable in PC(x) for some x in PC(t), not already in the
// blanket, that remains dependent on t given the blanket built so far
// (PC(t) plus the spouses already added) together with x. x's are
// visited in ascending order, so a spouse added for one x is part of
// the conditioning set for later ones.
func ExpandToMB(d *data.Data, t varset.Var, algo Algorithm, kmax int, pc PCResult, dist *Distribution) varset.Set {
	mb := pc.PC.Clone()
	for _, x := range pc.PC.Slice() {
		pcx := RunTopologicalPC(d, x, algo, kmax, dist).PC
		for _, y := range pcx.Slice() {
			if y == t || mb.Contains(y) {
				continue
			}
			cond := mb.WithElement(x)
			if !d.IsIndependent(t, y, cond) {
				mb.Insert(y)
			}
		}
	}
	return mb
}
