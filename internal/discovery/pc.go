package discovery

import (
	"sort"

	"github.com/jndunlap/csl/internal/data"
	"github.com/jndunlap/csl/internal/varset"
)

// PCResult is the outcome of a topological PC discovery run: the
// neighborhood plus the sepset found for every candidate that was
// screened out. internal/network's v-structure orientation treats an
// unshielded triple u-w-v as a collider unless some sepset recorded for
// the pair (u,v) during either's PC discovery run contains w.
type PCResult struct {
	PC      varset.Set
	Sepsets map[varset.Var]varset.Set
}

// RunTopologicalPC computes PC(t) for MMPC, HITON, SI-HITON-PC, and
// GetPC: maintain CPC and a queue of remaining
// candidates ordered by decreasing unconditional association with t
// (ties by lowest index); admit the next candidate iff it is not
// isIndependentAnySubset of t over subsets of CPC bounded by kmax,
// then re-screen CPC's members by the same test against the updated
// CPC, either immediately (HITON, SI-HITON-PC) or once at the end
// (MMPC, GetPC, with GetPC running one additional rescreen pass).
//
// isIndependentAnySubset's combinadic enumeration over CPC is the
// dominant cost of this family: a non-nil dist runs it through
// data.Data.MinAssocScoreSubsetDistributed instead of
// MinAssocScoreSubset, sharing the subset stream across dist.Comm's
// ranks. A nil dist runs the sequential subset search on the calling
// goroutine alone.
func RunTopologicalPC(d *data.Data, t varset.Var, algo Algorithm, kmax int, dist *Distribution) PCResult {
	universe := d.Universe()
	queue := orderedCandidates(d, t, universe)

	cpc := varset.New(d.N())
	sepsets := make(map[varset.Var]varset.Set)
	interleave := algo.interleaved()

	for _, v := range queue {
		k := kmax
		if k > cpc.Len() {
			k = cpc.Len()
		}
		if score, sep := minAssocScoreSubset(d, t, v, cpc, k, dist); d.IsIndependentScore(score) {
			sepsets[v] = sep
			continue
		}
		cpc.Insert(v)
		delete(sepsets, v)
		if interleave {
			rescreen(d, t, &cpc, sepsets, kmax, dist)
		}
	}

	if !interleave {
		rescreen(d, t, &cpc, sepsets, kmax, dist)
		if algo.extraSepsetPass() {
			rescreen(d, t, &cpc, sepsets, kmax, dist)
		}
	}

	return PCResult{PC: cpc, Sepsets: sepsets}
}

// minAssocScoreSubset dispatches to the sequential or rank-distributed
// subset search depending on whether dist is set.
func minAssocScoreSubset(d *data.Data, t, v varset.Var, cpc varset.Set, k int, dist *Distribution) (float64, varset.Set) {
	if dist == nil {
		return d.MinAssocScoreSubset(t, v, cpc, k)
	}
	return d.MinAssocScoreSubsetDistributed(dist.Comm, t, v, cpc, k, dist.threshold())
}

// orderedCandidates returns every variable other than t, sorted by
// decreasing unconditional association with t, ties broken by lowest
// index -- the same tie-break convention used by the direct family's
// own argmax search, kept consistent across the package.
func orderedCandidates(d *data.Data, t varset.Var, universe varset.Set) []varset.Var {
	candidates := universe.WithoutElement(t).Slice()
	empty := varset.New(universe.Capacity())
	sort.SliceStable(candidates, func(i, j int) bool {
		si := d.AssocScore(t, candidates[i], empty)
		sj := d.AssocScore(t, candidates[j], empty)
		if si != sj {
			return si > sj
		}
		return candidates[i] < candidates[j]
	})
	return candidates
}

// rescreen removes from cpc every member independent of t given some
// subset of the rest of cpc (bounded by kmax), recording the sepset
// that established it.
func rescreen(d *data.Data, t varset.Var, cpc *varset.Set, sepsets map[varset.Var]varset.Set, kmax int, dist *Distribution) {
	for {
		removed := false
		for _, v := range cpc.Slice() {
			rest := cpc.WithoutElement(v)
			k := kmax
			if k > rest.Len() {
				k = rest.Len()
			}
			score, sep := minAssocScoreSubset(d, t, v, rest, k, dist)
			if d.IsIndependentScore(score) {
				cpc.Erase(v)
				sepsets[v] = sep
				removed = true
				break
			}
		}
		if !removed {
			return
		}
	}
}
