package discovery

import (
	"sort"

	"github.com/jndunlap/csl/internal/data"
	"github.com/jndunlap/csl/internal/rank"
	"github.com/jndunlap/csl/internal/varset"
)

// RunDirectMB computes MB(t) for GS, IAMB, and Inter-IAMB. GS and IAMB
// share an identical grow/shrink formula (argmax association, lowest-
// index tie-break, full shrink pass); Inter-IAMB differs only in
// running a full shrink pass after every single addition instead of
// once grow reaches a fixed point.
//
// The direct-MB family never enumerates conditioning subsets (it tests
// each candidate against the whole, kmax-clamped M), so its dominant
// cost is the per-candidate score loop in growStep and the
// per-member independence loop in shrinkPass, not combinadic subset
// search. dist, when non-nil, shards those loops round-robin across
// the ranks of dist.Comm instead of sharding subsets; a nil dist runs
// both loops on the calling goroutine alone.
func RunDirectMB(d *data.Data, t varset.Var, algo Algorithm, kmax int, dist *Distribution) varset.Set {
	universe := d.Universe()
	m := varset.New(d.N())
	interleave := algo == InterIAMB

	for {
		v, ok := growStep(d, t, m, universe, kmax, dist)
		if !ok {
			break
		}
		m.Insert(v)
		if interleave {
			shrinkPass(d, t, &m, kmax, dist)
		}
	}
	if !interleave {
		shrinkPass(d, t, &m, kmax, dist)
	}
	return m
}

// clampConditioning bounds the size of a conditioning set passed to a
// single independence test to kmax. The direct-MB family tests against
// the whole current candidate M, not a subset search over it; when M
// exceeds kmax this keeps a deterministic, reproducible subset by
// truncating to the kmax lowest-index members.
func clampConditioning(m varset.Set, kmax int) varset.Set {
	if m.Len() <= kmax {
		return m
	}
	out := varset.New(m.Capacity())
	n := 0
	for _, v := range m.Slice() {
		if n >= kmax {
			break
		}
		out.Insert(v)
		n++
	}
	return out
}

// growStep finds the single variable outside {t} ∪ m most associated
// with t given m, and reports whether it should be admitted (it is not
// independent of t given m). Ties are broken by lowest variable index,
// which falls out naturally from scanning candidates in ascending
// order and requiring strict improvement to replace the incumbent.
func growStep(d *data.Data, t varset.Var, m, universe varset.Set, kmax int, dist *Distribution) (varset.Var, bool) {
	candidates := universe.Difference(m).WithoutElement(t)
	if candidates.IsEmpty() {
		return 0, false
	}
	cond := clampConditioning(m, kmax)
	scored := scoreCandidates(d, t, candidates.Slice(), cond, dist)

	var best varset.Var
	bestScore := -1.0
	found := false
	for _, sc := range scored {
		if !found || sc.score > bestScore {
			bestScore = sc.score
			best = sc.v
			found = true
		}
	}
	if !found || d.IsIndependent(t, best, cond) {
		return 0, false
	}
	return best, true
}

type candidateScore struct {
	v     varset.Var
	score float64
}

// scoreCandidates computes AssocScore(t, v, cond) for every candidate.
// With a non-nil dist, candidate i is owned by rank i mod Size(), every
// rank scores only its own share, and an all-gather reassembles the
// full list; the list is always returned sorted by ascending v so
// growStep's tie-break is identical regardless of how many ranks
// shared the work.
func scoreCandidates(d *data.Data, t varset.Var, candidates []varset.Var, cond varset.Set, dist *Distribution) []candidateScore {
	var local []candidateScore
	if dist == nil {
		local = make([]candidateScore, len(candidates))
		for i, v := range candidates {
			local[i] = candidateScore{v, d.AssocScore(t, v, cond)}
		}
		return local
	}
	for i, v := range candidates {
		if dist.Comm.IsOwner(i) {
			local = append(local, candidateScore{v, d.AssocScore(t, v, cond)})
		}
	}
	gathered := rank.AllGather(dist.Comm, local)
	all := make([]candidateScore, 0, len(candidates))
	for _, part := range gathered {
		all = append(all, part...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].v < all[j].v })
	return all
}

// shrinkPass removes from m every variable independent of t given the
// rest of m, iterating to a fixed point: removing one member can change
// the conditioning set seen by the independence test on another.
func shrinkPass(d *data.Data, t varset.Var, m *varset.Set, kmax int, dist *Distribution) {
	for {
		members := m.Slice()
		removed, ok := firstIndependentMember(d, t, members, m, kmax, dist)
		if !ok {
			return
		}
		m.Erase(removed)
	}
}

type memberIndependence struct {
	v   varset.Var
	ind bool
}

// firstIndependentMember tests every member of m for independence from
// t given the rest of m, and returns the lowest-index member found
// independent -- the same result shrinkPass's sequential loop would
// find by scanning members in ascending order and stopping at the
// first hit. A non-nil dist shards the per-member tests round-robin
// across dist.Comm's ranks and all-gathers the verdicts before picking
// the lowest-index hit, so the outcome never depends on rank count.
func firstIndependentMember(d *data.Data, t varset.Var, members []varset.Var, m *varset.Set, kmax int, dist *Distribution) (varset.Var, bool) {
	test := func(v varset.Var) bool {
		rest := m.WithoutElement(v)
		cond := clampConditioning(rest, kmax)
		return d.IsIndependent(t, v, cond)
	}

	var all []memberIndependence
	if dist == nil {
		for _, v := range members {
			all = append(all, memberIndependence{v, test(v)})
		}
	} else {
		var local []memberIndependence
		for i, v := range members {
			if dist.Comm.IsOwner(i) {
				local = append(local, memberIndependence{v, test(v)})
			}
		}
		gathered := rank.AllGather(dist.Comm, local)
		for _, part := range gathered {
			all = append(all, part...)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].v < all[j].v })
	}

	for _, e := range all {
		if e.ind {
			return e.v, true
		}
	}
	return 0, false
}
