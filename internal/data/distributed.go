package data

import (
	"math"

	"github.com/jndunlap/csl/internal/rank"
	"github.com/jndunlap/csl/internal/varset"
)

// IsIndependentAnySubsetDistributed is the rank-parallel form of
// IsIndependentAnySubset: every rank walks the identical deterministic
// subset stream; subset-stream position i is owned by
// rank i mod R, and only the owner actually runs the independence test.
// Every syncThreshold*R positions walked (syncThreshold per rank), all
// ranks all-gather their running local minimum, reduce it to the global
// minimum, and return together as soon as the reduced
// value establishes independence. On stream exhaustion, one final
// all-reduce yields the answer every rank returns.
func (d *Data) IsIndependentAnySubsetDistributed(comm *rank.Communicator, x, y varset.Var, given varset.Set, kmax int, syncThreshold int) bool {
	score, _ := d.minAssocScoreDistributed(comm, x, y, given, kmax, syncThreshold)
	return d.IsIndependentScore(score)
}

// MinAssocScoreSubsetDistributed is the rank-parallel form of
// MinAssocScoreSubset: every rank walks the identical deterministic
// subset stream produced by varset.NewIter; stream position i is owned
// by rank i mod R, and only the owner scores it. Every syncThreshold*R
// positions (syncThreshold per rank), all ranks all-gather their running (score, subset,
// position) triple and adopt the global minimum, breaking ties by
// earliest stream position -- the same tie-break combinadic
// enumeration order gives the sequential MinAssocScoreSubset, so the
// argmin returned here is identical to the sequential result no matter
// how many ranks R the stream is split across.
func (d *Data) MinAssocScoreSubsetDistributed(comm *rank.Communicator, x, y varset.Var, given varset.Set, kmax int, syncThreshold int) (float64, varset.Set) {
	return d.minAssocScoreDistributed(comm, x, y, given, kmax, syncThreshold)
}

type scoredSubset struct {
	score  float64
	subset varset.Set
	pos    int
}

func (d *Data) minAssocScoreDistributed(comm *rank.Communicator, x, y varset.Var, given varset.Set, kmax int, syncThreshold int) (float64, varset.Set) {
	if syncThreshold < 1 {
		syncThreshold = 1
	}
	period := syncThreshold * comm.Size()
	maxR := ClampToSize(kmax, given.Len())
	local := scoredSubset{score: math.MaxFloat64, pos: -1}
	localDone := false
	i := 0

	check := func() scoredSubset {
		gathered := rank.AllGather(comm, local)
		best := gathered[0]
		for _, c := range gathered[1:] {
			if better(c, best) {
				best = c
			}
		}
		return best
	}

	for r := 0; r <= maxR; r++ {
		it := varset.NewIter(given, r)
		for {
			s, ok := it.Next()
			if !ok {
				break
			}
			if comm.IsOwner(i) && !localDone {
				score := d.AssocScore(x, y, s)
				if score < local.score {
					local = scoredSubset{score: score, subset: s, pos: i}
				}
				if d.IsIndependentScore(local.score) {
					localDone = true
				}
			}
			i++
			if i%period == 0 {
				best := check()
				if d.IsIndependentScore(best.score) {
					return best.score, best.subset
				}
			}
		}
	}
	best := check()
	return best.score, best.subset
}

// better reports whether a improves on b: strictly lower score, or an
// equal score reached at an earlier stream position (the same
// tie-break the sequential combinadic scan applies implicitly by
// requiring strict improvement to replace the incumbent).
func better(a, b scoredSubset) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	if b.pos < 0 {
		return a.pos >= 0
	}
	return a.pos >= 0 && a.pos < b.pos
}
