package network

import (
	"sync"

	"github.com/jndunlap/csl/internal/data"
	"github.com/jndunlap/csl/internal/discovery"
	"github.com/jndunlap/csl/internal/rank"
	"github.com/jndunlap/csl/internal/varset"
)

// TargetResult is one target's discovery outcome: its neighborhood
// (MB or PC depending on the run's flags) plus, for the topological PC
// family, the sepsets recorded for excluded candidates. Sepsets is nil
// for the direct-MB family, which records no sepsets.
type TargetResult struct {
	Neighbors varset.Set
	Sepsets   map[varset.Var]varset.Set
}

// AssembleNetwork computes TargetResult for every variable in [0, N),
// sharding work round-robin across ranks with dynamic work-stealing to
// mitigate load imbalance, and unifying results with an all-gather
// before the caller applies symmetry correction.
func AssembleNetwork(comm *rank.Communicator, d *data.Data, algo discovery.Algorithm, kmax int, discoverMB bool, imbalanceThreshold float64) map[varset.Var]TargetResult {
	n := d.N()
	targets := make([]varset.Var, n)
	for v := 0; v < n; v++ {
		targets[v] = varset.Var(v)
	}
	// Every rank computes the same targets/comm.Size() deterministically,
	// but the queue itself must be the *same* instance across ranks --
	// not a private copy each rank mutates -- or steal() only ever sees
	// a stale snapshot of other ranks' remaining work.
	queue := rank.Once(comm, func() *workQueue { return newWorkQueue(comm.Size(), targets) })

	local := make(map[varset.Var]TargetResult)
	for {
		t, ok := queue.nextFor(comm.Rank())
		if !ok {
			t, ok = queue.steal(imbalanceThreshold, comm.Rank())
			if !ok {
				break
			}
		}
		local[t] = computeTarget(d, t, algo, kmax, discoverMB)
	}

	comm.Barrier()
	gathered := rank.AllGather(comm, local)
	full := make(map[varset.Var]TargetResult, n)
	for _, partial := range gathered {
		for t, res := range partial {
			full[t] = res
		}
	}
	return full
}

// computeTarget always runs its target's subset search sequentially (a
// nil *discovery.Distribution): AssembleNetwork already distributes
// work across ranks by sharding *targets*, so the ranks computing two
// different targets have nothing in common to synchronize over mid-
// search -- handing them a shared Distribution would pair up
// unrelated per-target subset streams at rendezvous points and
// deadlock the moment their target-specific iteration counts diverge.
// Rank-distributed subset search is for the single-target path, where
// every rank cooperates on the same target; see cmd/csl's
// runSingleTarget.
func computeTarget(d *data.Data, t varset.Var, algo discovery.Algorithm, kmax int, discoverMB bool) TargetResult {
	if algo.IsDirectMB() {
		return TargetResult{Neighbors: discovery.RunDirectMB(d, t, algo, kmax, nil)}
	}
	pc := discovery.RunTopologicalPC(d, t, algo, kmax, nil)
	if discoverMB {
		return TargetResult{Neighbors: discovery.ExpandToMB(d, t, algo, kmax, pc, nil), Sepsets: pc.Sepsets}
	}
	return TargetResult{Neighbors: pc.PC, Sepsets: pc.Sepsets}
}

// workQueue holds one target list per rank, mutated under a single
// mutex. Static assignment is round-robin; steal lets an idle rank pull
// work from the most-loaded rank once the load ratio between them
// exceeds imbalanceThreshold.
type workQueue struct {
	mu      sync.Mutex
	perRank [][]varset.Var
}

func newWorkQueue(size int, targets []varset.Var) *workQueue {
	pr := make([][]varset.Var, size)
	for i, t := range targets {
		pr[i%size] = append(pr[i%size], t)
	}
	return &workQueue{perRank: pr}
}

func (w *workQueue) nextFor(rankID int) (varset.Var, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	q := w.perRank[rankID]
	if len(q) == 0 {
		return 0, false
	}
	t := q[0]
	w.perRank[rankID] = q[1:]
	return t, true
}

func (w *workQueue) steal(imbalanceThreshold float64, rankID int) (varset.Var, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	myLoad := len(w.perRank[rankID])
	mostLoaded, mostLen := -1, 0
	for r, q := range w.perRank {
		if r != rankID && len(q) > mostLen {
			mostLen = len(q)
			mostLoaded = r
		}
	}
	if mostLoaded < 0 {
		return 0, false
	}
	denom := myLoad
	if denom < 1 {
		denom = 1
	}
	ratio := float64(mostLen) / float64(denom)
	if ratio <= imbalanceThreshold {
		return 0, false
	}
	q := w.perRank[mostLoaded]
	t := q[0]
	w.perRank[mostLoaded] = q[1:]
	return t, true
}
