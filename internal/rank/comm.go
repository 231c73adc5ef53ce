package rank

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

// hub is the shared rendezvous point every Communicator of a run holds a
// reference to. A single mechanism backs Barrier, AllReduceMin, and
// AllGather: each collective call blocks until every rank has submitted
// a value for the current round, then every caller observes the same
// round result.
type hub struct {
	mu         sync.Mutex
	cond       *sync.Cond
	size       int
	generation int
	arrived    int
	slots      []any
	lastRound  []any

	onceMu  sync.Mutex
	onceVal any
}

func newHub(size int) *hub {
	h := &hub{size: size, slots: make([]any, size)}
	h.cond = sync.NewCond(&h.mu)
	return h
}

func (h *hub) rendezvous(rankID int, value any) []any {
	h.mu.Lock()
	gen := h.generation
	h.slots[rankID] = value
	h.arrived++
	if h.arrived == h.size {
		out := make([]any, h.size)
		copy(out, h.slots)
		h.lastRound = out
		h.arrived = 0
		h.generation++
		h.cond.Broadcast()
	} else {
		for h.generation == gen {
			h.cond.Wait()
		}
	}
	out := h.lastRound
	h.mu.Unlock()
	return out
}

// Communicator is one rank's handle onto a run's shared hub, mirroring
// the role of an mxx::comm in the original MPI implementation.
type Communicator struct {
	hub  *hub
	rank int
}

// Rank returns this communicator's rank in [0, Size()).
func (c *Communicator) Rank() int { return c.rank }

// Size returns the number of ranks participating in this run.
func (c *Communicator) Size() int { return c.hub.size }

// IsOwner reports whether this rank owns subset-enumeration position i,
// under round-robin assignment: position i belongs to rank i mod R.
func (c *Communicator) IsOwner(i int) bool {
	return i%c.hub.size == c.rank
}

// Barrier blocks until every rank has called Barrier for the current round.
func (c *Communicator) Barrier() {
	c.hub.rendezvous(c.rank, struct{}{})
}

// AllReduceMin blocks until every rank has contributed a local value,
// then returns the minimum across all ranks to every caller.
func (c *Communicator) AllReduceMin(local float64) float64 {
	all := c.hub.rendezvous(c.rank, local)
	min := math.Inf(1)
	for _, v := range all {
		if f := v.(float64); f < min {
			min = f
		}
	}
	return min
}

// AllGather blocks until every rank has contributed a local value of
// type T, then returns every rank's value indexed by rank. It is a
// free function, not a method, because Go disallows generic methods.
func AllGather[T any](c *Communicator, local T) []T {
	all := c.hub.rendezvous(c.rank, local)
	out := make([]T, len(all))
	for i, v := range all {
		out[i] = v.(T)
	}
	return out
}

// Once returns a single value shared by every rank of a run: the first
// caller to reach it constructs the value with build and every other
// caller, regardless of when it arrives, observes that same value
// (not a copy) instead of building its own. This is how a work-sharing
// structure mutated by rank i's goroutine becomes visible to rank j's
// steal attempts, rather than each rank mutating its own private
// instance. build must be deterministic and side-effect-free, since
// whichever rank happens to win the race is the one that runs it.
func Once[T any](c *Communicator, build func() T) T {
	c.hub.onceMu.Lock()
	defer c.hub.onceMu.Unlock()
	if c.hub.onceVal == nil {
		c.hub.onceVal = build()
	}
	return c.hub.onceVal.(T)
}

// Run spawns n ranks, each running body with its own Communicator, and
// waits for all of them via golang.org/x/sync/errgroup. The first
// non-nil error returned by any rank's body cancels ctx for the rest
// and is returned from Run; every rank is expected to observe the same
// collective state, so in practice all ranks fail together or none do.
func Run(ctx context.Context, n int, body func(ctx context.Context, comm *Communicator) error) error {
	h := newHub(n)
	g, gctx := errgroup.WithContext(ctx)
	for r := 0; r < n; r++ {
		r := r
		g.Go(func() error {
			return body(gctx, &Communicator{hub: h, rank: r})
		})
	}
	return g.Wait()
}
