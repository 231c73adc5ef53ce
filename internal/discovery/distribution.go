package discovery

import "github.com/jndunlap/csl/internal/rank"

// Distribution carries the rank communicator every collaborating rank
// in the current run shares, plus the subset-search synchronization
// threshold (how many subsets each rank tests between all-gather
// rendezvous points of the distributed subset search; the direct-MB
// candidate loops do not use it). A nil *Distribution means run on this
// goroutine alone with no collective calls -- the default for
// whole-network assembly, where ranks are already dividing work by
// target rather than by candidate and have nothing to synchronize
// over per target.
type Distribution struct {
	Comm          *rank.Communicator
	SyncThreshold int
}

func (dist *Distribution) threshold() int {
	if dist == nil || dist.SyncThreshold < 1 {
		return 1
	}
	return dist.SyncThreshold
}
