package ioutil

import (
	"github.com/jndunlap/csl/internal/rank"
)

// ReadTableParallel is the --parallel-read form of ReadTable: each rank
// decodes only a round-robin slice of the observations (rank i owns
// observation j iff j mod R == i) via ReadTableOwned, so -- unlike
// opening the file and decoding every cell before discarding most of
// them -- a rank with R-way ownership only ever parses ~1/R of the
// cells. An all-gather then unifies the full table before any rank
// proceeds to discovery, the same round-robin/gather skeleton the
// distributed subset search uses, reused here for table ingestion.
func ReadTableParallel(comm *rank.Communicator, path string, opts TableOptions) (names []string, rows [][]byte, err error) {
	names, owned, err := ReadTableOwned(path, opts, comm.IsOwner)
	if err != nil {
		return nil, nil, err
	}

	gathered := rank.AllGather(comm, owned)
	merged := make([][]byte, len(owned))
	for v := range merged {
		merged[v] = make([]byte, opts.M)
		for obsI := 0; obsI < opts.M; obsI++ {
			ownerRank := obsI % comm.Size()
			merged[v][obsI] = gathered[ownerRank][v][obsI]
		}
	}
	return names, merged, nil
}
