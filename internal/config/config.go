// Package config loads the small amount of environment-derived
// configuration the driver needs: read-parse-default, no surprises,
// errors wrapped with clierr.
package config

import (
	"os"
	"strconv"

	"github.com/jndunlap/csl/internal/clierr"
)

// defaultSyncThreshold is the low end of the 8-32 range the reference
// implementation uses for CSL_TESTS_THRESHOLD.
const defaultSyncThreshold = 8

// defaultWorldSize is the simulated rank count used when the process
// isn't actually launched under mpirun: there's no CLI flag for the rank
// count because a real MPI job gets it from the launcher (`mpirun -np
// R`), not its own argument parser. Since this build simulates ranks as
// goroutines instead of OS processes, CSL_WORLD_SIZE stands in for `-np`.
const defaultWorldSize = 4

// Runtime holds configuration sourced from the environment rather than
// CLI flags.
type Runtime struct {
	// SyncThreshold is the number of subsets each rank tests locally
	// between all-reduce synchronization points in the distributed
	// subset search.
	SyncThreshold uint32

	// WorldSize is the number of simulated ranks a --force-parallel or
	// multi-rank run spins up.
	WorldSize int
}

// Load reads CSL_TESTS_THRESHOLD and CSL_WORLD_SIZE from the
// environment, falling back to their documented defaults when unset or
// empty. An unparsable value (or a CSL_WORLD_SIZE below 1) is a
// configuration error.
func Load() (*Runtime, error) {
	threshold := uint32(defaultSyncThreshold)
	if raw := os.Getenv("CSL_TESTS_THRESHOLD"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, clierr.Configuration("CSL_TESTS_THRESHOLD must be a non-negative integer, got %q", raw)
		}
		threshold = uint32(v)
	}

	worldSize := defaultWorldSize
	if raw := os.Getenv("CSL_WORLD_SIZE"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return nil, clierr.Configuration("CSL_WORLD_SIZE must be a positive integer, got %q", raw)
		}
		worldSize = v
	}

	return &Runtime{SyncThreshold: threshold, WorldSize: worldSize}, nil
}
