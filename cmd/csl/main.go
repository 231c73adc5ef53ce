package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jndunlap/csl/internal/clierr"
	"github.com/jndunlap/csl/internal/config"
	"github.com/jndunlap/csl/internal/counter"
	"github.com/jndunlap/csl/internal/csllog"
	"github.com/jndunlap/csl/internal/data"
	"github.com/jndunlap/csl/internal/discovery"
	ioutilx "github.com/jndunlap/csl/internal/ioutil"
	"github.com/jndunlap/csl/internal/network"
	"github.com/jndunlap/csl/internal/rank"
	"github.com/jndunlap/csl/internal/varset"
)

// flags holds the CLI surface, one field per flag.
type flags struct {
	inputPath          string
	n, m               int
	separator          string
	colObs             bool
	varNames           bool
	obsIndices         bool
	parallelRead       bool
	algo               string
	target             string
	discoverMB         bool
	learnNetwork       bool
	outputPath         string
	directEdges        bool
	maxConditioning    int
	alpha              float64
	imbalanceThreshold float64
	forceParallel      bool
	warmupMPI          bool
	hostNames          bool
	counterName        string
	logLevel           string
}

func main() {
	var f flags

	cmd := &cobra.Command{
		Use:   "csl",
		Short: "Constraint-based Bayesian network structure learner",
		Long: `csl discovers the Markov blanket or parents-and-children set of a
target variable, or the skeleton of a whole network, from a categorical
observation table using G2 conditional-independence testing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
		SilenceUsage: true,
	}

	pf := cmd.Flags()
	pf.StringVarP(&f.inputPath, "file", "f", "", "input table file (required)")
	pf.IntVarP(&f.n, "n", "n", 0, "number of variables")
	pf.IntVarP(&f.m, "m", "m", 0, "number of observations")
	pf.StringVarP(&f.separator, "sep", "s", ",", "field separator")
	pf.BoolVar(&f.colObs, "col-obs", false, "observations are columns (else rows)")
	pf.BoolVar(&f.varNames, "var-names", false, "first row/column holds variable names")
	pf.BoolVar(&f.obsIndices, "obs-indices", false, "first column/row holds observation indices")
	pf.BoolVar(&f.parallelRead, "parallel-read", false, "each rank reads its own slice")
	pf.StringVarP(&f.algo, "algo", "a", "mmpc", "gs|iamb|inter.iamb|mmpc|hiton|si.hiton.pc|getpc")
	pf.StringVarP(&f.target, "target", "t", "", "target variable name")
	pf.BoolVar(&f.discoverMB, "discover-mb", false, "return MB(t) instead of PC(t)")
	pf.BoolVar(&f.learnNetwork, "learn-network", false, "compute whole-network skeleton")
	pf.StringVarP(&f.outputPath, "output", "o", "", "Graphviz output path")
	pf.BoolVar(&f.directEdges, "direct-edges", false, "orient edges using the collider rule")
	pf.IntVar(&f.maxConditioning, "max-conditioning", 3, "k_max")
	pf.Float64Var(&f.alpha, "alpha", 0.05, "significance level alpha in (0,1)")
	pf.Float64Var(&f.imbalanceThreshold, "imbalance-threshold", 1.5, "load-balancing ratio")
	pf.BoolVar(&f.forceParallel, "force-parallel", false, "use the MPI path even with one rank")
	pf.BoolVar(&f.warmupMPI, "warmup-mpi", false, "dry-run collectives before timing")
	pf.BoolVar(&f.hostNames, "host-names", false, "print rank -> host map")
	pf.StringVar(&f.counterName, "counter", "ct", "only ct currently supported")
	pf.StringVar(&f.logLevel, "log-level", "info", "logging verbosity")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	if f.inputPath == "" {
		return clierr.Configuration("-f is required")
	}
	if f.counterName != "ct" {
		return clierr.Configuration("unsupported --counter %q (only \"ct\" is implemented)", f.counterName)
	}
	if f.alpha <= 0 || f.alpha >= 1 {
		return clierr.Configuration("--alpha must lie in (0,1), got %v", f.alpha)
	}
	algo, err := discovery.ParseAlgorithm(f.algo)
	if err != nil {
		return clierr.Configuration("-a: %v", err)
	}
	var sep rune
	if f.separator != "" {
		sep = []rune(f.separator)[0]
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	worldSize := 1
	if f.forceParallel {
		worldSize = cfg.WorldSize
	}

	tableOpts := ioutilx.TableOptions{
		N:          f.n,
		M:          f.m,
		Separator:  sep,
		ColObs:     f.colObs,
		VarNames:   f.varNames,
		ObsIndices: f.obsIndices,
	}

	return rank.Run(ctx, worldSize, func(ctx context.Context, comm *rank.Communicator) error {
		logger := csllog.New(csllog.ParseLevel(f.logLevel))
		logger.Enabled = comm.Rank() == 0

		if f.warmupMPI {
			comm.Barrier()
			comm.AllReduceMin(0)
			logger.Debug("warm-up collectives completed on %d ranks", comm.Size())
		}
		if f.hostNames {
			printHostNames(logger, comm)
		}

		names, rows, err := readTable(comm, f, tableOpts)
		if err != nil {
			return err
		}
		if ioutilx.CheckObservationCountOverflow(f.m) {
			logger.Warn("observation count %d risks overflowing 32-bit joint counts", f.m)
		}

		ct := counter.NewCTCounter(rows)
		d, err := data.New(ct, names, f.alpha)
		if err != nil {
			return clierr.Wrap(err, "csl: building data facade")
		}

		switch {
		case f.learnNetwork:
			return runLearnNetwork(comm, d, algo, f, names, logger)
		case f.target != "":
			return runSingleTarget(comm, d, algo, f, cfg, names, logger)
		default:
			return clierr.Configuration("one of -t or --learn-network is required")
		}
	})
}

func readTable(comm *rank.Communicator, f flags, opts ioutilx.TableOptions) ([]string, [][]byte, error) {
	if f.parallelRead {
		return ioutilx.ReadTableParallel(comm, f.inputPath, opts)
	}
	return ioutilx.ReadTable(f.inputPath, opts)
}

// runSingleTarget discovers one target's neighborhood. Every rank in
// the run cooperates on this same target, so -- unlike
// runLearnNetwork's per-target sharding -- it's safe and, under
// --force-parallel, desirable to hand the discovery hooks a
// Distribution: comm.Size() ranks then split the subset-search
// candidate stream round-robin instead of each duplicating the whole
// search. A run without --force-parallel (the default, a single rank)
// passes a nil Distribution and runs sequentially.
func runSingleTarget(comm *rank.Communicator, d *data.Data, algo discovery.Algorithm, f flags, cfg *config.Runtime, names []string, logger *csllog.Logger) error {
	t, ok := d.VarIndex(f.target)
	if !ok {
		return clierr.Configuration("unknown target variable %q", f.target)
	}

	var dist *discovery.Distribution
	if f.forceParallel {
		dist = &discovery.Distribution{Comm: comm, SyncThreshold: int(cfg.SyncThreshold)}
	}

	var neighbors varset.Set
	var sepsets map[varset.Var]varset.Set
	if algo.IsDirectMB() {
		neighbors = discovery.RunDirectMB(d, t, algo, f.maxConditioning, dist)
		logger.Info("direct-MB search for %s converged with %d members", f.target, neighbors.Len())
	} else {
		pc := discovery.RunTopologicalPC(d, t, algo, f.maxConditioning, dist)
		sepsets = pc.Sepsets
		if f.discoverMB {
			neighbors = discovery.ExpandToMB(d, t, algo, f.maxConditioning, pc, dist)
		} else {
			neighbors = pc.PC
		}
	}

	logger.Debug("neighborhood of %s has %d members", f.target, neighbors.Len())

	if logger.Enabled {
		fmt.Println(joinNames(names, neighbors))
	}

	if f.outputPath != "" && logger.Enabled {
		g := network.NewGraph(d.N())
		for _, v := range neighbors.Slice() {
			g.AddUndirected(t, v)
		}
		if f.directEdges && sepsets != nil {
			results := map[varset.Var]network.TargetResult{t: {Neighbors: neighbors, Sepsets: sepsets}}
			g = network.Orient(g, results)
		}
		if err := ioutilx.WriteDOT(f.outputPath, g, names, f.directEdges); err != nil {
			return err
		}
	}
	return nil
}

func runLearnNetwork(comm *rank.Communicator, d *data.Data, algo discovery.Algorithm, f flags, names []string, logger *csllog.Logger) error {
	results := network.AssembleNetwork(comm, d, algo, f.maxConditioning, f.discoverMB, f.imbalanceThreshold)
	g := network.SymmetryCorrect(results)
	if f.directEdges && !algo.IsDirectMB() {
		g = network.Orient(g, results)
	}

	if !logger.Enabled {
		return nil
	}
	logger.Info("assembled network skeleton over %d variables", d.N())
	if f.outputPath != "" {
		return ioutilx.WriteDOT(f.outputPath, g, names, f.directEdges)
	}
	return nil
}

func printHostNames(logger *csllog.Logger, comm *rank.Communicator) {
	var b strings.Builder
	for r := 0; r < comm.Size(); r++ {
		fmt.Fprintf(&b, "rank %d -> localhost-goroutine-%d\n", r, r)
	}
	logger.Info("%s", b.String())
}

func joinNames(names []string, s varset.Set) string {
	vars := s.Slice()
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = names[v]
	}
	return strings.Join(out, ",")
}
