package main

import (
	"maps"
	"math/rand"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pavanmanishd/vector"
	"github.com/pavanmanishd/vector/arena"
)

const metricsNamespace = "vecbench"

var (
	runConfigPath   string
	runAllocator    string
	runOps          int
	runWorkloadName string
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().StringVar(&runConfigPath, "config", "", "TOML configuration file")
	cmd.Flags().StringVar(&runAllocator, "allocator", "", "Allocator: heap or arena")
	cmd.Flags().IntVar(&runOps, "ops", 0, "Number of workload steps")
	cmd.Flags().StringVar(&runWorkloadName, "workload", "", "Workload: push, insert-front, insert-mid, erase or mixed")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a workload and report the results",
		Long: `The run command executes one workload against a vector of int64 and
reports elapsed time, storage usage and allocator metrics. Flags override
values read from --config.

Example:
  vecbench run --workload insert-mid --ops 20000
  vecbench run --allocator arena --json
  vecbench run --config bench.toml -v --log-file bench.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(runConfigPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg)
			return runBench(cfg)
		},
	}
}

func applyFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("allocator") {
		cfg.Allocator = runAllocator
	}
	if flags.Changed("ops") {
		cfg.Ops = runOps
	}
	if flags.Changed("workload") {
		cfg.Workload = runWorkloadName
	}
	if logFile != "" {
		cfg.Log.Filename = logFile
	}
}

// Report is the outcome of one run.
type Report struct {
	Workload  string             `json:"workload"`
	Allocator string             `json:"allocator"`
	Ops       int                `json:"ops"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
	Checksum  int64              `json:"checksum"`
	Vector    vector.Stats       `json:"vector"`
	Metrics   map[string]float64 `json:"metrics"`
	Arena     *arena.Metrics     `json:"arena,omitempty"`
}

func runBench(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	report, err := bench(cfg, logger)
	if err != nil {
		logger.Error("workload failed", zap.Error(err))
		return err
	}
	if jsonOut {
		return printJSON(report)
	}
	printReport(report)
	return nil
}

// bench runs cfg's workload with metrics collected on a private registry.
func bench(cfg Config, logger *zap.Logger) (*Report, error) {
	reg := prometheus.NewRegistry()
	rng := rand.New(rand.NewSource(cfg.Seed))
	report := &Report{Workload: cfg.Workload, Allocator: cfg.Allocator, Ops: cfg.Ops}

	logger.Info("starting workload",
		zap.String("workload", cfg.Workload),
		zap.String("allocator", cfg.Allocator),
		zap.Int("ops", cfg.Ops))

	switch cfg.Allocator {
	case allocatorArena:
		a := arena.NewArena(cfg.ChunkSize)
		defer a.Release()
		al, err := vector.NewArenaAllocator[int64](a)
		if err != nil {
			return nil, err
		}
		m, err := vector.RegisterMetricsAllocator[int64](reg, metricsNamespace, al)
		if err != nil {
			return nil, err
		}
		if err := measure(vector.NewWith[int64](m), cfg, reg, rng, logger, report); err != nil {
			return nil, err
		}
		am := a.Metrics()
		report.Arena = &am
		logger.Debug("arena",
			zap.Int("chunks", am.NumChunks),
			zap.Int("in_use", am.SizeInUse),
			zap.Int("rollbacks", am.Rollbacks))
	case allocatorHeap:
		m, err := vector.RegisterMetricsAllocator[int64](reg, metricsNamespace, vector.Heap[int64]{})
		if err != nil {
			return nil, err
		}
		if err := measure(vector.NewWith[int64](m), cfg, reg, rng, logger, report); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Newf("unknown allocator %q", cfg.Allocator)
	}
	return report, nil
}

// measure runs the workload on v, fills in report and releases v.
func measure[A vector.Allocator[int64]](
	v *vector.Vector[int64, A],
	cfg Config,
	reg prometheus.Gatherer,
	rng *rand.Rand,
	logger *zap.Logger,
	report *Report,
) error {
	defer v.Release()

	if err := v.Reserve(cfg.Reserve); err != nil {
		return errors.Wrap(err, "reserve")
	}
	start := time.Now()
	if err := runWorkload(v, cfg.Workload, cfg.Ops, rng, logger); err != nil {
		return err
	}
	report.Elapsed = time.Since(start)
	report.Vector = v.Stats()
	for x := range v.Values() {
		report.Checksum += x
	}

	metrics, err := gatherMetrics(reg)
	if err != nil {
		return err
	}
	report.Metrics = metrics

	logger.Info("workload finished",
		zap.Duration("elapsed", report.Elapsed),
		zap.Int("len", v.Len()),
		zap.Int("cap", v.Cap()))
	return nil
}

// gatherMetrics flattens the registry into name/value pairs.
func gatherMetrics(g prometheus.Gatherer) (map[string]float64, error) {
	mfs, err := g.Gather()
	if err != nil {
		return nil, errors.Wrap(err, "gather metrics")
	}
	out := make(map[string]float64, len(mfs))
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				out[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[mf.GetName()] += m.GetGauge().GetValue()
			}
		}
	}
	return out, nil
}

func printReport(r *Report) {
	printInfo("Workload:   %s\n", r.Workload)
	printInfo("Allocator:  %s\n", r.Allocator)
	printInfo("Ops:        %d\n", r.Ops)
	printInfo("Elapsed:    %s\n", r.Elapsed)
	printInfo("Len/Cap:    %d/%d (%.2f%% used)\n", r.Vector.Len, r.Vector.Cap, r.Vector.Utilization*100)
	printInfo("Checksum:   %d\n", r.Checksum)

	printInfo("\nMetrics:\n")
	for _, name := range slices.Sorted(maps.Keys(r.Metrics)) {
		printInfo("  %-40s %.0f\n", name, r.Metrics[name])
	}

	if r.Arena != nil {
		printInfo("\nArena:\n")
		printInfo("  Chunks:     %d\n", r.Arena.NumChunks)
		printInfo("  Capacity:   %d bytes\n", r.Arena.Capacity)
		printInfo("  In use:     %d bytes\n", r.Arena.SizeInUse)
		printInfo("  Allocs:     %d\n", r.Arena.Allocs)
		printInfo("  Rollbacks:  %d of %d frees\n", r.Arena.Rollbacks, r.Arena.Frees)
	}
}
