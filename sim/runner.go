// sim/runner.go
package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Runner repeats the orchestrator for N independent trials over one shared
// network template and aggregates the outcomes. Trials share no mutable
// state beyond the registers, which are reset per trial, and each draws
// from its own deterministically derived RNG stream.
type Runner struct {
	cfg *Config
	net *Network
	rng *PartitionedRNG
}

// NewRunner validates the configuration and builds the network once; it is
// reused across all trials.
func NewRunner(cfg *Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	net, err := BuildNetwork(cfg.Topology, cfg.Nodes, cfg.LinkLengthKM, cfg.NumRegisters, cfg.Physics)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg: cfg,
		net: net,
		rng: NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
	}, nil
}

// Network exposes the built topology (read-only template).
func (r *Runner) Network() *Network {
	return r.net
}

// RunTrial replays a single trial by index, independent of any other.
func (r *Runner) RunTrial(trial int) TrialOutcome {
	return NewOrchestrator(r.cfg, r.net, r.rng.ForTrial(trial)).RunTrial(trial)
}

// Run executes all configured trials and returns the aggregate metrics
// together with the per-trial outcomes.
func (r *Runner) Run() (*AggregateMetrics, []TrialOutcome) {
	outcomes := make([]TrialOutcome, 0, r.cfg.Runs)
	for i := 0; i < r.cfg.Runs; i++ {
		outcomes = append(outcomes, r.RunTrial(i))
	}
	agg := Aggregate(outcomes)
	logrus.Infof("experiment done: %d/%d trials succeeded, mean F=%.4f rate=%.4f/s",
		agg.Successes, agg.Trials, agg.MeanFidelity, agg.RateHz)
	return agg, outcomes
}

// RunExperiment is the package entry point: validate, build, run, aggregate.
func RunExperiment(cfg *Config) (*AggregateMetrics, []TrialOutcome, error) {
	r, err := NewRunner(cfg)
	if err != nil {
		return nil, nil, err
	}
	agg, outcomes := r.Run()
	return agg, outcomes, nil
}

// RunSingleTrial runs one trial with a caller-supplied RNG, for single-trial
// use outside an experiment.
func RunSingleTrial(cfg *Config, rng *rand.Rand) (TrialOutcome, error) {
	if err := cfg.Validate(); err != nil {
		return TrialOutcome{}, err
	}
	net, err := BuildNetwork(cfg.Topology, cfg.Nodes, cfg.LinkLengthKM, cfg.NumRegisters, cfg.Physics)
	if err != nil {
		return TrialOutcome{}, err
	}
	return NewOrchestrator(cfg, net, rng).RunTrial(0), nil
}

// Aggregate folds per-trial outcomes into summary metrics. Failed trials
// never contribute to the fidelity/latency means; the failure rate is
// exactly failed/total. The generation rate is successful trials per unit
// of total simulated time across all trials, failed ones included.
func Aggregate(outcomes []TrialOutcome) *AggregateMetrics {
	agg := &AggregateMetrics{Trials: len(outcomes)}
	if len(outcomes) == 0 {
		return agg
	}

	var fids, lats []float64
	var totalTime float64
	var rawSum float64
	failed := 0
	for _, out := range outcomes {
		totalTime += out.LatencyS
		rawSum += float64(out.RawPairsConsumed)
		if out.Failed {
			failed++
			continue
		}
		fids = append(fids, out.Fidelity)
		lats = append(lats, out.LatencyS)
	}

	agg.Successes = len(fids)
	agg.FailureRate = float64(failed) / float64(len(outcomes))
	agg.MeanRawPairs = rawSum / float64(len(outcomes))
	if len(fids) > 1 {
		agg.MeanFidelity, agg.FidelityVariance = stat.MeanVariance(fids, nil)
		agg.MeanLatencyS = stat.Mean(lats, nil)
	} else if len(fids) == 1 {
		// a lone success has no sample variance
		agg.MeanFidelity = fids[0]
		agg.MeanLatencyS = lats[0]
	}
	if totalTime > 0 {
		agg.RateHz = float64(agg.Successes) / totalTime
	}
	return agg
}
