// sim/result.go
//
// Plain structured records handed to the serialization layer. The engine
// has no knowledge of JSON/CSV encoding beyond the field tags; writing
// files is cmd/'s job.

package sim

// TrialOutcome is the per-run record produced when a trial terminates.
// Immutable once created.
type TrialOutcome struct {
	Trial            int     `json:"trial"`
	Fidelity         float64 `json:"fidelity"` // end-to-end fidelity at completion; 0 when failed
	LatencyS         float64 `json:"latency"`  // elapsed simulated seconds
	RawPairsConsumed int     `json:"raw_pairs_consumed"`
	PurifyAttempts   int     `json:"purify_attempts"` // successes + failures
	Failed           bool    `json:"failed"`          // budget exhausted; a normal result, not an error
}

// AggregateMetrics summarizes an experiment's trial outcomes. Failed trials
// are excluded from the fidelity/latency means but counted in the failure
// rate.
type AggregateMetrics struct {
	Trials           int     `json:"trials"`
	Successes        int     `json:"successes"`
	MeanFidelity     float64 `json:"fidelity"`
	FidelityVariance float64 `json:"fidelity_variance"`
	RateHz           float64 `json:"rate"`    // successful trials per simulated second, over all trials
	MeanLatencyS     float64 `json:"latency"` // successful trials only
	MeanRawPairs     float64 `json:"raw_pairs_consumed"`
	FailureRate      float64 `json:"failed"` // failed trials / total trials, exactly
}
