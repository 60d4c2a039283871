package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/qnet-sim/qnet-sim/sim"
)

var (
	// CLI flags shared by the run/sweep/threshold subcommands
	topology        string  // Network topology (chain, ring, star)
	nodes           int     // Number of nodes
	linkLengthKM    float64 // Link length per hop in kilometres
	strategy        string  // Protocol ordering (purify_then_swap, swap_then_purify)
	protocol        string  // Purification protocol (dejmps, bbpssw)
	rounds          int     // Number of purification rounds
	filterThreshold float64 // Fidelity threshold for optional local filtering
	coherenceTime   float64 // Memory coherence time T_coh (seconds)
	attLength       float64 // Attenuation length L_att (kilometres)
	runs            int     // Number of independent repetitions
	seed            int64   // PRNG seed
	logLevel        string  // Log verbosity level
	physicsFile     string  // Optional physics.yaml overriding channel constants
	outputFile      string  // Write JSON summary to this file (stdout if omitted)
	maxSimTime      float64 // Per-trial simulated-time budget (seconds)
	maxAttempts     int     // Per-trial generation-attempt budget
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "qnet-sim",
	Short: "Monte-Carlo simulator for entanglement distribution in quantum-repeater networks",
}

// buildConfig assembles and resolves the experiment configuration from the
// flag surface. Any defect is fatal here, before a single trial runs.
func buildConfig(cmd *cobra.Command) *sim.Config {
	topo, err := sim.ParseTopology(topology)
	if err != nil {
		logrus.Fatalf("Invalid topology: %v", err)
	}
	strat, err := sim.ParseStrategy(strategy)
	if err != nil {
		logrus.Fatalf("Invalid strategy: %v", err)
	}
	proto, err := sim.ParseProtocol(protocol)
	if err != nil {
		logrus.Fatalf("Invalid protocol: %v", err)
	}

	physics := sim.DefaultPhysics()
	if physicsFile != "" {
		physics, err = LoadPhysicsFile(physicsFile)
		if err != nil {
			logrus.Fatalf("Failed to load physics file %s: %v", physicsFile, err)
		}
	}
	// explicit flags win over the physics file; untouched flags must not
	// clobber file values with their defaults
	if cmd.Flags().Changed("coherence-time") || physicsFile == "" {
		physics.CoherenceTimeS = coherenceTime
	}
	if cmd.Flags().Changed("att-len") || physicsFile == "" {
		physics.AttenuationLengthKM = attLength
	}

	return &sim.Config{
		Topology:        topo,
		Nodes:           nodes,
		LinkLengthKM:    linkLengthKM,
		Strategy:        strat,
		Protocol:        proto,
		Rounds:          rounds,
		FilterThreshold: filterThreshold,
		Physics:         physics,
		Runs:            runs,
		Seed:            seed,
		NumRegisters:    sim.DefaultNumRegisters,
		MaxSimTimeS:     maxSimTime,
		MaxAttempts:     maxAttempts,
	}
}

// setupLogging applies the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runResult is the JSON document produced by the run subcommand.
type runResult struct {
	Config     runConfigEcho         `json:"config"`
	Aggregates *sim.AggregateMetrics `json:"aggregates"`
	PerTrial   []sim.TrialOutcome    `json:"per_trial"`
}

// runConfigEcho echoes the resolved configuration into the result document
// so a result file is self-describing.
type runConfigEcho struct {
	Topology        string  `json:"topology"`
	Nodes           int     `json:"nodes"`
	LinkLengthKM    float64 `json:"link_length_km"`
	Strategy        string  `json:"strategy"`
	Protocol        string  `json:"protocol"`
	Rounds          int     `json:"rounds"`
	FilterThreshold float64 `json:"filter_threshold"`
	CoherenceTimeS  float64 `json:"coherence_time_s"`
	AttLengthKM     float64 `json:"attenuation_length_km"`
	Runs            int     `json:"runs"`
	Seed            int64   `json:"seed"`
}

// runCmd executes one experiment using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one entanglement-distribution experiment",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := buildConfig(cmd)

		logrus.Infof("Starting experiment: %s, %d nodes, %gkm links, %s/%s, %d rounds, %d runs",
			cfg.Topology, cfg.Nodes, cfg.LinkLengthKM, cfg.Strategy, cfg.Protocol, cfg.Rounds, cfg.Runs)

		agg, outcomes, err := sim.RunExperiment(cfg)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		result := runResult{
			Config: runConfigEcho{
				Topology:        cfg.Topology.String(),
				Nodes:           cfg.Nodes,
				LinkLengthKM:    cfg.LinkLengthKM,
				Strategy:        cfg.Strategy.String(),
				Protocol:        cfg.Protocol.String(),
				Rounds:          cfg.Rounds,
				FilterThreshold: cfg.FilterThreshold,
				CoherenceTimeS:  cfg.Physics.CoherenceTimeS,
				AttLengthKM:     cfg.Physics.AttenuationLengthKM,
				Runs:            cfg.Runs,
				Seed:            cfg.Seed,
			},
			Aggregates: agg,
			PerTrial:   outcomes,
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logrus.Fatalf("Failed to encode result: %v", err)
		}
		if outputFile != "" {
			if err := os.WriteFile(outputFile, data, 0o644); err != nil {
				logrus.Fatalf("Failed to write %s: %v", outputFile, err)
			}
			logrus.Infof("results at %s", outputFile)
		} else {
			fmt.Println(string(data))
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addExperimentFlags attaches the shared experiment flag surface to a
// subcommand.
func addExperimentFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&topology, "topology", "t", "chain", "Network topology (chain, ring, star)")
	cmd.Flags().IntVarP(&nodes, "nodes", "n", 4, "Number of nodes")
	cmd.Flags().Float64VarP(&linkLengthKM, "link-length", "L", 25, "Link length per hop in kilometres")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "purify_then_swap", "Entanglement-distribution strategy (purify_then_swap, swap_then_purify)")
	cmd.Flags().StringVarP(&protocol, "protocol", "p", "dejmps", "Purification protocol (dejmps, bbpssw)")
	cmd.Flags().IntVarP(&rounds, "rounds", "r", 2, "Number of purification rounds")
	cmd.Flags().Float64VarP(&filterThreshold, "filter-threshold", "f", 0.9, "Fidelity threshold for optional local filtering (0 disables)")
	cmd.Flags().Float64VarP(&coherenceTime, "coherence-time", "c", 1.0, "Memory coherence time T_coh (seconds)")
	cmd.Flags().Float64VarP(&attLength, "att-len", "a", 22, "Attenuation length L_att (kilometres)")
	cmd.Flags().IntVar(&runs, "runs", 100, "Number of independent repetitions")
	cmd.Flags().Int64Var(&seed, "seed", 0, "PRNG seed")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&physicsFile, "physics", "", "Optional physics YAML file overriding channel constants")
	cmd.Flags().Float64Var(&maxSimTime, "max-sim-time", sim.DefaultMaxSimTimeS, "Per-trial simulated-time budget (seconds)")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", sim.DefaultMaxAttempts, "Per-trial generation-attempt budget")
}

// init sets up CLI flags and subcommands
func init() {
	addExperimentFlags(runCmd)
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write JSON summary to this file (stdout if omitted)")

	rootCmd.AddCommand(runCmd)
}
