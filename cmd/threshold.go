package cmd

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/qnet-sim/qnet-sim/sim"
)

var (
	thrStart float64
	thrMax   float64
	thrStep  float64
)

// thresholdCmd determines the highest viable filter threshold for the
// configured network under swap-then-purify: it sweeps the threshold
// upward until no trial succeeds within budget and reports the last value
// that still produced end-to-end pairs.
var thresholdCmd = &cobra.Command{
	Use:   "threshold",
	Short: "Find the maximal viable filter threshold",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		strategy = "swap_then_purify"

		lastOK := math.NaN()
		for thr := thrStart; thr <= thrMax+1e-9; thr += thrStep {
			filterThreshold = thr
			cfg := buildConfig(cmd)
			agg, _, err := sim.RunExperiment(cfg)
			if err != nil {
				logrus.Fatalf("Invalid configuration: %v", err)
			}
			ok := agg.FailureRate < 1.0
			status := "OK"
			if !ok {
				status = "FAIL"
			}
			fmt.Printf("  %s: %.4f (failed=%.2f)\n", status, thr, agg.FailureRate)
			if !ok {
				break
			}
			lastOK = thr
		}

		if math.IsNaN(lastOK) {
			fmt.Println("No valid threshold found")
			return
		}
		fmt.Printf("Last valid threshold: %.4f\n", lastOK)
		fmt.Printf("Next threshold: %.4f\n", lastOK+thrStep)
	},
}

func init() {
	addExperimentFlags(thresholdCmd)
	thresholdCmd.Flags().Float64Var(&thrStart, "start", 0.5, "Initial filter threshold")
	thresholdCmd.Flags().Float64Var(&thrMax, "max", 1.0, "Maximum filter threshold to try")
	thresholdCmd.Flags().Float64Var(&thrStep, "step", 0.02, "Threshold increment per probe")

	rootCmd.AddCommand(thresholdCmd)
}
