// sim/config.go
package sim

import "fmt"

// Strategy enumerates the protocol orderings along a multi-hop route.
type Strategy int

const (
	// PurifyThenSwap pumps every link segment to its target round count
	// before any swap is attempted.
	PurifyThenSwap Strategy = iota
	// SwapThenPurify swaps as soon as link pairs are available and purifies
	// the resulting route-spanning pairs against each other.
	SwapThenPurify
)

// ParseStrategy resolves a strategy name to its tag.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "purify_then_swap":
		return PurifyThenSwap, nil
	case "swap_then_purify":
		return SwapThenPurify, nil
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidParameter, s)
}

func (s Strategy) String() string {
	switch s {
	case PurifyThenSwap:
		return "purify_then_swap"
	case SwapThenPurify:
		return "swap_then_purify"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Config holds one experiment configuration. Strategy, protocol and
// topology are closed tags resolved once at parse time, not re-dispatched
// per call.
type Config struct {
	Topology        Topology
	Nodes           int
	LinkLengthKM    float64
	Strategy        Strategy
	Protocol        Protocol
	Rounds          int     // purification rounds required per segment (or end-to-end)
	FilterThreshold float64 // 0 disables generation-time filtering
	Physics         Physics
	Runs            int
	Seed            int64
	NumRegisters    int     // memory registers per node per segment
	MaxSimTimeS     float64 // per-trial simulated-time budget
	MaxAttempts     int     // per-trial generation-attempt budget
}

// Reference budget and register defaults.
const (
	DefaultNumRegisters = 2
	DefaultMaxAttempts  = 50000
	DefaultMaxSimTimeS  = 1e6
)

// Validate checks every parameter against its domain. Returns an
// ErrInvalidParameter-wrapped error on the first defect; a valid Config
// never errors mid-trial.
func (c *Config) Validate() error {
	if err := c.Physics.Validate(); err != nil {
		return err
	}
	if _, err := LinkSuccessProbability(c.LinkLengthKM, c.Physics.AttenuationLengthKM, c.Physics.DetectionEfficiency); err != nil {
		return err
	}
	if c.Nodes < 2 {
		return fmt.Errorf("%w: node count %d must be >= 2", ErrInvalidParameter, c.Nodes)
	}
	if c.Rounds < 0 {
		return fmt.Errorf("%w: purification rounds %d must be >= 0", ErrInvalidParameter, c.Rounds)
	}
	if c.FilterThreshold < 0 || c.FilterThreshold > 1 {
		return fmt.Errorf("%w: filter threshold %v must be in [0,1]", ErrInvalidParameter, c.FilterThreshold)
	}
	if c.Runs < 1 {
		return fmt.Errorf("%w: run count %d must be >= 1", ErrInvalidParameter, c.Runs)
	}
	if c.NumRegisters < 2 {
		return fmt.Errorf("%w: register count %d must be >= 2 (purification needs two stored pairs)", ErrInvalidParameter, c.NumRegisters)
	}
	if c.MaxSimTimeS <= 0 {
		return fmt.Errorf("%w: simulated-time budget %v must be > 0", ErrInvalidParameter, c.MaxSimTimeS)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: attempt budget %d must be >= 1", ErrInvalidParameter, c.MaxAttempts)
	}
	return nil
}
