package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Topology:        Chain,
		Nodes:           4,
		LinkLengthKM:    25,
		Strategy:        PurifyThenSwap,
		Protocol:        DEJMPS,
		Rounds:          1,
		FilterThreshold: 0,
		Physics:         DefaultPhysics(),
		Runs:            10,
		Seed:            42,
		NumRegisters:    DefaultNumRegisters,
		MaxSimTimeS:     DefaultMaxSimTimeS,
		MaxAttempts:     DefaultMaxAttempts,
	}
}

func TestConfig_ValidateAcceptsReference(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfig_ValidateRejectsDefects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative link length", func(c *Config) { c.LinkLengthKM = -1 }},
		{"single node", func(c *Config) { c.Nodes = 1 }},
		{"negative rounds", func(c *Config) { c.Rounds = -1 }},
		{"threshold above one", func(c *Config) { c.FilterThreshold = 1.5 }},
		{"zero runs", func(c *Config) { c.Runs = 0 }},
		{"one register", func(c *Config) { c.NumRegisters = 1 }},
		{"zero time budget", func(c *Config) { c.MaxSimTimeS = 0 }},
		{"zero attempt budget", func(c *Config) { c.MaxAttempts = 0 }},
		{"bad coherence time", func(c *Config) { c.Physics.CoherenceTimeS = -1 }},
		{"unusable raw fidelity", func(c *Config) { c.Physics.LinkFidelity = 0.2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidParameter)
		})
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("purify_then_swap")
	assert.NoError(t, err)
	assert.Equal(t, PurifyThenSwap, s)

	s, err = ParseStrategy("swap_then_purify")
	assert.NoError(t, err)
	assert.Equal(t, SwapThenPurify, s)

	_, err = ParseStrategy("swap_only")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestTags_RoundTripStrings(t *testing.T) {
	assert.Equal(t, "purify_then_swap", PurifyThenSwap.String())
	assert.Equal(t, "swap_then_purify", SwapThenPurify.String())
	assert.Equal(t, "dejmps", DEJMPS.String())
	assert.Equal(t, "bbpssw", BBPSSW.String())
	assert.Equal(t, "chain", Chain.String())
	assert.Equal(t, "ring", Ring.String())
	assert.Equal(t, "star", Star.String())
}
