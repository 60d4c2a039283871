// sim/rng.go
package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible experiment. Two
// experiments with the same SimulationKey and identical configuration MUST
// produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// trialName returns the RNG stream name for trial N.
func trialName(trial int) string {
	return fmt.Sprintf("trial_%d", trial)
}

// PartitionedRNG provides a deterministic, isolated RNG per trial.
//
// Derivation: masterSeed XOR fnv1a64(streamName). Every trial draws from
// its own stream, so any single trial can be replayed in isolation without
// running the trials before it.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]*rand.Rand),
	}
}

// ForTrial returns the deterministically seeded RNG for the given trial
// index. The same index always returns the same *rand.Rand instance
// (cached). Never returns nil.
func (p *PartitionedRNG) ForTrial(trial int) *rand.Rand {
	return p.forStream(trialName(trial))
}

func (p *PartitionedRNG) forStream(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.streams[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
