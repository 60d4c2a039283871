// Package sim provides the core discrete-event engine for simulating
// entanglement distribution in small quantum-repeater networks.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - physics.go: the Werner-state fidelity math (link success probability,
//     decoherence decay, DEJMPS/BBPSSW purification maps, the swap rule)
//   - event.go: the event types that drive a trial (GenerationEvent, ProtocolStepEvent)
//   - orchestrator.go: the event loop and the protocol state machine
//
// # Architecture
//
// A Runner repeats independent trials of an Orchestrator over a fixed
// Network. Each trial owns its clock, its event heap, and a deterministically
// derived RNG, so any trial can be replayed in isolation from the master
// seed and its trial index (see rng.go).
//
// Within a trial, Links produce raw entangled pairs as Bernoulli draws,
// pairs sit in per-node MemoryRegisters where their fidelity decays
// exponentially, and the Purifier and Swapper consume stored pairs to build
// one end-to-end pair per the configured strategy (purify-then-swap or
// swap-then-purify).
//
// Contract violations (storing into a full register, swapping pairs with no
// common endpoint) panic: they indicate orchestrator bugs, not simulated
// physics, and must never be absorbed into statistics.
package sim
