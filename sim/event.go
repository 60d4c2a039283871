// sim/event.go
package sim

// Event defines the interface for all trial events. Each event has a
// Timestamp (simulated seconds) and an Execute method that advances trial
// state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Orchestrator)
}

// GenerationEvent represents the heralding outcome of one link-level
// entanglement-generation attempt arriving back at the link's endpoints,
// one round trip after the attempt started.
type GenerationEvent struct {
	time    float64
	segment int // index into the route
}

// Timestamp returns the scheduled time of the GenerationEvent.
func (e *GenerationEvent) Timestamp() float64 {
	return e.time
}

// Execute resolves the Bernoulli draw and stores a surviving pair, then
// triggers a protocol step if none is already scheduled.
func (e *GenerationEvent) Execute(o *Orchestrator) {
	o.resolveGeneration(e.segment, e.time)

	// If there's no protocol step scheduled, trigger one immediately
	if !o.stepScheduled {
		o.stepScheduled = true
		o.Schedule(&ProtocolStepEvent{time: e.time})
	}
}

// ProtocolStepEvent represents one pass of the protocol state machine:
// purification and swapping of whatever stored pairs are eligible, in
// route order, followed by scheduling of the generation attempts the
// strategy still needs.
type ProtocolStepEvent struct {
	time float64
}

// Timestamp returns the scheduled time of the ProtocolStepEvent.
func (e *ProtocolStepEvent) Timestamp() float64 {
	return e.time
}

// Execute runs the step.
func (e *ProtocolStepEvent) Execute(o *Orchestrator) {
	o.stepScheduled = false
	o.Step(e.time)
}
