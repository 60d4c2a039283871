// sim/orchestrator.go
package sim

import (
	"container/heap"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// queuedEvent pairs an event with its insertion sequence so that
// simultaneous events execute in schedule order. Links are always walked in
// route order, so ties resolve deterministically end to end.
type queuedEvent struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp,
// breaking ties by insertion sequence.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []queuedEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	if eq[i].ev.Timestamp() != eq[j].ev.Timestamp() {
		return eq[i].ev.Timestamp() < eq[j].ev.Timestamp()
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Orchestrator drives one trial: it repeatedly attempts link generation,
// applies filtering, and sequences purification and swap operations per the
// configured strategy until an end-to-end pair is produced or the trial's
// budget runs out. The Network is a shared read-only template; all mutable
// state lives here and in the node registers, which are reset per trial.
type Orchestrator struct {
	cfg      *Config
	net      *Network
	purifier Purifier
	swapper  Swapper
	rng      *rand.Rand

	clock         float64
	events        EventQueue
	seq           uint64
	stepScheduled bool

	segRounds []int  // completed pumping rounds per route segment
	inFlight  []bool // one generation attempt may be in flight per link

	attempts int // generation attempts started
	rawPairs int // raw pairs produced (stored or filtered out)
	purifies int // purification attempts, success + failure

	e2eRounds int            // completed purification rounds at the swapped level
	e2eBanked *EntangledPair // route-spanning pair awaiting its purification partner
	done      *EntangledPair // terminal end-to-end pair
	failed    bool
}

// NewOrchestrator creates a trial driver over a prebuilt network. The
// caller injects the trial's RNG; the orchestrator draws nothing else.
func NewOrchestrator(cfg *Config, net *Network, rng *rand.Rand) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		net:      net,
		purifier: Purifier{Protocol: cfg.Protocol, TCohS: cfg.Physics.CoherenceTimeS},
		swapper:  Swapper{TCohS: cfg.Physics.CoherenceTimeS},
		rng:      rng,
	}
}

// Schedule pushes an event into the trial's event queue.
func (o *Orchestrator) Schedule(ev Event) {
	heap.Push(&o.events, queuedEvent{ev: ev, seq: o.seq})
	o.seq++
}

// RunTrial executes one trial to completion and returns its outcome.
// Exceeding the time or attempt budget is a normal Failed outcome, not an
// error.
func (o *Orchestrator) RunTrial(trial int) TrialOutcome {
	o.reset()

	o.stepScheduled = true
	o.Schedule(&ProtocolStepEvent{time: 0})

	for len(o.events) > 0 && o.done == nil {
		qe := heap.Pop(&o.events).(queuedEvent)
		ev := qe.ev
		o.clock = ev.Timestamp()
		if o.clock > o.cfg.MaxSimTimeS || o.attempts > o.cfg.MaxAttempts {
			o.failed = true
			break
		}
		ev.Execute(o)
	}
	if o.done == nil {
		o.failed = true
	}

	out := TrialOutcome{
		Trial:            trial,
		LatencyS:         o.clock,
		RawPairsConsumed: o.rawPairs,
		PurifyAttempts:   o.purifies,
		Failed:           o.failed,
	}
	if !o.failed {
		out.Fidelity = o.done.FidelityAt(o.clock, o.cfg.Physics.CoherenceTimeS)
		logrus.Infof("trial %d done: F=%.4f latency=%.6fs raw=%d", trial, out.Fidelity, out.LatencyS, out.RawPairsConsumed)
	} else {
		logrus.Infof("trial %d failed: budget exhausted after %d attempts, %.6fs", trial, o.attempts, o.clock)
	}
	return out
}

// reset clears all trial-local state, including the network's registers.
func (o *Orchestrator) reset() {
	o.net.ResetRegisters()
	o.clock = 0
	o.events = o.events[:0]
	o.seq = 0
	o.stepScheduled = false
	o.segRounds = make([]int, len(o.net.Route))
	o.inFlight = make([]bool, len(o.net.Route))
	o.attempts = 0
	o.rawPairs = 0
	o.purifies = 0
	o.e2eRounds = 0
	o.e2eBanked = nil
	o.done = nil
	o.failed = false
}

// segBanks returns the two endpoint register banks of a route segment. The
// A-side bank is canonical; the B-side mirrors it, so both endpoints'
// register occupancy constrains the link.
func (o *Orchestrator) segBanks(seg int) (*RegisterBank, *RegisterBank) {
	l := o.net.Route[seg]
	return l.A.Bank(l.B.Name), l.B.Bank(l.A.Name)
}

// storeSegPair stores a link-level pair at both endpoints.
func (o *Orchestrator) storeSegPair(seg int, p *EntangledPair) {
	a, b := o.segBanks(seg)
	a.Store(p)
	b.Store(p)
}

// takeSegPair consumes the oldest pair of a segment from both endpoints.
func (o *Orchestrator) takeSegPair(seg int) *EntangledPair {
	a, b := o.segBanks(seg)
	p := a.TakeOldest()
	b.Discard(p)
	return p
}

// resolveGeneration lands the heralding outcome of a link attempt: on
// success the fresh pair is filtered (if a threshold is configured) and
// stored at both endpoints. Discarded pairs still count as raw pairs
// consumed.
func (o *Orchestrator) resolveGeneration(seg int, now float64) {
	o.inFlight[seg] = false
	pair := o.net.Route[seg].AttemptGeneration(now, o.rng)
	if pair == nil {
		return
	}
	o.rawPairs++
	if o.cfg.FilterThreshold > 0 {
		if Filter(pair, now, o.cfg.FilterThreshold, o.cfg.Physics.CoherenceTimeS) == nil {
			return
		}
	}
	o.storeSegPair(seg, pair)
}

// requestGeneration starts a link attempt unless one is already in flight
// or the segment's registers are full (the communication qubit is modeled
// as register occupancy). The heralding outcome lands one round trip later.
func (o *Orchestrator) requestGeneration(seg int, now float64) {
	if o.inFlight[seg] {
		return
	}
	a, b := o.segBanks(seg)
	if a.FreeSlots() == 0 || b.FreeSlots() == 0 {
		return
	}
	o.inFlight[seg] = true
	o.attempts++
	o.Schedule(&GenerationEvent{time: now + o.net.Route[seg].RoundTripS, segment: seg})
}

// Step runs one pass of the protocol state machine at the given time.
func (o *Orchestrator) Step(now float64) {
	switch o.cfg.Strategy {
	case PurifyThenSwap:
		o.stepPurifyThenSwap(now)
	case SwapThenPurify:
		o.stepSwapThenPurify(now)
	}
}

// stepPurifyThenSwap pumps every segment to its target round count before
// any swap: the first surviving pair on a segment is banked, each fresh
// pair is purified against the bank, and a failed round destroys both and
// resets the count. Only when every segment is ready do the swaps run, in
// route order.
func (o *Orchestrator) stepPurifyThenSwap(now float64) {
	allReady := true
	for seg := range o.net.Route {
		aBank, _ := o.segBanks(seg)
		for aBank.Count() >= 2 && o.segRounds[seg] < o.cfg.Rounds {
			banked := o.takeSegPair(seg)
			fresh := o.takeSegPair(seg)
			o.purifies++
			out, ok := o.purifier.Purify(banked, fresh, now, o.rng)
			if ok {
				o.segRounds[seg]++
				o.storeSegPair(seg, out)
			} else {
				o.segRounds[seg] = 0
			}
		}
		if o.segRounds[seg] < o.cfg.Rounds || aBank.Count() == 0 {
			allReady = false
			o.requestGeneration(seg, now)
		}
	}
	if allReady {
		o.done = o.swapChain(now)
	}
}

// stepSwapThenPurify swaps segments into a route-spanning pair as soon as
// every link holds one, then purifies swapped pairs against each other:
// each purification round at the swapped level costs one full extra route
// pass, doubling the raw-pair cost per round.
func (o *Orchestrator) stepSwapThenPurify(now float64) {
	ready := true
	for seg := range o.net.Route {
		aBank, _ := o.segBanks(seg)
		if aBank.Count() == 0 {
			ready = false
		}
	}
	if ready {
		o.handleEndToEnd(o.swapChain(now), now)
		if o.done != nil {
			return
		}
	}
	for seg := range o.net.Route {
		aBank, _ := o.segBanks(seg)
		if aBank.Count() == 0 {
			o.requestGeneration(seg, now)
		}
	}
}

// swapChain consumes one pair per route segment and chains swaps left to
// right until a single pair spans the designated end nodes. A single-link
// route needs no swap.
func (o *Orchestrator) swapChain(now float64) *EntangledPair {
	cur := o.takeSegPair(0)
	for seg := 1; seg < len(o.net.Route); seg++ {
		cur = o.swapper.Swap(cur, o.takeSegPair(seg), now)
	}
	return cur
}

// handleEndToEnd advances the swapped-level purification ladder with a
// freshly swapped route-spanning pair. The banked pair is orchestrator
// state, not a segment register: on a single-link route the span coincides
// with the segment and the bank must not shadow raw link pairs.
func (o *Orchestrator) handleEndToEnd(p *EntangledPair, now float64) {
	if o.cfg.Rounds == 0 {
		o.finalizeEndToEnd(p, now)
		return
	}
	if o.e2eBanked == nil {
		o.e2eBanked = p
		return
	}
	banked := o.e2eBanked
	o.e2eBanked = nil
	o.purifies++
	out, ok := o.purifier.Purify(banked, p, now, o.rng)
	if !ok {
		o.e2eRounds = 0
		return
	}
	o.e2eRounds++
	if o.e2eRounds >= o.cfg.Rounds {
		o.finalizeEndToEnd(out, now)
		return
	}
	o.e2eBanked = out
}

// finalizeEndToEnd applies the terminal filter under swap-then-purify; a
// reject destroys the pair and the trial keeps generating within budget.
func (o *Orchestrator) finalizeEndToEnd(p *EntangledPair, now float64) {
	if o.cfg.FilterThreshold > 0 && Filter(p, now, o.cfg.FilterThreshold, o.cfg.Physics.CoherenceTimeS) == nil {
		o.e2eRounds = 0
		return
	}
	o.done = p
}
