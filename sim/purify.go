// sim/purify.go
package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Protocol enumerates the supported purification maps.
type Protocol int

const (
	DEJMPS Protocol = iota
	BBPSSW
)

// ParseProtocol resolves a protocol name to its tag.
func ParseProtocol(s string) (Protocol, error) {
	switch s {
	case "dejmps":
		return DEJMPS, nil
	case "bbpssw":
		return BBPSSW, nil
	}
	return 0, fmt.Errorf("%w: unknown purification protocol %q", ErrInvalidParameter, s)
}

func (p Protocol) String() string {
	switch p {
	case DEJMPS:
		return "dejmps"
	case BBPSSW:
		return "bbpssw"
	}
	return fmt.Sprintf("Protocol(%d)", int(p))
}

// Map applies one purification round of the selected protocol to two input
// fidelities, returning the success probability and output fidelity.
func (p Protocol) Map(f1, f2 float64) (pSuccess, fOut float64) {
	if p == BBPSSW {
		return PurifyBBPSSW(f1, f2)
	}
	return PurifyDEJMPS(f1, f2)
}

// Purifier runs purification rounds over stored pairs. The protocol tag is
// resolved once at configuration time, never re-dispatched by name.
type Purifier struct {
	Protocol Protocol
	TCohS    float64
}

// Purify consumes two same-endpoint pairs and attempts one purification
// round at the given time. On success it returns the single replacement
// pair (written at now) and true; on failure nil and false. Both inputs are
// destroyed either way: a failed round physically destroys both pairs,
// which is what distinguishes purification from filtering.
//
// Panics if the pairs do not share the same two endpoints; that is an
// orchestrator bug, not a physical failure.
func (pu *Purifier) Purify(a, b *EntangledPair, now float64, rng *rand.Rand) (*EntangledPair, bool) {
	if !a.SameEndpoints(b) {
		panic(fmt.Sprintf("endpoint mismatch: cannot purify %v with %v", a, b))
	}
	f1 := a.FidelityAt(now, pu.TCohS)
	f2 := b.FidelityAt(now, pu.TCohS)
	pSuccess, fOut := pu.Protocol.Map(f1, f2)
	if rng.Float64() >= pSuccess {
		logrus.Debugf("[%10.6fs] %s purification failed on %s-%s (p=%.3f)", now, pu.Protocol, a.A, a.B, pSuccess)
		return nil, false
	}
	logrus.Debugf("[%10.6fs] %s purification success on %s-%s (F %.3f,%.3f -> %.3f)",
		now, pu.Protocol, a.A, a.B, f1, f2, fOut)
	return NewPair(a.A, a.B, fOut, now), true
}

// Filter post-selects a single pair against a fixed fidelity threshold at
// the given time: below the threshold the pair is discarded (nil), at or
// above it the pair passes through unchanged. No distillation is attempted
// and nothing else is consumed.
func Filter(p *EntangledPair, now, threshold, tCoh float64) *EntangledPair {
	if p.FidelityAt(now, tCoh) < threshold {
		logrus.Debugf("[%10.6fs] filter rejected %v (threshold %.3f)", now, p, threshold)
		return nil
	}
	return p
}
