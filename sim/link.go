// sim/link.go
package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Link models one bidirectional fiber connection between two adjacent
// nodes. Each generation attempt is an independent Bernoulli trial; the
// link carries no state between attempts.
type Link struct {
	A, B        *Node
	LengthKM    float64
	SuccessProb float64 // eta_det * exp(-L/L_att), fixed at construction
	RoundTripS  float64 // heralding round trip, the time cost of one attempt
	rawFidelity float64 // F0 of a fresh pair
}

// NewLink creates a link between two nodes with success probability and
// round-trip time derived from the physics parameters.
func NewLink(a, b *Node, lengthKM float64, ph Physics) (*Link, error) {
	p, err := LinkSuccessProbability(lengthKM, ph.AttenuationLengthKM, ph.DetectionEfficiency)
	if err != nil {
		return nil, err
	}
	f0, err := WernerRawFidelity(ph.LinkFidelity)
	if err != nil {
		return nil, err
	}
	return &Link{
		A:           a,
		B:           b,
		LengthKM:    lengthKM,
		SuccessProb: p,
		RoundTripS:  2 * lengthKM * 1000 / ph.FiberLightSpeed,
		rawFidelity: f0,
	}, nil
}

// AttemptGeneration draws one Bernoulli trial. On success it returns a
// fresh pair between the link's endpoints, written at the given time; on
// failure it returns nil. Time accounting is the orchestrator's job since
// multiple links attempt within one slot.
func (l *Link) AttemptGeneration(now float64, rng *rand.Rand) *EntangledPair {
	if rng.Float64() >= l.SuccessProb {
		logrus.Debugf("[%10.6fs] generation failed on %s", now, l)
		return nil
	}
	logrus.Debugf("[%10.6fs] generation success on %s (F0=%.2f)", now, l, l.rawFidelity)
	return NewPair(l.A.Name, l.B.Name, l.rawFidelity, now)
}

// Other returns the node at the opposite end of the link.
func (l *Link) Other(n *Node) *Node {
	if n == l.A {
		return l.B
	}
	return l.A
}

func (l *Link) String() string {
	return fmt.Sprintf("Link(%s-%s,%gkm)", l.A.Name, l.B.Name, l.LengthKM)
}
