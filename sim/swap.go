// sim/swap.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Swapper performs entanglement swaps at intermediate nodes. Local
// operations are ideal, so a swap always succeeds; there is no Bernoulli
// draw, only the fidelity penalty of combining two Werner pairs.
type Swapper struct {
	TCohS float64
}

// Swap consumes two pairs sharing exactly one common endpoint (the
// swapping node) and returns a new pair spanning the two outer endpoints,
// written at now, with fidelity given by the Werner combination rule
// applied to the decayed input fidelities.
//
// Panics unless the inputs share exactly one endpoint.
func (s *Swapper) Swap(left, right *EntangledPair, now float64) *EntangledPair {
	via, ok := left.CommonEndpoint(right)
	if !ok {
		panic(fmt.Sprintf("endpoint mismatch: cannot swap %v with %v", left, right))
	}
	f := SwapFidelity(left.FidelityAt(now, s.TCohS), right.FidelityAt(now, s.TCohS))
	out := NewPair(left.otherEndpoint(via), right.otherEndpoint(via), f, now)
	logrus.Debugf("[%10.6fs] swap at %s: %s-%s + %s-%s -> %v", now, via, left.A, left.B, right.A, right.B, out)
	return out
}
