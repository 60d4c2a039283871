// sim/pair.go
package sim

import "fmt"

// EntangledPair is the fundamental record of a stored two-qubit Werner
// state: the fidelity at creation, the simulated write time, and the two
// node labels it connects. Purification and swapping never mutate a pair;
// they destroy their inputs and create a new one. Decay is derived on read,
// never stored.
type EntangledPair struct {
	A         string  // first endpoint label
	B         string  // second endpoint label
	Fidelity0 float64 // fidelity at creation, in [WernerMinFidelity, 1]
	WriteTime float64 // simulated seconds at creation
}

// NewPair creates a fresh pair between two endpoints.
func NewPair(a, b string, f0, now float64) *EntangledPair {
	return &EntangledPair{A: a, B: b, Fidelity0: f0, WriteTime: now}
}

// FidelityAt returns the decayed fidelity at the given simulated time.
func (p *EntangledPair) FidelityAt(now, tCoh float64) float64 {
	f, err := DecayedFidelity(p.Fidelity0, now-p.WriteTime, tCoh)
	if err != nil {
		panic(fmt.Sprintf("pair %v read at t=%v before its write time: %v", p, now, err))
	}
	return f
}

// SameEndpoints reports whether q connects the same two nodes as p, in
// either order.
func (p *EntangledPair) SameEndpoints(q *EntangledPair) bool {
	return (p.A == q.A && p.B == q.B) || (p.A == q.B && p.B == q.A)
}

// CommonEndpoint returns the single node shared by p and q, if exactly one
// exists. Two pairs over the same endpoints share two nodes and are not
// swappable.
func (p *EntangledPair) CommonEndpoint(q *EntangledPair) (string, bool) {
	if p.SameEndpoints(q) {
		return "", false
	}
	for _, x := range []string{p.A, p.B} {
		if x == q.A || x == q.B {
			return x, true
		}
	}
	return "", false
}

// otherEndpoint returns the endpoint of p that is not n.
func (p *EntangledPair) otherEndpoint(n string) string {
	if p.A == n {
		return p.B
	}
	return p.A
}

func (p *EntangledPair) String() string {
	return fmt.Sprintf("Pair(%s-%s F0=%.3f t=%.6f)", p.A, p.B, p.Fidelity0, p.WriteTime)
}
