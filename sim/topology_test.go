package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func routeNames(nw *Network) []string {
	names := make([]string, 0, len(nw.Route))
	for _, l := range nw.Route {
		names = append(names, l.A.Name+"-"+l.B.Name)
	}
	return names
}

func TestBuildNetwork_Chain(t *testing.T) {
	nw, err := BuildNetwork(Chain, 4, 25, 2, DefaultPhysics())
	assert.NoError(t, err)
	assert.Len(t, nw.Nodes, 4)
	assert.Len(t, nw.Links, 3)
	assert.Equal(t, []string{"A-B", "B-C", "C-D"}, routeNames(nw))
	assert.Equal(t, "A", nw.Source.Name)
	assert.Equal(t, "D", nw.Sink.Name)
}

func TestBuildNetwork_RingTakesShorterArc(t *testing.T) {
	nw, err := BuildNetwork(Ring, 5, 10, 2, DefaultPhysics())
	assert.NoError(t, err)
	assert.Len(t, nw.Links, 5)
	// source A, sink C: the two-hop arc wins over the three-hop one
	assert.Equal(t, []string{"A-B", "B-C"}, routeNames(nw))
}

func TestBuildNetwork_RingEvenTieIsDeterministic(t *testing.T) {
	// both arcs of a 4-ring have equal length; the per-link epsilon must
	// always pick the same one
	for i := 0; i < 5; i++ {
		nw, err := BuildNetwork(Ring, 4, 10, 2, DefaultPhysics())
		assert.NoError(t, err)
		assert.Equal(t, []string{"A-B", "B-C"}, routeNames(nw))
	}
}

func TestBuildNetwork_StarRoutesThroughHub(t *testing.T) {
	nw, err := BuildNetwork(Star, 4, 25, 2, DefaultPhysics())
	assert.NoError(t, err)
	assert.Len(t, nw.Links, 3)
	assert.Equal(t, "B", nw.Source.Name)
	assert.Equal(t, "D", nw.Sink.Name)
	// leaf -> hub -> leaf
	assert.Equal(t, []string{"A-B", "A-D"}, routeNames(nw))
}

func TestBuildNetwork_LabelsStayUniquePastZ(t *testing.T) {
	nw, err := BuildNetwork(Chain, 30, 10, 2, DefaultPhysics())
	assert.NoError(t, err)
	assert.Equal(t, "Z", nw.Nodes[25].Name)
	assert.Equal(t, "N27", nw.Nodes[26].Name)
	assert.Equal(t, "N30", nw.Sink.Name)

	seen := make(map[string]bool)
	for _, n := range nw.Nodes {
		assert.False(t, seen[n.Name], "duplicate label %s", n.Name)
		seen[n.Name] = true
	}
}

func TestBuildNetwork_MinimumNodeCounts(t *testing.T) {
	_, err := BuildNetwork(Chain, 1, 25, 2, DefaultPhysics())
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = BuildNetwork(Ring, 2, 25, 2, DefaultPhysics())
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = BuildNetwork(Star, 2, 25, 2, DefaultPhysics())
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestBuildNetwork_ResetRegisters(t *testing.T) {
	nw, _ := BuildNetwork(Chain, 3, 10, 2, DefaultPhysics())
	l := nw.Route[0]
	l.A.Bank(l.B.Name).Store(NewPair(l.A.Name, l.B.Name, 0.9, 0))
	nw.ResetRegisters()
	assert.Equal(t, 0, l.A.Bank(l.B.Name).Count())
}

func TestParseTopology(t *testing.T) {
	tests := []struct {
		in   string
		want Topology
	}{
		{"chain", Chain},
		{"linear", Chain},
		{"ring", Ring},
		{"star", Star},
	}
	for _, tt := range tests {
		got, err := ParseTopology(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseTopology("mesh")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
