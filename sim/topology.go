// sim/topology.go
//
// Network graphs are built once per configuration and never mutated. The
// end-to-end route is discovered with gonum's shortest-path machinery: each
// edge carries its fiber length plus a tiny per-link epsilon so that ties
// (the two equal arcs of an even ring) resolve to a unique, deterministic
// path independent of graph iteration order.

package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// Topology enumerates the supported network shapes.
type Topology int

const (
	Chain Topology = iota
	Ring
	Star
)

// ParseTopology resolves a topology name to its tag.
func ParseTopology(s string) (Topology, error) {
	switch s {
	case "chain", "linear":
		return Chain, nil
	case "ring":
		return Ring, nil
	case "star":
		return Star, nil
	}
	return 0, fmt.Errorf("%w: unknown topology %q", ErrInvalidParameter, s)
}

func (t Topology) String() string {
	switch t {
	case Chain:
		return "chain"
	case Ring:
		return "ring"
	case Star:
		return "star"
	}
	return fmt.Sprintf("Topology(%d)", int(t))
}

// Network is the fixed graph over Nodes for a run's duration, plus the
// route of links that must be sequentially swapped to connect the two
// designated end nodes.
type Network struct {
	Nodes  []*Node
	Links  []*Link
	Route  []*Link // ordered from Source to Sink
	Source *Node
	Sink   *Node
}

// routeTieEpsilon perturbs edge weights per link index so equal-length
// routes resolve deterministically.
const routeTieEpsilon = 1e-9

// nodeLabel names nodes A..Z in creation order and switches to numbered
// labels beyond that, so large networks keep unique printable names.
func nodeLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("N%d", i+1)
}

// BuildNetwork constructs the node/link graph for the given topology and
// computes the end-to-end route. Nodes are labeled A, B, C, ... in creation
// order.
func BuildNetwork(kind Topology, nNodes int, linkLengthKM float64, numRegisters int, ph Physics) (*Network, error) {
	minNodes := 2
	if kind == Ring || kind == Star {
		minNodes = 3
	}
	if nNodes < minNodes {
		return nil, fmt.Errorf("%w: %s topology needs at least %d nodes, got %d", ErrInvalidParameter, kind, minNodes, nNodes)
	}

	nodes := make([]*Node, nNodes)
	for i := range nodes {
		nodes[i] = NewNode(nodeLabel(i), numRegisters)
	}

	var edges [][2]int
	switch kind {
	case Chain:
		for i := 0; i < nNodes-1; i++ {
			edges = append(edges, [2]int{i, i + 1})
		}
	case Ring:
		for i := 0; i < nNodes; i++ {
			edges = append(edges, [2]int{i, (i + 1) % nNodes})
		}
	case Star:
		for i := 1; i < nNodes; i++ {
			edges = append(edges, [2]int{0, i})
		}
	default:
		return nil, fmt.Errorf("%w: unknown topology tag %d", ErrInvalidParameter, int(kind))
	}

	connGraph := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	links := make([]*Link, 0, len(edges))
	linkByEdge := make(map[[2]int]*Link, len(edges))
	for idx, e := range edges {
		l, err := NewLink(nodes[e[0]], nodes[e[1]], linkLengthKM, ph)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
		linkByEdge[edgeKey(e[0], e[1])] = l
		connGraph.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(e[0]),
			T: simple.Node(e[1]),
			W: linkLengthKM + routeTieEpsilon*float64(idx),
		})
	}

	var src, dst int
	switch kind {
	case Chain:
		src, dst = 0, nNodes-1
	case Ring:
		// the two most distant nodes on the cycle
		src, dst = 0, nNodes/2
	case Star:
		// leaf to leaf through the hub
		src, dst = 1, nNodes-1
	}

	spTree := path.DijkstraFrom(connGraph.Node(int64(src)), connGraph)
	nodeSeq, _ := spTree.To(int64(dst))
	route, err := linksOnPath(nodeSeq, linkByEdge)
	if err != nil {
		return nil, err
	}

	return &Network{
		Nodes:  nodes,
		Links:  links,
		Route:  route,
		Source: nodes[src],
		Sink:   nodes[dst],
	}, nil
}

// ResetRegisters clears every node's memory between trials. The graph
// itself is a read-only template shared across trials.
func (nw *Network) ResetRegisters() {
	for _, n := range nw.Nodes {
		n.Reset()
	}
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// linksOnPath converts a graph-node sequence into the ordered links joining
// consecutive nodes.
func linksOnPath(seq []graph.Node, linkByEdge map[[2]int]*Link) ([]*Link, error) {
	if len(seq) < 2 {
		return nil, fmt.Errorf("%w: no route between designated end nodes", ErrInvalidParameter)
	}
	route := make([]*Link, 0, len(seq)-1)
	for i := 0; i < len(seq)-1; i++ {
		l, ok := linkByEdge[edgeKey(int(seq[i].ID()), int(seq[i+1].ID()))]
		if !ok {
			return nil, fmt.Errorf("%w: path step %d-%d has no link", ErrInvalidParameter, seq[i].ID(), seq[i+1].ID())
		}
		route = append(route, l)
	}
	return route, nil
}
