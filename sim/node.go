// sim/node.go
package sim

// Node is the addressable unit the protocol operators act upon. It owns one
// register bank per neighbor it shares a link with; the communication qubit
// of each physical link is modeled implicitly as register occupancy (a link
// cannot start a new attempt while its registers are full).
type Node struct {
	Name         string
	numRegisters int
	banks        map[string]*RegisterBank
}

// NewNode creates a node with the given register count per peer.
func NewNode(name string, numRegisters int) *Node {
	return &Node{
		Name:         name,
		numRegisters: numRegisters,
		banks:        make(map[string]*RegisterBank),
	}
}

// Bank returns this node's register bank for the given peer, creating it on
// first use.
func (n *Node) Bank(peer string) *RegisterBank {
	b, ok := n.banks[peer]
	if !ok {
		b = NewRegisterBank(n.numRegisters)
		n.banks[peer] = b
	}
	return b
}

// Reset empties every bank. Nodes are templates reused across trials; only
// their register contents are trial-local state.
func (n *Node) Reset() {
	for _, b := range n.banks {
		b.Reset()
	}
}

func (n *Node) String() string {
	return "Node(" + n.Name + ")"
}
