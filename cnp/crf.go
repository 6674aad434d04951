package cnp

import (
	"fmt"

	"github.com/dvoytik/glyph/grammar"
)

// ClusterNode is "(head_idx, j)" per spec §3: the nonterminal Head entered
// at input position J.
type ClusterNode struct {
	Head grammar.SymbolIdx
	J    int
}

func (n ClusterNode) String() string { return fmt.Sprintf("(%d,%d)", n.Head, n.J) }

// LabelNode is "(slot, j)" per spec §3: dotted position Slot, in a parse
// started at input position J.
//
// Pivot carries the BSR split point established once the production's first
// symbol completes (right extent of that first symbol), threaded forward so
// that every later bsrAdd for this same production instance records the
// same split rather than recomputing one locally. Pivot is -1 while the
// first symbol has not completed yet (the label is itself waiting on that
// first symbol), in which case the eventual completion position serves as
// the pivot instead. Two calls into the same (Slot, J) continuation from
// different first-symbol splits are genuinely different continuations, so
// Pivot is part of the node's identity.
type LabelNode struct {
	Slot  SlotIdx
	J     int
	Pivot int
}

func (n LabelNode) String() string { return fmt.Sprintf("(%s,%d)", n.Slot, n.J) }

// CRF is the Call Return Forest: a bipartite directed graph of cluster and
// label nodes. Per spec §9's design note ("cyclic references ... do not
// model with owning references"), both node kinds are interned by value
// into plain Go maps rather than linked via pointers, and the adjacency
// (cluster -> its label-node children) is a third map of slices. All of it
// is owned by a single parse and discarded with it.
type CRF struct {
	clusters      map[ClusterNode]bool
	clusterOrder  []ClusterNode
	labels        map[LabelNode]bool
	labelOrder    []LabelNode
	children      map[ClusterNode][]LabelNode
	childrenSeen  map[ClusterNode]map[LabelNode]bool
}

// NewCRF returns an empty call-return forest.
func NewCRF() *CRF {
	return &CRF{
		clusters:     make(map[ClusterNode]bool),
		labels:       make(map[LabelNode]bool),
		children:     make(map[ClusterNode][]LabelNode),
		childrenSeen: make(map[ClusterNode]map[LabelNode]bool),
	}
}

// AddClusterNode interns n, reporting whether it was newly created. Per
// spec §4.6 this is the "ensure CRF node (X,j) exists" operation used by
// call().
func (c *CRF) AddClusterNode(n ClusterNode) (created bool) {
	if c.clusters[n] {
		return false
	}
	c.clusters[n] = true
	c.clusterOrder = append(c.clusterOrder, n)
	return true
}

// AddLabelNode interns n, reporting whether it was newly created.
func (c *CRF) AddLabelNode(n LabelNode) (created bool) {
	if c.labels[n] {
		return false
	}
	c.labels[n] = true
	c.labelOrder = append(c.labelOrder, n)
	return true
}

// AddEdge records cluster as a parent of label: "for each child v of
// cluster u" in rtn() iterates exactly this adjacency.
func (c *CRF) AddEdge(cluster ClusterNode, label LabelNode) {
	seen := c.childrenSeen[cluster]
	if seen == nil {
		seen = make(map[LabelNode]bool)
		c.childrenSeen[cluster] = seen
	}
	if seen[label] {
		return
	}
	seen[label] = true
	c.children[cluster] = append(c.children[cluster], label)
}

// Children returns the label-node children of cluster, in the order they
// were registered.
func (c *CRF) Children(cluster ClusterNode) []LabelNode {
	return c.children[cluster]
}

// ClusterNodes returns every interned cluster node, in creation order.
func (c *CRF) ClusterNodes() []ClusterNode { return c.clusterOrder }

// LabelNodes returns every interned label node, in creation order.
func (c *CRF) LabelNodes() []LabelNode { return c.labelOrder }
