package srnglr

import "github.com/dvoytik/glyph/grammar"

// node is one vertex of a graph-structured stack: a parser state, reached
// from each of preds via the symbol it was pushed with. More than one
// predecessor records a GLR merge — two parse paths that arrived at the
// same state and were folded into one node.
//
// This is a deliberately small reconstruction of the teacher's dss.Stack:
// the pack retrieved lr/dss/stack_test.go (which exercises Push, Peek,
// Fork, FindHandlePath, splitOff and Reduce) but not stack.go itself, so
// the path-count / inverse-fork / inverse-join bookkeeping that file's
// tests describe could not be copied. Verify only needs "does some path
// of length N exist back from this node", not stack splitting or
// handle-finding by symbol sequence, so node/push/merge/pathsOfLength
// cover exactly that subset, grounded on the shape lr/glr/glr.go drives
// (stack.Peek, stack.Push, stack.Reduce) rather than on dss's internals.
type node struct {
	state int
	sym   grammar.SymbolIdx
	preds []*node
}

// newGSS returns a fresh graph-structured stack rooted at a single node in
// startState, with no incoming symbol (the bottom-of-stack marker).
func newGSS(startState int) *node {
	return &node{state: startState}
}

// push creates a new node on top of pred, reached via sym.
func push(pred *node, state int, sym grammar.SymbolIdx) *node {
	return &node{state: state, sym: sym, preds: []*node{pred}}
}

// merge folds b into a: a now has every predecessor of both, representing
// the diamond shape of two parse paths rejoining at the same state. a is
// kept as the canonical node; callers must stop referencing b afterwards.
func merge(a, b *node) *node {
	a.preds = append(a.preds, b.preds...)
	return a
}

// pathsOfLength returns, for every predecessor chain of exactly length
// edges reachable from n, the ancestor node at the far end of that chain —
// i.e. the node a reduce of a length-long handle would pop back to. A
// fork in the stack (an ancestor with more than one predecessor) yields
// more than one path and hence more than one ancestor in the result,
// exactly the "reduce along all such paths" behavior glr.go's Parser.reduce
// relies on dss.Stack.Reduce for.
func pathsOfLength(n *node, length int) []*node {
	if length == 0 {
		return []*node{n}
	}
	out := make([]*node, 0, len(n.preds))
	for _, p := range n.preds {
		out = append(out, pathsOfLength(p, length-1)...)
	}
	return out
}
