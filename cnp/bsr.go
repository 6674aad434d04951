package cnp

import (
	"fmt"
	"sort"

	"golang.org/x/exp/slices"

	"github.com/dvoytik/glyph/grammar"
)

// BSRHead is the discriminated key of a BSR entry (spec §3/§4.7): either a
// complete subtree for a nonterminal spanning [Left, Right), or an
// intermediate (packed) node for a production prefix of length DotLen.
//
// Per DESIGN.md's resolution of the apparent tension between §4.5's literal
// bsrAdd pseudocode (which keys a complete entry by (head, body, left,
// right)) and §4.8's testable property 8 / the worked examples in §8 (which
// address complete BSR nodes as plain (head, left, right), clustering every
// alternative production of the same head under one node): Complete heads
// here drop Body, matching the externally observable shape used throughout
// §8's scenarios (S2's "(S,0,3)", S3's "(S,0,5)", S4's "(S,0,0)"/"(S,0,4)").
// Intermediate heads keep Body, since different alternatives have genuinely
// different prefixes and cannot be clustered.
type BSRHead struct {
	Complete bool
	Head     grammar.SymbolIdx
	Body     grammar.BodyIdx // meaningful only when !Complete
	DotLen   int             // meaningful only when !Complete
	Left     int
	Right    int
}

func (h BSRHead) String() string {
	if h.Complete {
		return fmt.Sprintf("(%d,%d,%d)", h.Head, h.Left, h.Right)
	}
	return fmt.Sprintf("(%d/%d.%d,%d,%d)", h.Head, h.Body, h.DotLen, h.Left, h.Right)
}

// BSRStore holds every packed binary-subtree entry discovered during a
// parse, keyed by BSRHead, with the set of legal pivots as the value (spec
// §3's "BSR head ... value stored is a set of pivot positions").
type BSRStore struct {
	pivots map[BSRHead]map[int]bool
	order  []BSRHead
}

// NewBSRStore returns an empty BSR store.
func NewBSRStore() *BSRStore {
	return &BSRStore{pivots: make(map[BSRHead]map[int]bool)}
}

func (y *BSRStore) add(h BSRHead, pivot int) {
	set, ok := y.pivots[h]
	if !ok {
		set = make(map[int]bool)
		y.pivots[h] = set
		y.order = append(y.order, h)
	}
	set[pivot] = true
}

// AddComplete records a pivot for the complete derivation of head spanning
// [left, right).
func (y *BSRStore) AddComplete(head grammar.SymbolIdx, left, pivot, right int) {
	y.add(BSRHead{Complete: true, Head: head, Left: left, Right: right}, pivot)
}

// AddIntermediate records a pivot for a partial (packed) derivation of the
// first dotLen symbols of (head, body) spanning [left, right).
func (y *BSRStore) AddIntermediate(head grammar.SymbolIdx, body grammar.BodyIdx, dotLen, left, pivot, right int) {
	y.add(BSRHead{Head: head, Body: body, DotLen: dotLen, Left: left, Right: right}, pivot)
}

// HasComplete reports whether a complete entry for (head, left, right) was
// recorded, with at least one pivot.
func (y *BSRStore) HasComplete(head grammar.SymbolIdx, left, right int) bool {
	_, ok := y.pivots[BSRHead{Complete: true, Head: head, Left: left, Right: right}]
	return ok
}

// Pivots returns the sorted pivot set for h, or nil if h was never
// recorded.
func (y *BSRStore) Pivots(h BSRHead) []int {
	set, ok := y.pivots[h]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Heads returns every recorded head, sorted by Left, then Right, then Head.
// The relative order of heads equal on all three (intermediate heads of
// different bodies or dot positions) is not defined.
func (y *BSRStore) Heads() []BSRHead {
	out := append([]BSRHead{}, y.order...)
	slices.SortFunc(out, func(a, b BSRHead) bool {
		if a.Left != b.Left {
			return a.Left < b.Left
		}
		if a.Right != b.Right {
			return a.Right < b.Right
		}
		return a.Head < b.Head
	})
	return out
}

// Len returns the number of distinct heads recorded.
func (y *BSRStore) Len() int { return len(y.pivots) }
