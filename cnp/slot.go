package cnp

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/dvoytik/glyph/grammar"
)

// tracer traces with key 'glyph.cnp'.
func tracer() tracing.Trace {
	return tracing.Select("glyph.cnp")
}

// Slot is a dotted production (head, body, dot), used as a label by the
// CNP — the runtime counterpart of srnglr.Item, without a lookahead.
type Slot struct {
	Head grammar.SymbolIdx
	Body grammar.BodyIdx
	Dot  int
}

func (s Slot) String() string {
	return fmt.Sprintf("%d→%d.%d", s.Head, s.Body, s.Dot)
}

// SlotIdx is a stable index into a LabelIndex, the runtime address of a
// Slot used as a CRF label node.
type SlotIdx int

// LabelIndex interns the slots that can serve as CNP labels: per spec §4.5,
// every production body contributes its dot=0 slot, every dot=i such that
// the symbol at i-1 is a nonterminal (the re-entry point after a call
// returns), and its accept slot (dot=len(body)).
//
// Parse builds a fresh LabelIndex with BuildLabelIndex at the start of every
// run, from the grammar's symbol table and production store; the index is
// not cached on the grammar between runs.
type LabelIndex struct {
	g      *grammar.Grammar
	slots  []Slot
	index  map[Slot]SlotIdx
}

// BuildLabelIndex generates and interns every slot label for g, per the
// generation rule in spec §4.5.
func BuildLabelIndex(g *grammar.Grammar) *LabelIndex {
	li := &LabelIndex{g: g, index: make(map[Slot]SlotIdx)}
	for _, head := range g.Productions.Heads() {
		for _, bi := range g.Productions.Bodies(head) {
			body := g.Productions.Body(head, bi)
			li.intern(Slot{Head: head, Body: bi, Dot: 0})
			for i := 1; i < len(body); i++ {
				if !g.Symbols.IsTerminal(body[i-1]) {
					li.intern(Slot{Head: head, Body: bi, Dot: i})
				}
			}
			li.intern(Slot{Head: head, Body: bi, Dot: len(body)})
		}
	}
	tracer().Infof("label index built: %d slots", len(li.slots))
	return li
}

func (li *LabelIndex) intern(s Slot) SlotIdx {
	if idx, ok := li.index[s]; ok {
		return idx
	}
	idx := SlotIdx(len(li.slots))
	li.slots = append(li.slots, s)
	li.index[s] = idx
	return idx
}

// Intern returns the stable index of s, interning it if grammar-build-time
// generation somehow missed it (defensive; the normal path is a pure
// lookup against the precomputed table).
func (li *LabelIndex) Intern(s Slot) SlotIdx {
	return li.intern(s)
}

// Slot returns the slot addressed by idx.
func (li *LabelIndex) Slot(idx SlotIdx) Slot {
	return li.slots[idx]
}

// Len returns the number of interned labels.
func (li *LabelIndex) Len() int { return len(li.slots) }

// bodySyms returns the symbol sequence of s's production.
func (s Slot) bodySyms(g *grammar.Grammar) []grammar.SymbolIdx {
	return g.Productions.Body(s.Head, s.Body)
}
