package grammar

import "fmt"

// BodyIdx indexes an alternative body within a head's production set, in
// insertion order.
type BodyIdx int

// ProductionStore maps a nonterminal head to its set of alternative bodies.
// Each body is an ordered sequence of symbol indices; a zero-length body is
// the ε production. Insertion order is preserved, identical bodies are
// deduplicated.
type ProductionStore struct {
	bodies map[SymbolIdx][][]SymbolIdx
	order  []SymbolIdx // heads in first-seen order, for deterministic iteration
}

// NewProductionStore returns an empty production store.
func NewProductionStore() *ProductionStore {
	return &ProductionStore{bodies: make(map[SymbolIdx][][]SymbolIdx)}
}

// AddProduction appends body as an alternative for head, skipping it if an
// identical body is already present for that head.
func (ps *ProductionStore) AddProduction(head SymbolIdx, body []SymbolIdx) BodyIdx {
	existing, ok := ps.bodies[head]
	if !ok {
		ps.order = append(ps.order, head)
	}
	for i, b := range existing {
		if sliceEqual(b, body) {
			return BodyIdx(i)
		}
	}
	cp := append([]SymbolIdx{}, body...)
	ps.bodies[head] = append(existing, cp)
	tracer().Debugf("production #%d -> %v (body #%d)", head, cp, len(existing))
	return BodyIdx(len(existing))
}

// Bodies returns every alternative body index for head.
func (ps *ProductionStore) Bodies(head SymbolIdx) []BodyIdx {
	n := len(ps.bodies[head])
	out := make([]BodyIdx, n)
	for i := range out {
		out[i] = BodyIdx(i)
	}
	return out
}

// Body returns the ordered symbol sequence for (head, body).
func (ps *ProductionStore) Body(head SymbolIdx, body BodyIdx) []SymbolIdx {
	return ps.bodies[head][body]
}

// Heads returns every nonterminal with at least one production, in
// first-seen order.
func (ps *ProductionStore) Heads() []SymbolIdx {
	return ps.order
}

func sliceEqual(a, b []SymbolIdx) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (ps *ProductionStore) String() string {
	out := ""
	for _, h := range ps.order {
		for i, b := range ps.bodies[h] {
			out += fmt.Sprintf("#%d -> %v (body #%d)\n", h, b, i)
		}
	}
	return out
}
