package srnglr

import (
	"github.com/dvoytik/glyph/grammar"
	"github.com/dvoytik/glyph/srnglr/iteratable"
)

// NewItemSet returns an iteratable.Set holding the given Items (empty if
// none are given).
func NewItemSet(items ...Item) *iteratable.Set {
	s := iteratable.NewSet()
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Closure computes CLOSURE(seed) per spec §4.4: repeat until stable, for
// every item [A→α·Bβ, a] where B is a nonterminal, for every production
// B→γ, for every b ∈ FIRST(βa), add [B→·γ, b].
//
// The re-scan is implemented by iteratable.Set's growing-cursor iteration
// (see iteratable.Set.Next), not by a separate outer measure-and-repeat
// loop: new items appended mid-scan are still visited by the same Next()
// loop, which is the re-scan discipline spec §9's Design Notes insist on.
func Closure(g *grammar.Grammar, eng *grammar.Engine, seed *iteratable.Set) *iteratable.Set {
	C := seed.Copy()
	C.IterateOnce()
	for C.Next() {
		item := C.Item().(Item)
		sym, ok := item.NextSymbol(g)
		if !ok || g.Symbols.IsTerminal(sym) {
			continue
		}
		tail := item.Tail(g)
		beta := tail[1:] // symbols strictly after B
		lookaheads := eng.FirstOfStringSymbols(beta, item.Lookahead)
		for _, bi := range g.Productions.Bodies(sym) {
			for _, b := range lookaheads {
				C.Add(Item{Head: sym, Body: bi, Position: 0, Lookahead: b})
			}
		}
	}
	tracer().Debugf("closure(%d items) -> %d items", seed.Size(), C.Size())
	return C
}

// Goto computes GOTO(I, X) per spec §4.4: advance every item whose next
// symbol is X, then close. Returns nil if the result would be empty — an
// empty goto is never interned as a state.
func Goto(g *grammar.Grammar, eng *grammar.Engine, I *iteratable.Set, x grammar.SymbolIdx) *iteratable.Set {
	advanced := iteratable.NewSet()
	for _, v := range I.Values() {
		item := v.(Item)
		sym, ok := item.NextSymbol(g)
		if !ok || sym != x {
			continue
		}
		advanced.Add(item.Advance())
	}
	if advanced.Empty() {
		return nil
	}
	return Closure(g, eng, advanced)
}
