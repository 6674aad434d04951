package srnglr

import (
	"github.com/dvoytik/glyph"
	"github.com/dvoytik/glyph/grammar"
)

// matched pairs a table action with the terminal symbol whose charset
// selected it, so a shift can record which symbol was consumed.
type matched struct {
	sym grammar.SymbolIdx
	act Action
}

// matchedActions returns every action in cell (state, sym) for every
// terminal sym whose charset contains c. Because terminal charsets may
// overlap (spec places no disjointness requirement on them), more than one
// terminal — and hence more than one action — can match a single code
// point; Verify forks a stack for each, same as it forks for a genuine
// table conflict.
func matchedActions(g *grammar.Grammar, t *Table, state int, c glyph.CodePoint) []matched {
	var out []matched
	for _, sym := range g.Symbols.All() {
		if !g.Symbols.IsTerminal(sym) {
			continue
		}
		if !g.Symbols.Symbol(sym).Charset.Contains(c) {
			continue
		}
		for _, act := range t.Actions(state, sym) {
			out = append(out, matched{sym, act})
		}
	}
	return out
}

// Verify is a table-driven GLR recognizer over the SRNGLR table and CFSM:
// it drives the same fork-on-conflict, merge-on-rejoin algorithm as
// lr/glr/glr.go's Parser.Parse/reducesAndShiftsForToken, generalized from
// a 2-slot action cell to Table's arbitrary-width cells, and from a
// discrete-token scanner to per-code-point charset matching.
//
// It exists to serve testable property 7 (spec §4.8): Verify's acceptance
// of an input must agree with cnp.Parse's. It intentionally reconstructs
// none of SRNGLR's own derivation — no forest, no BSR — it only answers
// "does the grammar derive this input", as a second, structurally
// independent path to that single bit.
func Verify(g *grammar.Grammar, auto *Automaton, t *Table, input []glyph.CodePoint) bool {
	active := []*node{newGSS(auto.StartState().ID)}
	accepted := false
	for pos := 0; pos < len(input) && !accepted; pos++ {
		c := input[pos]
		worklist := append([]*node{}, active...)
		seen := map[*node]bool{}
		shifted := make(map[int]*node) // dedupe/merge shift targets by state
		for len(worklist) > 0 && !accepted {
			n := worklist[0]
			worklist = worklist[1:]
			if seen[n] {
				continue
			}
			seen[n] = true
			for _, m := range matchedActions(g, t, n.state, c) {
				switch m.act.Kind {
				case Accept:
					accepted = true
				case Push:
					target := push(n, m.act.State, m.sym)
					if prior, ok := shifted[m.act.State]; ok {
						shifted[m.act.State] = merge(prior, target)
					} else {
						shifted[m.act.State] = target
					}
				case Reduce:
					for _, anc := range pathsOfLength(n, m.act.Length) {
						for _, gotoAct := range t.Actions(anc.state, m.act.Head) {
							if gotoAct.Kind != Push {
								continue
							}
							worklist = append(worklist, push(anc, gotoAct.State, m.act.Head))
						}
					}
				}
			}
		}
		if accepted {
			break
		}
		if len(shifted) == 0 {
			tracer().Infof("verify: no shift possible at position %d, rejecting", pos)
			return false
		}
		active = make([]*node, 0, len(shifted))
		for _, n := range shifted {
			active = append(active, n)
		}
	}
	tracer().Infof("verify finished: accepted=%v", accepted)
	return accepted
}
