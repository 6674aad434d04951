package grammar

import (
	"fmt"

	"github.com/cnf/structhash"

	"github.com/dvoytik/glyph/charset"
)

// Engine computes FIRST and FOLLOW sets over a Grammar by fixed-point
// iteration keyed on total size (terminal count + special-flag count,
// summed over every symbol). It also memoizes FIRST-of-string.
type Engine struct {
	g       *Grammar
	firsts  map[SymbolIdx]*FSet
	follows map[SymbolIdx]*FSet
	memo    map[string]*FSet

	// firstSyms tracks, per symbol, which interned terminal symbols (by
	// index, not by code-point range) contribute to its FIRST set. FSet
	// itself stays exactly the two-field shape of spec §3 (a merged
	// charset, the CNP's currency); LR(1) CLOSURE needs discrete
	// lookahead *symbols* to build new items, so the engine keeps this
	// parallel bookkeeping privately rather than widening FSet's public
	// shape.
	firstSyms map[SymbolIdx]map[SymbolIdx]bool
}

// NewEngine builds and returns an Engine with FIRST and FOLLOW already
// computed to their fixed point.
func NewEngine(g *Grammar) *Engine {
	e := &Engine{
		g:         g,
		firsts:    make(map[SymbolIdx]*FSet),
		follows:   make(map[SymbolIdx]*FSet),
		memo:      make(map[string]*FSet),
		firstSyms: make(map[SymbolIdx]map[SymbolIdx]bool),
	}
	e.computeFirst()
	e.computeFollow()
	return e
}

// First returns the (read-only) FIRST set of a single symbol.
func (e *Engine) First(idx SymbolIdx) *FSet { return e.firsts[idx] }

// Follow returns the (read-only) FOLLOW set of a nonterminal.
func (e *Engine) Follow(idx SymbolIdx) *FSet { return e.follows[idx] }

func (e *Engine) totalFirstSize() uint64 {
	var n uint64
	for _, fs := range e.firsts {
		n += fs.Size()
	}
	return n
}

func (e *Engine) totalFollowSize() uint64 {
	var n uint64
	for _, fs := range e.follows {
		n += fs.Size()
	}
	return n
}

// computeFirst implements spec §4.3's FIRST construction: initialize
// terminals to the singleton set of themselves, nonterminals to empty, then
// repeatedly scan every production until the total size stops growing.
func (e *Engine) computeFirst() {
	for _, idx := range e.g.Symbols.All() {
		fs := NewFSet()
		syms := make(map[SymbolIdx]bool)
		if e.g.Symbols.IsTerminal(idx) {
			fs.Terminals = e.g.Symbols.Symbol(idx).Charset
			syms[idx] = true
		}
		e.firsts[idx] = fs
		e.firstSyms[idx] = syms
	}
	for {
		before := e.totalFirstSize()
		for _, head := range e.g.Productions.Heads() {
			for _, bi := range e.g.Productions.Bodies(head) {
				e.scanProductionForFirst(head, e.g.Productions.Body(head, bi))
			}
		}
		after := e.totalFirstSize()
		tracer().Debugf("FIRST fixed-point pass: %d -> %d", before, after)
		if after == before {
			break
		}
	}
}

func (e *Engine) scanProductionForFirst(head SymbolIdx, body []SymbolIdx) {
	target := e.firsts[head]
	targetSyms := e.firstSyms[head]
	allNullable := true
	for _, y := range body {
		yfs := e.firsts[y]
		target.Terminals = unionCharsets(target.Terminals, yfs.Terminals)
		for s := range e.firstSyms[y] {
			targetSyms[s] = true
		}
		if !yfs.Special {
			allNullable = false
			break
		}
	}
	if allNullable {
		target.Special = true
	}
}

// FirstSymbols returns the terminal symbol indices contributing to
// FIRST(idx), keyed by symbol rather than by code-point range. LR(1)
// CLOSURE uses this to generate concrete item lookaheads.
func (e *Engine) FirstSymbols(idx SymbolIdx) []SymbolIdx {
	out := make([]SymbolIdx, 0, len(e.firstSyms[idx]))
	for s := range e.firstSyms[idx] {
		out = append(out, s)
	}
	return out
}

// computeFollow implements spec §4.3's FOLLOW construction, seeding '$' on
// the augmented start symbol (see DESIGN.md Open Question 1).
func (e *Engine) computeFollow() {
	for _, idx := range e.g.Symbols.All() {
		e.follows[idx] = NewFSet()
	}
	augStart, _ := e.g.AugmentedStart()
	e.follows[augStart].Special = true

	for {
		before := e.totalFollowSize()
		for _, head := range e.g.Productions.Heads() {
			for _, bi := range e.g.Productions.Bodies(head) {
				e.scanProductionForFollow(head, e.g.Productions.Body(head, bi))
			}
		}
		after := e.totalFollowSize()
		tracer().Debugf("FOLLOW fixed-point pass: %d -> %d", before, after)
		if after == before {
			break
		}
	}
}

func (e *Engine) scanProductionForFollow(head SymbolIdx, body []SymbolIdx) {
	for i, b := range body {
		if !e.g.Symbols.IsTerminal(b) {
			tail := body[i+1:]
			tailFirst := e.FirstOfStringRaw(tail)
			follow := e.follows[b]
			follow.Terminals = unionCharsets(follow.Terminals, tailFirst.Terminals)
			if tailFirst.Special {
				follow.Terminals = unionCharsets(follow.Terminals, e.follows[head].Terminals)
				if e.follows[head].Special {
					follow.Special = true
				}
			}
		}
	}
}

// FirstOfStringRaw computes FIRST of a symbol sequence with no lookahead
// suffix, per spec §4.3's "FIRST-of-string" rule.
func (e *Engine) FirstOfStringRaw(body []SymbolIdx) *FSet {
	return e.FirstOfString(body, 0, false)
}

// FirstOfString computes FIRST of body, optionally appending a single
// lookahead symbol (the first(βa) form; LR(1) CLOSURE itself calls
// FirstOfStringSymbols, which works on symbol indices instead). Results
// are memoized by a structural key over (body, lookahead), per the
// "memoize FIRST-of-string" directive in spec §4.3/§9 — keyed by value, not
// by slice pointer identity.
func (e *Engine) FirstOfString(body []SymbolIdx, lookahead SymbolIdx, hasLookahead bool) *FSet {
	key := e.memoKey(body, lookahead, hasLookahead)
	if fs, ok := e.memo[key]; ok {
		return fs
	}
	out := NewFSet()
	allNullable := true
	for _, y := range body {
		yfs := e.firsts[y]
		out.Terminals = unionCharsets(out.Terminals, yfs.Terminals)
		if !yfs.Special {
			allNullable = false
			break
		}
	}
	if allNullable {
		if hasLookahead {
			lfs := e.firsts[lookahead]
			out.Terminals = unionCharsets(out.Terminals, lfs.Terminals)
			out.Special = lfs.Special
		} else {
			out.Special = true
		}
	}
	e.memo[key] = out
	return out
}

// FirstOfStringSymbols is FirstOfString's symbol-granularity counterpart:
// the set of terminal symbol indices that can begin body, followed by
// lookahead when body is wholly nullable. LR(1) CLOSURE calls this with
// body = tail-after-the-dot and lookahead = the item's own lookahead to
// generate the lookaheads of newly closed items.
func (e *Engine) FirstOfStringSymbols(body []SymbolIdx, lookahead SymbolIdx) []SymbolIdx {
	seen := make(map[SymbolIdx]bool)
	allNullable := true
	for _, y := range body {
		for s := range e.firstSyms[y] {
			seen[s] = true
		}
		if !e.firsts[y].Special {
			allNullable = false
			break
		}
	}
	if allNullable {
		seen[lookahead] = true
	}
	out := make([]SymbolIdx, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	return out
}

func (e *Engine) memoKey(body []SymbolIdx, lookahead SymbolIdx, hasLookahead bool) string {
	ints := make([]int, len(body))
	for i, s := range body {
		ints[i] = int(s)
	}
	h, err := structhash.Hash(struct {
		Body         []int
		Lookahead    int
		HasLookahead bool
	}{Body: ints, Lookahead: int(lookahead), HasLookahead: hasLookahead}, 1)
	if err != nil {
		panic(fmt.Errorf("grammar: hashing FIRST-of-string key: %w", err))
	}
	return h
}

func unionCharsets(a, b *charset.Set) *charset.Set {
	return charset.Union(a, b)
}
