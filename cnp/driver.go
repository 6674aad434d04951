package cnp

import (
	"fmt"

	"github.com/dvoytik/glyph"
	"github.com/dvoytik/glyph/grammar"
	"github.com/dvoytik/glyph/srnglr/iteratable"
)

// Descriptor is "(slot, input_position, parse_position)" per spec §3: L is
// the slot to execute, K is the CRF reference ("cU") to resume under, J is
// the input position ("cI") to resume at.
//
// In this grammar model a CRF reference is itself an input position (a
// cluster or label node is uniquely addressed by pairing its symbol/slot
// with a position), so K and J share the same domain; see cnp.ClusterNode
// and cnp.LabelNode.
//
// P carries the BSR pivot established for this production instance once its
// first symbol completes (see cnp.LabelNode.Pivot); it is meaningless while
// L's dot is still 0. Ambiguity in the first symbol can make two otherwise
// identical (L,K,J) descriptors require two different pivots downstream, so
// P participates in the dedup key alongside L, K and J.
type Descriptor struct {
	L SlotIdx
	K int
	J int
	P int
}

// SetKey lets Descriptor dedupe through iteratable.Set, reusing the same
// growing-cursor-queue component srnglr.Closure uses for LR(1) closure —
// the CNP descriptor queue R plus its dedup set U are exactly that
// structure applied to a different element type.
func (d Descriptor) SetKey() string {
	return fmt.Sprintf("%d/%d/%d/%d", d.L, d.K, d.J, d.P)
}

// config holds the options a CNP run is built with. Parse starts from
// storeBSR = true, retaining the full BSR; passing AcceptOnly() to Parse
// trades that retention away for an acceptance-only run.
type config struct {
	storeBSR bool
}

// Option configures a Parse run, in the style of gorgo/lr/earley.Option
// (functional options on a constructor rather than a config struct field
// clients set directly).
type Option func(*config)

// AcceptOnly disables BSR retention: the parse still computes whether
// the start symbol derives the input, but does not keep the packed forest
// around. The CRF is still built, since the parse runs on it, and is
// returned in Result.CRF as usual. Useful for a recognizer-only pass over large inputs.
func AcceptOnly() Option {
	return func(c *config) { c.storeBSR = false }
}

// Result is what parse_cnp(grammar, input) returns per spec §6: acceptance,
// the BSR store (possibly empty under AcceptOnly), the CRF, and the
// ambiguity degree (pivot-set size at the root).
type Result struct {
	Accepted        bool
	BSR             *BSRStore
	CRF             *CRF
	AmbiguityDegree int
}

// parseState is the per-parse parser_context of spec §3: CRF, P, Y, R/U
// (collapsed into one iteratable.Set) and the scratch cU/cI the main loop
// updates on every descriptor pop. It is owned exclusively by one call to
// Parse and discarded when Parse returns.
type parseState struct {
	g      *grammar.Grammar
	eng    *grammar.Engine
	labels *LabelIndex
	input  []glyph.CodePoint
	cfg    config

	crf *CRF
	p   map[ClusterNode]map[int]bool
	y   *BSRStore
	r   *iteratable.Set

	m           int // position of ENDMARKER: input[m] == glyph.ENDMARKER
	accepted    bool
	rootPivots  map[int]bool
}

// Parse runs the Clustered Nonterminal Parser over input, which must be
// terminated by glyph.ENDMARKER, against the grammar g with precomputed
// first/follow engine eng. It is the parse_cnp(grammar_handle, input[])
// library entry point from spec §6.
func Parse(g *grammar.Grammar, eng *grammar.Engine, input []glyph.CodePoint, opts ...Option) *Result {
	cfg := config{storeBSR: true}
	for _, o := range opts {
		o(&cfg)
	}
	p := &parseState{
		g:          g,
		eng:        eng,
		labels:     BuildLabelIndex(g),
		input:      input,
		cfg:        cfg,
		crf:        NewCRF(),
		p:          make(map[ClusterNode]map[int]bool),
		y:          NewBSRStore(),
		r:          iteratable.NewSet(),
		m:          len(input) - 1,
		rootPivots: make(map[int]bool),
	}

	start := g.Start()
	seed := ClusterNode{Head: start, J: 0}
	p.crf.AddClusterNode(seed)
	p.ntAdd(seed, 0)

	p.r.IterateOnce()
	for p.r.Next() {
		p.execute(p.r.Item().(Descriptor))
	}

	degree := 0
	if p.accepted {
		degree = len(p.rootPivots)
	}
	tracer().Infof("parse finished: accepted=%v, ambiguity degree=%d, %d descriptors processed",
		p.accepted, degree, p.r.Size())
	return &Result{Accepted: p.accepted, BSR: p.y, CRF: p.crf, AmbiguityDegree: degree}
}

// noPivot marks a descriptor/label whose production has not yet completed
// its first symbol, so no pivot has been established yet.
const noPivot = -1

// dscAdd adds descriptor (l, k, j, pivot) to the work queue if it isn't
// already present, per spec §4.5 (extended with the threaded BSR pivot, see
// Descriptor.P).
func (p *parseState) dscAdd(l SlotIdx, k, j, pivot int) {
	p.r.Add(Descriptor{L: l, K: k, J: j, P: pivot})
}

// ntAdd spawns the initial descriptors for cluster (whose head is a
// nonterminal X entered at input position j): for each alternative body of
// X selectable at the current input symbol, add ((X,body,0), j, j).
func (p *parseState) ntAdd(cluster ClusterNode, j int) {
	x := cluster.Head
	c := p.input[j]
	for _, bi := range p.g.Productions.Bodies(x) {
		body := p.g.Productions.Body(x, bi)
		if p.testSelect(c, x, body) {
			slot := p.labels.Intern(Slot{Head: x, Body: bi, Dot: 0})
			p.dscAdd(slot, j, j, noPivot)
		}
	}
}

// call implements spec §4.5's call((A,body,dot+1), cU, cI): lp is the
// continuation label (A→...X·β) reached once X completes; k,j are the
// caller's cU/cI; x is the nonterminal being entered.
//
// pivot is the BSR split point already established for the calling
// production instance (right extent of its first symbol), or noPivot if X
// itself is that first symbol — in which case X's own completion position
// becomes the pivot once it is known (see the loop below and rtn).
func (p *parseState) call(lp SlotIdx, k, j int, x grammar.SymbolIdx, pivot int) {
	u := LabelNode{Slot: lp, J: k, Pivot: pivot}
	v := ClusterNode{Head: x, J: j}
	p.crf.AddLabelNode(u)
	created := p.crf.AddClusterNode(v)
	p.crf.AddEdge(v, u)
	if created {
		p.ntAdd(v, j)
		return
	}
	for h := range p.p[v] {
		resumed := pivot
		if resumed == noPivot {
			resumed = h
		}
		p.dscAdd(lp, k, h, resumed)
		p.bsrAdd(p.labels.Slot(lp), k, resumed, h)
	}
}

// rtn implements spec §4.5's rtn(A, cU, cI): record that A entered at k has
// now completed up to j, and wake every label waiting on that cluster. Each
// waiting label carries its own established pivot (or noPivot, in which
// case this completion position j becomes that pivot).
func (p *parseState) rtn(a grammar.SymbolIdx, k, j int) {
	v := ClusterNode{Head: a, J: k}
	seen := p.p[v]
	if seen == nil {
		seen = make(map[int]bool)
		p.p[v] = seen
	}
	if seen[j] {
		return
	}
	seen[j] = true
	for _, child := range p.crf.Children(v) {
		resumed := child.Pivot
		if resumed == noPivot {
			resumed = j
		}
		p.dscAdd(child.Slot, child.J, j, resumed)
		p.bsrAdd(p.labels.Slot(child.Slot), child.J, resumed, j)
	}
}

// execute runs the actions of label L (spec §4.5, steps 1-4) starting from
// descriptor (L, k, j), threading the BSR pivot established for this
// production instance (d.P, or noPivot before the first symbol completes)
// forward through every bsrAdd call it makes.
func (p *parseState) execute(d Descriptor) {
	l := p.labels.Slot(d.L)
	k, j := d.K, d.J
	body := l.bodySyms(p.g)
	dot := l.Dot
	pivot := d.P

	for dot < len(body) {
		sym := body[dot]
		if p.g.Symbols.IsTerminal(sym) {
			if dot != 0 {
				if !p.testSelect(p.input[j], l.Head, body[dot:]) {
					return
				}
			}
			dot++
			j++
			if dot == 1 {
				pivot = j
			}
			p.bsrAdd(Slot{Head: l.Head, Body: l.Body, Dot: dot}, k, pivot, j)
			continue
		}
		if dot != 0 {
			if !p.testSelect(p.input[j], l.Head, body[dot:]) {
				return
			}
		}
		lp := p.labels.Intern(Slot{Head: l.Head, Body: l.Body, Dot: dot + 1})
		callPivot := pivot
		if dot == 0 {
			callPivot = noPivot
		}
		p.call(lp, k, j, sym, callPivot)
		return
	}

	if len(body) == 0 {
		p.bsrAdd(Slot{Head: l.Head, Body: l.Body, Dot: 0}, j, j, j)
	}
	if p.inFollow(p.input[j], l.Head) {
		p.rtn(l.Head, k, j)
	}
}

// bsrAdd implements spec §4.5/§4.7's bsrAdd contract (Design Open Question
// 2): a slot at the end of its body records a complete subtree; a slot more
// than one symbol past its start records an intermediate (packed) node; a
// slot exactly one symbol past its start is a unary chain and needs no BSR
// entry of its own.
//
// pivot is always the right extent of the production's first symbol (see
// execute, call and rtn), not the left extent of the most recently matched
// symbol: every BSR entry for one production instance — intermediate or
// complete — shares that same split point, per spec §8's worked scenarios.
func (p *parseState) bsrAdd(s Slot, left, pivot, right int) {
	body := s.bodySyms(p.g)
	switch {
	case s.Dot == len(body):
		if s.Head == p.g.Start() && left == 0 && right == p.m {
			p.accepted = true
			p.rootPivots[pivot] = true
		}
		if p.cfg.storeBSR {
			p.y.AddComplete(s.Head, left, pivot, right)
		}
	case s.Dot > 1:
		if p.cfg.storeBSR {
			p.y.AddIntermediate(s.Head, s.Body, s.Dot, left, pivot, right)
		}
	}
}

// testSelect implements spec §4.5's TEST_SELECT(c, A, σ): c is a legal
// lookahead for σ either directly (c ∈ first(σ)) or, when σ is nullable,
// transitively through follow(A).
func (p *parseState) testSelect(c glyph.CodePoint, head grammar.SymbolIdx, sigma []grammar.SymbolIdx) bool {
	first := p.eng.FirstOfStringRaw(sigma)
	if first.Terminals.Contains(c) {
		return true
	}
	if first.Special {
		return p.inFollow(c, head)
	}
	return false
}

// inFollow reports c ∈ follow(head), treating glyph.ENDMARKER uniformly
// between ordinary charset membership and the FOLLOW set's Special ("$ is
// in follow") channel, per spec §4.5's acceptance/return check.
func (p *parseState) inFollow(c glyph.CodePoint, head grammar.SymbolIdx) bool {
	follow := p.eng.Follow(head)
	if follow.Terminals.Contains(c) {
		return true
	}
	return follow.Special && c == glyph.ENDMARKER
}
