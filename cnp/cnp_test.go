package cnp

import (
	"testing"

	"github.com/dvoytik/glyph"
	"github.com/dvoytik/glyph/charset"
	"github.com/dvoytik/glyph/grammar"
)

func term(c rune) grammar.SymbolRef {
	return grammar.SymbolRef{Charset: charset.FromCodePoint(glyph.CodePoint(c))}
}

func termRange(lo, hi rune) grammar.SymbolRef {
	r, _ := charset.FromRange(charset.URange{Start: glyph.CodePoint(lo), Stop: glyph.CodePoint(hi)})
	return grammar.SymbolRef{Charset: r}
}

func nt(name string) grammar.SymbolRef { return grammar.SymbolRef{Name: name} }

func codepoints(s string) []glyph.CodePoint {
	out := make([]glyph.CodePoint, 0, len(s)+1)
	for _, r := range s {
		out = append(out, glyph.CodePoint(r))
	}
	out = append(out, glyph.ENDMARKER)
	return out
}

func build(t *testing.T, start string, specs []grammar.ProductionSpec) (*grammar.Grammar, *grammar.Engine) {
	t.Helper()
	g, err := grammar.BuildGrammar(start, specs)
	if err != nil {
		t.Fatalf("BuildGrammar: %v", err)
	}
	return g, grammar.NewEngine(g)
}

// S1: S -> a, input "a". Accept, root pivot set {1}.
func TestScenarioS1(t *testing.T) {
	g, e := build(t, "S", []grammar.ProductionSpec{
		{Head: "S", Body: []grammar.SymbolRef{term('a')}},
	})
	res := Parse(g, e, codepoints("a"))
	if !res.Accepted {
		t.Fatalf("expected accept")
	}
	pivots := res.BSR.Pivots(BSRHead{Complete: true, Head: g.Start(), Left: 0, Right: 1})
	if len(pivots) != 1 || pivots[0] != 1 {
		t.Errorf("expected root pivot set {1}, got %v", pivots)
	}
}

// S2: S -> S a | a, input "aaa". Accept, root pivot set {2}, ambiguity 1.
func TestScenarioS2(t *testing.T) {
	g, e := build(t, "S", []grammar.ProductionSpec{
		{Head: "S", Body: []grammar.SymbolRef{nt("S"), term('a')}},
		{Head: "S", Body: []grammar.SymbolRef{term('a')}},
	})
	res := Parse(g, e, codepoints("aaa"))
	if !res.Accepted {
		t.Fatalf("expected accept")
	}
	pivots := res.BSR.Pivots(BSRHead{Complete: true, Head: g.Start(), Left: 0, Right: 3})
	if len(pivots) != 1 || pivots[0] != 2 {
		t.Errorf("expected root pivot set {2}, got %v", pivots)
	}
	if res.AmbiguityDegree != 1 {
		t.Errorf("expected ambiguity degree 1, got %d", res.AmbiguityDegree)
	}
}

// S3: S -> S + S | a, input "a+a+a". Accept, root pivot set {1,3}.
func TestScenarioS3(t *testing.T) {
	g, e := build(t, "S", []grammar.ProductionSpec{
		{Head: "S", Body: []grammar.SymbolRef{nt("S"), term('+'), nt("S")}},
		{Head: "S", Body: []grammar.SymbolRef{term('a')}},
	})
	res := Parse(g, e, codepoints("a+a+a"))
	if !res.Accepted {
		t.Fatalf("expected accept")
	}
	pivots := res.BSR.Pivots(BSRHead{Complete: true, Head: g.Start(), Left: 0, Right: 5})
	if len(pivots) != 2 || pivots[0] != 1 || pivots[1] != 3 {
		t.Errorf("expected root pivot set {1,3}, got %v", pivots)
	}
	if res.AmbiguityDegree != 2 {
		t.Errorf("expected ambiguity degree 2, got %d", res.AmbiguityDegree)
	}
}

// S4: S -> a S b | ε, input "aabb". Accept; BSR includes (S,2,2) via the
// epsilon edge (the only position where ε is selectable) and (S,0,4) with
// pivot 1.
func TestScenarioS4(t *testing.T) {
	g, e := build(t, "S", []grammar.ProductionSpec{
		{Head: "S", Body: []grammar.SymbolRef{term('a'), nt("S"), term('b')}},
		{Head: "S", Body: []grammar.SymbolRef{}},
	})
	res := Parse(g, e, codepoints("aabb"))
	if !res.Accepted {
		t.Fatalf("expected accept")
	}
	if !res.BSR.HasComplete(g.Start(), 2, 2) {
		t.Errorf("expected an epsilon completion (S,2,2)")
	}
	pivots := res.BSR.Pivots(BSRHead{Complete: true, Head: g.Start(), Left: 0, Right: 4})
	if len(pivots) != 1 || pivots[0] != 1 {
		t.Errorf("expected root pivot set {1}, got %v", pivots)
	}
}

// S5: S -> a, input "b". Reject; Y is empty.
func TestScenarioS5(t *testing.T) {
	g, e := build(t, "S", []grammar.ProductionSpec{
		{Head: "S", Body: []grammar.SymbolRef{term('a')}},
	})
	res := Parse(g, e, codepoints("b"))
	if res.Accepted {
		t.Fatalf("expected reject")
	}
	if res.BSR.Len() != 0 {
		t.Errorf("expected empty BSR store on rejection, got %d heads", res.BSR.Len())
	}
}

// S6: E -> E + E | E * E | d, d = [0-9] as a single-codepoint terminal
// charset. Input "1+2*3". Accept with exactly two root pivots.
func TestScenarioS6(t *testing.T) {
	g, e := build(t, "E", []grammar.ProductionSpec{
		{Head: "E", Body: []grammar.SymbolRef{nt("E"), term('+'), nt("E")}},
		{Head: "E", Body: []grammar.SymbolRef{nt("E"), term('*'), nt("E")}},
		{Head: "E", Body: []grammar.SymbolRef{termRange('0', '9')}},
	})
	res := Parse(g, e, codepoints("1+2*3"))
	if !res.Accepted {
		t.Fatalf("expected accept")
	}
	if res.AmbiguityDegree != 2 {
		t.Errorf("expected exactly two root pivots, got %d", res.AmbiguityDegree)
	}
}

func TestAcceptOnlyOmitsBSRButStillAccepts(t *testing.T) {
	g, e := build(t, "S", []grammar.ProductionSpec{
		{Head: "S", Body: []grammar.SymbolRef{term('a')}},
	})
	res := Parse(g, e, codepoints("a"), AcceptOnly())
	if !res.Accepted {
		t.Fatalf("expected accept")
	}
	if res.BSR.Len() != 0 {
		t.Errorf("expected AcceptOnly to skip BSR retention, got %d heads", res.BSR.Len())
	}
}
