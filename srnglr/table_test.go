package srnglr

import (
	"testing"

	"github.com/dvoytik/glyph"
	"github.com/dvoytik/glyph/charset"
	"github.com/dvoytik/glyph/cnp"
	"github.com/dvoytik/glyph/grammar"
)

func termRef(c rune) grammar.SymbolRef {
	return grammar.SymbolRef{Charset: charset.FromCodePoint(glyph.CodePoint(c))}
}

func ntRef(name string) grammar.SymbolRef { return grammar.SymbolRef{Name: name} }

func codepoints(s string) []glyph.CodePoint {
	out := make([]glyph.CodePoint, 0, len(s)+1)
	for _, r := range s {
		out = append(out, glyph.CodePoint(r))
	}
	return append(out, glyph.ENDMARKER)
}

// a+a+a with S -> S + S | a is a classic shift/reduce-ambiguous grammar:
// the table must preserve the conflict rather than pick a winner.
func TestBuildAutomatonAndTablePreservesConflicts(t *testing.T) {
	g, err := grammar.BuildGrammar("S", []grammar.ProductionSpec{
		{Head: "S", Body: []grammar.SymbolRef{ntRef("S"), termRef('+'), ntRef("S")}},
		{Head: "S", Body: []grammar.SymbolRef{termRef('a')}},
	})
	if err != nil {
		t.Fatalf("BuildGrammar: %v", err)
	}
	eng := grammar.NewEngine(g)
	auto := BuildAutomaton(g, eng)
	if len(auto.States()) == 0 {
		t.Fatalf("expected at least one CFSM state")
	}
	tbl := CreateTables(g, eng, auto)
	if !tbl.HasConflicts() {
		t.Errorf("expected S -> S + S | a to produce a reduce/reduce or shift/reduce conflict")
	}
}

// A simple LL(1)-shaped grammar should yield a conflict-free table.
func TestBuildAutomatonAndTableUnambiguous(t *testing.T) {
	g, err := grammar.BuildGrammar("S", []grammar.ProductionSpec{
		{Head: "S", Body: []grammar.SymbolRef{termRef('a'), ntRef("S"), termRef('b')}},
		{Head: "S", Body: []grammar.SymbolRef{}},
	})
	if err != nil {
		t.Fatalf("BuildGrammar: %v", err)
	}
	eng := grammar.NewEngine(g)
	auto := BuildAutomaton(g, eng)
	tbl := CreateTables(g, eng, auto)
	if tbl.HasConflicts() {
		t.Errorf("did not expect a conflict for S -> a S b | eps")
	}
}

func TestClosureAndGotoAdvanceDot(t *testing.T) {
	g, err := grammar.BuildGrammar("S", []grammar.ProductionSpec{
		{Head: "S", Body: []grammar.SymbolRef{termRef('a')}},
	})
	if err != nil {
		t.Fatalf("BuildGrammar: %v", err)
	}
	eng := grammar.NewEngine(g)
	augStart, augBody := g.AugmentedStart()
	seed := NewItemSet(Item{Head: augStart, Body: augBody, Position: 0, Lookahead: g.Endmarker()})
	closed := Closure(g, eng, seed)
	if closed.Size() < 2 {
		t.Fatalf("expected closure to add the S -> .a item, got %d items", closed.Size())
	}
	aSym := findTerminal(t, g, 'a')
	next := Goto(g, eng, closed, aSym)
	if next == nil {
		t.Fatalf("expected GOTO(I0, 'a') to be non-nil")
	}
	for _, v := range next.Values() {
		it := v.(Item)
		if it.Head == g.Start() && it.Position != 1 {
			t.Errorf("expected dot advanced past 'a', got position %d", it.Position)
		}
	}
}

func findTerminal(t *testing.T, g *grammar.Grammar, c rune) grammar.SymbolIdx {
	t.Helper()
	for _, s := range g.Symbols.All() {
		if g.Symbols.IsTerminal(s) && g.Symbols.Symbol(s).Charset.Contains(glyph.CodePoint(c)) {
			return s
		}
	}
	t.Fatalf("no terminal symbol matches %q", c)
	return 0
}

// Verify must agree with cnp.Parse's acceptance on both accepting and
// rejecting inputs, per testable property 7: two structurally independent
// parsers over the same grammar must not disagree on membership.
func TestVerifyAgreesWithCNPAcceptance(t *testing.T) {
	g, err := grammar.BuildGrammar("S", []grammar.ProductionSpec{
		{Head: "S", Body: []grammar.SymbolRef{ntRef("S"), termRef('a')}},
		{Head: "S", Body: []grammar.SymbolRef{termRef('a')}},
	})
	if err != nil {
		t.Fatalf("BuildGrammar: %v", err)
	}
	eng := grammar.NewEngine(g)
	auto := BuildAutomaton(g, eng)
	tbl := CreateTables(g, eng, auto)

	for _, tc := range []struct {
		input string
		want  bool
	}{
		{"a", true},
		{"aaa", true},
		{"b", false},
		{"", false},
	} {
		got := Verify(g, auto, tbl, codepoints(tc.input))
		if got != tc.want {
			t.Errorf("Verify(%q) = %v, want %v", tc.input, got, tc.want)
		}
		if cnpGot := cnp.Parse(g, eng, codepoints(tc.input), cnp.AcceptOnly()).Accepted; cnpGot != got {
			t.Errorf("Verify(%q) = %v, but cnp.Parse accepted = %v", tc.input, got, cnpGot)
		}
	}
}
