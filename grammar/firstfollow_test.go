package grammar

import (
	"testing"

	"github.com/dvoytik/glyph"
	"github.com/dvoytik/glyph/charset"
)

func termRef(t *testing.T, c rune) SymbolRef {
	t.Helper()
	cs := charset.FromCodePoint(glyph.CodePoint(c))
	return SymbolRef{Charset: cs}
}

func ntRef(name string) SymbolRef { return SymbolRef{Name: name} }

func TestFirstFollowSimple(t *testing.T) {
	// S -> a S b | ε    (scenario S4's grammar)
	g, err := BuildGrammar("S", []ProductionSpec{
		{Head: "S", Body: []SymbolRef{termRef(t, 'a'), ntRef("S"), termRef(t, 'b')}},
		{Head: "S", Body: []SymbolRef{}},
	})
	if err != nil {
		t.Fatalf("BuildGrammar: %v", err)
	}
	e := NewEngine(g)

	first := e.First(g.Start())
	if !first.Special {
		t.Errorf("expected S to be nullable")
	}
	if !first.Terminals.Contains(glyph.CodePoint('a')) {
		t.Errorf("expected 'a' in FIRST(S)")
	}

	follow := e.Follow(g.Start())
	if !follow.Terminals.Contains(glyph.CodePoint('b')) {
		t.Errorf("expected 'b' in FOLLOW(S)")
	}
	if !follow.Special {
		t.Errorf("expected '$' in FOLLOW(S) via the augmented start")
	}
}

func TestFirstOfStringMemoized(t *testing.T) {
	g, err := BuildGrammar("S", []ProductionSpec{
		{Head: "S", Body: []SymbolRef{termRef(t, 'a')}},
	})
	if err != nil {
		t.Fatalf("BuildGrammar: %v", err)
	}
	e := NewEngine(g)
	body := []SymbolIdx{g.Start()}
	a := e.FirstOfString(body, 0, false)
	b := e.FirstOfString(append([]SymbolIdx{}, body...), 0, false)
	if a != b {
		t.Fatalf("expected memoized FSet to be returned by value-identity, got distinct pointers")
	}
}

func TestFirstIndependentOfProductionOrder(t *testing.T) {
	specsA := []ProductionSpec{
		{Head: "S", Body: []SymbolRef{ntRef("A"), ntRef("B")}},
		{Head: "A", Body: []SymbolRef{termRef(t, 'a')}},
		{Head: "B", Body: []SymbolRef{termRef(t, 'b')}},
	}
	specsB := []ProductionSpec{
		{Head: "B", Body: []SymbolRef{termRef(t, 'b')}},
		{Head: "A", Body: []SymbolRef{termRef(t, 'a')}},
		{Head: "S", Body: []SymbolRef{ntRef("A"), ntRef("B")}},
	}
	g1, _ := BuildGrammar("S", specsA)
	g2, _ := BuildGrammar("S", specsB)
	e1 := NewEngine(g1)
	e2 := NewEngine(g2)
	if !e1.First(g1.Start()).Terminals.Equals(e2.First(g2.Start()).Terminals) {
		t.Fatalf("FIRST(S) should be independent of production insertion order")
	}
}
