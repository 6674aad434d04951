package grammar

import "testing"

func TestBuildGrammarInternsAugmentedStartAndEndmarkerFirst(t *testing.T) {
	g, err := BuildGrammar("S", []ProductionSpec{
		{Head: "S", Body: []SymbolRef{termRef(t, 'a')}},
	})
	if err != nil {
		t.Fatalf("BuildGrammar: %v", err)
	}
	aug, body := g.AugmentedStart()
	if aug != 0 {
		t.Errorf("expected augmented start to be interned first, got index %d", aug)
	}
	if got := g.Productions.Body(aug, body); len(got) != 1 || got[0] != g.Start() {
		t.Errorf("expected S' -> S, got body %v", got)
	}
	if !g.Symbols.IsTerminal(g.Endmarker()) {
		t.Errorf("expected endmarker to be a terminal")
	}
	if g.Endmarker() != 1 {
		t.Errorf("expected endmarker to be interned right after the augmented start, got index %d", g.Endmarker())
	}
}

func TestBuildGrammarRejectsUndefinedNonterminal(t *testing.T) {
	_, err := BuildGrammar("S", []ProductionSpec{
		{Head: "S", Body: []SymbolRef{ntRef("Undefined")}},
	})
	if err == nil {
		t.Fatalf("expected GrammarError for undefined nonterminal")
	}
}

func TestBuildGrammarRejectsStartWithNoProductions(t *testing.T) {
	_, err := BuildGrammar("S", nil)
	if err == nil {
		t.Fatalf("expected GrammarError for start symbol with no productions")
	}
}

func TestProductionStoreDeduplicatesIdenticalBodies(t *testing.T) {
	ps := NewProductionStore()
	head := SymbolIdx(0)
	first := ps.AddProduction(head, []SymbolIdx{1, 2})
	second := ps.AddProduction(head, []SymbolIdx{1, 2})
	if first != second {
		t.Errorf("expected identical bodies to dedupe to the same BodyIdx")
	}
	if len(ps.Bodies(head)) != 1 {
		t.Errorf("expected exactly one body after dedup")
	}
}

func TestSymbolTableInternsByValue(t *testing.T) {
	st := NewSymbolTable()
	a := st.InternNonterminal("X")
	b := st.InternNonterminal("X")
	if a != b {
		t.Errorf("expected identical nonterminal names to share an index")
	}
}
