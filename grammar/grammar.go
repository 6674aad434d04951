package grammar

import (
	"fmt"

	"github.com/dvoytik/glyph"
	"github.com/dvoytik/glyph/charset"
)

// SymbolRef is how an external meta-AST builder (out of scope for this
// module) refers to a symbol inside a production body: a name for a
// nonterminal reference, or a charset for a terminal.
type SymbolRef struct {
	Name    string
	Charset *charset.Set
}

// IsTerminal reports whether this reference denotes a terminal.
func (r SymbolRef) IsTerminal() bool {
	return r.Charset != nil
}

// ProductionSpec is one alternative body for a named nonterminal head, as
// supplied by the external meta-AST builder.
type ProductionSpec struct {
	Head string
	Body []SymbolRef
}

// Grammar is the augmented grammar built from a ProductionSpec list: an
// interned symbol table, a production store keyed by symbol index, and the
// distinguished start/augmented-start/endmarker indices.
//
// The symbol table, production store and (once computed) first/follow
// tables are read-only after BuildGrammar; parse-time code only reads them.
type Grammar struct {
	Symbols     *SymbolTable
	Productions *ProductionStore

	start     SymbolIdx
	augStart  SymbolIdx
	endmarker SymbolIdx
	augBody   BodyIdx
}

// GrammarError reports an ill-formed grammar build: undefined symbols, or
// other structural problems discovered before any parsing is attempted.
type GrammarError struct {
	Msg string
}

func (e *GrammarError) Error() string { return "grammar: " + e.Msg }

// BuildGrammar builds an augmented grammar from prods, designating start as
// the user start symbol. It is the build_grammar(productions) entry point:
// prods is the output of an external meta-AST builder.
//
// The augmented start symbol S' is interned first, at a known index, and a
// distinguished endmarker terminal (charset {ENDMARKER}) is interned right
// after it, also at a known index.
func BuildGrammar(start string, prods []ProductionSpec) (*Grammar, error) {
	g := &Grammar{
		Symbols:     NewSymbolTable(),
		Productions: NewProductionStore(),
	}
	g.augStart = g.Symbols.InternNonterminal("$accept")
	endCS := charset.FromCodePoint(glyph.ENDMARKER)
	g.endmarker = g.Symbols.InternTerminal(endCS)
	g.start = g.Symbols.InternNonterminal(start)

	defined := map[SymbolIdx]bool{g.start: false}
	referenced := map[SymbolIdx]bool{}

	for _, spec := range prods {
		head := g.Symbols.InternNonterminal(spec.Head)
		defined[head] = true
		body := make([]SymbolIdx, len(spec.Body))
		for i, ref := range spec.Body {
			var idx SymbolIdx
			if ref.IsTerminal() {
				idx = g.Symbols.InternTerminal(ref.Charset)
			} else {
				idx = g.Symbols.InternNonterminal(ref.Name)
				referenced[idx] = true
			}
			body[i] = idx
		}
		g.Productions.AddProduction(head, body)
	}

	for idx := range referenced {
		if ok, seen := defined[idx]; !ok || !seen {
			sym := g.Symbols.Symbol(idx)
			if sym.Kind == Nonterminal && len(g.Productions.Bodies(idx)) == 0 {
				err := &GrammarError{Msg: fmt.Sprintf("undefined nonterminal %q", sym.Name)}
				tracer().Errorf("%v", err)
				return nil, err
			}
		}
	}
	if len(g.Productions.Bodies(g.start)) == 0 {
		err := &GrammarError{Msg: fmt.Sprintf("start symbol %q has no productions", start)}
		tracer().Errorf("%v", err)
		return nil, err
	}

	g.augBody = g.Productions.AddProduction(g.augStart, []SymbolIdx{g.start})
	tracer().Infof("grammar built: %d symbols, start=%q", g.Symbols.Len(), start)
	return g, nil
}

// Start returns the user-designated start symbol (not the augmented one).
func (g *Grammar) Start() SymbolIdx { return g.start }

// AugmentedStart returns the synthetic S' symbol with its single production
// S' → S.
func (g *Grammar) AugmentedStart() (SymbolIdx, BodyIdx) { return g.augStart, g.augBody }

// Endmarker returns the interned index of the distinguished endmarker
// terminal {ENDMARKER..ENDMARKER}.
func (g *Grammar) Endmarker() SymbolIdx { return g.endmarker }
