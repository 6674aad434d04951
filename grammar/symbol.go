package grammar

import (
	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/tracing"

	"github.com/dvoytik/glyph/charset"
)

// tracer traces with key 'glyph.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("glyph.grammar")
}

// SymbolIdx is a stable integer index assigned to an interned Symbol. It is
// monotonically increasing for the lifetime of a grammar build.
type SymbolIdx int

// SymbolKind discriminates a Symbol's two variants.
type SymbolKind int

const (
	// Terminal wraps a charset: any code point the charset contains is a
	// valid instance of the terminal.
	Terminal SymbolKind = iota
	// Nonterminal wraps a unique name.
	Nonterminal
)

func (k SymbolKind) String() string {
	if k == Terminal {
		return "terminal"
	}
	return "nonterminal"
}

// Symbol is either a terminal (Charset non-nil) or a nonterminal (Name
// non-empty). This tagged-variant shape is deliberate: callers switch on
// Kind rather than reaching into an untyped payload.
type Symbol struct {
	Kind    SymbolKind
	Name    string
	Charset *charset.Set
}

func (s Symbol) String() string {
	if s.Kind == Terminal {
		return s.Charset.String()
	}
	return s.Name
}

// internKey is the map key used to dedupe symbols by value: nonterminals by
// name, terminals by the structural hash of their charset.
func (s Symbol) internKey() string {
	if s.Kind == Nonterminal {
		return "N:" + s.Name
	}
	h, err := structhash.Hash(struct{ H uint64 }{s.Charset.Hash()}, 1)
	if err != nil { // structhash only fails on unsupported field kinds; uint64 is always supported
		panic(err)
	}
	return "T:" + h
}

// SymbolTable interns terminals and nonterminals to stable SymbolIdx values.
// Two terminals with an equal charset share an index; two nonterminals with
// an equal name share an index.
type SymbolTable struct {
	symbols []Symbol
	index   map[string]SymbolIdx
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: make(map[string]SymbolIdx)}
}

// InternNonterminal returns the stable index for name, interning it on
// first sight.
func (st *SymbolTable) InternNonterminal(name string) SymbolIdx {
	return st.intern(Symbol{Kind: Nonterminal, Name: name})
}

// InternTerminal returns the stable index for cs, interning it on first
// sight.
func (st *SymbolTable) InternTerminal(cs *charset.Set) SymbolIdx {
	return st.intern(Symbol{Kind: Terminal, Charset: cs})
}

func (st *SymbolTable) intern(sym Symbol) SymbolIdx {
	key := sym.internKey()
	if idx, ok := st.index[key]; ok {
		return idx
	}
	idx := SymbolIdx(len(st.symbols))
	st.symbols = append(st.symbols, sym)
	st.index[key] = idx
	tracer().Debugf("interned %s %v as #%d", sym.Kind, sym, idx)
	return idx
}

// Symbol returns the interned symbol at idx.
func (st *SymbolTable) Symbol(idx SymbolIdx) Symbol {
	return st.symbols[idx]
}

// Len returns the number of interned symbols.
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// IsTerminal reports whether idx denotes a terminal symbol, in O(1).
func (st *SymbolTable) IsTerminal(idx SymbolIdx) bool {
	return st.symbols[idx].Kind == Terminal
}

// All returns every interned symbol index, in interning order.
func (st *SymbolTable) All() []SymbolIdx {
	out := make([]SymbolIdx, len(st.symbols))
	for i := range out {
		out[i] = SymbolIdx(i)
	}
	return out
}
