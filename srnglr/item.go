package srnglr

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/dvoytik/glyph/grammar"
)

// tracer traces with key 'glyph.srnglr'.
func tracer() tracing.Trace {
	return tracing.Select("glyph.srnglr")
}

// Item is an LR(1) item [A→α·β, a]: a production (Head, Body), a dot
// Position in [0, len(body)], and a single-terminal Lookahead.
type Item struct {
	Head      grammar.SymbolIdx
	Body      grammar.BodyIdx
	Position  int
	Lookahead grammar.SymbolIdx
}

// SetKey gives Item a cheap, structural dedup key for iteratable.Set.
func (it Item) SetKey() string {
	return fmt.Sprintf("%d/%d.%d#%d", it.Head, it.Body, it.Position, it.Lookahead)
}

// Accepting reports whether the dot sits at the end of the body.
func (it Item) Accepting(g *grammar.Grammar) bool {
	return it.Position >= len(g.Productions.Body(it.Head, it.Body))
}

// NextSymbol returns the symbol just after the dot, or false if the item is
// accepting.
func (it Item) NextSymbol(g *grammar.Grammar) (grammar.SymbolIdx, bool) {
	body := g.Productions.Body(it.Head, it.Body)
	if it.Position >= len(body) {
		return 0, false
	}
	return body[it.Position], true
}

// Advance returns the item with the dot moved one position to the right.
func (it Item) Advance() Item {
	it.Position++
	return it
}

// Tail returns the symbols strictly after the dot.
func (it Item) Tail(g *grammar.Grammar) []grammar.SymbolIdx {
	body := g.Productions.Body(it.Head, it.Body)
	if it.Position >= len(body) {
		return nil
	}
	return body[it.Position:]
}

func (it Item) String() string {
	return fmt.Sprintf("[%d→%d.%d, %d]", it.Head, it.Body, it.Position, it.Lookahead)
}
