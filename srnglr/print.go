package srnglr

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/dvoytik/glyph/srnglr/iteratable"
)

// itemSetString renders a closed item set as "{ [..], [..] }", grounded on
// gorgo/lr/tables.go's itemSetString.
func itemSetString(items *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	for _, v := range items.Values() {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(v.(Item).String())
	}
	b.WriteString(" }")
	return b.String()
}

// DumpItemSets renders every interned CFSM state as a pterm tree, one branch
// per state and one leaf per item, grounded on gorgo/terex/terexlang/
// trepl/repl.go's pterm.LeveledList usage (see cnp.BSRStore.DumpBSR for the
// same idiom applied to the BSR).
func (a *Automaton) DumpItemSets() {
	var ll pterm.LeveledList
	for _, s := range a.States() {
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: fmt.Sprintf("state %d", s.ID)})
		for _, v := range s.Items.Values() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: v.(Item).String()})
		}
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

// ToGraphViz exports the CFSM to Graphviz Dot format, grounded on
// gorgo/lr/tables.go's CFSM2GraphViz. Each state node is labeled with its
// itemset; edges carry the shifting symbol.
func (a *Automaton) ToGraphViz(w io.Writer) {
	io.WriteString(w, "digraph {\n"+
		"graph [splines=true, fontname=Helvetica, fontsize=10];\n"+
		"node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];\n"+
		"edge [fontname=Helvetica, fontsize=10];\n\n")
	for _, s := range a.States() {
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodeColor(a, s), s.ID, itemSetString(s.Items))
	}
	it := a.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		fmt.Fprintf(w, "s%03d -> s%03d [label=\"%d\"]\n", e.from.ID, e.to.ID, e.label)
	}
	io.WriteString(w, "}\n")
}

func nodeColor(a *Automaton, s *State) string {
	augStart, _ := a.g.AugmentedStart()
	for _, v := range s.Items.Values() {
		item := v.(Item)
		if item.Head == augStart && item.Accepting(a.g) {
			return "lightgray"
		}
	}
	return "white"
}

// AsHTML renders every multi-action cell of t as an HTML table, grounded on
// gorgo/lr/tables.go's GotoTableAsHTML/parserTableAsHTML, generalized from a
// single shift-or-reduce value per cell to an arbitrary-length action list.
func (t *Table) AsHTML(a *Automaton, w io.Writer) {
	io.WriteString(w, "<table border=\"1\" cellspacing=\"0\" cellpadding=\"4\">\n<tr><th>state</th><th>symbol</th><th>actions</th></tr>\n")
	for _, s := range a.States() {
		for _, sym := range a.g.Symbols.All() {
			actions := t.Actions(s.ID, sym)
			if len(actions) == 0 {
				continue
			}
			fmt.Fprintf(w, "<tr><td>%d</td><td>%d</td><td>", s.ID, sym)
			for i, act := range actions {
				if i > 0 {
					io.WriteString(w, ", ")
				}
				io.WriteString(w, act.String())
			}
			io.WriteString(w, "</td></tr>\n")
		}
	}
	io.WriteString(w, "</table>\n")
}
