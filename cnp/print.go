package cnp

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// DumpBSR renders y as a pterm tree, one branch per recorded head and one
// leaf per pivot, grounded on gorgo/terex/terexlang/trepl/repl.go's
// indentedListFrom/leveledElem use of pterm.LeveledList — the only place
// the teacher pack uses pterm, reused here for the tree-shaped printers
// (itemsets, FIRST/FOLLOW sets, BSR). The CRF is printed only through
// ToGraphViz.
func (y *BSRStore) DumpBSR() {
	var ll pterm.LeveledList
	for _, h := range y.Heads() {
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: h.String()})
		for _, pv := range y.Pivots(h) {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("pivot %d", pv)})
		}
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

// dotID renders a possibly-sentinel pivot (-1, meaning "not yet
// established") as a valid unquoted Graphviz ID fragment.
func dotID(pivot int) string {
	if pivot < 0 {
		return "u"
	}
	return fmt.Sprintf("%d", pivot)
}

// ToGraphViz exports the CRF to Graphviz Dot format: cluster nodes as boxes,
// label nodes as ellipses, edges running cluster -> label per §4.6,
// grounded on gorgo/lr/tables.go's CFSM2GraphViz.
func (c *CRF) ToGraphViz(w io.Writer) {
	io.WriteString(w, "digraph {\nnode [fontname=Helvetica, fontsize=10];\nedge [fontname=Helvetica, fontsize=10];\n\n")
	for _, n := range c.clusterOrder {
		fmt.Fprintf(w, "c%d_%d [shape=box label=\"%s\"]\n", n.Head, n.J, n.String())
	}
	for _, n := range c.labelOrder {
		fmt.Fprintf(w, "l%d_%d_%s [shape=ellipse label=\"%s\"]\n", n.Slot, n.J, dotID(n.Pivot), n.String())
	}
	for cluster, kids := range c.children {
		for _, l := range kids {
			fmt.Fprintf(w, "c%d_%d -> l%d_%d_%s\n", cluster.Head, cluster.J, l.Slot, l.J, dotID(l.Pivot))
		}
	}
	io.WriteString(w, "}\n")
}
