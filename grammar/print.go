package grammar

import "github.com/pterm/pterm"

// symbolLabel renders idx the way the rest of this package's doc comments
// address a symbol: its name if a nonterminal, its charset if a terminal.
func (e *Engine) symbolLabel(idx SymbolIdx) string {
	return e.g.Symbols.Symbol(idx).String()
}

// DumpFirst renders every symbol's FIRST set as a pterm tree, one branch per
// symbol and one leaf per charset range (plus an "ε" leaf when Special),
// grounded on the same pterm.LeveledList idiom srnglr.Automaton.DumpItemSets
// and cnp.BSRStore.DumpBSR use.
func (e *Engine) DumpFirst() {
	var ll pterm.LeveledList
	for _, idx := range e.g.Symbols.All() {
		fs := e.firsts[idx]
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: e.symbolLabel(idx)})
		for _, r := range fs.Terminals.Ranges() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: r.String()})
		}
		if fs.Special {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: "ε"})
		}
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

// DumpFollow renders every nonterminal's FOLLOW set the same way DumpFirst
// does for FIRST, with "$" standing in for the Special ("$ in follow") flag.
func (e *Engine) DumpFollow() {
	var ll pterm.LeveledList
	for _, idx := range e.g.Symbols.All() {
		if e.g.Symbols.IsTerminal(idx) {
			continue
		}
		fs := e.follows[idx]
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: e.symbolLabel(idx)})
		for _, r := range fs.Terminals.Ranges() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: r.String()})
		}
		if fs.Special {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: "$"})
		}
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}
