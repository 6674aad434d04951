package srnglr

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/dvoytik/glyph/grammar"
	"github.com/dvoytik/glyph/srnglr/iteratable"
)

// ActionKind discriminates a Table cell entry.
type ActionKind int

const (
	// Push shifts/gotos to State.
	Push ActionKind = iota
	// Reduce pops Length body symbols and reduces to Head.
	Reduce
	// Accept marks successful recognition of the augmented start symbol.
	Accept
)

// Action is one entry in a Table cell. A cell may hold any combination of
// Push, Reduce and Accept — conflicts are preserved, never resolved here.
type Action struct {
	Kind   ActionKind
	State  int
	Head   grammar.SymbolIdx
	Length int
}

func (a Action) String() string {
	switch a.Kind {
	case Push:
		return fmt.Sprintf("Push(%d)", a.State)
	case Reduce:
		return fmt.Sprintf("Reduce(%d,%d)", a.Head, a.Length)
	default:
		return "Accept"
	}
}

// gotoKey is the (state, symbol) address of a Table cell.
type gotoKey struct {
	State  int
	Symbol grammar.SymbolIdx
}

// Table is the SRNGLR parse table: a goto/action map keyed by (state,
// symbol) whose cells may hold an arbitrary number of actions, unlike the
// teacher's 2-slot sparse.IntMatrix (see DESIGN.md).
type Table struct {
	cells map[gotoKey][]Action
}

func newTable() *Table {
	return &Table{cells: make(map[gotoKey][]Action)}
}

// Actions returns every action recorded in cell (state, symbol). The
// returned slice must not be mutated.
func (t *Table) Actions(state int, symbol grammar.SymbolIdx) []Action {
	return t.cells[gotoKey{state, symbol}]
}

func (t *Table) add(state int, symbol grammar.SymbolIdx, a Action) {
	key := gotoKey{state, symbol}
	t.cells[key] = append(t.cells[key], a)
}

// HasConflicts reports whether any cell holds more than one action.
func (t *Table) HasConflicts() bool {
	for _, as := range t.cells {
		if len(as) > 1 {
			return true
		}
	}
	return false
}

// State is one state of the canonical LR(1) automaton (CFSM): a serial ID
// and its closed item set.
type State struct {
	ID    int
	Items *iteratable.Set
}

func (s *State) String() string { return fmt.Sprintf("state %d [%d items]", s.ID, s.Items.Size()) }

func stateComparator(a, b interface{}) int {
	return utils.IntComparator(a.(*State).ID, b.(*State).ID)
}

type cfsmEdge struct {
	from, to *State
	label    grammar.SymbolIdx
}

// Automaton is the canonical-collection CFSM built alongside the table: an
// interned set of states (gods treeset, ordered by serial ID the way
// lr/tables.go's CFSM.states is) and the edges between them (gods
// arraylist, as lr/tables.go's CFSM.edges is).
type Automaton struct {
	g       *grammar.Grammar
	eng     *grammar.Engine
	states  *treeset.Set
	edges   *arraylist.List
	start   *State
	nextID  int
}

func newAutomaton(g *grammar.Grammar, eng *grammar.Engine) *Automaton {
	return &Automaton{
		g:      g,
		eng:    eng,
		states: treeset.NewWith(stateComparator),
		edges:  arraylist.New(),
	}
}

func (a *Automaton) findByItems(items *iteratable.Set) *State {
	it := a.states.Iterator()
	for it.Next() {
		s := it.Value().(*State)
		if s.Items.Equals(items) {
			return s
		}
	}
	return nil
}

func (a *Automaton) intern(items *iteratable.Set) *State {
	if s := a.findByItems(items); s != nil {
		return s
	}
	s := &State{ID: a.nextID, Items: items}
	a.nextID++
	a.states.Add(s)
	return s
}

func (a *Automaton) addEdge(from, to *State, label grammar.SymbolIdx) {
	a.edges.Add(&cfsmEdge{from: from, to: to, label: label})
}

func (a *Automaton) edgesFrom(s *State) []*cfsmEdge {
	it := a.edges.Iterator()
	out := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			out = append(out, e)
		}
	}
	return out
}

// StartState returns the CFSM's initial state, CLOSURE({[S'→·S, $]}).
func (a *Automaton) StartState() *State { return a.start }

// States returns every interned state, in serial-ID order.
func (a *Automaton) States() []*State {
	out := make([]*State, 0, a.states.Size())
	it := a.states.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*State))
	}
	return out
}

// BuildAutomaton constructs the canonical LR(1) collection per spec §4.4:
// state 0 is CLOSURE({[S'→·S, $]}); then for every state and every known
// symbol X, GOTO(state, X) is computed and interned, recording a Push edge.
func BuildAutomaton(g *grammar.Grammar, eng *grammar.Engine) *Automaton {
	a := newAutomaton(g, eng)
	augStart, augBody := g.AugmentedStart()
	seed := NewItemSet(Item{Head: augStart, Body: augBody, Position: 0, Lookahead: g.Endmarker()})
	closed := Closure(g, eng, seed)
	a.start = a.intern(closed)

	symbols := g.Symbols.All()
	worklist := []*State{a.start}
	seen := map[int]bool{a.start.ID: true}
	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]
		for _, x := range symbols {
			g2 := Goto(g, eng, s.Items, x)
			if g2 == nil {
				continue
			}
			target := a.intern(g2)
			a.addEdge(s, target, x)
			if !seen[target.ID] {
				seen[target.ID] = true
				worklist = append(worklist, target)
			}
		}
	}
	tracer().Infof("CFSM built: %d states", a.states.Size())
	return a
}

// CreateTables builds the SRNGLR multi-action Table from a, per spec §4.4's
// post-pass: every accepting item [A→α·, a] contributes Accept (if A is the
// augmented start) or Reduce(A, |α|) to cell (state, a); every CFSM edge
// recorded while building the automaton becomes a Push action here.
func CreateTables(g *grammar.Grammar, eng *grammar.Engine, a *Automaton) *Table {
	t := newTable()
	augStart, _ := g.AugmentedStart()
	for _, s := range a.States() {
		for _, e := range a.edgesFrom(s) {
			t.add(s.ID, e.label, Action{Kind: Push, State: e.to.ID})
		}
		for _, v := range s.Items.Values() {
			item := v.(Item)
			if !item.Accepting(g) {
				continue
			}
			if item.Head == augStart {
				t.add(s.ID, item.Lookahead, Action{Kind: Accept})
			} else {
				body := g.Productions.Body(item.Head, item.Body)
				t.add(s.ID, item.Lookahead, Action{Kind: Reduce, Head: item.Head, Length: len(body)})
			}
		}
	}
	if t.HasConflicts() {
		tracer().Infof("table built with shift/reduce or reduce/reduce conflicts (preserved, not resolved)")
	}
	return t
}
