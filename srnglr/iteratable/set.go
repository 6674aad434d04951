package iteratable

import "fmt"

// Keyer is implemented by elements that want a cheaper or more precise
// dedup key than the default %v formatting.
type Keyer interface {
	SetKey() string
}

func keyOf(v interface{}) string {
	if k, ok := v.(Keyer); ok {
		return k.SetKey()
	}
	return fmt.Sprintf("%v", v)
}

// Set is a destructive, iteratable collection: Add/Remove/Union mutate the
// receiver in place, and an in-progress iteration observes elements added
// after the iteration started. This lets a closure-style fixed-point
// construction grow the very set it is scanning, which is exactly what
// LR(1) CLOSURE needs (see srnglr.Closure).
type Set struct {
	order  []interface{}
	index  map[string]int
	cursor int
}

// NewSet returns an empty Set, optionally pre-populated with elems.
func NewSet(elems ...interface{}) *Set {
	s := &Set{index: make(map[string]int), cursor: -1}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// Add inserts v if not already present, and returns whether it was new.
func (s *Set) Add(v interface{}) bool {
	k := keyOf(v)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.order)
	s.order = append(s.order, v)
	return true
}

// Remove deletes v if present.
func (s *Set) Remove(v interface{}) {
	k := keyOf(v)
	pos, ok := s.index[k]
	if !ok {
		return
	}
	s.order = append(s.order[:pos], s.order[pos+1:]...)
	delete(s.index, k)
	for kk, p := range s.index {
		if p > pos {
			s.index[kk] = p - 1
		}
	}
	if s.cursor >= pos {
		s.cursor--
	}
}

// Has reports whether v is a member.
func (s *Set) Has(v interface{}) bool {
	_, ok := s.index[keyOf(v)]
	return ok
}

// Size returns the number of elements.
func (s *Set) Size() int { return len(s.order) }

// Empty reports whether the set has no elements.
func (s *Set) Empty() bool { return len(s.order) == 0 }

// Values returns every element, in insertion order. Callers must not mutate
// the returned slice.
func (s *Set) Values() []interface{} { return s.order }

// Copy returns an independent copy of s.
func (s *Set) Copy() *Set {
	cp := &Set{
		order:  append([]interface{}{}, s.order...),
		index:  make(map[string]int, len(s.index)),
		cursor: -1,
	}
	for k, v := range s.index {
		cp.index[k] = v
	}
	return cp
}

// Union adds every element of other into s that isn't already present, and
// returns s for chaining.
func (s *Set) Union(other *Set) *Set {
	for _, v := range other.order {
		s.Add(v)
	}
	return s
}

// Difference returns a new Set of every element of s not present in other.
// Unlike Union and Add, Difference does not mutate s.
func (s *Set) Difference(other *Set) *Set {
	out := NewSet()
	for _, v := range s.order {
		if !other.Has(v) {
			out.Add(v)
		}
	}
	return out
}

// Equals reports whether s and other contain exactly the same elements.
func (s *Set) Equals(other *Set) bool {
	if len(s.order) != len(other.order) {
		return false
	}
	for _, v := range s.order {
		if !other.Has(v) {
			return false
		}
	}
	return true
}

// IterateOnce resets the cursor so the next Next() call observes the first
// element currently present, including elements appended to s for the rest
// of the loop's lifetime.
func (s *Set) IterateOnce() {
	s.cursor = -1
}

// Next advances the cursor and reports whether an element is available at
// it. Because s.order may grow between calls (via Add), a loop of
// `for s.Next() { ... s.Add(x) ... }` re-scans newly added elements too —
// this is the re-scan-until-stable closure, not a worklist shortcut.
func (s *Set) Next() bool {
	s.cursor++
	return s.cursor < len(s.order)
}

// Item returns the element at the current cursor position. Valid only
// after a Next() call returned true.
func (s *Set) Item() interface{} {
	return s.order[s.cursor]
}
