package grammar

import "github.com/dvoytik/glyph/charset"

// FSet is a first/follow set: a charset of terminals plus a boolean flag
// carried on a separate channel from range membership. For a FIRST set,
// Special means "derives ε"; for a FOLLOW set, Special means "$ is in
// follow".
type FSet struct {
	Terminals *charset.Set
	Special   bool
}

// NewFSet returns an empty FSet.
func NewFSet() *FSet {
	return &FSet{Terminals: charset.Empty()}
}

// Size is the quantity the fixed-point iterations in this package key their
// termination check on: code points covered plus one if Special is set.
//
// This must count actual code points, not ranges: a union can coalesce two
// existing ranges into one, which would otherwise make the range count drop
// even though the covered set strictly grew, false-triggering the
// fixed-point check (spec §8 testable property 2 requires the size sequence
// to be non-decreasing).
func (s *FSet) Size() uint64 {
	n := s.Terminals.PointCount()
	if s.Special {
		n++
	}
	return n
}

// UnionInto merges cs into s's terminals. If doSpecial is true, s.Special is
// also set from other's flag.
func (s *FSet) UnionInto(cs *charset.Set, otherSpecial bool, doSpecial bool) {
	s.Terminals = charset.Union(s.Terminals, cs)
	if doSpecial && otherSpecial {
		s.Special = true
	}
}

// Copy returns an independent copy of s.
func (s *FSet) Copy() *FSet {
	cp, _ := charset.FromRanges(s.Terminals.Ranges()...)
	return &FSet{Terminals: cp, Special: s.Special}
}
