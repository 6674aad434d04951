package charset

import (
	"fmt"
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"

	"github.com/dvoytik/glyph"
)

// tracer traces with key 'glyph.charset'.
func tracer() tracing.Trace {
	return tracing.Select("glyph.charset")
}

// URange is an inclusive code-point range (start ≤ stop).
type URange struct {
	Start glyph.CodePoint
	Stop  glyph.CodePoint
}

func (r URange) String() string {
	if r.Start == r.Stop {
		return fmt.Sprintf("%#x", uint32(r.Start))
	}
	return fmt.Sprintf("%#x-%#x", uint32(r.Start), uint32(r.Stop))
}

// contains reports whether c lies within r.
func (r URange) contains(c glyph.CodePoint) bool {
	return c >= r.Start && c <= r.Stop
}

// overlapsOrAdjacent reports whether r and o can be coalesced into a single
// contiguous range.
func (r URange) overlapsOrAdjacent(o URange) bool {
	if r.Start > o.Start {
		r, o = o, r
	}
	return o.Start <= r.Stop+1
}

// Set is a canonical, non-overlapping, maximally coalesced sequence of
// code-point ranges. The zero value is the empty set.
//
// Equal sets always have byte-identical canonical form; Equals and Hash
// both rely on this invariant, so every constructor and mutator rectifies
// before returning.
type Set struct {
	ranges []URange
}

// Anyset is the full Unicode universe [0, 0x10FFFF]. It does not include
// glyph.ENDMARKER.
func Anyset() *Set {
	return &Set{ranges: []URange{{0, glyph.MaxCodePoint}}}
}

// Empty returns a new empty charset.
func Empty() *Set {
	return &Set{}
}

// FromCodePoint returns a charset containing exactly one code point.
func FromCodePoint(c glyph.CodePoint) *Set {
	return &Set{ranges: []URange{{c, c}}}
}

// FromRange returns a charset containing a single range. It returns an error
// if the range is inverted.
func FromRange(r URange) (*Set, error) {
	s := Empty()
	if err := s.AddRange(r); err != nil {
		return nil, err
	}
	return s, nil
}

// FromRanges builds a charset from a sequence of ranges, rectifying once at
// the end.
func FromRanges(rs ...URange) (*Set, error) {
	s := Empty()
	for _, r := range rs {
		if r.Start > r.Stop {
			return nil, fmt.Errorf("charset: inverted range %s", r)
		}
		s.ranges = append(s.ranges, r)
	}
	s.rectify()
	return s, nil
}

// AddRange inserts r and re-establishes canonical form. It rejects inverted
// ranges.
func (s *Set) AddRange(r URange) error {
	if r.Start > r.Stop {
		return fmt.Errorf("charset: inverted range %s", r)
	}
	s.ranges = append(s.ranges, r)
	s.rectify()
	return nil
}

// rectify sorts ranges by start and merges overlapping or adjacent ranges.
// This is the only place canonical form is (re-)established.
func (s *Set) rectify() {
	if len(s.ranges) < 2 {
		return
	}
	slices.SortFunc(s.ranges, func(a, b URange) bool {
		return a.Start < b.Start
	})
	merged := s.ranges[:1]
	for _, r := range s.ranges[1:] {
		last := &merged[len(merged)-1]
		if last.overlapsOrAdjacent(r) {
			if r.Stop > last.Stop {
				last.Stop = r.Stop
			}
			continue
		}
		merged = append(merged, r)
	}
	s.ranges = merged
	tracer().Debugf("charset rectified to %d range(s)", len(s.ranges))
}

// Ranges returns the canonical ranges of s. Callers must not mutate the
// returned slice.
func (s *Set) Ranges() []URange {
	return s.ranges
}

// IsEmpty reports whether s has no ranges.
func (s *Set) IsEmpty() bool {
	return len(s.ranges) == 0
}

// PointCount returns the number of code points covered by s, summed across
// its canonical ranges. Unlike len(s.Ranges()), this never decreases when a
// union happens to coalesce two ranges into one, which is what makes it safe
// as a fixed-point termination measure (see grammar.FSet.Size).
func (s *Set) PointCount() uint64 {
	var n uint64
	for _, r := range s.ranges {
		n += uint64(r.Stop) - uint64(r.Start) + 1
	}
	return n
}

// Contains reports whether c is a member of s, by binary search.
func (s *Set) Contains(c glyph.CodePoint) bool {
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].Stop >= c
	})
	return i < len(s.ranges) && s.ranges[i].contains(c)
}

// ContainsRange reports whether every point of r is covered by s.
func (s *Set) ContainsRange(r URange) bool {
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].Stop >= r.Start
	})
	return i < len(s.ranges) && s.ranges[i].Start <= r.Start && s.ranges[i].Stop >= r.Stop
}

// ContainsSet reports whether every range of o is covered by s.
func (s *Set) ContainsSet(o *Set) bool {
	for _, r := range o.ranges {
		if !s.ContainsRange(r) {
			return false
		}
	}
	return true
}

// Union returns a new charset containing every point in a or b.
func Union(a, b *Set) *Set {
	out := &Set{ranges: append(append([]URange{}, a.ranges...), b.ranges...)}
	out.rectify()
	return out
}

// Intersect returns a new charset containing only points present in both a
// and b.
func Intersect(a, b *Set) *Set {
	out := Empty()
	i, j := 0, 0
	for i < len(a.ranges) && j < len(b.ranges) {
		ar, br := a.ranges[i], b.ranges[j]
		lo := ar.Start
		if br.Start > lo {
			lo = br.Start
		}
		hi := ar.Stop
		if br.Stop < hi {
			hi = br.Stop
		}
		if lo <= hi {
			out.ranges = append(out.ranges, URange{lo, hi})
		}
		if ar.Stop < br.Stop {
			i++
		} else {
			j++
		}
	}
	out.rectify()
	return out
}

// Difference returns a new charset containing points of a not present in b.
func Difference(a, b *Set) *Set {
	out := Empty()
	for _, ar := range a.ranges {
		start := ar.Start
		for _, br := range b.ranges {
			if br.Stop < start || br.Start > ar.Stop {
				continue
			}
			if br.Start > start {
				out.ranges = append(out.ranges, URange{start, br.Start - 1})
			}
			if br.Stop >= ar.Stop {
				start = ar.Stop + 1
				break
			}
			start = br.Stop + 1
		}
		if start <= ar.Stop {
			out.ranges = append(out.ranges, URange{start, ar.Stop})
		}
	}
	out.rectify()
	return out
}

// Complement returns the complement of a over the full Unicode universe. It
// never produces glyph.ENDMARKER, which lies outside that universe by
// construction.
func Complement(a *Set) *Set {
	return Difference(Anyset(), a)
}

// Equals reports structural equality of the canonical forms.
func (s *Set) Equals(o *Set) bool {
	if len(s.ranges) != len(o.ranges) {
		return false
	}
	for i, r := range s.ranges {
		if r != o.ranges[i] {
			return false
		}
	}
	return true
}

// Hash derives a structural hash from the canonical form, suitable as a map
// key component the way structhash keys LR(1) items elsewhere in this
// module.
func (s *Set) Hash() uint64 {
	var h uint64 = 14695981039346656037 // FNV-1a offset basis
	for _, r := range s.ranges {
		h = (h ^ uint64(r.Start)) * 1099511628211
		h = (h ^ uint64(r.Stop)) * 1099511628211
	}
	return h
}

func (s *Set) String() string {
	if len(s.ranges) == 0 {
		return "{}"
	}
	out := "{"
	for i, r := range s.ranges {
		if i > 0 {
			out += ","
		}
		out += r.String()
	}
	return out + "}"
}
