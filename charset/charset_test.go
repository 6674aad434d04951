package charset

import (
	"testing"

	"github.com/dvoytik/glyph"
)

func mustRanges(t *testing.T, rs ...URange) *Set {
	t.Helper()
	s, err := FromRanges(rs...)
	if err != nil {
		t.Fatalf("FromRanges: %v", err)
	}
	return s
}

func TestRectifyCoalescesAdjacent(t *testing.T) {
	s := mustRanges(t, URange{0, 5}, URange{6, 10}, URange{20, 30})
	if got := s.Ranges(); len(got) != 2 {
		t.Fatalf("expected 2 ranges after coalescing, got %d: %v", len(got), got)
	}
	if !s.Ranges()[0].contains(7) {
		t.Errorf("expected coalesced range to contain 7")
	}
}

func TestRectifySortsAndMergesOverlap(t *testing.T) {
	s := mustRanges(t, URange{10, 20}, URange{0, 5}, URange{15, 25})
	got := s.Ranges()
	if len(got) != 2 {
		t.Fatalf("expected 2 ranges, got %d: %v", len(got), got)
	}
	if got[0] != (URange{0, 5}) || got[1] != (URange{10, 25}) {
		t.Fatalf("unexpected canonical form: %v", got)
	}
}

func TestAddRangeRejectsInverted(t *testing.T) {
	s := Empty()
	if err := s.AddRange(URange{10, 5}); err == nil {
		t.Fatalf("expected error for inverted range")
	}
}

func TestUnionAssociative(t *testing.T) {
	a := mustRanges(t, URange{0, 3})
	b := mustRanges(t, URange{5, 9})
	c := mustRanges(t, URange{20, 25})
	left := Union(Union(a, b), c)
	right := Union(a, Union(b, c))
	if !left.Equals(right) {
		t.Fatalf("union not associative: %s vs %s", left, right)
	}
}

func TestIntersectComplementIsEmpty(t *testing.T) {
	a := mustRanges(t, URange{10, 20})
	comp := Complement(a)
	got := Intersect(a, comp)
	if !got.IsEmpty() {
		t.Fatalf("expected empty intersection, got %s", got)
	}
}

func TestUnionComplementIsAnyset(t *testing.T) {
	a := mustRanges(t, URange{10, 20})
	got := Union(a, Complement(a))
	if !got.Equals(Anyset()) {
		t.Fatalf("expected anyset, got %s", got)
	}
}

func TestComplementExcludesEndmarker(t *testing.T) {
	a := Empty()
	comp := Complement(a)
	if comp.Contains(glyph.ENDMARKER) {
		t.Fatalf("complement must never contain ENDMARKER")
	}
}

func TestContainsRangeAndSet(t *testing.T) {
	a := mustRanges(t, URange{0, 100})
	if !a.ContainsRange(URange{10, 20}) {
		t.Errorf("expected containment")
	}
	b := mustRanges(t, URange{10, 20}, URange{50, 60})
	if !a.ContainsSet(b) {
		t.Errorf("expected subset containment")
	}
	c := mustRanges(t, URange{90, 110})
	if a.ContainsSet(c) {
		t.Errorf("expected containment to fail past the boundary")
	}
}

func TestEqualsAndHashAgreeOnCanonicalForm(t *testing.T) {
	a := mustRanges(t, URange{0, 5}, URange{10, 15})
	b := mustRanges(t, URange{10, 15}, URange{0, 5})
	if !a.Equals(b) {
		t.Fatalf("expected canonical-form equality regardless of insertion order")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("expected equal hash for equal canonical charsets")
	}
}

func TestDifference(t *testing.T) {
	a := mustRanges(t, URange{0, 20})
	b := mustRanges(t, URange{5, 10})
	got := Difference(a, b)
	want := mustRanges(t, URange{0, 4}, URange{11, 20})
	if !got.Equals(want) {
		t.Fatalf("difference = %s, want %s", got, want)
	}
}
