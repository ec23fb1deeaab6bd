package square

import (
	"testing"
)

func TestIsValidAcceptsKnownSquare(t *testing.T) {
	set := mustSet(t, 4, "CARD", "AREA", "REAR", "DART")
	g := GridFromRows([]string{"CARD", "AREA", "REAR", "DART"})
	if !IsValid(g, set) {
		t.Fatal("expected valid square")
	}
	if vs := Check(g, set); len(vs) != 0 {
		t.Fatalf("expected no violations, got %v", vs)
	}
}

func TestCheckReportsDuplicateRowsOnly(t *testing.T) {
	// Symmetric, every row and column in the set, but rows 0 and 2
	// repeat. The duplicate must be the only finding.
	set := mustSet(t, 4, "ABAB", "BABC", "BCBA")
	g := GridFromRows([]string{"ABAB", "BABC", "ABAB", "BCBA"})

	if IsValid(g, set) {
		t.Fatal("repeated rows must not validate")
	}
	vs := Check(g, set)
	if len(vs) != 1 {
		t.Fatalf("expected exactly 1 violation, got %v", vs)
	}
	if vs[0].Kind != ViolationDuplicate || vs[0].Word != "ABAB" {
		t.Fatalf("expected duplicate_word for ABAB, got %+v", vs[0])
	}
}

func TestCheckReportsSymmetryWithCoordinates(t *testing.T) {
	set := mustSet(t, 4, "CARD", "AREA", "REAR", "DART", "TRAP")
	g := GridFromRows([]string{"CARD", "AREA", "REAR", "TRAP"})

	vs := Check(g, set)
	var found bool
	for _, v := range vs {
		if v.Kind == ViolationSymmetry && v.Row == 0 && v.Col == 3 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected symmetry violation at (0,3), got %v", vs)
	}
}

func TestCheckReportsAllFourKinds(t *testing.T) {
	// A filled grid with nothing going for it: asymmetric, rows and
	// columns outside the set, two identical rows. Check must not stop
	// at the first problem.
	set := mustSet(t, 4, "CARD", "AREA", "REAR", "DART")
	g := GridFromRows([]string{"XXQQ", "XXQQ", "QQZZ", "ZQZZ"})

	kinds := map[ViolationKind]bool{}
	for _, v := range Check(g, set) {
		kinds[v.Kind] = true
	}
	for _, k := range []ViolationKind{ViolationSymmetry, ViolationRowWord, ViolationColumnWord, ViolationDuplicate} {
		if !kinds[k] {
			t.Fatalf("expected a %s violation, got kinds %v", k, kinds)
		}
	}
}

func TestCheckShapeGatesEverythingElse(t *testing.T) {
	set := mustSet(t, 4, "CARD", "AREA", "REAR", "DART")

	short := GridFromRows([]string{"CARD", "AREA", "REAR"})
	vs := Check(short, set)
	if len(vs) != 1 || vs[0].Kind != ViolationShape {
		t.Fatalf("expected single shape violation for missing row, got %v", vs)
	}

	ragged := GridFromRows([]string{"CARD", "ARE", "REAR", "DART"})
	vs = Check(ragged, set)
	if len(vs) != 1 || vs[0].Kind != ViolationShape || vs[0].Row != 1 {
		t.Fatalf("expected shape violation on row 1, got %v", vs)
	}
	for _, v := range vs {
		if v.Kind != ViolationShape {
			t.Fatalf("shape problems must suppress other checks, got %v", vs)
		}
	}
}

func TestCheckFlagsEmptyCells(t *testing.T) {
	set := mustSet(t, 4, "CARD", "AREA", "REAR", "DART")
	g := GridFromRows([]string{"CARD", "AREA", "REAR", "DART"})
	g[2][1] = 0

	vs := Check(g, set)
	if len(vs) != 1 || vs[0].Kind != ViolationShape || vs[0].Row != 2 || vs[0].Col != 1 {
		t.Fatalf("expected shape violation at (2,1), got %v", vs)
	}
	if IsValid(g, set) {
		t.Fatal("grid with an empty cell must not validate")
	}
}

func TestIsValidRejectsRowNotInSet(t *testing.T) {
	set := mustSet(t, 4, "CARD", "AREA", "REAR")
	g := GridFromRows([]string{"CARD", "AREA", "REAR", "DART"})
	if IsValid(g, set) {
		t.Fatal("DART is not in the set, square must not validate")
	}
	vs := Check(g, set)
	var rowHit, colHit bool
	for _, v := range vs {
		if v.Kind == ViolationRowWord && v.Row == 3 && v.Word == "DART" {
			rowHit = true
		}
		if v.Kind == ViolationColumnWord && v.Col == 3 && v.Word == "DART" {
			colHit = true
		}
	}
	if !rowHit || !colHit {
		t.Fatalf("expected row and column findings for DART, got %v", vs)
	}
}
