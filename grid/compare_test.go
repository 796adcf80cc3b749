package grid

import (
	"testing"
	"time"
)

func TestCompareValues_Strings(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"apple", "banana", -1},
		{"Banana", "apple", 1},
		{"Apple", "apple", 0},
		{"", "a", -1},
	}
	for _, tt := range tests {
		got := sign(CompareValues(tt.a, tt.b))
		if got != tt.want {
			t.Errorf("CompareValues(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompareValues_Numbers(t *testing.T) {
	if got := sign(CompareValues(3, 7)); got != -1 {
		t.Errorf("CompareValues(3, 7) = %d, want -1", got)
	}
	if got := sign(CompareValues(int64(10), 2.5)); got != 1 {
		t.Errorf("CompareValues(int64(10), 2.5) = %d, want 1", got)
	}
	if got := sign(CompareValues(uint8(4), 4)); got != 0 {
		t.Errorf("CompareValues(uint8(4), 4) = %d, want 0", got)
	}
}

func TestCompareValues_Times(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if got := sign(CompareValues(early, late)); got != -1 {
		t.Errorf("CompareValues(early, late) = %d, want -1", got)
	}
	if got := sign(CompareValues(late, early)); got != 1 {
		t.Errorf("CompareValues(late, early) = %d, want 1", got)
	}
}

func TestCompareValues_Bools(t *testing.T) {
	if got := sign(CompareValues(false, true)); got != -1 {
		t.Errorf("CompareValues(false, true) = %d, want -1", got)
	}
	if got := sign(CompareValues(true, true)); got != 0 {
		t.Errorf("CompareValues(true, true) = %d, want 0", got)
	}
}

func TestCompareValues_NullsSortAfterValues(t *testing.T) {
	if got := sign(CompareValues(nil, "x")); got != 1 {
		t.Errorf("CompareValues(nil, x) = %d, want 1", got)
	}
	if got := sign(CompareValues("x", nil)); got != -1 {
		t.Errorf("CompareValues(x, nil) = %d, want -1", got)
	}
	if got := sign(CompareValues(nil, nil)); got != 0 {
		t.Errorf("CompareValues(nil, nil) = %d, want 0", got)
	}

	// Typed nil behind an interface counts as null too.
	var p *int
	if got := sign(CompareValues(p, 5)); got != 1 {
		t.Errorf("CompareValues((*int)(nil), 5) = %d, want 1", got)
	}
}

func TestCompareValues_MixedTypesFallBackToStrings(t *testing.T) {
	// 12 formats as "12", which sorts before "apple" lexically.
	if got := sign(CompareValues(struct{}{}, struct{}{})); got != 0 {
		t.Errorf("CompareValues(struct, struct) = %d, want 0", got)
	}
	if got := sign(CompareValues("12", "apple")); got != -1 {
		t.Errorf("CompareValues(12-as-string, apple) = %d, want -1", got)
	}
}

func TestCompareCells_NullsLastRegardlessOfDirection(t *testing.T) {
	for _, dir := range []SortDirection{SortAscending, SortDescending} {
		if got := sign(compareCells(nil, "x", dir, nil)); got != 1 {
			t.Errorf("dir=%v: compareCells(nil, x) = %d, want 1 (nulls last)", dir, got)
		}
		if got := sign(compareCells("x", nil, dir, nil)); got != -1 {
			t.Errorf("dir=%v: compareCells(x, nil) = %d, want -1 (nulls last)", dir, got)
		}
	}
}

func TestCompareCells_DirectionFlipsNonNullBranch(t *testing.T) {
	if got := sign(compareCells(1, 2, SortAscending, nil)); got != -1 {
		t.Errorf("asc compareCells(1, 2) = %d, want -1", got)
	}
	if got := sign(compareCells(1, 2, SortDescending, nil)); got != 1 {
		t.Errorf("desc compareCells(1, 2) = %d, want 1", got)
	}
}

func TestCompareCells_CustomComparator(t *testing.T) {
	byLen := func(a, b any) int {
		return len(a.(string)) - len(b.(string))
	}
	if got := sign(compareCells("aa", "b", SortAscending, byLen)); got != 1 {
		t.Errorf("custom asc = %d, want 1", got)
	}
	if got := sign(compareCells("aa", "b", SortDescending, byLen)); got != -1 {
		t.Errorf("custom desc = %d, want -1", got)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
