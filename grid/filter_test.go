package grid

import "testing"

func TestMatchRow_ShortCircuitsOnFirstColumn(t *testing.T) {
	calls := 0
	cols := []Column[person]{
		{ID: "name", Accessor: func(p person) any { calls++; return p.Name }},
		{ID: "city", Accessor: func(p person) any { calls++; return p.City }},
	}
	row := person{Name: "needle", City: "needle"}

	if !MatchRow(row, cols, "needle") {
		t.Fatal("MatchRow = false, want true")
	}
	if calls != 1 {
		t.Errorf("accessor calls = %d, want 1 (short-circuit)", calls)
	}
}

func TestMatchRow_NullCellsNeverMatch(t *testing.T) {
	cols := []Column[person]{
		{ID: "x", Accessor: func(p person) any { return nil }},
	}
	if MatchRow(person{}, cols, "nil") {
		t.Error("MatchRow matched a null cell")
	}
}

func TestFilterRows_EmptyTermKeepsAllRows(t *testing.T) {
	rows := people(7)
	got := FilterRows(rows, personColumns(), "", nil)

	if len(got) != 7 {
		t.Errorf("FilterRows length = %d, want 7", len(got))
	}
	// The result is a copy, not the input slice itself.
	if &got[0] == &rows[0] {
		t.Error("FilterRows returned the input slice, want a copy")
	}
}

func TestFilterRows_NumericColumnStringForm(t *testing.T) {
	rows := people(50) // ages 25..74
	got := FilterRows(rows, personColumns(), "37", nil)

	if len(got) != 1 {
		t.Fatalf("FilterRows(37) length = %d, want 1", len(got))
	}
	if got[0].Age != 37 {
		t.Errorf("matched Age = %d, want 37", got[0].Age)
	}
}

func TestSortRows_DoesNotMutateInput(t *testing.T) {
	rows := people(10)
	rows[0], rows[9] = rows[9], rows[0]
	firstBefore := rows[0].Age

	cols := personColumns()
	_ = SortRows(rows, cols[2], SortAscending)

	if rows[0].Age != firstBefore {
		t.Error("SortRows mutated its input")
	}
}

func TestSortRows_Stable(t *testing.T) {
	rows := []person{
		{ID: "a", Name: "x", Age: 30},
		{ID: "b", Name: "y", Age: 30},
		{ID: "c", Name: "z", Age: 30},
	}
	cols := personColumns()

	got := SortRows(rows, cols[2], SortAscending)
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Fatalf("order = %v, want original order for equal keys", ids(got))
		}
	}
}
