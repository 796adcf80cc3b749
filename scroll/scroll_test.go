package scroll

import (
	"math"
	"testing"
)

func testConfig() Config {
	return Config{RowHeight: 20, ContainerHeight: 200}
}

func rows(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestCompute_Invariants(t *testing.T) {
	cfg := testConfig()
	st := Compute(cfg, 1000, 400)

	if st.TotalHeight != 1000*20 {
		t.Errorf("TotalHeight = %v, want %v", st.TotalHeight, 1000*20)
	}
	if st.OffsetY != float64(st.StartIndex)*cfg.RowHeight {
		t.Errorf("OffsetY = %v, want StartIndex*RowHeight = %v", st.OffsetY, float64(st.StartIndex)*cfg.RowHeight)
	}
	if st.StartIndex < 0 {
		t.Errorf("StartIndex = %d, want >= 0", st.StartIndex)
	}
	if st.EndIndex > 1000 {
		t.Errorf("EndIndex = %d, want <= rowCount", st.EndIndex)
	}

	// scrollTop 400 / rowHeight 20 = row 20, minus default overscan 5.
	if st.StartIndex != 15 {
		t.Errorf("StartIndex = %d, want 15", st.StartIndex)
	}
	// 10 visible + 2*5 overscan rows from start.
	if st.EndIndex != 35 {
		t.Errorf("EndIndex = %d, want 35", st.EndIndex)
	}
}

// With overscan disabled, the computed range must fully cover the
// window visible at every valid scroll position.
func TestCompute_CoverageProperty(t *testing.T) {
	cfg := Config{RowHeight: 20, ContainerHeight: 190, Overscan: -1}
	const rowCount = 500
	totalHeight := float64(rowCount) * cfg.RowHeight

	for top := 0.0; top <= totalHeight-cfg.ContainerHeight; top += cfg.RowHeight {
		st := Compute(cfg, rowCount, top)

		firstVisible := int(math.Floor(top / cfg.RowHeight))
		lastVisible := int(math.Ceil((top + cfg.ContainerHeight) / cfg.RowHeight))
		if lastVisible > rowCount {
			lastVisible = rowCount
		}

		if st.StartIndex > firstVisible {
			t.Fatalf("scrollTop=%v: StartIndex = %d > first visible row %d", top, st.StartIndex, firstVisible)
		}
		if st.EndIndex < lastVisible {
			t.Fatalf("scrollTop=%v: EndIndex = %d < last visible row %d", top, st.EndIndex, lastVisible)
		}
	}
}

func TestCompute_NegativeScrollClamps(t *testing.T) {
	st := Compute(testConfig(), 100, -500)

	if st.StartIndex != 0 {
		t.Errorf("StartIndex = %d, want 0", st.StartIndex)
	}
	if st.OffsetY != 0 {
		t.Errorf("OffsetY = %v, want 0", st.OffsetY)
	}
}

func TestCompute_ScrollFarPastEnd(t *testing.T) {
	st := Compute(testConfig(), 100, 1e9)

	if st.EndIndex != 100 {
		t.Errorf("EndIndex = %d, want 100", st.EndIndex)
	}
	if st.StartIndex > st.EndIndex {
		t.Errorf("StartIndex = %d > EndIndex = %d", st.StartIndex, st.EndIndex)
	}
}

func TestCompute_EmptyDataset(t *testing.T) {
	st := Compute(testConfig(), 0, 123)

	if st.StartIndex != 0 || st.EndIndex != 0 {
		t.Errorf("range = [%d, %d), want [0, 0)", st.StartIndex, st.EndIndex)
	}
	if st.TotalHeight != 0 {
		t.Errorf("TotalHeight = %v, want 0", st.TotalHeight)
	}
}

func TestCompute_Disabled(t *testing.T) {
	st := Compute(Config{RowHeight: 20, ContainerHeight: 200, Disabled: true}, 100, 400)

	if st.StartIndex != 0 || st.EndIndex != 100 {
		t.Errorf("range = [%d, %d), want full [0, 100)", st.StartIndex, st.EndIndex)
	}
	if st.OffsetY != 0 {
		t.Errorf("OffsetY = %v, want 0", st.OffsetY)
	}
}

func TestManager_VisibleRowsDegenerateInputs(t *testing.T) {
	empty := NewManager(testConfig(), rows(0))
	if got := empty.VisibleRows(); len(got) != 0 {
		t.Errorf("empty dataset VisibleRows() = %v, want []", got)
	}
	empty.HandleScroll(999)
	if got := empty.VisibleRows(); len(got) != 0 {
		t.Errorf("empty dataset after scroll VisibleRows() = %v, want []", got)
	}

	single := NewManager(testConfig(), rows(1))
	for _, top := range []float64{0, 50, -10, 1e6} {
		single.HandleScroll(top)
		got := single.VisibleRows()
		if len(got) != 1 || got[0] != 0 {
			t.Errorf("scrollTop=%v: VisibleRows() = %v, want [0]", top, got)
		}
	}
}

func TestManager_ContainerSmallerThanOneRow(t *testing.T) {
	m := NewManager(Config{RowHeight: 100, ContainerHeight: 30}, rows(50))

	m.HandleScroll(250)
	st := m.State()
	if st.VisibleRowCount != 1 {
		t.Errorf("VisibleRowCount = %d, want 1", st.VisibleRowCount)
	}
	if st.StartIndex > 2 || st.EndIndex < 3 {
		t.Errorf("range = [%d, %d), must include row 2", st.StartIndex, st.EndIndex)
	}
}

func TestManager_UpdateDataPreservesScroll(t *testing.T) {
	m := NewManager(testConfig(), rows(1000))
	m.HandleScroll(400)
	before := m.State()

	m.UpdateData(rows(2000))
	after := m.State()

	if after.ScrollTop != before.ScrollTop {
		t.Errorf("ScrollTop = %v, want %v (preserved)", after.ScrollTop, before.ScrollTop)
	}
	if after.StartIndex != before.StartIndex {
		t.Errorf("StartIndex = %d, want %d", after.StartIndex, before.StartIndex)
	}
	if after.TotalHeight != 2000*20 {
		t.Errorf("TotalHeight = %v, want %v", after.TotalHeight, 2000*20)
	}
}

func TestManager_UpdateConfigMerges(t *testing.T) {
	m := NewManager(testConfig(), rows(100))

	m.UpdateConfig(Config{RowHeight: 40})
	st := m.State()
	if st.TotalHeight != 100*40 {
		t.Errorf("TotalHeight = %v, want %v", st.TotalHeight, 100*40)
	}
	// ContainerHeight untouched by the partial update.
	if st.VisibleRowCount != 5 {
		t.Errorf("VisibleRowCount = %d, want 5 (200px / 40px)", st.VisibleRowCount)
	}
}

func TestManager_ScrollToIndex(t *testing.T) {
	m := NewManager(testConfig(), rows(1000))

	m.ScrollToIndex(50)
	st := m.State()
	if st.ScrollTop != 1000 {
		t.Errorf("ScrollTop = %v, want 1000", st.ScrollTop)
	}
	if st.StartIndex > 50 || st.EndIndex <= 50 {
		t.Errorf("range = [%d, %d), must include row 50", st.StartIndex, st.EndIndex)
	}

	// Past the end clamps to totalHeight - containerHeight.
	m.ScrollToIndex(5000)
	if got := m.State().ScrollTop; got != 1000*20-200 {
		t.Errorf("ScrollTop = %v, want %v (clamped)", got, 1000*20-200)
	}

	m.ScrollToIndex(-3)
	if got := m.State().ScrollTop; got != 0 {
		t.Errorf("ScrollTop = %v, want 0 (clamped)", got)
	}
}

func TestManager_SubscribeAndDispose(t *testing.T) {
	m := NewManager(testConfig(), rows(100))

	var got []State
	off := m.Subscribe(func(s State) { got = append(got, s) })

	m.HandleScroll(100)
	m.HandleScroll(200)
	off()
	m.HandleScroll(300)

	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if got[1].ScrollTop != 200 {
		t.Errorf("last notified ScrollTop = %v, want 200", got[1].ScrollTop)
	}
}
