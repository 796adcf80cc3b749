// Package scroll provides row virtualization for large datasets: given
// a viewport of fixed pixel height and a fixed row height, it computes
// which contiguous index range must be rendered as the scroll position
// changes. Rendering cost stays constant regardless of total row count,
// since only the visible slice is ever materialized.
package scroll

import "math"

// DefaultOverscan is the number of extra rows rendered beyond each
// viewport edge to mask scroll-induced rendering latency.
const DefaultOverscan = 5

// Config holds the viewport geometry. Pixel values are float64 to
// match fractional scroll offsets.
type Config struct {
	// RowHeight is the fixed height of one row in pixels.
	RowHeight float64

	// ContainerHeight is the visible viewport height in pixels.
	ContainerHeight float64

	// Overscan is the buffer row count per edge. Zero means
	// DefaultOverscan; use a negative value for no overscan.
	Overscan int

	// Disabled turns virtualization off: the computed range covers
	// every row.
	Disabled bool
}

// normalize applies defaults.
func (c Config) normalize() Config {
	if c.Overscan == 0 {
		c.Overscan = DefaultOverscan
	} else if c.Overscan < 0 {
		c.Overscan = 0
	}
	return c
}

// State describes the computed viewport window.
type State struct {
	// StartIndex is the first row index to render (inclusive).
	StartIndex int

	// EndIndex is the end of the render range (exclusive).
	EndIndex int

	// TotalHeight is rowCount * rowHeight, the full scrollable extent.
	TotalHeight float64

	// ScrollTop is the scroll position the state was computed from.
	ScrollTop float64

	// VisibleRowCount is how many rows fit in the container.
	VisibleRowCount int

	// OffsetY is StartIndex * rowHeight: the absolute-position offset
	// the caller applies to the rendered slice.
	OffsetY float64
}

// Compute derives the viewport state for a scroll position. Degenerate
// inputs (empty dataset, negative scrollTop, scrollTop past the end,
// container smaller than one row) are handled by the clamping
// arithmetic alone; the result is always a valid, possibly empty,
// range.
func Compute(cfg Config, rowCount int, scrollTop float64) State {
	cfg = cfg.normalize()
	if rowCount < 0 {
		rowCount = 0
	}

	totalHeight := float64(rowCount) * cfg.RowHeight

	if cfg.Disabled {
		return State{
			StartIndex:      0,
			EndIndex:        rowCount,
			TotalHeight:     totalHeight,
			ScrollTop:       scrollTop,
			VisibleRowCount: rowCount,
			OffsetY:         0,
		}
	}

	var start, visible int
	if cfg.RowHeight > 0 {
		start = int(math.Floor(scrollTop/cfg.RowHeight)) - cfg.Overscan
		visible = int(math.Ceil(cfg.ContainerHeight / cfg.RowHeight))
	}
	if start < 0 {
		start = 0
	}

	end := start + visible + 2*cfg.Overscan
	if end > rowCount {
		end = rowCount
	}
	if start > end {
		start = end
	}

	return State{
		StartIndex:      start,
		EndIndex:        end,
		TotalHeight:     totalHeight,
		ScrollTop:       scrollTop,
		VisibleRowCount: visible,
		OffsetY:         float64(start) * cfg.RowHeight,
	}
}

// Manager tracks a backing row slice and the current viewport state,
// notifying subscribers on every recomputation. Like the table engine,
// a Manager is owned by a single goroutine.
type Manager[T any] struct {
	cfg       Config
	rows      []T
	state     State
	nextID    int
	listeners map[int]func(State)
}

// NewManager builds a manager over rows with the initial state computed
// at scroll position zero.
func NewManager[T any](cfg Config, rows []T) *Manager[T] {
	m := &Manager[T]{
		cfg:       cfg.normalize(),
		rows:      rows,
		listeners: make(map[int]func(State)),
	}
	m.state = Compute(m.cfg, len(m.rows), 0)
	return m
}

// HandleScroll recomputes the viewport from a new scroll position and
// notifies subscribers. Out-of-range positions are clamped by the
// arithmetic.
func (m *Manager[T]) HandleScroll(scrollTop float64) {
	m.state = Compute(m.cfg, len(m.rows), scrollTop)
	m.notify()
}

// UpdateData replaces the backing rows and recomputes at the current
// scroll position, so the viewport survives data swaps.
func (m *Manager[T]) UpdateData(rows []T) {
	m.rows = rows
	m.state = Compute(m.cfg, len(m.rows), m.state.ScrollTop)
	m.notify()
}

// UpdateConfig merges the non-zero fields of cfg into the current
// configuration and recomputes. Disabled is always taken from cfg.
func (m *Manager[T]) UpdateConfig(cfg Config) {
	if cfg.RowHeight > 0 {
		m.cfg.RowHeight = cfg.RowHeight
	}
	if cfg.ContainerHeight > 0 {
		m.cfg.ContainerHeight = cfg.ContainerHeight
	}
	if cfg.Overscan != 0 {
		m.cfg.Overscan = cfg.Overscan
		m.cfg = m.cfg.normalize()
	}
	m.cfg.Disabled = cfg.Disabled
	m.state = Compute(m.cfg, len(m.rows), m.state.ScrollTop)
	m.notify()
}

// ScrollToIndex positions the viewport so the given row lands at the
// top, clamped to [0, totalHeight-containerHeight].
func (m *Manager[T]) ScrollToIndex(index int) {
	top := float64(index) * m.cfg.RowHeight
	maxTop := m.state.TotalHeight - m.cfg.ContainerHeight
	if maxTop < 0 {
		maxTop = 0
	}
	if top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	m.HandleScroll(top)
}

// VisibleRows returns the slice of the backing rows covered by the
// current [StartIndex, EndIndex) range.
func (m *Manager[T]) VisibleRows() []T {
	return m.rows[m.state.StartIndex:m.state.EndIndex]
}

// State returns the current viewport state.
func (m *Manager[T]) State() State {
	return m.state
}

// Subscribe registers fn to be called after every recomputation and
// returns a disposer.
func (m *Manager[T]) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() { delete(m.listeners, id) }
}

func (m *Manager[T]) notify() {
	for _, fn := range m.listeners {
		fn(m.state)
	}
}
