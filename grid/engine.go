package grid

import (
	"errors"
	"fmt"
	"slices"
)

// Construction errors. Once an engine is built, its operations never
// return errors: malformed column ids, out-of-range pages, and empty
// datasets degrade to no-ops or empty results instead of failing, since
// these are routine UI-driven edge cases.
var (
	// ErrNoColumns is returned when Options.Columns is empty.
	ErrNoColumns = errors.New("grid: no columns defined")

	// ErrNoRowID is returned when Options.RowID is nil. Row identity is
	// a required capability; the engine does not guess at an id field.
	ErrNoRowID = errors.New("grid: row identity function is required")

	// ErrDuplicateColumn is returned when two columns share an ID.
	ErrDuplicateColumn = errors.New("grid: duplicate column id")

	// ErrNoAccessor is returned when a column has a nil Accessor.
	ErrNoAccessor = errors.New("grid: column accessor is required")
)

// PaginationConfig enables pagination. Zero fields fall back to
// defaults (page 1, DefaultPageSize, the standard size options).
type PaginationConfig struct {
	PageSize        int
	PageSizeOptions []int
	InitialPage     int
}

// Options configures a new Engine.
type Options[T any] struct {
	// Data is the initial dataset. May be empty.
	Data []T

	// Columns describes the table's columns. Required, and column IDs
	// must be unique. Columns are immutable for the engine's lifetime.
	Columns []Column[T]

	// RowID derives row identity. Required.
	RowID RowIDFunc[T]

	// Pagination enables pagination when non-nil.
	Pagination *PaginationConfig

	// DisableSearch makes Search a no-op filter (the term is still
	// recorded in snapshots).
	DisableSearch bool

	// FilterFunc replaces the default search predicate.
	FilterFunc FilterFunc[T]

	// MultiSort is reserved; only single-column sorting is implemented.
	MultiSort bool

	// DefaultSort applies an initial sort. Ignored if the column is
	// unknown or not sortable.
	DefaultSort *SortState
}

// engineDefaults captures the construction-time state Reset restores.
type engineDefaults struct {
	sort     SortState
	page     int
	pageSize int
	hidden   map[string]struct{}
}

// Engine owns a dataset and produces its derived view. An Engine is
// not safe for concurrent use: all operations run synchronously on the
// calling goroutine, and event listeners are invoked inline with the
// final post-mutation snapshot before the mutating call returns.
type Engine[T any] struct {
	columns    []Column[T]
	colIndex   map[string]int
	rowID      RowIDFunc[T]
	searchable bool
	filterFn   FilterFunc[T]
	paginated  bool
	sizeOpts   []int
	defaults   engineDefaults

	data     []T
	sort     SortState
	term     string
	page     int
	pageSize int
	hidden   map[string]struct{}

	snap      Snapshot[T]
	pub       *publisher[T]
	destroyed bool
}

// New validates the options and builds an engine with its initial
// derived view already computed.
func New[T any](opts Options[T]) (*Engine[T], error) {
	if len(opts.Columns) == 0 {
		return nil, ErrNoColumns
	}
	if opts.RowID == nil {
		return nil, ErrNoRowID
	}

	colIndex := make(map[string]int, len(opts.Columns))
	for i, col := range opts.Columns {
		if col.Accessor == nil {
			return nil, fmt.Errorf("%w: %q", ErrNoAccessor, col.ID)
		}
		if _, exists := colIndex[col.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.ID)
		}
		colIndex[col.ID] = i
	}

	e := &Engine[T]{
		columns:    slices.Clone(opts.Columns),
		colIndex:   colIndex,
		rowID:      opts.RowID,
		searchable: !opts.DisableSearch,
		filterFn:   opts.FilterFunc,
		data:       slices.Clone(opts.Data),
		page:       1,
		pageSize:   DefaultPageSize,
		hidden:     make(map[string]struct{}),
		pub:        newPublisher[T](),
	}

	if opts.Pagination != nil {
		e.paginated = true
		if opts.Pagination.PageSize > 0 {
			e.pageSize = opts.Pagination.PageSize
		}
		if opts.Pagination.InitialPage > 0 {
			e.page = opts.Pagination.InitialPage
		}
		e.sizeOpts = slices.Clone(opts.Pagination.PageSizeOptions)
		if len(e.sizeOpts) == 0 {
			e.sizeOpts = slices.Clone(defaultPageSizeOptions)
		}
	}

	for _, col := range e.columns {
		if col.Hidden {
			e.hidden[col.ID] = struct{}{}
		}
	}

	if ds := opts.DefaultSort; ds != nil && ds.IsSorted() {
		if i, ok := e.colIndex[ds.ColumnID]; ok && !e.columns[i].DisableSort {
			e.sort = *ds
		}
	}

	e.defaults = engineDefaults{
		sort:     e.sort,
		page:     e.page,
		pageSize: e.pageSize,
		hidden:   cloneSet(e.hidden),
	}

	e.recompute()
	return e, nil
}

// recompute runs the full filter -> sort -> paginate pipeline and
// replaces the stored snapshot. Every derived slice is freshly built,
// so snapshots held by observers are never mutated afterwards.
func (e *Engine[T]) recompute() {
	var filtered []T
	if e.searchable && e.term != "" {
		filtered = FilterRows(e.data, e.columns, e.term, e.filterFn)
	} else {
		filtered = slices.Clone(e.data)
	}

	sorted := filtered
	if e.sort.IsSorted() {
		if i, ok := e.colIndex[e.sort.ColumnID]; ok && !e.columns[i].DisableSort {
			sorted = SortRows(filtered, e.columns[i], e.sort.Direction)
		}
	}

	var pag *Pagination
	paged := sorted
	if e.paginated {
		p := Paginate(e.page, e.pageSize, len(sorted))
		p.PageSizeOptions = slices.Clone(e.sizeOpts)
		e.page = p.Page // keep internal page in sync with clamping
		pag = &p
		paged = slices.Clone(sorted[p.StartIndex:p.EndIndex])
	}

	e.snap = Snapshot[T]{
		OriginalData:  slices.Clone(e.data),
		FilteredData:  filtered,
		SortedData:    sorted,
		PaginatedData: paged,
		Sort:          e.sort,
		SearchTerm:    e.term,
		Pagination:    pag,
		HiddenColumns: sortedKeys(e.hidden),
	}
}

// SortBy sets an explicit sort. Unknown or unsortable columns are
// no-ops; SortNone clears the sort. Emits EventSort.
func (e *Engine[T]) SortBy(columnID string, dir SortDirection) {
	if e.destroyed {
		return
	}
	if dir == SortNone {
		e.ClearSort()
		return
	}
	i, ok := e.colIndex[columnID]
	if !ok || e.columns[i].DisableSort {
		return
	}
	e.sort = SortState{ColumnID: columnID, Direction: dir}
	e.recompute()
	e.pub.emit(EventSort, e.snap)
}

// ToggleSort applies click semantics: the first sort on a column is
// ascending, and repeated toggles flip between ascending and descending
// without ever returning to unsorted. Unknown or unsortable columns are
// no-ops. Emits EventSort.
func (e *Engine[T]) ToggleSort(columnID string) {
	if e.destroyed {
		return
	}
	i, ok := e.colIndex[columnID]
	if !ok || e.columns[i].DisableSort {
		return
	}
	dir := SortAscending
	if e.sort.ColumnID == columnID && e.sort.Direction == SortAscending {
		dir = SortDescending
	}
	e.sort = SortState{ColumnID: columnID, Direction: dir}
	e.recompute()
	e.pub.emit(EventSort, e.snap)
}

// ClearSort resets to the unsorted state (original filtered order).
// Emits EventSort.
func (e *Engine[T]) ClearSort() {
	if e.destroyed {
		return
	}
	e.sort = SortState{}
	e.recompute()
	e.pub.emit(EventSort, e.snap)
}

// Search sets the search term. Because the result size changes, the
// current page resets to 1 when pagination is enabled. Emits
// EventSearch.
func (e *Engine[T]) Search(term string) {
	if e.destroyed {
		return
	}
	e.term = term
	if e.paginated {
		e.page = 1
	}
	e.recompute()
	e.pub.emit(EventSearch, e.snap)
}

// GoToPage navigates to the given page, clamped to [1, TotalPages].
// A no-op when pagination is disabled. Emits EventPaginate.
func (e *Engine[T]) GoToPage(page int) {
	if e.destroyed || !e.paginated {
		return
	}
	e.page = page // clamped by recompute
	e.recompute()
	e.pub.emit(EventPaginate, e.snap)
}

// NextPage advances one page. A no-op (and emits nothing) when already
// on the last page or pagination is disabled.
func (e *Engine[T]) NextPage() {
	if e.destroyed || !e.paginated || e.snap.Pagination == nil || !e.snap.Pagination.HasNextPage {
		return
	}
	e.GoToPage(e.page + 1)
}

// PrevPage goes back one page. A no-op (and emits nothing) when already
// on the first page or pagination is disabled.
func (e *Engine[T]) PrevPage() {
	if e.destroyed || !e.paginated || e.snap.Pagination == nil || !e.snap.Pagination.HasPrevPage {
		return
	}
	e.GoToPage(e.page - 1)
}

// SetPageSize changes the page size and resets to page 1. Non-positive
// sizes are ignored. Emits EventPaginate.
func (e *Engine[T]) SetPageSize(size int) {
	if e.destroyed || !e.paginated || size < 1 {
		return
	}
	e.pageSize = size
	e.page = 1
	e.recompute()
	e.pub.emit(EventPaginate, e.snap)
}

// ToggleColumn flips the visibility of a column. Unknown ids are
// no-ops. Always emits EventColumnToggle for known columns.
func (e *Engine[T]) ToggleColumn(columnID string) {
	if e.destroyed {
		return
	}
	if _, known := e.colIndex[columnID]; !known {
		return
	}
	if _, hidden := e.hidden[columnID]; hidden {
		delete(e.hidden, columnID)
	} else {
		e.hidden[columnID] = struct{}{}
	}
	e.recompute()
	e.pub.emit(EventColumnToggle, e.snap)
}

// ShowColumn makes a column visible. A no-op (and emits nothing) when
// already visible or unknown. Emits EventColumnToggle otherwise.
func (e *Engine[T]) ShowColumn(columnID string) {
	if e.destroyed {
		return
	}
	if _, known := e.colIndex[columnID]; !known {
		return
	}
	if _, hidden := e.hidden[columnID]; !hidden {
		return
	}
	delete(e.hidden, columnID)
	e.recompute()
	e.pub.emit(EventColumnToggle, e.snap)
}

// HideColumn hides a column. A no-op (and emits nothing) when already
// hidden or unknown. Emits EventColumnToggle otherwise.
func (e *Engine[T]) HideColumn(columnID string) {
	if e.destroyed {
		return
	}
	if _, known := e.colIndex[columnID]; !known {
		return
	}
	if _, hidden := e.hidden[columnID]; hidden {
		return
	}
	e.hidden[columnID] = struct{}{}
	e.recompute()
	e.pub.emit(EventColumnToggle, e.snap)
}

// Reset restores the construction-time defaults: sort, search term,
// page, page size, and hidden columns. The dataset is left as-is.
// Emits EventReset.
func (e *Engine[T]) Reset() {
	if e.destroyed {
		return
	}
	e.sort = e.defaults.sort
	e.term = ""
	e.page = e.defaults.page
	e.pageSize = e.defaults.pageSize
	e.hidden = cloneSet(e.defaults.hidden)
	e.recompute()
	e.pub.emit(EventReset, e.snap)
}

// SetData replaces the dataset wholesale and re-runs the pipeline.
// It deliberately emits no event: callers that swap data already know
// to re-read state, and framework adapters typically re-render on the
// data change itself.
func (e *Engine[T]) SetData(rows []T) {
	if e.destroyed {
		return
	}
	e.data = slices.Clone(rows)
	e.recompute()
}

// Rows returns the current page slice, or the full filtered+sorted view
// when pagination is disabled.
func (e *Engine[T]) Rows() []T {
	if e.paginated {
		return e.snap.PaginatedData
	}
	return e.snap.SortedData
}

// AllRows returns the filtered and sorted view, ignoring pagination.
func (e *Engine[T]) AllRows() []T {
	return e.snap.SortedData
}

// Columns returns a copy of the column definitions.
func (e *Engine[T]) Columns() []Column[T] {
	return slices.Clone(e.columns)
}

// VisibleColumns returns the columns not currently hidden, in
// definition order.
func (e *Engine[T]) VisibleColumns() []Column[T] {
	out := make([]Column[T], 0, len(e.columns))
	for _, col := range e.columns {
		if _, hidden := e.hidden[col.ID]; !hidden {
			out = append(out, col)
		}
	}
	return out
}

// State returns the current snapshot.
func (e *Engine[T]) State() Snapshot[T] {
	return e.snap
}

// RowByID finds a row in the original dataset by identity. Linear scan;
// when ids collide the last match wins.
func (e *Engine[T]) RowByID(id string) (T, bool) {
	var found T
	ok := false
	for i, row := range e.data {
		if e.rowID(row, i) == id {
			found = row
			ok = true
		}
	}
	return found, ok
}

// On subscribes fn to an event type and returns a disposer that removes
// the subscription.
func (e *Engine[T]) On(t EventType, fn Listener[T]) func() {
	if e.destroyed {
		return func() {}
	}
	return e.pub.subscribe(t, fn)
}

// Destroy tears the engine down: all subscriptions are cleared and the
// instance enters a terminal state in which mutations are complete
// no-ops. Reads continue to serve the last computed snapshot.
func (e *Engine[T]) Destroy() {
	e.pub.clear()
	e.destroyed = true
}

func cloneSet(m map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
