// Package grid provides a headless table engine: it owns a dataset and
// column metadata, derives a filtered, sorted, paginated view on every
// mutation, and notifies subscribers with an immutable state snapshot.
// Rendering is left entirely to the caller.
package grid

// SortDirection specifies the direction of an active sort.
type SortDirection int

const (
	// SortNone indicates no sorting.
	SortNone SortDirection = iota
	// SortAscending indicates ascending sort order.
	SortAscending
	// SortDescending indicates descending sort order.
	SortDescending
)

// String returns the wire/query form of a SortDirection ("asc", "desc",
// or "" for SortNone).
func (d SortDirection) String() string {
	switch d {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return ""
	}
}

// ParseSortDirection converts "asc"/"desc" to a SortDirection.
// Anything else maps to SortNone.
func ParseSortDirection(s string) SortDirection {
	switch s {
	case "asc":
		return SortAscending
	case "desc":
		return SortDescending
	default:
		return SortNone
	}
}

// Column describes a single column of the table.
//
// The zero value of the flag fields gives the default behavior: sortable,
// filterable, and visible. Accessor is required; the engine never inspects
// row values except through it.
type Column[T any] struct {
	// ID uniquely identifies the column within a column set.
	ID string

	// Header is the display label. Opaque to the engine.
	Header string

	// Accessor extracts the cell value for this column from a row.
	Accessor func(row T) any

	// SortFunc, when set, replaces the default comparator for this column.
	// It must return a negative, zero, or positive value for a < b,
	// a == b, and a > b respectively; the engine negates the result for
	// descending sorts.
	SortFunc func(a, b any) int

	// DisableSort excludes the column from sorting. SortBy and ToggleSort
	// on such a column are no-ops.
	DisableSort bool

	// DisableFilter excludes the column's values from search matching.
	DisableFilter bool

	// Hidden marks the column hidden by default. Visibility can be
	// changed at runtime via ShowColumn/HideColumn/ToggleColumn.
	Hidden bool
}

// RowIDFunc derives a stable string identity for a row. Collisions are
// not detected; in lookups the last matching row wins.
type RowIDFunc[T any] func(row T, index int) string

// SortState holds the current sorting configuration. The zero value
// means unsorted; ColumnID and Direction are always set or cleared
// together.
type SortState struct {
	ColumnID  string
	Direction SortDirection
}

// IsSorted reports whether the state represents an active sort.
func (s SortState) IsSorted() bool {
	return s.ColumnID != "" && s.Direction != SortNone
}
