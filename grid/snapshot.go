package grid

// Snapshot is a point-in-time copy of the engine's state, handed to
// event listeners and returned by State. Snapshots are built fresh per
// mutation and never modified afterwards, so holders of an older
// snapshot cannot observe later changes. Treat the contained slices as
// read-only.
type Snapshot[T any] struct {
	// OriginalData is the full dataset as last set.
	OriginalData []T

	// FilteredData is OriginalData after the search filter.
	FilteredData []T

	// SortedData is FilteredData after sorting (or the same order when
	// unsorted).
	SortedData []T

	// PaginatedData is the current page slice of SortedData. Equal to
	// SortedData when pagination is disabled.
	PaginatedData []T

	// Sort is the active sort state. Zero value means unsorted.
	Sort SortState

	// SearchTerm is the current search term. Empty means no filter.
	SearchTerm string

	// Pagination is the current page descriptor, nil when pagination
	// is disabled.
	Pagination *Pagination

	// HiddenColumns lists the currently hidden column ids, sorted.
	HiddenColumns []string
}
