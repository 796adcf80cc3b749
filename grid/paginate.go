package grid

// DefaultPageSize is used when pagination is enabled without an
// explicit page size.
const DefaultPageSize = 10

// defaultPageSizeOptions is offered when the caller does not configure
// its own page size choices.
var defaultPageSizeOptions = []int{10, 25, 50, 100}

// Pagination is a bounded page descriptor. StartIndex/EndIndex always
// describe a valid slice window, including for an empty dataset.
type Pagination struct {
	// Page is the current page, 1-indexed and clamped to [1, TotalPages].
	Page int
	// PageSize is the number of rows per page.
	PageSize int
	// PageSizeOptions lists the selectable page sizes for the caller's UI.
	PageSizeOptions []int
	// TotalRows is the row count the descriptor was computed against.
	TotalRows int
	// TotalPages is max(1, ceil(TotalRows/PageSize)).
	TotalPages int
	// StartIndex is the inclusive start of the page slice.
	StartIndex int
	// EndIndex is the exclusive end of the page slice.
	EndIndex int
	// HasPrevPage reports whether Page > 1.
	HasPrevPage bool
	// HasNextPage reports whether Page < TotalPages.
	HasNextPage bool
}

// Paginate computes a bounded page descriptor. Out-of-range pages are
// clamped rather than rejected, and a non-positive pageSize falls back
// to DefaultPageSize. For totalRows == 0 the result is a single empty
// page with StartIndex == EndIndex == 0.
func Paginate(page, pageSize, totalRows int) Pagination {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if totalRows < 0 {
		totalRows = 0
	}

	totalPages := (totalRows + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	if start > totalRows {
		start = totalRows
	}
	end := start + pageSize
	if end > totalRows {
		end = totalRows
	}

	return Pagination{
		Page:        page,
		PageSize:    pageSize,
		TotalRows:   totalRows,
		TotalPages:  totalPages,
		StartIndex:  start,
		EndIndex:    end,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
	}
}
