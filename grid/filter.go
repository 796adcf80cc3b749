package grid

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// FilterFunc tests a single row against a search term. A custom
// FilterFunc replaces the default per-column substring matching.
type FilterFunc[T any] func(row T, term string) bool

// MatchRow reports whether any filterable column's cell value contains
// term as a case-insensitive substring of its string form. Null cells
// never match. Matching short-circuits on the first hit.
func MatchRow[T any](row T, columns []Column[T], term string) bool {
	needle := strings.ToLower(term)
	for i := range columns {
		col := &columns[i]
		if col.DisableFilter || col.Accessor == nil {
			continue
		}
		v := col.Accessor(row)
		if isNull(v) {
			continue
		}
		if strings.Contains(strings.ToLower(fmt.Sprint(v)), needle) {
			return true
		}
	}
	return false
}

// FilterRows returns the rows matching term. An empty term keeps every
// row. When fn is nil the default predicate (MatchRow over columns) is
// used. The input slice is never mutated; the result is always a fresh
// slice.
func FilterRows[T any](rows []T, columns []Column[T], term string, fn FilterFunc[T]) []T {
	if term == "" {
		return slices.Clone(rows)
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var keep bool
		if fn != nil {
			keep = fn(row, term)
		} else {
			keep = MatchRow(row, columns, term)
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

// SortRows stable-sorts a copy of rows by the given column and
// direction. SortNone returns an unsorted copy. The input slice is
// never mutated.
func SortRows[T any](rows []T, col Column[T], dir SortDirection) []T {
	out := slices.Clone(rows)
	if dir == SortNone || col.Accessor == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return compareCells(col.Accessor(out[i]), col.Accessor(out[j]), dir, col.SortFunc) < 0
	})
	return out
}
