package grid

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// CompareValues is the default cell comparator. Ordering rules, in
// priority order:
//
//   - both null: equal
//   - one null: the null value sorts after the non-null one
//   - strings: case-insensitive
//   - numbers (any integer or float type): numeric order
//   - time.Time: chronological
//   - bools: false before true
//   - anything else: case-insensitive comparison of the fmt string form
//
// Null placement is independent of sort direction: the engine applies
// direction to the non-null branches only, so nulls always sort last.
func CompareValues(a, b any) int {
	aNull, bNull := isNull(a), isNull(b)
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return 1
	case bNull:
		return -1
	}
	return compareNonNull(a, b)
}

// compareNonNull compares two values known to be non-null.
func compareNonNull(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return compareFold(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return cmp.Compare(af, bf)
		}
	}

	return compareFold(fmt.Sprint(a), fmt.Sprint(b))
}

// compareCells orders two cell values for a column, honoring a custom
// comparator and the sort direction. Nulls sort last regardless of
// direction when the default comparator is in effect.
func compareCells(a, b any, dir SortDirection, custom func(a, b any) int) int {
	if custom != nil {
		c := custom(a, b)
		if dir == SortDescending {
			c = -c
		}
		return c
	}

	aNull, bNull := isNull(a), isNull(b)
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return 1
	case bNull:
		return -1
	}

	c := compareNonNull(a, b)
	if dir == SortDescending {
		c = -c
	}
	return c
}

// compareFold compares two strings case-insensitively.
func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// toFloat widens any integer or float value to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// isNull reports whether a cell value is null, including typed nils
// behind an interface (nil pointers, maps, and slices from accessors).
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
