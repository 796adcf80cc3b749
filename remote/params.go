package remote

import (
	"fmt"
	"strconv"

	"github.com/JonMunkholm/gridline/grid"
)

// Request parameter keys shared by the default builder, the bundled
// providers, and the reference endpoint.
const (
	ParamPage          = "page"
	ParamPageSize      = "pageSize"
	ParamSortBy        = "sortBy"
	ParamSortDirection = "sortDirection"
	ParamSearch        = "search"
)

// Params captures one fetch intent: which page, sort, and search the
// caller wants from the remote source. Zero fields are omitted from
// the outgoing request.
type Params struct {
	Page          int
	PageSize      int
	SortBy        string
	SortDirection grid.SortDirection
	Search        string

	// Extra carries caller-defined keys merged into the request.
	// Nil-valued entries are dropped.
	Extra map[string]any
}

// buildParams assembles the outgoing request parameters, honoring the
// config's feature toggles. A TransformRequest hook fully replaces this
// default construction. Nil values never reach the wire.
func (c Config[T]) buildParams(p Params) map[string]any {
	if c.TransformRequest != nil {
		return dropNilValues(c.TransformRequest(p))
	}

	out := make(map[string]any)
	if !c.DisablePagination {
		if p.Page > 0 {
			out[ParamPage] = p.Page
		}
		if p.PageSize > 0 {
			out[ParamPageSize] = p.PageSize
		}
	}
	if !c.DisableSorting && p.SortBy != "" && p.SortDirection != grid.SortNone {
		out[ParamSortBy] = p.SortBy
		out[ParamSortDirection] = p.SortDirection.String()
	}
	if !c.DisableFiltering && p.Search != "" {
		out[ParamSearch] = p.Search
	}
	for k, v := range p.Extra {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

func dropNilValues(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// paramInt reads an integer parameter, tolerating the numeric types a
// TransformRequest hook or JSON round-trip may produce.
func paramInt(params map[string]any, key string, fallback int) int {
	v, ok := params[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return fallback
}

// paramString reads a string parameter, formatting non-string values.
func paramString(params map[string]any, key string) string {
	v, ok := params[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
