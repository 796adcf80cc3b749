package remote

import (
	"context"
	"sync"

	"github.com/JonMunkholm/gridline/grid"
)

// MemoryProvider serves pages from an in-memory dataset by running the
// grid pipeline (filter, sort, paginate) per request. It backs the
// reference endpoint and is handy as a test double for Manager.
// Safe for concurrent use.
type MemoryProvider[T any] struct {
	mu      sync.RWMutex
	rows    []T
	columns []grid.Column[T]
}

// NewMemoryProvider builds a provider over rows described by columns.
func NewMemoryProvider[T any](rows []T, columns []grid.Column[T]) *MemoryProvider[T] {
	return &MemoryProvider[T]{rows: rows, columns: columns}
}

// SetRows replaces the backing dataset.
func (p *MemoryProvider[T]) SetRows(rows []T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rows = rows
}

// FetchPage applies search, sort, and pagination params to the
// in-memory rows. Unknown sort columns degrade to the unsorted order,
// mirroring the engine's behavior.
func (p *MemoryProvider[T]) FetchPage(ctx context.Context, params map[string]any) (Result[T], error) {
	if err := ctx.Err(); err != nil {
		return Result[T]{}, err
	}

	p.mu.RLock()
	rows := p.rows
	columns := p.columns
	p.mu.RUnlock()

	out := grid.FilterRows(rows, columns, paramString(params, ParamSearch), nil)
	total := len(out)

	if sortBy := paramString(params, ParamSortBy); sortBy != "" {
		dir := grid.ParseSortDirection(paramString(params, ParamSortDirection))
		for _, col := range columns {
			if col.ID == sortBy && !col.DisableSort {
				out = grid.SortRows(out, col, dir)
				break
			}
		}
	}

	if page := paramInt(params, ParamPage, 0); page > 0 {
		pg := grid.Paginate(page, paramInt(params, ParamPageSize, grid.DefaultPageSize), total)
		out = out[pg.StartIndex:pg.EndIndex]
	}

	return Result[T]{Data: out, Total: total}, nil
}
