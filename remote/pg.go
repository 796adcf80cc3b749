package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/gridline/grid"
)

// PGProvider construction errors.
var (
	ErrNoPool    = errors.New("remote: pgx pool is required")
	ErrNoTable   = errors.New("remote: table name is required")
	ErrNoColumns = errors.New("remote: at least one column is required")
	ErrNoRowMap  = errors.New("remote: row mapper is required")
)

// PGConfig describes the Postgres table a PGProvider serves.
type PGConfig struct {
	// Table is the table or view name. Quoted, never interpolated raw.
	Table string

	// Columns are the selectable column names, in SELECT order. Sort
	// params referencing any other column are ignored.
	Columns []string

	// SearchColumns limits which columns the search term is matched
	// against with ILIKE. Empty means all of Columns.
	SearchColumns []string
}

// PGProvider serves pages straight from Postgres: the search term
// becomes ILIKE conditions, sort params become a validated ORDER BY,
// and pagination becomes LIMIT/OFFSET, with a COUNT(*) over the same
// WHERE clause supplying the total.
type PGProvider[T any] struct {
	pool   *pgxpool.Pool
	cfg    PGConfig
	mapRow pgx.RowToFunc[T]
}

// NewPGProvider validates the config and builds a provider. mapRow
// converts one result row into T (see pgx.RowToStructByName and
// friends for ready-made mappers).
func NewPGProvider[T any](pool *pgxpool.Pool, cfg PGConfig, mapRow pgx.RowToFunc[T]) (*PGProvider[T], error) {
	if pool == nil {
		return nil, ErrNoPool
	}
	if cfg.Table == "" {
		return nil, ErrNoTable
	}
	if len(cfg.Columns) == 0 {
		return nil, ErrNoColumns
	}
	if mapRow == nil {
		return nil, ErrNoRowMap
	}
	if len(cfg.SearchColumns) == 0 {
		cfg.SearchColumns = cfg.Columns
	}
	return &PGProvider[T]{pool: pool, cfg: cfg, mapRow: mapRow}, nil
}

// FetchPage runs the count and page queries for the given params.
func (p *PGProvider[T]) FetchPage(ctx context.Context, params map[string]any) (Result[T], error) {
	var zero Result[T]

	where, args := p.buildWhere(paramString(params, ParamSearch))

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", quoteIdentifier(p.cfg.Table), where)
	var total int64
	if err := p.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return zero, fmt.Errorf("count rows: %w", err)
	}

	query, args := p.buildSelect(where, args, params, int(total))

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return zero, fmt.Errorf("query rows: %w", err)
	}
	data, err := pgx.CollectRows(rows, p.mapRow)
	if err != nil {
		return zero, fmt.Errorf("collect rows: %w", err)
	}

	return Result[T]{Data: data, Total: int(total)}, nil
}

// buildWhere turns a search term into ILIKE conditions over the search
// columns, OR-combined the way the engine's default predicate matches
// any filterable column.
func (p *PGProvider[T]) buildWhere(search string) (string, []any) {
	if search == "" {
		return "", nil
	}
	conds := make([]string, len(p.cfg.SearchColumns))
	for i, col := range p.cfg.SearchColumns {
		conds[i] = fmt.Sprintf("%s::text ILIKE $1", quoteIdentifier(col))
	}
	return " WHERE (" + strings.Join(conds, " OR ") + ")", []any{"%" + search + "%"}
}

// buildSelect assembles the page query: validated ORDER BY plus
// LIMIT/OFFSET derived from the same clamping rules as grid.Paginate.
func (p *PGProvider[T]) buildSelect(where string, args []any, params map[string]any, total int) (string, []any) {
	quoted := make([]string, len(p.cfg.Columns))
	for i, col := range p.cfg.Columns {
		quoted[i] = quoteIdentifier(col)
	}

	orderBy := ""
	if sortBy := paramString(params, ParamSortBy); sortBy != "" && containsColumn(p.cfg.Columns, sortBy) {
		dir := "ASC"
		if grid.ParseSortDirection(paramString(params, ParamSortDirection)) == grid.SortDescending {
			dir = "DESC"
		}
		orderBy = fmt.Sprintf(" ORDER BY %s %s", quoteIdentifier(sortBy), dir)
	}

	limit := ""
	if page := paramInt(params, ParamPage, 0); page > 0 {
		pg := grid.Paginate(page, paramInt(params, ParamPageSize, grid.DefaultPageSize), total)
		argIdx := len(args) + 1
		limit = fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, pg.PageSize, pg.StartIndex)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s%s%s%s",
		strings.Join(quoted, ", "),
		quoteIdentifier(p.cfg.Table),
		where,
		orderBy,
		limit,
	)
	return query, args
}

// quoteIdentifier safely quotes a SQL identifier by doubling any
// embedded quote characters.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func containsColumn(columns []string, target string) bool {
	for _, col := range columns {
		if strings.EqualFold(col, target) {
			return true
		}
	}
	return false
}
