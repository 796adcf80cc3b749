package remote

import (
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/gridline/grid"
)

func itemColumns() []grid.Column[item] {
	return []grid.Column[item]{
		{ID: "id", Header: "ID", Accessor: func(r item) any { return r.ID }},
		{ID: "name", Header: "Name", Accessor: func(r item) any { return r.Name }},
	}
}

func TestMemoryProvider_Pipeline(t *testing.T) {
	rows := []item{
		{ID: "1", Name: "Charlie"},
		{ID: "2", Name: "alice"},
		{ID: "3", Name: "Bob"},
		{ID: "4", Name: "Alicia"},
	}
	p := NewMemoryProvider(rows, itemColumns())

	res, err := p.FetchPage(context.Background(), map[string]any{
		ParamSearch:        "ali",
		ParamSortBy:        "name",
		ParamSortDirection: "asc",
		ParamPage:          1,
		ParamPageSize:      10,
	})
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("Total = %d, want 2", res.Total)
	}
	got := []string{res.Data[0].Name, res.Data[1].Name}
	want := []string{"alice", "Alicia"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Data[%d].Name = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMemoryProvider_PageSlicing(t *testing.T) {
	rows := make([]item, 23)
	for i := range rows {
		rows[i] = item{ID: string(rune('a' + i))}
	}
	p := NewMemoryProvider(rows, itemColumns())

	res, err := p.FetchPage(context.Background(), map[string]any{
		ParamPage: 3, ParamPageSize: 10,
	})
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if res.Total != 23 {
		t.Errorf("Total = %d, want 23", res.Total)
	}
	if len(res.Data) != 3 {
		t.Errorf("len(Data) = %d, want 3 (last partial page)", len(res.Data))
	}
}

func TestMemoryProvider_NoPaginationReturnsAll(t *testing.T) {
	p := NewMemoryProvider([]item{{ID: "1"}, {ID: "2"}}, itemColumns())

	res, err := p.FetchPage(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if len(res.Data) != 2 || res.Total != 2 {
		t.Errorf("Data/Total = %d/%d, want 2/2", len(res.Data), res.Total)
	}
}

func TestMemoryProvider_CanceledContext(t *testing.T) {
	p := NewMemoryProvider([]item{{ID: "1"}}, itemColumns())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.FetchPage(ctx, nil); err == nil {
		t.Error("FetchPage with canceled context: error = nil, want context error")
	}
}

func TestNewPGProvider_Validation(t *testing.T) {
	if _, err := NewPGProvider[item](nil, PGConfig{Table: "t", Columns: []string{"id"}}, nil); err != ErrNoPool {
		t.Errorf("nil pool: error = %v, want ErrNoPool", err)
	}
}

func TestPGProvider_BuildWhere(t *testing.T) {
	p := &PGProvider[item]{cfg: PGConfig{
		Table:         "people",
		Columns:       []string{"id", "name", "city"},
		SearchColumns: []string{"name", "city"},
	}}

	where, args := p.buildWhere("")
	if where != "" || args != nil {
		t.Errorf("empty search: where = %q args = %v, want none", where, args)
	}

	where, args = p.buildWhere("john")
	wantWhere := ` WHERE ("name"::text ILIKE $1 OR "city"::text ILIKE $1)`
	if where != wantWhere {
		t.Errorf("where = %q, want %q", where, wantWhere)
	}
	if len(args) != 1 || args[0] != "%john%" {
		t.Errorf("args = %v, want [%%john%%]", args)
	}
}

func TestPGProvider_BuildSelect(t *testing.T) {
	p := &PGProvider[item]{cfg: PGConfig{
		Table:   "people",
		Columns: []string{"id", "name"},
	}}

	where, args := p.buildWhere("jo")
	query, args := p.buildSelect(where, args, map[string]any{
		ParamSortBy:        "name",
		ParamSortDirection: "desc",
		ParamPage:          2,
		ParamPageSize:      25,
	}, 100)

	want := `SELECT "id", "name" FROM "people" WHERE ("id"::text ILIKE $1 OR "name"::text ILIKE $1) ORDER BY "name" DESC LIMIT $2 OFFSET $3`
	if query != want {
		t.Errorf("query = %q\nwant   %q", query, want)
	}
	if len(args) != 3 || args[1] != 25 || args[2] != 25 {
		t.Errorf("args = %v, want search pattern plus LIMIT 25 OFFSET 25", args)
	}
}

func TestPGProvider_BuildSelectIgnoresUnknownSortColumn(t *testing.T) {
	p := &PGProvider[item]{cfg: PGConfig{Table: "people", Columns: []string{"id"}}}

	query, _ := p.buildSelect("", nil, map[string]any{
		ParamSortBy: "password; DROP TABLE people",
	}, 0)

	if strings.Contains(query, "ORDER BY") {
		t.Errorf("query = %q, unknown sort column produced an ORDER BY", query)
	}
}

func TestPGProvider_BuildSelectClampsPageOverflow(t *testing.T) {
	p := &PGProvider[item]{cfg: PGConfig{Table: "people", Columns: []string{"id"}}}

	// 15 rows at pageSize 10: page 99 clamps to the last page.
	_, args := p.buildSelect("", nil, map[string]any{
		ParamPage: 99, ParamPageSize: 10,
	}, 15)

	if len(args) != 2 || args[0] != 10 || args[1] != 10 {
		t.Errorf("args = %v, want LIMIT 10 OFFSET 10 (clamped to last page)", args)
	}
}

func TestQuoteIdentifier(t *testing.T) {
	if got := quoteIdentifier("name"); got != `"name"` {
		t.Errorf("quoteIdentifier(name) = %q", got)
	}
	if got := quoteIdentifier(`we"ird`); got != `"we""ird"` {
		t.Errorf("quoteIdentifier escaping = %q", got)
	}
}
