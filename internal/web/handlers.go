package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/gridline/grid"
	"github.com/JonMunkholm/gridline/internal/logging"
	"github.com/JonMunkholm/gridline/remote"
)

// DataResponse is the wire shape of /api/data. Data and Total match
// what remote.Manager's default decoder expects; the page echo fields
// let thin clients render pagination without recomputing it.
type DataResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// ColumnMeta describes one column for clients building a header row.
type ColumnMeta struct {
	ID         string `json:"id"`
	Header     string `json:"header"`
	Sortable   bool   `json:"sortable"`
	Filterable bool   `json:"filterable"`
	Hidden     bool   `json:"hidden,omitempty"`
}

// handleData serves one page of rows. Query parameters mirror the
// remote fetch manager's defaults: page, pageSize, sortBy,
// sortDirection, search.
func (s *Server[T]) handleData(w http.ResponseWriter, r *http.Request) {
	page := parseIntParam(r, remote.ParamPage, 1)
	pageSize := parseIntParam(r, remote.ParamPageSize, s.cfg.Data.DefaultPageSize)
	if pageSize > s.cfg.Data.MaxPageSize {
		pageSize = s.cfg.Data.MaxPageSize
	}

	params := map[string]any{
		remote.ParamPage:     page,
		remote.ParamPageSize: pageSize,
	}
	if sortBy := r.URL.Query().Get(remote.ParamSortBy); sortBy != "" {
		params[remote.ParamSortBy] = sortBy
		params[remote.ParamSortDirection] = r.URL.Query().Get(remote.ParamSortDirection)
	}
	if search := r.URL.Query().Get(remote.ParamSearch); search != "" {
		params[remote.ParamSearch] = search
	}

	res, err := s.provider.FetchPage(r.Context(), params)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	pg := grid.Paginate(page, pageSize, res.Total)

	logging.FromContext(r.Context()).Debug("served page",
		"page", pg.Page,
		"pageSize", pg.PageSize,
		"total", res.Total,
	)

	writeJSON(w, DataResponse[T]{
		Data:       res.Data,
		Total:      res.Total,
		Page:       pg.Page,
		PageSize:   pg.PageSize,
		TotalPages: pg.TotalPages,
	})
}

// handleColumns serves column metadata.
func (s *Server[T]) handleColumns(w http.ResponseWriter, r *http.Request) {
	meta := make([]ColumnMeta, len(s.columns))
	for i, col := range s.columns {
		meta[i] = ColumnMeta{
			ID:         col.ID,
			Header:     col.Header,
			Sortable:   !col.DisableSort,
			Filterable: !col.DisableFilter,
			Hidden:     col.Hidden,
		}
	}
	writeJSON(w, meta)
}

// handleHealth reports liveness.
func (s *Server[T]) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
