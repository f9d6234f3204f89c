// Package listquery implements the paged/filterable/searchable read contract
// every admin collection endpoint shares: parse page, limit, search, filters
// and sort from the request, build the SQL tail against a per-resource column
// whitelist, and compute pagination metadata.
package listquery

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"lovepages-admin/internal/entities"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Filter declares one whitelisted discriminating filter for a resource.
type Filter struct {
	Column string
	Bool   bool // value is parsed as a boolean before binding
}

// Spec is the per-resource column whitelist. Anything not listed here is
// ignored rather than passed to SQL.
type Spec struct {
	SearchColumns []string          // ILIKE targets for free-text search
	Filters       map[string]Filter // query param -> column
	SortColumns   map[string]string // sortBy value -> column
	DefaultSort   string            // column used when sortBy is absent/unknown
}

// Params is a parsed, validated list query. Omitted optional fields stay
// zero-valued, which Build treats as "no constraint".
type Params struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string // query param -> raw value, whitelisted keys only
	SortBy  string            // resolved column, already whitelisted
	Order   string            // "ASC" or "DESC"
}

// Parse reads the standard list parameters from query values. Page defaults
// to 1, limit to DefaultLimit clamped to [1, MaxLimit]. Unknown sort fields
// fall back to DefaultSort; unknown filters are dropped.
func Parse(values url.Values, spec Spec) Params {
	p := Params{
		Page:  1,
		Limit: DefaultLimit,
	}

	if n, err := strconv.Atoi(values.Get("page")); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(values.Get("limit")); err == nil && n >= 1 {
		p.Limit = n
		if p.Limit > MaxLimit {
			p.Limit = MaxLimit
		}
	}

	p.Search = strings.TrimSpace(values.Get("search"))

	for param := range spec.Filters {
		if v := values.Get(param); v != "" {
			if p.Filters == nil {
				p.Filters = make(map[string]string)
			}
			p.Filters[param] = v
		}
	}

	p.SortBy = spec.DefaultSort
	if col, ok := spec.SortColumns[values.Get("sortBy")]; ok {
		p.SortBy = col
	}

	p.Order = "DESC"
	if strings.EqualFold(values.Get("order"), "asc") {
		p.Order = "ASC"
	}

	return p
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so search text matches
// literally. A search for "100%" must not match everything.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Build renders the WHERE clause and the ORDER BY/LIMIT/OFFSET tail for a
// parsed query. Placeholders start at $1; args line up with both fragments
// (the tail uses only literals, so the same args slice serves the count
// query and the page query).
func (p Params) Build(spec Spec) (where string, args []any, tail string) {
	var conds []string

	if p.Search != "" && len(spec.SearchColumns) > 0 {
		args = append(args, "%"+escapeLike(p.Search)+"%")
		ph := fmt.Sprintf("$%d", len(args))
		var ors []string
		for _, col := range spec.SearchColumns {
			ors = append(ors, col+" ILIKE "+ph)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	// Stable placeholder order regardless of map iteration.
	params := make([]string, 0, len(p.Filters))
	for param := range p.Filters {
		params = append(params, param)
	}
	sort.Strings(params)

	for _, param := range params {
		raw := p.Filters[param]
		f, ok := spec.Filters[param]
		if !ok {
			continue
		}
		if f.Bool {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				continue
			}
			args = append(args, b)
		} else {
			args = append(args, raw)
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}

	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	tail = fmt.Sprintf("ORDER BY %s %s LIMIT %d OFFSET %d",
		p.SortBy, p.Order, p.Limit, (p.Page-1)*p.Limit)
	return where, args, tail
}

// NewPagination computes the metadata block for a result set. Pages is
// ceil(total/limit); an empty collection still reports one page so the
// requested page number is always echoed back.
func NewPagination(total, page, limit int) entities.Pagination {
	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages < 1 {
		pages = 1
	}
	return entities.Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}
