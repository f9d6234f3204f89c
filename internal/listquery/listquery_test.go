package listquery

import (
	"net/url"
	"reflect"
	"testing"
)

var userSpec = Spec{
	SearchColumns: []string{"email", "display_name"},
	Filters: map[string]Filter{
		"isPro": {Column: "is_pro", Bool: true},
	},
	SortColumns: map[string]string{
		"createdAt":    "created_at",
		"email":        "email",
		"pagesCreated": "pages_created",
	},
	DefaultSort: "created_at",
}

func TestParseDefaults(t *testing.T) {
	p := Parse(url.Values{}, userSpec)
	if p.Page != 1 {
		t.Errorf("Page = %d, want 1", p.Page)
	}
	if p.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", p.Limit, DefaultLimit)
	}
	if p.Search != "" || p.Filters != nil {
		t.Errorf("expected no constraints, got %+v", p)
	}
	if p.SortBy != "created_at" || p.Order != "DESC" {
		t.Errorf("sort = %s %s, want created_at DESC", p.SortBy, p.Order)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   Params
	}{
		{
			name:   "page and limit",
			values: url.Values{"page": {"3"}, "limit": {"50"}},
			want:   Params{Page: 3, Limit: 50, SortBy: "created_at", Order: "DESC"},
		},
		{
			name:   "limit clamped to max",
			values: url.Values{"limit": {"5000"}},
			want:   Params{Page: 1, Limit: MaxLimit, SortBy: "created_at", Order: "DESC"},
		},
		{
			name:   "invalid page ignored",
			values: url.Values{"page": {"0"}, "limit": {"-2"}},
			want:   Params{Page: 1, Limit: DefaultLimit, SortBy: "created_at", Order: "DESC"},
		},
		{
			name:   "whitelisted filter kept",
			values: url.Values{"isPro": {"true"}, "status": {"pending"}},
			want: Params{Page: 1, Limit: DefaultLimit, SortBy: "created_at", Order: "DESC",
				Filters: map[string]string{"isPro": "true"}},
		},
		{
			name:   "unknown sort falls back to default",
			values: url.Values{"sortBy": {"passwordHash"}, "order": {"asc"}},
			want:   Params{Page: 1, Limit: DefaultLimit, SortBy: "created_at", Order: "ASC"},
		},
		{
			name:   "known sort resolved to column",
			values: url.Values{"sortBy": {"pagesCreated"}},
			want:   Params{Page: 1, Limit: DefaultLimit, SortBy: "pages_created", Order: "DESC"},
		},
		{
			name:   "whitespace search treated as absent",
			values: url.Values{"search": {"   "}},
			want:   Params{Page: 1, Limit: DefaultLimit, SortBy: "created_at", Order: "DESC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.values, userSpec)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildNoConstraints(t *testing.T) {
	p := Parse(url.Values{}, userSpec)
	where, args, tail := p.Build(userSpec)
	if where != "" {
		t.Errorf("where = %q, want empty", where)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
	if tail != "ORDER BY created_at DESC LIMIT 20 OFFSET 0" {
		t.Errorf("tail = %q", tail)
	}
}

// Empty search must behave exactly like no search at all.
func TestBuildEmptySearchEqualsOmitted(t *testing.T) {
	omitted := Parse(url.Values{}, userSpec)
	empty := Parse(url.Values{"search": {""}}, userSpec)

	w1, a1, t1 := omitted.Build(userSpec)
	w2, a2, t2 := empty.Build(userSpec)
	if w1 != w2 || t1 != t2 || len(a1) != len(a2) {
		t.Errorf("empty search built %q/%v, omitted built %q/%v", w2, a2, w1, a1)
	}
}

func TestBuildSearchAndFilter(t *testing.T) {
	p := Parse(url.Values{
		"search": {"maria"},
		"isPro":  {"true"},
		"page":   {"2"},
		"limit":  {"10"},
	}, userSpec)

	where, args, tail := p.Build(userSpec)
	wantWhere := "WHERE (email ILIKE $1 OR display_name ILIKE $1) AND is_pro = $2"
	if where != wantWhere {
		t.Errorf("where = %q, want %q", where, wantWhere)
	}
	if len(args) != 2 || args[0] != "%maria%" || args[1] != true {
		t.Errorf("args = %v", args)
	}
	if tail != "ORDER BY created_at DESC LIMIT 10 OFFSET 10" {
		t.Errorf("tail = %q", tail)
	}
}

// LIKE metacharacters in the search text must match literally, not as
// wildcards.
func TestBuildSearchEscapesLikeMetacharacters(t *testing.T) {
	tests := []struct {
		search string
		want   string
	}{
		{"100%", `%100\%%`},
		{"under_score", `%under\_score%`},
		{`back\slash`, `%back\\slash%`},
	}
	for _, tt := range tests {
		p := Parse(url.Values{"search": {tt.search}}, userSpec)
		_, args, _ := p.Build(userSpec)
		if len(args) != 1 || args[0] != tt.want {
			t.Errorf("Build(search=%q) args = %v, want [%q]", tt.search, args, tt.want)
		}
	}
}

func TestBuildBadBoolFilterDropped(t *testing.T) {
	p := Parse(url.Values{"isPro": {"maybe"}}, userSpec)
	where, args, _ := p.Build(userSpec)
	if where != "" || len(args) != 0 {
		t.Errorf("unparseable bool should be dropped, got %q %v", where, args)
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total, page, limit int
		wantPages          int
	}{
		{0, 1, 20, 1},
		{1, 1, 20, 1},
		{20, 1, 20, 1},
		{21, 2, 20, 2},
		{95, 3, 10, 10},
	}
	for _, tt := range tests {
		got := NewPagination(tt.total, tt.page, tt.limit)
		if got.Pages != tt.wantPages {
			t.Errorf("NewPagination(%d,%d,%d).Pages = %d, want %d",
				tt.total, tt.page, tt.limit, got.Pages, tt.wantPages)
		}
		if got.Page != tt.page || got.Total != tt.total || got.Limit != tt.limit {
			t.Errorf("NewPagination(%d,%d,%d) = %+v", tt.total, tt.page, tt.limit, got)
		}
	}
}
