package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

type testItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// pagesStub is a tiny in-memory pages resource speaking the API envelope.
type pagesStub struct {
	items   []testItem
	listHit int
}

func (s *pagesStub) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/admin/pages", func(w http.ResponseWriter, r *http.Request) {
		s.listHit++
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(q.Get("limit"))
		if limit < 1 {
			limit = 20
		}
		search := q.Get("search")

		var matched []testItem
		for _, it := range s.items {
			if search == "" || it.Name == search {
				matched = append(matched, it)
			}
		}
		total := len(matched)

		start := (page - 1) * limit
		if start > total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}
		pages := (total + limit - 1) / limit
		if pages < 1 {
			pages = 1
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    matched[start:end],
			"pagination": map[string]int{
				"total": total, "page": page, "limit": limit, "pages": pages,
			},
		})
	})

	mux.HandleFunc("PATCH /api/admin/pages/{id}/toggle", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i].IsActive = !s.items[i].IsActive
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success": true,
					"data":    map[string]interface{}{"id": id, "isActive": s.items[i].IsActive},
				})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "not found"})
	})

	mux.HandleFunc("DELETE /api/admin/pages/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		for i := range s.items {
			if s.items[i].ID == id {
				s.items = append(s.items[:i], s.items[i+1:]...)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success": true,
					"data":    map[string]interface{}{"id": id, "deleted": true},
				})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "not found"})
	})

	return mux
}

func newStub() *pagesStub {
	return &pagesStub{items: []testItem{
		{ID: 1, Name: "alpha", IsActive: true},
		{ID: 2, Name: "beta", IsActive: false},
		{ID: 3, Name: "gamma", IsActive: true},
	}}
}

func TestListRespectsLimitAndEchoesPage(t *testing.T) {
	stub := newStub()
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	page, err := List[testItem](context.Background(), c, ResourcePages, Query{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Items) > 2 {
		t.Errorf("items = %d, want <= limit 2", len(page.Items))
	}
	if page.Pagination.Page != 2 {
		t.Errorf("pagination.page = %d, want 2", page.Pagination.Page)
	}
	if page.Pagination.Total != 3 {
		t.Errorf("pagination.total = %d, want 3", page.Pagination.Total)
	}
}

// An omitted search and an empty one must produce the same request and the
// same result set.
func TestListEmptySearchEqualsOmitted(t *testing.T) {
	stub := newStub()
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))

	all, err := List[testItem](context.Background(), c, ResourcePages, Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	empty, err := List[testItem](context.Background(), c, ResourcePages, Query{Search: ""})
	if err != nil {
		t.Fatalf("List with empty search: %v", err)
	}
	if len(all.Items) != len(empty.Items) {
		t.Errorf("empty search returned %d items, omitted returned %d", len(empty.Items), len(all.Items))
	}
}

func TestQueryValuesOmitUnset(t *testing.T) {
	v := Query{Search: "", Filters: map[string]string{"isActive": ""}}.Values()
	if _, ok := v["search"]; ok {
		t.Error("empty search should be omitted")
	}
	if _, ok := v["isActive"]; ok {
		t.Error("empty filter should be omitted")
	}
	if _, ok := v["page"]; ok {
		t.Error("unset page should be omitted")
	}
}

func TestToggleTwiceReturnsToOriginal(t *testing.T) {
	stub := newStub()
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	ctx := context.Background()

	first, err := ToggleFlag(ctx, c, ResourcePages, 1)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	second, err := ToggleFlag(ctx, c, ResourcePages, 1)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if first.IsActive == second.IsActive {
		t.Errorf("both toggles returned %v", first.IsActive)
	}
	if second.IsActive != true { // item 1 started active
		t.Errorf("after double toggle isActive = %v, want true", second.IsActive)
	}
}

func TestDeleteRemovesFromNextListAndDecrementsTotal(t *testing.T) {
	stub := newStub()
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	ctx := context.Background()

	before, err := List[testItem](ctx, c, ResourcePages, Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if err := Delete(ctx, c, ResourcePages, 2); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	after, err := List[testItem](ctx, c, ResourcePages, Query{})
	if err != nil {
		t.Fatalf("List after delete: %v", err)
	}
	if after.Pagination.Total != before.Pagination.Total-1 {
		t.Errorf("total = %d, want %d", after.Pagination.Total, before.Pagination.Total-1)
	}
	for _, it := range after.Items {
		if it.ID == 2 {
			t.Error("deleted item still present in list")
		}
	}
}

func TestUnauthorizedSignsOutGlobally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid token"})
	}))
	defer srv.Close()

	signOuts := 0
	c := New(srv.URL, StaticToken("expired"), OnSignOut(func() { signOuts++ }))
	ctx := context.Background()

	_, err := List[testItem](ctx, c, ResourcePages, Query{})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v, want *AuthError", err)
	}
	if !c.SignedOut() {
		t.Error("client should be signed out after 401")
	}

	// No further authenticated calls go out.
	_, err = List[testItem](ctx, c, ResourcePages, Query{})
	if !errors.Is(err, ErrSignedOut) {
		t.Errorf("err = %v, want ErrSignedOut", err)
	}
	if signOuts != 1 {
		t.Errorf("sign-out hook fired %d times, want 1", signOuts)
	}

	// A fresh sign-in lifts the block.
	c.SignIn(StaticToken("fresh"))
	if c.SignedOut() {
		t.Error("client should be signed in again")
	}
}

func TestServerErrorIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "boom"})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	_, err := List[testItem](context.Background(), c, ResourcePages, Query{})

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("err = %v, want *RequestError", err)
	}
	if reqErr.Status != http.StatusInternalServerError || reqErr.Message != "boom" {
		t.Errorf("RequestError = %+v", reqErr)
	}
	if c.SignedOut() {
		t.Error("a 500 must not sign the client out")
	}
}

func TestTimeoutIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"), WithTimeout(50*time.Millisecond))
	_, err := List[testItem](context.Background(), c, ResourcePages, Query{})

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("err = %v, want *RequestError", err)
	}
}

func TestListAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []testItem{}})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok-123"))
	if _, err := List[testItem](context.Background(), c, ResourcePages, Query{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}
