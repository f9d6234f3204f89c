// Package adminclient is the Go client for the Love Pages admin API. It
// implements the collection query contract every console screen uses: paged,
// searchable, filterable list reads plus single-item mutations, with a fixed
// per-call timeout, bearer authentication and a global 401 sign-out.
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds every network call; expiry surfaces as a
// *RequestError.
const DefaultTimeout = 15 * time.Second

// Resources understood by List and Mutate.
const (
	ResourceUsers         = "users"
	ResourcePages         = "pages"
	ResourceContacts      = "contacts"
	ResourceNotifications = "notifications"
	ResourceTemplates     = "templates"
)

var listPaths = map[string]string{
	ResourceUsers:         "/api/admin/users",
	ResourcePages:         "/api/admin/pages",
	ResourceContacts:      "/api/admin/contacts",
	ResourceNotifications: "/api/notifications/admin/all",
	ResourceTemplates:     "/api/admin/templates",
}

var mutatePaths = map[string]string{
	ResourceUsers:         "/api/admin/users",
	ResourcePages:         "/api/admin/pages",
	ResourceContacts:      "/api/admin/contacts",
	ResourceNotifications: "/api/notifications/admin",
	ResourceTemplates:     "/api/admin/templates",
}

// ErrSignedOut is returned once the session has been torn down by a 401;
// no further authenticated calls go out until SignIn installs a new token
// source.
var ErrSignedOut = errors.New("adminclient: signed out")

// AuthError marks a 401. Receiving one clears the client's identity.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("adminclient: authentication failed (status %d)", e.Status)
}

// RequestError covers every non-auth failure: network errors, timeouts and
// non-2xx responses. It is local to the call that triggered it.
type RequestError struct {
	Status  int    // 0 for transport failures
	Message string // server-provided message when available
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return "adminclient: request failed: " + e.Err.Error()
	}
	return fmt.Sprintf("adminclient: request failed (status %d): %s", e.Status, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

// TokenSource supplies the current bearer token, typically from the identity
// provider's session.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a fixed token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// Client talks to the admin API. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu        sync.Mutex
	tokens    TokenSource
	signedOut bool
	onSignOut func()
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// OnSignOut registers the global 401 hook (usually "navigate to login").
// Called at most once per session.
func OnSignOut(fn func()) Option {
	return func(c *Client) { c.onSignOut = fn }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SignIn installs a new token source and lifts the signed-out block.
func (c *Client) SignIn(tokens TokenSource) {
	c.mu.Lock()
	c.tokens = tokens
	c.signedOut = false
	c.mu.Unlock()
}

// SignedOut reports whether a 401 has torn the session down.
func (c *Client) SignedOut() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signedOut
}

// signOut discards the identity and fires the hook exactly once.
func (c *Client) signOut() {
	c.mu.Lock()
	already := c.signedOut
	c.signedOut = true
	c.tokens = nil
	hook := c.onSignOut
	c.mu.Unlock()

	if !already && hook != nil {
		hook()
	}
}

// Query is one list request. Zero values mean "no constraint"; Page and
// Limit fall back to the server defaults when unset.
type Query struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string
	SortBy  string
	Order   string // "asc" or "desc"
}

// Values encodes the query, omitting unset fields so that an omitted search
// and an empty one are the same request.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for k, val := range q.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	return v
}

// Pagination is the backend's paging metadata, echoed as received and never
// recomputed locally.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// Page is one page of a collection plus its pagination metadata.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination *Pagination     `json:"pagination"`
}

// do runs one authenticated request and decodes the envelope.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*envelope, error) {
	c.mu.Lock()
	if c.signedOut {
		c.mu.Unlock()
		return nil, ErrSignedOut
	}
	tokens := c.tokens
	c.mu.Unlock()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &RequestError{Err: fmt.Errorf("encode body: %w", err)}
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	if tokens != nil {
		token, err := tokens.Token(ctx)
		if err != nil {
			return nil, &RequestError{Err: fmt.Errorf("token source: %w", err)}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.signOut()
		return nil, &AuthError{Status: resp.StatusCode}
	}

	var env envelope
	decErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Status: resp.StatusCode, Message: env.Message}
	}
	if decErr != nil {
		return nil, &RequestError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decErr)}
	}
	return &env, nil
}

// List runs the collection query contract against a resource.
func List[T any](ctx context.Context, c *Client, resource string, q Query) (Page[T], error) {
	path, ok := listPaths[resource]
	if !ok {
		return Page[T]{}, &RequestError{Err: fmt.Errorf("unknown resource %q", resource)}
	}

	env, err := c.do(ctx, http.MethodGet, path, q.Values(), nil)
	if err != nil {
		return Page[T]{}, err
	}

	var page Page[T]
	if err := json.Unmarshal(env.Data, &page.Items); err != nil {
		return Page[T]{}, &RequestError{Err: fmt.Errorf("decode items: %w", err)}
	}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	return page, nil
}

// UpdateFields sends a partial-field patch for one item and returns the
// server's copy.
func UpdateFields[T any](ctx context.Context, c *Client, resource string, id int, patch interface{}) (T, error) {
	var out T
	path, ok := mutatePaths[resource]
	if !ok {
		return out, &RequestError{Err: fmt.Errorf("unknown resource %q", resource)}
	}

	env, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/%d", path, id), nil, patch)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, &RequestError{Err: fmt.Errorf("decode item: %w", err)}
	}
	return out, nil
}

// ToggleResult is the server's answer to a flag toggle: the new value, which
// the caller adopts over any optimistic local flip.
type ToggleResult struct {
	ID       int  `json:"id"`
	IsActive bool `json:"isActive"`
}

// ToggleFlag flips a boolean server-side without knowing its prior value.
func ToggleFlag(ctx context.Context, c *Client, resource string, id int) (ToggleResult, error) {
	var out ToggleResult
	path, ok := mutatePaths[resource]
	if !ok {
		return out, &RequestError{Err: fmt.Errorf("unknown resource %q", resource)}
	}

	env, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/toggle", path, id), nil, nil)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, &RequestError{Err: fmt.Errorf("decode toggle result: %w", err)}
	}
	return out, nil
}

// Delete removes one item. The caller drops it from local state and
// provisionally decrements its total; the next List corrects both.
func Delete(ctx context.Context, c *Client, resource string, id int) error {
	path, ok := mutatePaths[resource]
	if !ok {
		return &RequestError{Err: fmt.Errorf("unknown resource %q", resource)}
	}
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", path, id), nil, nil)
	return err
}
