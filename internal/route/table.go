package route

import (
	"strings"
)

// Route is one registered binding from (method, pattern) to a handler.
// Routes are created during startup registration and immutable afterwards.
type Route struct {
	method   string
	pattern  string
	segments []segment
	handler  Handler
}

// Method returns the route's HTTP method.
func (r *Route) Method() string {
	return r.method
}

// Pattern returns the route's registered path pattern.
func (r *Route) Pattern() string {
	return r.pattern
}

// Handler returns the handler bound to the route.
func (r *Route) Handler() Handler {
	return r.handler
}

// Table owns the set of registered routes. Registration happens once at
// startup; after that the table is read-only and safe for concurrent Match
// calls without synchronization.
type Table struct {
	byMethod map[string][]*Route
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{
		byMethod: make(map[string][]*Route),
	}
}

// Register adds a route. It fails with a *DuplicateRouteError when the exact
// (method, pattern) pair is already present, with a *AmbiguousRouteError when
// the pattern could match the same concrete path as an existing route, and
// with a validation error for an unsupported method or malformed pattern.
// On any failure the table is left unchanged.
func (t *Table) Register(method, pattern string, handler Handler) error {
	if err := validateMethod(method); err != nil {
		return err
	}

	segments, err := parsePattern(pattern)
	if err != nil {
		return err
	}

	if handler == nil {
		return errNilHandler
	}

	for _, existing := range t.byMethod[method] {
		if equal(existing.segments, segments) {
			return &DuplicateRouteError{Method: method, Pattern: pattern}
		}
		if overlaps(existing.segments, segments) {
			return &AmbiguousRouteError{Method: method, Pattern: pattern, Existing: existing.pattern}
		}
	}

	t.byMethod[method] = append(t.byMethod[method], &Route{
		method:   method,
		pattern:  pattern,
		segments: segments,
		handler:  handler,
	})

	return nil
}

// Match finds the route covering (method, path) and returns it along with
// the captured path parameters. It returns ErrNotFound when no route
// matches. Registration-time ambiguity checks guarantee at most one route can
// match, so the result is deterministic.
func (t *Table) Match(method, path string) (*Route, Params, error) {
	parts, ok := splitPath(path)
	if !ok {
		return nil, nil, ErrNotFound
	}

	for _, r := range t.byMethod[method] {
		params, ok := r.match(parts)
		if !ok {
			continue
		}
		return r, params, nil
	}

	return nil, nil, ErrNotFound
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	n := 0
	for _, routes := range t.byMethod {
		n += len(routes)
	}
	return n
}

// Routes returns all registered routes, grouped by nothing in particular.
func (t *Table) Routes() []*Route {
	routes := make([]*Route, 0, t.Len())
	for _, rs := range t.byMethod {
		routes = append(routes, rs...)
	}
	return routes
}

func (r *Route) match(parts []string) (Params, bool) {
	if len(parts) != len(r.segments) {
		return nil, false
	}

	var params Params
	for i, seg := range r.segments {
		if seg.isParam() {
			if params == nil {
				params = make(Params, len(r.segments))
			}
			params[seg.param] = parts[i]
			continue
		}
		if seg.literal != parts[i] {
			return nil, false
		}
	}

	return params, true
}

// splitPath splits a concrete request path into segments. The root path "/"
// yields zero segments. Paths with empty interior segments match nothing.
func splitPath(path string) ([]string, bool) {
	if path == "" || path[0] != '/' {
		return nil, false
	}

	if path == "/" {
		return nil, true
	}

	parts := strings.Split(path[1:], "/")
	for _, part := range parts {
		if part == "" {
			return nil, false
		}
	}

	return parts, true
}
