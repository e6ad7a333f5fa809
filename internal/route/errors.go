package route

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Match when no registered route covers the
// requested (method, path).
var ErrNotFound = errors.New("no matching route")

var errNilHandler = errors.New("handler cannot be nil")

// DuplicateRouteError reports a second registration of an already registered
// (method, pattern) pair. Registration is fatal at startup, so the table is
// left untouched.
type DuplicateRouteError struct {
	Method  string
	Pattern string
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("route %s %s already registered", e.Method, e.Pattern)
}

// AmbiguousRouteError reports a registration that could match the same
// concrete path as an existing route with the same method.
type AmbiguousRouteError struct {
	Method   string
	Pattern  string
	Existing string
}

func (e *AmbiguousRouteError) Error() string {
	return fmt.Sprintf("route %s %s is ambiguous with registered pattern %s", e.Method, e.Pattern, e.Existing)
}
