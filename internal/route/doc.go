// Package route implements the route table: registration of (method, pattern)
// pairs bound to handlers, and matching of concrete request paths against them.
// Registration conflicts are detected eagerly so dispatch is deterministic.
package route
