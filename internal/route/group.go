package route

import (
	"strings"
)

// Group registers routes under a shared path prefix, so related handlers can
// be mounted together, e.g. table.Group("/api/v1").
type Group struct {
	table  *Table
	prefix string
}

// Group returns a registrar that prefixes every pattern with the given
// prefix. The prefix must start with / and must not end with one.
func (t *Table) Group(prefix string) *Group {
	return &Group{table: t, prefix: strings.TrimSuffix(prefix, "/")}
}

// Register adds a route under the group's prefix. The root pattern "/" mounts
// the prefix itself.
func (g *Group) Register(method, pattern string, handler Handler) error {
	if pattern == "/" {
		return g.table.Register(method, g.prefix, handler)
	}
	return g.table.Register(method, g.prefix+pattern, handler)
}
