// Package dispatch implements the request dispatcher and its fault boundary.
// It parses the raw request, matches it against the route table, invokes the
// bound handler, and guarantees exactly one well-formed response per request,
// whatever the handler or the wire bytes do.
package dispatch
