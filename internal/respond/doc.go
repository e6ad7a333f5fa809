// Package respond converts handler results into well-formed responses:
// pass-through for fully built responses, serialization with sensible
// defaults for bare payloads, and the JSON error envelope used by the
// fault boundary.
package respond
