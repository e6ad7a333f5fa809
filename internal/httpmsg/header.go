package httpmsg

import (
	"net/textproto"
)

// Header maps canonicalized field names to their values, so lookups are
// case-insensitive: Get("content-type") and Get("Content-Type") agree.
type Header map[string][]string

// Set replaces any existing values for the given field.
func (h Header) Set(key, value string) {
	h[textproto.CanonicalMIMEHeaderKey(key)] = []string{value}
}

// Add appends a value to the field, keeping earlier ones.
func (h Header) Add(key, value string) {
	k := textproto.CanonicalMIMEHeaderKey(key)
	h[k] = append(h[k], value)
}

// Get returns the first value for the field, or "" when absent.
func (h Header) Get(key string) string {
	values := h[textproto.CanonicalMIMEHeaderKey(key)]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Values returns all values for the field in the order they were added.
func (h Header) Values(key string) []string {
	return h[textproto.CanonicalMIMEHeaderKey(key)]
}

// Del removes the field.
func (h Header) Del(key string) {
	delete(h, textproto.CanonicalMIMEHeaderKey(key))
}

// Has reports whether the field is present.
func (h Header) Has(key string) bool {
	_, ok := h[textproto.CanonicalMIMEHeaderKey(key)]
	return ok
}
